package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/service"
)

type AttendanceHandler struct {
	attendance *service.AttendanceService
}

func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

func (h *AttendanceHandler) RegisterRoutes(g *echo.Group) {
	staff := RequireRole(model.RoleAdmin, model.RoleCoordinator, model.RoleTeacher)
	self := RequireRole(model.RoleAthlete, model.RoleGuardian, model.RoleTeacher, model.RoleCoordinator, model.RoleAdmin)
	teacher := RequireRole(model.RoleTeacher)

	g.POST("/courses/:id/check-in", h.CheckIn, self)
	g.POST("/courses/:id/attendance", h.Mark, staff)
	g.GET("/courses/:id/attendance", h.ListByCourseDate, staff)
	g.GET("/athletes/:id/attendance", h.ListByAthlete, staff)

	g.POST("/sessions/clock-in", h.ClockIn, teacher)
	g.POST("/sessions/clock-out", h.ClockOut, teacher)
	g.GET("/sessions", h.Sessions, staff)
}

type checkInRequest struct {
	AthleteID int64   `json:"athlete_id" validate:"required,gt=0"`
	Lat       float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng       float64 `json:"lng" validate:"gte=-180,lte=180"`
}

func (h *AttendanceHandler) CheckIn(c echo.Context) error {
	courseID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req checkInRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	claims := claimsFrom(c)
	rec, err := h.attendance.CheckIn(c.Request().Context(), courseID, req.AthleteID, claims.UserID, claims.Role, req.Lat, req.Lng)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

type markRequest struct {
	AthleteID int64  `json:"athlete_id" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required"` // YYYY-MM-DD
	Status    string `json:"status" validate:"required,oneof=present late absent justified"`
}

func (h *AttendanceHandler) Mark(c echo.Context) error {
	courseID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req markRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	claims := claimsFrom(c)
	rec, err := h.attendance.Mark(c.Request().Context(), courseID, req.AthleteID, claims.UserID, date, model.AttendanceStatus(req.Status))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *AttendanceHandler) ListByCourseDate(c echo.Context) error {
	courseID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	recs, err := h.attendance.ListByCourseDate(c.Request().Context(), courseID, date)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *AttendanceHandler) ListByAthlete(c echo.Context) error {
	athleteID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	from, to, err := rangeParams(c)
	if err != nil {
		return err
	}

	recs, err := h.attendance.ListByAthlete(c.Request().Context(), athleteID, from, to)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, recs)
}

type clockRequest struct {
	Lat *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
}

func (h *AttendanceHandler) ClockIn(c echo.Context) error {
	var req clockRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	claims := claimsFrom(c)
	sess, err := h.attendance.ClockIn(c.Request().Context(), claims.UserID, req.Lat, req.Lng)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, sess)
}

func (h *AttendanceHandler) ClockOut(c echo.Context) error {
	var req clockRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	claims := claimsFrom(c)
	sess, err := h.attendance.ClockOut(c.Request().Context(), claims.UserID, req.Lat, req.Lng)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sess)
}

func (h *AttendanceHandler) Sessions(c echo.Context) error {
	claims := claimsFrom(c)
	teacherID := claims.UserID
	if raw := c.QueryParam("teacher_id"); raw != "" && claims.Role != model.RoleTeacher {
		id, err := parseID(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid teacher_id")
		}
		teacherID = id
	}

	from, to, err := rangeParams(c)
	if err != nil {
		return err
	}

	sessions, err := h.attendance.Sessions(c.Request().Context(), teacherID, from, to)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sessions)
}

// rangeParams reads optional from/to query parameters in RFC 3339 or
// date-only form. A missing bound stays zero, meaning unbounded.
func rangeParams(c echo.Context) (from, to time.Time, err error) {
	parse := func(raw string) (time.Time, error) {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02", raw)
	}

	if raw := c.QueryParam("from"); raw != "" {
		if from, err = parse(raw); err != nil {
			return from, to, echo.NewHTTPError(http.StatusBadRequest, "invalid from")
		}
	}
	if raw := c.QueryParam("to"); raw != "" {
		if to, err = parse(raw); err != nil {
			return from, to, echo.NewHTTPError(http.StatusBadRequest, "invalid to")
		}
	}
	return from, to, nil
}
