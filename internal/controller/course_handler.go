package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/service"
)

type CourseHandler struct {
	courses *service.CourseService
}

func NewCourseHandler(courses *service.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

func (h *CourseHandler) RegisterRoutes(g *echo.Group) {
	admin := RequireRole(model.RoleAdmin, model.RoleCoordinator)
	staff := RequireRole(model.RoleAdmin, model.RoleCoordinator, model.RoleTeacher)

	g.GET("/courses", h.List)
	g.POST("/courses", h.Create, admin)
	g.GET("/courses/:id", h.Get)
	g.PUT("/courses/:id", h.Update, admin)
	g.DELETE("/courses/:id", h.Deactivate, admin)

	g.POST("/courses/:id/enrollments", h.Enroll, admin)
	g.DELETE("/courses/:id/enrollments/:athleteID", h.Withdraw, admin)
	g.GET("/courses/:id/roster", h.Roster, staff)
}

type courseRequest struct {
	Name          string  `json:"name" validate:"required"`
	Discipline    string  `json:"discipline" validate:"required"`
	TeacherID     int64   `json:"teacher_id" validate:"required,gt=0"`
	VenueName     string  `json:"venue_name" validate:"required"`
	VenueLat      float64 `json:"venue_lat" validate:"gte=-90,lte=90"`
	VenueLng      float64 `json:"venue_lng" validate:"gte=-180,lte=180"`
	CheckInRadius float64 `json:"check_in_radius_m" validate:"gt=0"`
	Schedule      string  `json:"schedule"`
	Capacity      int     `json:"capacity" validate:"required,gt=0"`
}

func (h *CourseHandler) Create(c echo.Context) error {
	var req courseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	course := &model.Course{
		Name:          req.Name,
		Discipline:    req.Discipline,
		TeacherID:     req.TeacherID,
		VenueName:     req.VenueName,
		VenueLat:      req.VenueLat,
		VenueLng:      req.VenueLng,
		CheckInRadius: req.CheckInRadius,
		Schedule:      req.Schedule,
		Capacity:      req.Capacity,
	}
	if err := h.courses.Create(c.Request().Context(), course); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	course, err := h.courses.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) List(c echo.Context) error {
	if teacher := c.QueryParam("teacher_id"); teacher != "" {
		id, err := strconv.ParseInt(teacher, 10, 64)
		if err != nil || id <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid teacher_id")
		}
		courses, err := h.courses.ListByTeacher(c.Request().Context(), id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, courses)
	}

	courses, err := h.courses.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req courseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	course, err := h.courses.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	course.Name = req.Name
	course.Discipline = req.Discipline
	course.TeacherID = req.TeacherID
	course.VenueName = req.VenueName
	course.VenueLat = req.VenueLat
	course.VenueLng = req.VenueLng
	course.CheckInRadius = req.CheckInRadius
	course.Schedule = req.Schedule
	course.Capacity = req.Capacity

	if err := h.courses.Update(c.Request().Context(), course); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Deactivate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.courses.Deactivate(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type enrollRequest struct {
	AthleteID int64 `json:"athlete_id" validate:"required,gt=0"`
}

func (h *CourseHandler) Enroll(c echo.Context) error {
	courseID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req enrollRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	e, err := h.courses.Enroll(c.Request().Context(), courseID, req.AthleteID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *CourseHandler) Withdraw(c echo.Context) error {
	courseID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	athleteID, err := pathID(c, "athleteID")
	if err != nil {
		return err
	}
	if err := h.courses.Withdraw(c.Request().Context(), courseID, athleteID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CourseHandler) Roster(c echo.Context) error {
	courseID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	roster, err := h.courses.Roster(c.Request().Context(), courseID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, roster)
}
