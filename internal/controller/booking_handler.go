package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/schedule"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/service"
)

// BookingHandler exposes availability rules, slots and appointments.
type BookingHandler struct {
	booking      *service.BookingService
	availability *service.AvailabilityService
	horizonWeeks int
}

func NewBookingHandler(booking *service.BookingService, availability *service.AvailabilityService, horizonWeeks int) *BookingHandler {
	return &BookingHandler{
		booking:      booking,
		availability: availability,
		horizonWeeks: horizonWeeks,
	}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	professional := RequireRole(model.RoleProfessional)
	booker := RequireRole(model.RoleAthlete, model.RoleGuardian, model.RoleCoordinator, model.RoleAdmin)

	g.POST("/availability", h.CreateRules, professional)
	g.GET("/availability", h.ListRules, professional)
	g.DELETE("/availability/:id", h.DeactivateRule, professional)
	g.DELETE("/availability/groups/:gid", h.DeactivateGroup, professional)

	g.POST("/slots/publish", h.PublishSlots, professional)
	g.GET("/slots", h.FreeSlots)
	g.GET("/slots/mine", h.OwnerSlots, professional)
	g.POST("/slots/:id/reserve", h.Reserve, booker)
	g.DELETE("/slots/:id", h.CancelSlot, professional)

	g.GET("/appointments", h.Appointments)
	g.GET("/appointments/:id", h.Appointment)
	g.POST("/appointments/:id/cancel", h.CancelAppointment)
	g.POST("/appointments/:id/complete", h.CompleteAppointment, professional)
	g.POST("/appointments/:id/reschedule", h.MarkRescheduled, professional)
}

type ruleSpecRequest struct {
	Weekday         int `json:"weekday" validate:"gte=0,lte=6"`
	WindowStartMin  int `json:"window_start" validate:"gte=0,lt=1440"`
	WindowEndMin    int `json:"window_end" validate:"gt=0,lte=1440"`
	DurationMinutes int `json:"duration_minutes" validate:"required,gt=0"`
	StepMinutes     int `json:"step_minutes" validate:"required,gt=0"`
}

type createRulesRequest struct {
	Rules    []ruleSpecRequest `json:"rules" validate:"required,min=1,dive"`
	Location string            `json:"location"`
}

func (h *BookingHandler) CreateRules(c echo.Context) error {
	var req createRulesRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	specs := make([]service.RuleSpec, 0, len(req.Rules))
	for _, r := range req.Rules {
		specs = append(specs, service.RuleSpec{
			Weekday:         r.Weekday,
			WindowStartMin:  r.WindowStartMin,
			WindowEndMin:    r.WindowEndMin,
			DurationMinutes: r.DurationMinutes,
			StepMinutes:     r.StepMinutes,
		})
	}

	claims := claimsFrom(c)
	groupID, published, err := h.availability.CreateGroup(c.Request().Context(), claims.UserID, specs, req.Location, h.horizonWeeks)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"group_id":  groupID,
		"published": published,
	})
}

func (h *BookingHandler) ListRules(c echo.Context) error {
	claims := claimsFrom(c)
	rules, err := h.availability.ListByOwner(c.Request().Context(), claims.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rules)
}

func (h *BookingHandler) DeactivateRule(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	claims := claimsFrom(c)
	if err := h.availability.Deactivate(c.Request().Context(), id, claims.UserID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeactivateGroup retires a whole rule group in one call.
func (h *BookingHandler) DeactivateGroup(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("gid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid group id")
	}
	claims := claimsFrom(c)
	if err := h.availability.DeactivateGroup(c.Request().Context(), groupID, claims.UserID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type publishRequest struct {
	Weekdays        []int  `json:"weekdays" validate:"required,min=1,dive,gte=0,lte=6"`
	WindowStartMin  int    `json:"window_start" validate:"gte=0,lt=1440"`
	WindowEndMin    int    `json:"window_end" validate:"gt=0,lte=1440"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	StepMinutes     int    `json:"step_minutes" validate:"required,gt=0"`
	Weeks           int    `json:"weeks" validate:"required,gte=1,lte=26"`
	Location        string `json:"location"`
	Note            string `json:"note"`
}

// PublishSlots is the one-shot variant of availability: expand the rule
// now and persist the surviving candidates, without storing a template.
func (h *BookingHandler) PublishSlots(c echo.Context) error {
	var req publishRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	weekdays := make([]time.Weekday, 0, len(req.Weekdays))
	for _, wd := range req.Weekdays {
		weekdays = append(weekdays, time.Weekday(wd))
	}

	candidates, err := h.booking.GenerateCandidates(schedule.Rule{
		Weekdays:        weekdays,
		WindowStartMin:  req.WindowStartMin,
		WindowEndMin:    req.WindowEndMin,
		DurationMinutes: req.DurationMinutes,
		StepMinutes:     req.StepMinutes,
		Weeks:           req.Weeks,
		ReferenceDate:   time.Now(),
	})
	if err != nil {
		return httpError(err)
	}

	claims := claimsFrom(c)
	published, err := h.booking.Publish(c.Request().Context(), claims.UserID, candidates, req.Location, req.Note)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, published)
}

func (h *BookingHandler) FreeSlots(c echo.Context) error {
	var ownerID int64
	if raw := c.QueryParam("professional_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid professional_id")
		}
		ownerID = id
	}

	from, to, err := rangeParams(c)
	if err != nil {
		return err
	}

	slots, err := h.booking.FreeSlots(c.Request().Context(), ownerID, from, to)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *BookingHandler) OwnerSlots(c echo.Context) error {
	from, to, err := rangeParams(c)
	if err != nil {
		return err
	}

	claims := claimsFrom(c)
	slots, err := h.booking.OwnerSlots(c.Request().Context(), claims.UserID, from, to)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, slots)
}

type reserveRequest struct {
	AthleteID int64 `json:"athlete_id" validate:"required,gt=0"`
}

func (h *BookingHandler) Reserve(c echo.Context) error {
	slotID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req reserveRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	claims := claimsFrom(c)
	appt, err := h.booking.Reserve(c.Request().Context(), slotID, req.AthleteID, claims.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, appt)
}

func (h *BookingHandler) CancelSlot(c echo.Context) error {
	slotID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	claims := claimsFrom(c)
	if err := h.booking.CancelSlot(c.Request().Context(), slotID, claims.UserID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BookingHandler) Appointments(c echo.Context) error {
	claims := claimsFrom(c)
	ctx := c.Request().Context()

	if claims.Role == model.RoleProfessional {
		appts, err := h.booking.ProfessionalAppointments(ctx, claims.UserID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, appts)
	}

	subjectID := claims.UserID
	if raw := c.QueryParam("athlete_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid athlete_id")
		}
		subjectID = id
	}

	appts, err := h.booking.SubjectAppointments(ctx, subjectID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *BookingHandler) Appointment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	appt, err := h.booking.AppointmentByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, appt)
}

func (h *BookingHandler) CancelAppointment(c echo.Context) error {
	return h.transition(c, h.booking.CancelAppointment)
}

func (h *BookingHandler) CompleteAppointment(c echo.Context) error {
	return h.transition(c, h.booking.CompleteAppointment)
}

func (h *BookingHandler) MarkRescheduled(c echo.Context) error {
	return h.transition(c, h.booking.MarkRescheduled)
}

func (h *BookingHandler) transition(c echo.Context, fn func(ctx context.Context, apptID, actorID int64) error) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	claims := claimsFrom(c)
	if err := fn(c.Request().Context(), id, claims.UserID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
