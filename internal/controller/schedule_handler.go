package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/render"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/service"
)

// ScheduleHandler serves the rendered weekly schedule image.
type ScheduleHandler struct {
	booking *service.BookingService
}

func NewScheduleHandler(booking *service.BookingService) *ScheduleHandler {
	return &ScheduleHandler{booking: booking}
}

func (h *ScheduleHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/professionals/:id/week.png", h.WeekImage,
		RequireRole(model.RoleAdmin, model.RoleCoordinator, model.RoleProfessional))
}

// WeekImage renders one professional's slots for the week containing the
// requested date (default: today).
func (h *ScheduleHandler) WeekImage(c echo.Context) error {
	ownerID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	reference := time.Now()
	if raw := c.QueryParam("date"); raw != "" {
		reference, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
	}

	weekStart := reference.AddDate(0, 0, -mondayOffset(reference))
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, reference.Location())
	weekEnd := weekStart.AddDate(0, 0, 7)

	slots, err := h.booking.OwnerSlots(c.Request().Context(), ownerID, weekStart, weekEnd)
	if err != nil {
		return httpError(err)
	}

	img, err := render.WeekPNG(reference, slots)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", img)
}

func mondayOffset(t time.Time) int {
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	return offset
}
