package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/schedule"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/service"
)

// httpError maps service errors onto HTTP status codes. Unknown errors
// bubble up as 500 through echo's default handler.
func httpError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrSlotUnavailable):
		return echo.NewHTTPError(http.StatusConflict, "slot is no longer available")
	case errors.Is(err, service.ErrSlotExpired):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "slot start time has passed")
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrInvalidState):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrDuplicate):
		return echo.NewHTTPError(http.StatusConflict, "already exists")
	case errors.Is(err, service.ErrCapacityFull):
		return echo.NewHTTPError(http.StatusConflict, "course capacity reached")
	case errors.Is(err, service.ErrOpenSession):
		return echo.NewHTTPError(http.StatusConflict, "an open session already exists")
	case errors.Is(err, service.ErrNoOpenSession):
		return echo.NewHTTPError(http.StatusConflict, "no open session to close")
	case errors.Is(err, schedule.ErrInvalidRule):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return err
	}
}
