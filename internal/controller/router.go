// Package controller is the HTTP surface of the program. Handlers bind and
// validate requests, delegate to the service layer and translate its errors
// into status codes.
package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/auth"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/service"
)

// Services groups everything the router needs to wire the handlers.
type Services struct {
	Users         *service.UserService
	Athletes      *service.AthleteService
	Courses       *service.CourseService
	Attendance    *service.AttendanceService
	Booking       *service.BookingService
	Availability  *service.AvailabilityService
	Records       *service.RecordService
	Announcements *service.AnnouncementService
	Tokens        *auth.TokenManager
	HorizonWeeks  int
}

// NewRouter builds the echo instance with all routes registered under
// /api/v1. Every route except login and the health probe requires a token.
func NewRouter(svc Services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	users := NewUserHandler(svc.Users)

	api := e.Group("/api/v1")
	api.POST("/auth/login", users.Login)

	authed := e.Group("/api/v1", Authenticate(svc.Tokens))
	users.RegisterRoutes(authed)
	NewAthleteHandler(svc.Athletes).RegisterRoutes(authed)
	NewCourseHandler(svc.Courses).RegisterRoutes(authed)
	NewAttendanceHandler(svc.Attendance).RegisterRoutes(authed)
	NewBookingHandler(svc.Booking, svc.Availability, svc.HorizonWeeks).RegisterRoutes(authed)
	NewRecordHandler(svc.Records).RegisterRoutes(authed)
	NewAnnouncementHandler(svc.Announcements).RegisterRoutes(authed)
	NewScheduleHandler(svc.Booking).RegisterRoutes(authed)

	return e
}
