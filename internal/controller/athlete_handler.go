package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/service"
)

type AthleteHandler struct {
	athletes *service.AthleteService
}

func NewAthleteHandler(athletes *service.AthleteService) *AthleteHandler {
	return &AthleteHandler{athletes: athletes}
}

func (h *AthleteHandler) RegisterRoutes(g *echo.Group) {
	staff := RequireRole(model.RoleAdmin, model.RoleCoordinator, model.RoleTeacher)
	admin := RequireRole(model.RoleAdmin, model.RoleCoordinator)

	g.GET("/athletes", h.List, staff)
	g.POST("/athletes", h.Create, admin)
	g.GET("/athletes/:id", h.Get, staff)
	g.PUT("/athletes/:id", h.Update, admin)
	g.DELETE("/athletes/:id", h.Deactivate, admin)

	g.GET("/guardians", h.ListGuardians, staff)
	g.POST("/guardians", h.CreateGuardian, admin)
	g.GET("/guardians/:id", h.GetGuardian, staff)
	g.PUT("/guardians/:id", h.UpdateGuardian, admin)
	g.GET("/guardians/:id/athletes", h.GuardianAthletes, staff)

	g.GET("/my/athletes", h.MyAthletes, RequireRole(model.RoleGuardian))
}

type athleteRequest struct {
	FirstName        string `json:"first_name" validate:"required"`
	LastName         string `json:"last_name" validate:"required"`
	NationalID       string `json:"national_id" validate:"required"`
	BirthDate        string `json:"birth_date" validate:"required"` // YYYY-MM-DD
	GuardianID       *int64 `json:"guardian_id"`
	EmergencyContact string `json:"emergency_contact"`
	HasMedicalAlert  bool   `json:"has_medical_alert"`
}

func (h *AthleteHandler) Create(c echo.Context) error {
	var req athleteRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	birth, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
	}

	a := &model.Athlete{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		NationalID:       req.NationalID,
		BirthDate:        birth,
		GuardianID:       req.GuardianID,
		EmergencyContact: req.EmergencyContact,
		HasMedicalAlert:  req.HasMedicalAlert,
	}
	if err := h.athletes.Create(c.Request().Context(), a); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *AthleteHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.athletes.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AthleteHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	athletes, err := h.athletes.List(c.Request().Context(), limit, offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, athletes)
}

func (h *AthleteHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req athleteRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	birth, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
	}

	a, err := h.athletes.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	a.FirstName = req.FirstName
	a.LastName = req.LastName
	a.BirthDate = birth
	a.GuardianID = req.GuardianID
	a.EmergencyContact = req.EmergencyContact
	a.HasMedicalAlert = req.HasMedicalAlert

	if err := h.athletes.Update(c.Request().Context(), a); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AthleteHandler) Deactivate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.athletes.Deactivate(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type guardianRequest struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	NationalID   string `json:"national_id" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	Relationship string `json:"relationship" validate:"required,oneof=mother father other"`
}

func (h *AthleteHandler) CreateGuardian(c echo.Context) error {
	var req guardianRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	g := &model.Guardian{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		NationalID:   req.NationalID,
		Phone:        req.Phone,
		Email:        req.Email,
		Relationship: req.Relationship,
	}
	if err := h.athletes.CreateGuardian(c.Request().Context(), g); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, g)
}

func (h *AthleteHandler) GetGuardian(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	g, err := h.athletes.GetGuardian(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *AthleteHandler) ListGuardians(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	guardians, err := h.athletes.ListGuardians(c.Request().Context(), limit, offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, guardians)
}

func (h *AthleteHandler) UpdateGuardian(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req guardianRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	g, err := h.athletes.GetGuardian(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	g.FirstName = req.FirstName
	g.LastName = req.LastName
	g.Phone = req.Phone
	g.Email = req.Email
	g.Relationship = req.Relationship

	if err := h.athletes.UpdateGuardian(c.Request().Context(), g); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, g)
}

// MyAthletes lists the athletes linked to the guardian behind the token.
func (h *AthleteHandler) MyAthletes(c echo.Context) error {
	claims := claimsFrom(c)
	guardian, err := h.athletes.GuardianByUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return httpError(err)
	}
	athletes, err := h.athletes.ListByGuardian(c.Request().Context(), guardian.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, athletes)
}

func (h *AthleteHandler) GuardianAthletes(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	athletes, err := h.athletes.ListByGuardian(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, athletes)
}
