package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/service"
)

type RecordHandler struct {
	records *service.RecordService
}

func NewRecordHandler(records *service.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

func (h *RecordHandler) RegisterRoutes(g *echo.Group) {
	readers := RequireRole(model.RoleProfessional, model.RoleAdmin, model.RoleGuardian)

	g.POST("/records", h.Create, RequireRole(model.RoleProfessional))
	g.GET("/records/:id", h.Get, readers)
	g.GET("/athletes/:id/records", h.ListByAthlete, readers)
	g.GET("/records/mine", h.ListMine, RequireRole(model.RoleProfessional))
}

type recordRequest struct {
	AthleteID     int64  `json:"athlete_id" validate:"required,gt=0"`
	AppointmentID *int64 `json:"appointment_id"`
	Title         string `json:"title" validate:"required"`
	Body          string `json:"body" validate:"required"`
}

func (h *RecordHandler) Create(c echo.Context) error {
	var req recordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	claims := claimsFrom(c)
	rec := &model.ClinicalRecord{
		AthleteID:      req.AthleteID,
		ProfessionalID: claims.UserID,
		AppointmentID:  req.AppointmentID,
		Title:          req.Title,
		Body:           req.Body,
	}
	if err := h.records.Create(c.Request().Context(), rec); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *RecordHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	claims := claimsFrom(c)
	rec, err := h.records.GetByID(c.Request().Context(), id, claims.UserID, claims.Role)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *RecordHandler) ListByAthlete(c echo.Context) error {
	athleteID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	claims := claimsFrom(c)
	recs, err := h.records.ListByAthlete(c.Request().Context(), athleteID, claims.UserID, claims.Role)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *RecordHandler) ListMine(c echo.Context) error {
	claims := claimsFrom(c)
	recs, err := h.records.ListByProfessional(c.Request().Context(), claims.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, recs)
}
