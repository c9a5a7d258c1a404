package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/service"
)

type AnnouncementHandler struct {
	announcements *service.AnnouncementService
}

func NewAnnouncementHandler(announcements *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

func (h *AnnouncementHandler) RegisterRoutes(g *echo.Group) {
	staff := RequireRole(model.RoleAdmin, model.RoleCoordinator, model.RoleTeacher)

	g.GET("/announcements", h.Feed)
	g.POST("/announcements", h.Publish, staff)
	g.DELETE("/announcements/:id", h.Delete, staff)
}

type announcementRequest struct {
	Audience string `json:"audience" validate:"required,oneof=all course role"`
	CourseID *int64 `json:"course_id"`
	Role     string `json:"role"`
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
}

func (h *AnnouncementHandler) Publish(c echo.Context) error {
	var req announcementRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	claims := claimsFrom(c)
	a := &model.Announcement{
		AuthorID: claims.UserID,
		Audience: model.AudienceKind(req.Audience),
		CourseID: req.CourseID,
		Role:     model.Role(req.Role),
		Title:    req.Title,
		Body:     req.Body,
	}
	if err := h.announcements.Publish(c.Request().Context(), a); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *AnnouncementHandler) Feed(c echo.Context) error {
	claims := claimsFrom(c)

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	feed, err := h.announcements.Feed(c.Request().Context(), claims.UserID, claims.Role, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, feed)
}

func (h *AnnouncementHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	claims := claimsFrom(c)
	if err := h.announcements.Delete(c.Request().Context(), id, claims.UserID, claims.Role); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
