package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"teamgoals/internal/model"
	"teamgoals/internal/service"
)

// CoachHandler handles coach endpoints.
type CoachHandler struct {
	coachService service.CoachService
}

// NewCoachHandler creates a new coach handler.
func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// CoachListResponse is one page of coaches.
type CoachListResponse struct {
	Coaches    []model.Coach  `json:"coaches"`
	Pagination PaginationMeta `json:"pagination"`
}

// ListCoaches godoc
// @Summary List coaches (admin only)
// @Tags coaches
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search over name, email and specialization"
// @Param page query int false "Page number"
// @Success 200 {object} CoachListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /coaches [get]
func (h *CoachHandler) ListCoaches(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	page := pageParam(c)
	coaches, total, err := h.coachService.List(c.Request().Context(), principal, c.QueryParam("search"), page)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, CoachListResponse{
		Coaches:    coaches,
		Pagination: paginationMeta(page, total),
	})
}
