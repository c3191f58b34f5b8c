package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"teamgoals/internal/model"
	"teamgoals/internal/service"
)

// PlayerHandler handles player endpoints.
type PlayerHandler struct {
	playerService service.PlayerService
}

// NewPlayerHandler creates a new player handler.
func NewPlayerHandler(playerService service.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

// PlayerListResponse is one page of players.
type PlayerListResponse struct {
	Players    []model.Player `json:"players"`
	Pagination PaginationMeta `json:"pagination"`
	UserRole   model.Role     `json:"user_role"`
}

// ListPlayers godoc
// @Summary List players visible to the caller
// @Tags players
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search over name, position and jersey number"
// @Param page query int false "Page number"
// @Success 200 {object} PlayerListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /players [get]
func (h *PlayerHandler) ListPlayers(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	page := pageParam(c)
	players, total, err := h.playerService.List(c.Request().Context(), principal, c.QueryParam("search"), page)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, PlayerListResponse{
		Players:    players,
		Pagination: paginationMeta(page, total),
		UserRole:   principal.Role(),
	})
}

// GetPlayer godoc
// @Summary Get a player inside the caller's scope
// @Tags players
// @Produce json
// @Security BearerAuth
// @Param id path int true "Player ID"
// @Success 200 {object} model.Player
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /players/{id} [get]
func (h *PlayerHandler) GetPlayer(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	player, err := h.playerService.Get(c.Request().Context(), principal, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, player)
}
