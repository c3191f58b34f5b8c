package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"teamgoals/internal/model"
	"teamgoals/internal/repository"
	"teamgoals/internal/service"
)

// GoalHandler handles goal endpoints, including the asynchronous progress
// update.
type GoalHandler struct {
	goalService service.GoalService
}

// NewGoalHandler creates a new goal handler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// GoalListResponse is one page of goals.
type GoalListResponse struct {
	Goals      []model.Goal   `json:"goals"`
	Pagination PaginationMeta `json:"pagination"`
	UserRole   model.Role     `json:"user_role"`
}

// CreateGoalRequest creates a goal for one of the caller's players.
type CreateGoalRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	PlayerID    uint   `json:"player_id" validate:"required"`
	Area        string `json:"area" validate:"omitempty,oneof=physical technical tactical mental"`
	Timeframe   string `json:"timeframe" validate:"omitempty,oneof=short_term medium_term long_term"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date"`
}

// UpdateGoalRequest updates a goal. Only the fields inside the caller's
// editable field set are applied.
type UpdateGoalRequest struct {
	Name        string `json:"name" validate:"omitempty,max=200"`
	PlayerID    uint   `json:"player_id"`
	Area        string `json:"area"`
	Timeframe   string `json:"timeframe"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date"`
	Notes       string `json:"notes"`
	Progress    string `json:"progress"`
}

// ProgressUpdateRequest is the body of the two asynchronous progress
// endpoints. Notes are optional.
type ProgressUpdateRequest struct {
	Progress string `json:"progress" form:"progress" validate:"required"`
	Notes    string `json:"notes" form:"notes"`
}

// ProgressUpdateResponse is the success payload of the two asynchronous
// progress endpoints.
type ProgressUpdateResponse struct {
	Success            bool           `json:"success"`
	Progress           model.Progress `json:"progress"`
	ProgressPercentage int            `json:"progress_percentage"`
	IsOverdue          bool           `json:"is_overdue"`
	MainGoalCompleted  *bool          `json:"main_goal_completed,omitempty"`
}

// ListGoals godoc
// @Summary List goals visible to the caller
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search over goal name, player name and area"
// @Param area query string false "Exact area filter"
// @Param progress query string false "Exact progress filter"
// @Param timeframe query string false "Exact timeframe filter"
// @Param page query int false "Page number"
// @Success 200 {object} GoalListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /goals [get]
func (h *GoalHandler) ListGoals(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	filter := repository.GoalFilter{
		Search:    c.QueryParam("search"),
		Area:      model.Area(c.QueryParam("area")),
		Progress:  model.Progress(c.QueryParam("progress")),
		Timeframe: model.Timeframe(c.QueryParam("timeframe")),
	}
	page := pageParam(c)

	goals, total, err := h.goalService.List(c.Request().Context(), principal, filter, page)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, GoalListResponse{
		Goals:      goals,
		Pagination: paginationMeta(page, total),
		UserRole:   principal.Role(),
	})
}

// GetGoal godoc
// @Summary Get a goal inside the caller's scope with derived quantities
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Success 200 {object} service.GoalDetail
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /goals/{id} [get]
func (h *GoalHandler) GetGoal(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.goalService.Get(c.Request().Context(), principal, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// CreateGoal godoc
// @Summary Create a goal (coach only)
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "Goal data"
// @Success 201 {object} model.Goal
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /goals [post]
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		return err
	}

	goal, err := h.goalService.Create(c.Request().Context(), principal, service.CreateGoalInput{
		Name:        req.Name,
		PlayerID:    req.PlayerID,
		Area:        model.Area(req.Area),
		Timeframe:   model.Timeframe(req.Timeframe),
		Description: req.Description,
		TargetDate:  targetDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, goal)
}

// UpdateGoal godoc
// @Summary Update a goal's fields, restricted by role
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Param request body UpdateGoalRequest true "Goal data"
// @Success 200 {object} model.Goal
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.PermissionError
// @Failure 404 {object} errors.ErrorResponse
// @Router /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		return err
	}

	goal, err := h.goalService.Update(c.Request().Context(), principal, id, service.UpdateGoalInput{
		Name:        req.Name,
		PlayerID:    req.PlayerID,
		Area:        model.Area(req.Area),
		Timeframe:   model.Timeframe(req.Timeframe),
		Description: req.Description,
		TargetDate:  targetDate,
		Notes:       req.Notes,
		Progress:    model.Progress(req.Progress),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, goal)
}

// UpdateGoalProgress godoc
// @Summary Update a goal's progress (asynchronous endpoint)
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Goal ID"
// @Param request body ProgressUpdateRequest true "Progress value and optional notes"
// @Success 200 {object} ProgressUpdateResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} errors.PermissionError
// @Failure 404 {object} errors.ErrorResponse
// @Router /goals/{id}/progress [post]
func (h *GoalHandler) UpdateGoalProgress(c echo.Context) error {
	if err := requireAJAX(c); err != nil {
		return err
	}

	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req ProgressUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	update, err := h.goalService.UpdateProgress(c.Request().Context(), principal, id, model.Progress(req.Progress), req.Notes)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, ProgressUpdateResponse{
		Success:            true,
		Progress:           update.Progress,
		ProgressPercentage: update.ProgressPercentage,
		IsOverdue:          update.IsOverdue,
	})
}
