package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"teamgoals/internal/model"
	"teamgoals/internal/service"
)

// ProcessGoalHandler handles the sub-goal endpoints nested under a goal.
type ProcessGoalHandler struct {
	processGoalService service.ProcessGoalService
}

// NewProcessGoalHandler creates a new process goal handler.
func NewProcessGoalHandler(processGoalService service.ProcessGoalService) *ProcessGoalHandler {
	return &ProcessGoalHandler{processGoalService: processGoalService}
}

// ProcessGoalListResponse is one page of a goal's process goals.
type ProcessGoalListResponse struct {
	ProcessGoals []model.ProcessGoal `json:"process_goals"`
	Pagination   PaginationMeta      `json:"pagination"`
	UserRole     model.Role          `json:"user_role"`
}

// CreateProcessGoalRequest creates a process goal under a main goal.
type CreateProcessGoalRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date"`
	Order       uint   `json:"order"`
}

// UpdateProcessGoalRequest updates a process goal. Only the fields inside
// the caller's editable field set are applied.
type UpdateProcessGoalRequest struct {
	Name        string `json:"name" validate:"omitempty,max=200"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date"`
	Order       *uint  `json:"order"`
	Notes       string `json:"notes"`
	Progress    string `json:"progress"`
}

// ListProcessGoals godoc
// @Summary List a goal's process goals
// @Tags process-goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Main goal ID"
// @Success 200 {object} ProcessGoalListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /goals/{id}/process-goals [get]
func (h *ProcessGoalHandler) ListProcessGoals(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	goalID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	page := pageParam(c)
	processGoals, total, err := h.processGoalService.ListByGoal(c.Request().Context(), principal, goalID, page)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, ProcessGoalListResponse{
		ProcessGoals: processGoals,
		Pagination:   paginationMeta(page, total),
		UserRole:     principal.Role(),
	})
}

// CreateProcessGoal godoc
// @Summary Create a process goal under one of the caller's goals (coach only)
// @Tags process-goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Main goal ID"
// @Param request body CreateProcessGoalRequest true "Process goal data"
// @Success 201 {object} model.ProcessGoal
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /goals/{id}/process-goals [post]
func (h *ProcessGoalHandler) CreateProcessGoal(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	goalID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req CreateProcessGoalRequest
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

	processGoal, err := h.processGoalService.Create(c.Request().Context(), principal, goalID, service.CreateProcessGoalInput{
		Name:        req.Name,
		Description: req.Description,
		TargetDate:  targetDate,
		Order:       req.Order,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, processGoal)
}

// UpdateProcessGoal godoc
// @Summary Update a process goal's fields, restricted by role
// @Tags process-goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Process goal ID"
// @Param request body UpdateProcessGoalRequest true "Process goal data"
// @Success 200 {object} model.ProcessGoal
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.PermissionError
// @Failure 404 {object} errors.ErrorResponse
// @Router /process-goals/{id} [put]
func (h *ProcessGoalHandler) UpdateProcessGoal(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateProcessGoalRequest
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

	processGoal, err := h.processGoalService.Update(c.Request().Context(), principal, id, service.UpdateProcessGoalInput{
		Name:        req.Name,
		Description: req.Description,
		TargetDate:  targetDate,
		Order:       req.Order,
		Notes:       req.Notes,
		Progress:    model.Progress(req.Progress),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, processGoal)
}

// UpdateProcessGoalProgress godoc
// @Summary Update a process goal's progress (asynchronous endpoint)
// @Tags process-goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Process goal ID"
// @Param request body ProgressUpdateRequest true "Progress value and optional notes"
// @Success 200 {object} ProgressUpdateResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} errors.PermissionError
// @Failure 404 {object} errors.ErrorResponse
// @Router /process-goals/{id}/progress [post]
func (h *ProcessGoalHandler) UpdateProcessGoalProgress(c echo.Context) error {
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

	update, err := h.processGoalService.UpdateProgress(c.Request().Context(), principal, id, model.Progress(req.Progress), req.Notes)
	if err != nil {
		return respondError(c, err)
	}

	mainCompleted := update.MainGoalCompleted
	return c.JSON(http.StatusOK, ProgressUpdateResponse{
		Success:            true,
		Progress:           update.Progress,
		ProgressPercentage: update.ProgressPercentage,
		IsOverdue:          update.IsOverdue,
		MainGoalCompleted:  &mainCompleted,
	})
}
