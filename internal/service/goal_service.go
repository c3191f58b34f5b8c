package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"teamgoals/internal/access"
	"teamgoals/internal/errors"
	"teamgoals/internal/model"
	"teamgoals/internal/repository"
)

// CreateGoalInput carries the coach-supplied fields of a new goal. The
// assigning coach is always taken from the caller, never from the input.
type CreateGoalInput struct {
	Name        string
	PlayerID    uint
	Area        model.Area
	Timeframe   model.Timeframe
	Description string
	TargetDate  *time.Time
}

// UpdateGoalInput carries a goal update. Which fields are applied depends on
// the caller's editable field set.
type UpdateGoalInput struct {
	Name        string
	PlayerID    uint
	Area        model.Area
	Timeframe   model.Timeframe
	Description string
	TargetDate  *time.Time
	Notes       string
	Progress    model.Progress
}

// GoalDetail is a goal plus its derived quantities.
type GoalDetail struct {
	Goal                 *model.Goal `json:"goal"`
	ProgressPercentage   int         `json:"progress_percentage"`
	CompletionPercentage int         `json:"completion_percentage"`
	IsOverdue            bool        `json:"is_overdue"`
	ProcessGoalTotal     int64       `json:"process_goal_total"`
	ProcessGoalCompleted int64       `json:"process_goal_completed"`
}

// ProgressUpdate is the outcome of a progress-only update.
type ProgressUpdate struct {
	Progress           model.Progress `json:"progress"`
	ProgressPercentage int            `json:"progress_percentage"`
	IsOverdue          bool           `json:"is_overdue"`
	MainGoalCompleted  bool           `json:"main_goal_completed,omitempty"`
}

// GoalService handles goal operations under the access policy.
type GoalService interface {
	List(ctx context.Context, principal *access.Principal, filter repository.GoalFilter, page repository.Page) ([]model.Goal, int64, error)
	Get(ctx context.Context, principal *access.Principal, id uint) (*GoalDetail, error)
	Create(ctx context.Context, principal *access.Principal, input CreateGoalInput) (*model.Goal, error)
	Update(ctx context.Context, principal *access.Principal, id uint, input UpdateGoalInput) (*model.Goal, error)
	UpdateProgress(ctx context.Context, principal *access.Principal, id uint, progress model.Progress, notes string) (*ProgressUpdate, error)
}

type goalService struct {
	goalRepo   repository.GoalRepository
	playerRepo repository.PlayerRepository
}

// NewGoalService creates a new goal service.
func NewGoalService(goalRepo repository.GoalRepository, playerRepo repository.PlayerRepository) GoalService {
	return &goalService{
		goalRepo:   goalRepo,
		playerRepo: playerRepo,
	}
}

// List returns the goals visible to the principal, filtered and paginated.
func (s *goalService) List(ctx context.Context, principal *access.Principal, filter repository.GoalFilter, page repository.Page) ([]model.Goal, int64, error) {
	policy := access.ForPrincipal(principal)
	return s.goalRepo.List(ctx, policy.ScopeGoals(), filter, page)
}

// Get returns a goal inside the principal's scope with derived quantities.
// Out-of-scope goals surface as not found, like in listings.
func (s *goalService) Get(ctx context.Context, principal *access.Principal, id uint) (*GoalDetail, error) {
	policy := access.ForPrincipal(principal)
	goal, err := s.goalRepo.FindByIDScoped(ctx, policy.ScopeGoals(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("find goal: %w", err)
	}

	total, completed, err := s.goalRepo.ProcessGoalCounts(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("count process goals: %w", err)
	}

	return &GoalDetail{
		Goal:                 goal,
		ProgressPercentage:   goal.ProgressPercentage(),
		CompletionPercentage: model.CompletionPercentage(goal, total, completed),
		IsOverdue:            goal.IsOverdue(time.Now()),
		ProcessGoalTotal:     total,
		ProcessGoalCompleted: completed,
	}, nil
}

// Create creates a goal for one of the caller's active players. Coach only;
// the assigning coach comes from the caller's profile.
func (s *goalService) Create(ctx context.Context, principal *access.Principal, input CreateGoalInput) (*model.Goal, error) {
	if !principal.User.IsCoach() {
		return nil, errors.Denied(string(principal.Role()))
	}
	if principal.Coach == nil {
		return nil, errors.ErrCoachProfileMissing
	}

	player, err := s.playerRepo.FindByID(ctx, access.ForPrincipal(principal).ScopePlayers(), input.PlayerID)
	if err != nil || !player.IsActive {
		return nil, errors.ErrPlayerNotAssigned
	}

	goal := &model.Goal{
		Name:        input.Name,
		PlayerID:    player.ID,
		CoachID:     principal.Coach.ID,
		Area:        input.Area,
		Timeframe:   input.Timeframe,
		Progress:    model.ProgressNotStarted,
		Description: input.Description,
		TargetDate:  input.TargetDate,
	}
	if goal.Area == "" {
		goal.Area = model.AreaTechnical
	}
	if goal.Timeframe == "" {
		goal.Timeframe = model.TimeframeMediumTerm
	}
	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return goal, nil
}

// Update applies the caller's editable field subset to a goal. Coaches and
// admins edit the business fields; players edit progress and notes only.
// Fields outside the subset are ignored even when submitted.
func (s *goalService) Update(ctx context.Context, principal *access.Principal, id uint, input UpdateGoalInput) (*model.Goal, error) {
	policy := access.ForPrincipal(principal)
	goal, err := s.goalRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("find goal: %w", err)
	}

	switch policy.EditableFields() {
	case access.FullFields:
		if !policy.CanEditGoal(goal) {
			return nil, deniedForGoal(principal, goal)
		}
		if input.Name != "" {
			goal.Name = input.Name
		}
		if input.PlayerID != 0 && input.PlayerID != goal.PlayerID {
			player, err := s.playerRepo.FindByID(ctx, policy.ScopePlayers(), input.PlayerID)
			if err != nil || !player.IsActive {
				return nil, errors.ErrPlayerNotAssigned
			}
			goal.PlayerID = player.ID
		}
		if input.Area != "" {
			if !input.Area.Valid() {
				return nil, errors.NewHTTPError(400, "invalid area value", "INVALID_AREA")
			}
			goal.Area = input.Area
		}
		if input.Timeframe != "" {
			if !input.Timeframe.Valid() {
				return nil, errors.NewHTTPError(400, "invalid timeframe value", "INVALID_TIMEFRAME")
			}
			goal.Timeframe = input.Timeframe
		}
		if input.Description != "" {
			goal.Description = input.Description
		}
		if input.TargetDate != nil {
			goal.TargetDate = input.TargetDate
		}
		if input.Notes != "" {
			goal.Notes = input.Notes
		}
		// Admins may also set progress through the full form.
		if principal.User.IsAdmin() && input.Progress != "" {
			if !input.Progress.Valid() {
				return nil, errors.ErrInvalidProgress
			}
			goal.Progress = input.Progress
		}
	case access.ProgressFields:
		if !policy.CanUpdateProgress(goal) {
			return nil, deniedForGoal(principal, goal)
		}
		if input.Progress != "" {
			if !input.Progress.Valid() {
				return nil, errors.ErrInvalidProgress
			}
			goal.Progress = input.Progress
		}
		if input.Notes != "" {
			goal.Notes = input.Notes
		}
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return goal, nil
}

// UpdateProgress handles the progress-only update used by the asynchronous
// endpoint. Allowed for admins, the assigning coach and the owning player.
func (s *goalService) UpdateProgress(ctx context.Context, principal *access.Principal, id uint, progress model.Progress, notes string) (*ProgressUpdate, error) {
	goal, err := s.goalRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("find goal: %w", err)
	}

	policy := access.ForPrincipal(principal)
	if !policy.CanUpdateProgress(goal) {
		return nil, deniedForGoal(principal, goal)
	}

	if !progress.Valid() {
		return nil, errors.ErrInvalidProgress
	}

	if err := s.goalRepo.UpdateProgress(ctx, goal.ID, progress, notes); err != nil {
		return nil, fmt.Errorf("update goal progress: %w", err)
	}
	goal.Progress = progress

	return &ProgressUpdate{
		Progress:           progress,
		ProgressPercentage: progress.Percentage(),
		IsOverdue:          goal.IsOverdue(time.Now()),
	}, nil
}

// deniedForGoal builds the 403 payload with the diagnostics the clients log:
// the caller's role, the goal's player and the caller's own profile ID.
func deniedForGoal(principal *access.Principal, goal *model.Goal) *errors.PermissionError {
	perm := errors.Denied(string(principal.Role()))
	switch {
	case principal.User.IsCoach() && principal.Coach == nil:
		perm.Reason = errors.ErrCoachProfileMissing.Error()
	case principal.User.IsPlayer() && principal.Player == nil:
		perm.Reason = errors.ErrPlayerProfileMissing.Error()
	}
	playerID := goal.PlayerID
	perm.GoalPlayerID = &playerID
	perm.UserProfileID = principal.ProfileID()
	return perm
}
