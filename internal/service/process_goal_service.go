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

// CreateProcessGoalInput carries the coach-supplied fields of a new process
// goal. The main goal comes from the path, never from the body.
type CreateProcessGoalInput struct {
	Name        string
	Description string
	TargetDate  *time.Time
	Order       uint
	Progress    model.Progress
}

// UpdateProcessGoalInput carries a process goal update, applied per the
// caller's editable field set.
type UpdateProcessGoalInput struct {
	Name        string
	Description string
	TargetDate  *time.Time
	Order       *uint
	Notes       string
	Progress    model.Progress
}

// ProcessGoalService handles process goal operations under the access policy,
// including the auto-completion propagation to the parent goal.
type ProcessGoalService interface {
	ListByGoal(ctx context.Context, principal *access.Principal, goalID uint, page repository.Page) ([]model.ProcessGoal, int64, error)
	Create(ctx context.Context, principal *access.Principal, goalID uint, input CreateProcessGoalInput) (*model.ProcessGoal, error)
	Update(ctx context.Context, principal *access.Principal, id uint, input UpdateProcessGoalInput) (*model.ProcessGoal, error)
	UpdateProgress(ctx context.Context, principal *access.Principal, id uint, progress model.Progress, notes string) (*ProgressUpdate, error)
}

type processGoalService struct {
	processGoalRepo repository.ProcessGoalRepository
	goalRepo        repository.GoalRepository
}

// NewProcessGoalService creates a new process goal service.
func NewProcessGoalService(processGoalRepo repository.ProcessGoalRepository, goalRepo repository.GoalRepository) ProcessGoalService {
	return &processGoalService{
		processGoalRepo: processGoalRepo,
		goalRepo:        goalRepo,
	}
}

// ListByGoal returns a page of a goal's process goals. A goal outside the
// caller's scope yields an empty page, not an error.
func (s *processGoalService) ListByGoal(ctx context.Context, principal *access.Principal, goalID uint, page repository.Page) ([]model.ProcessGoal, int64, error) {
	goal, err := s.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, 0, errors.ErrNotFound
		}
		return nil, 0, fmt.Errorf("find goal: %w", err)
	}

	if !access.ForPrincipal(principal).CanViewGoal(goal) {
		return []model.ProcessGoal{}, 0, nil
	}
	return s.processGoalRepo.ListByGoal(ctx, goalID, page)
}

// Create adds a process goal under one of the caller's own goals. Coach only.
func (s *processGoalService) Create(ctx context.Context, principal *access.Principal, goalID uint, input CreateProcessGoalInput) (*model.ProcessGoal, error) {
	if !principal.User.IsCoach() {
		return nil, errors.Denied(string(principal.Role()))
	}
	if principal.Coach == nil {
		return nil, errors.ErrCoachProfileMissing
	}

	goal, err := s.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("find goal: %w", err)
	}
	if goal.CoachID != principal.Coach.ID {
		return nil, deniedForGoal(principal, goal)
	}

	progress := input.Progress
	if progress == "" {
		progress = model.ProgressNotStarted
	}
	if !progress.Valid() {
		return nil, errors.ErrInvalidProgress
	}

	processGoal := &model.ProcessGoal{
		Name:        input.Name,
		MainGoalID:  goal.ID,
		Progress:    progress,
		Description: input.Description,
		TargetDate:  input.TargetDate,
		Order:       input.Order,
	}
	if err := s.processGoalRepo.Create(ctx, processGoal); err != nil {
		return nil, fmt.Errorf("create process goal: %w", err)
	}
	return processGoal, nil
}

// Update applies the caller's editable field subset to a process goal.
func (s *processGoalService) Update(ctx context.Context, principal *access.Principal, id uint, input UpdateProcessGoalInput) (*model.ProcessGoal, error) {
	processGoal, err := s.processGoalRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("find process goal: %w", err)
	}

	policy := access.ForPrincipal(principal)
	switch policy.EditableFields() {
	case access.FullFields:
		if !policy.CanEditGoal(&processGoal.MainGoal) {
			return nil, deniedForGoal(principal, &processGoal.MainGoal)
		}
		if input.Name != "" {
			processGoal.Name = input.Name
		}
		if input.Description != "" {
			processGoal.Description = input.Description
		}
		if input.TargetDate != nil {
			processGoal.TargetDate = input.TargetDate
		}
		if input.Order != nil {
			processGoal.Order = *input.Order
		}
		if input.Notes != "" {
			processGoal.Notes = input.Notes
		}
		if principal.User.IsAdmin() && input.Progress != "" {
			if !input.Progress.Valid() {
				return nil, errors.ErrInvalidProgress
			}
			processGoal.Progress = input.Progress
		}
	case access.ProgressFields:
		if !policy.CanUpdateProgress(&processGoal.MainGoal) {
			return nil, deniedForGoal(principal, &processGoal.MainGoal)
		}
		if input.Progress != "" {
			if !input.Progress.Valid() {
				return nil, errors.ErrInvalidProgress
			}
			processGoal.Progress = input.Progress
		}
		if input.Notes != "" {
			processGoal.Notes = input.Notes
		}
	}

	if err := s.processGoalRepo.Update(ctx, processGoal); err != nil {
		return nil, fmt.Errorf("update process goal: %w", err)
	}

	if processGoal.Progress == model.ProgressCompleted {
		if _, err := s.autoCompleteParent(ctx, &processGoal.MainGoal); err != nil {
			return nil, err
		}
	}
	return processGoal, nil
}

// UpdateProgress handles the progress-only update used by the asynchronous
// endpoint. After a successful write the parent goal is re-evaluated and
// force-completed when every process goal has completed. The promotion is
// one-way: a later regression never reverts the parent.
func (s *processGoalService) UpdateProgress(ctx context.Context, principal *access.Principal, id uint, progress model.Progress, notes string) (*ProgressUpdate, error) {
	processGoal, err := s.processGoalRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("find process goal: %w", err)
	}

	policy := access.ForPrincipal(principal)
	if !policy.CanUpdateProgress(&processGoal.MainGoal) {
		return nil, deniedForGoal(principal, &processGoal.MainGoal)
	}

	if !progress.Valid() {
		return nil, errors.ErrInvalidProgress
	}

	if err := s.processGoalRepo.UpdateProgress(ctx, processGoal.ID, progress, notes); err != nil {
		return nil, fmt.Errorf("update process goal progress: %w", err)
	}
	processGoal.Progress = progress

	mainCompleted, err := s.autoCompleteParent(ctx, &processGoal.MainGoal)
	if err != nil {
		return nil, err
	}

	return &ProgressUpdate{
		Progress:           progress,
		ProgressPercentage: progress.Percentage(),
		IsOverdue:          processGoal.IsOverdue(time.Now()),
		MainGoalCompleted:  mainCompleted,
	}, nil
}

// autoCompleteParent promotes the parent goal to completed when all of its
// process goals are completed. Returns whether the parent is completed
// afterwards, promoted now or already.
func (s *processGoalService) autoCompleteParent(ctx context.Context, goal *model.Goal) (bool, error) {
	total, completed, err := s.goalRepo.ProcessGoalCounts(ctx, goal.ID)
	if err != nil {
		return false, fmt.Errorf("count process goals: %w", err)
	}
	if model.ShouldAutoComplete(total, completed) && goal.Progress != model.ProgressCompleted {
		if err := s.goalRepo.UpdateProgress(ctx, goal.ID, model.ProgressCompleted, ""); err != nil {
			return false, fmt.Errorf("auto-complete goal: %w", err)
		}
		goal.Progress = model.ProgressCompleted
	}
	return goal.Progress == model.ProgressCompleted, nil
}
