package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"teamgoals/internal/access"
	"teamgoals/internal/errors"
	"teamgoals/internal/model"
)

func adminPrincipal() *access.Principal {
	return &access.Principal{User: &model.User{ID: 1, Role: model.RoleAdmin}}
}

func coachPrincipal(coachID uint) *access.Principal {
	return &access.Principal{
		User:  &model.User{ID: 2, Role: model.RoleCoach},
		Coach: &model.Coach{ID: coachID, UserID: 2},
	}
}

func playerPrincipal(playerID uint) *access.Principal {
	return &access.Principal{
		User:   &model.User{ID: 3, Role: model.RolePlayer},
		Player: &model.Player{ID: playerID, UserID: 3},
	}
}

func TestGoalService_Get(t *testing.T) {
	t.Run("goal inside scope with derived quantities", func(t *testing.T) {
		mockGoals := new(MockGoalRepository)
		mockPlayers := new(MockPlayerRepository)
		goal := &model.Goal{ID: 10, PlayerID: 5, CoachID: 7, Progress: model.ProgressInProgress}
		mockGoals.On("FindByIDScoped", mock.Anything, mock.Anything, uint(10)).Return(goal, nil)
		mockGoals.On("ProcessGoalCounts", mock.Anything, uint(10)).Return(int64(3), int64(1), nil)

		service := NewGoalService(mockGoals, mockPlayers)
		detail, err := service.Get(context.Background(), coachPrincipal(7), 10)

		assert.NoError(t, err)
		assert.Equal(t, 25, detail.ProgressPercentage)
		assert.Equal(t, 33, detail.CompletionPercentage)
		assert.Equal(t, int64(3), detail.ProcessGoalTotal)
		assert.Equal(t, int64(1), detail.ProcessGoalCompleted)
		mockGoals.AssertExpectations(t)
	})

	t.Run("goal outside scope is not found", func(t *testing.T) {
		mockGoals := new(MockGoalRepository)
		mockPlayers := new(MockPlayerRepository)
		mockGoals.On("FindByIDScoped", mock.Anything, mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)

		service := NewGoalService(mockGoals, mockPlayers)
		_, err := service.Get(context.Background(), playerPrincipal(99), 10)

		assert.Equal(t, errors.ErrNotFound, err)
	})
}

func TestGoalService_Create(t *testing.T) {
	t.Run("coach creates goal for own active player", func(t *testing.T) {
		mockGoals := new(MockGoalRepository)
		mockPlayers := new(MockPlayerRepository)
		mockPlayers.On("FindByID", mock.Anything, mock.Anything, uint(5)).Return(&model.Player{ID: 5, IsActive: true}, nil)
		mockGoals.On("Create", mock.Anything, mock.AnythingOfType("*model.Goal")).Return(nil)

		service := NewGoalService(mockGoals, mockPlayers)
		goal, err := service.Create(context.Background(), coachPrincipal(7), CreateGoalInput{
			Name:     "Improve weak-foot finishing",
			PlayerID: 5,
		})

		assert.NoError(t, err)
		assert.Equal(t, uint(7), goal.CoachID)
		assert.Equal(t, model.AreaTechnical, goal.Area)
		assert.Equal(t, model.TimeframeMediumTerm, goal.Timeframe)
		assert.Equal(t, model.ProgressNotStarted, goal.Progress)
		mockGoals.AssertExpectations(t)
	})

	t.Run("admin may not create goals", func(t *testing.T) {
		service := NewGoalService(new(MockGoalRepository), new(MockPlayerRepository))
		_, err := service.Create(context.Background(), adminPrincipal(), CreateGoalInput{Name: "x", PlayerID: 5})

		var perm *errors.PermissionError
		assert.ErrorAs(t, err, &perm)
	})

	t.Run("coach without profile", func(t *testing.T) {
		principal := &access.Principal{User: &model.User{ID: 2, Role: model.RoleCoach}}
		service := NewGoalService(new(MockGoalRepository), new(MockPlayerRepository))
		_, err := service.Create(context.Background(), principal, CreateGoalInput{Name: "x", PlayerID: 5})

		assert.Equal(t, errors.ErrCoachProfileMissing, err)
	})

	t.Run("player outside roster", func(t *testing.T) {
		mockPlayers := new(MockPlayerRepository)
		mockPlayers.On("FindByID", mock.Anything, mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

		service := NewGoalService(new(MockGoalRepository), mockPlayers)
		_, err := service.Create(context.Background(), coachPrincipal(7), CreateGoalInput{Name: "x", PlayerID: 5})

		assert.Equal(t, errors.ErrPlayerNotAssigned, err)
	})

	t.Run("inactive player", func(t *testing.T) {
		mockPlayers := new(MockPlayerRepository)
		mockPlayers.On("FindByID", mock.Anything, mock.Anything, uint(5)).Return(&model.Player{ID: 5, IsActive: false}, nil)

		service := NewGoalService(new(MockGoalRepository), mockPlayers)
		_, err := service.Create(context.Background(), coachPrincipal(7), CreateGoalInput{Name: "x", PlayerID: 5})

		assert.Equal(t, errors.ErrPlayerNotAssigned, err)
	})
}

func TestGoalService_Update_PlayerFieldSubset(t *testing.T) {
	// A player submitting business fields gets them silently ignored; only
	// progress and notes are applied.
	mockGoals := new(MockGoalRepository)
	goal := &model.Goal{ID: 10, Name: "Original", PlayerID: 5, CoachID: 7, Progress: model.ProgressNotStarted}
	mockGoals.On("FindByID", mock.Anything, uint(10)).Return(goal, nil)
	mockGoals.On("Update", mock.Anything, mock.AnythingOfType("*model.Goal")).Return(nil)

	service := NewGoalService(mockGoals, new(MockPlayerRepository))
	updated, err := service.Update(context.Background(), playerPrincipal(5), 10, UpdateGoalInput{
		Name:     "Hijacked",
		Progress: model.ProgressGoodProgress,
		Notes:    "felt strong this week",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Original", updated.Name)
	assert.Equal(t, model.ProgressGoodProgress, updated.Progress)
	assert.Equal(t, "felt strong this week", updated.Notes)
}

func TestGoalService_Update_UnassignedCoachDenied(t *testing.T) {
	// A coach editing a goal assigned by somebody else gets the denial
	// payload with their role, not a not-found.
	mockGoals := new(MockGoalRepository)
	goal := &model.Goal{ID: 10, Name: "Original", PlayerID: 5, CoachID: 7}
	mockGoals.On("FindByID", mock.Anything, uint(10)).Return(goal, nil)

	service := NewGoalService(mockGoals, new(MockPlayerRepository))
	_, err := service.Update(context.Background(), coachPrincipal(8), 10, UpdateGoalInput{Name: "Hijacked"})

	var perm *errors.PermissionError
	if assert.ErrorAs(t, err, &perm) {
		assert.Equal(t, "coach", perm.Role)
		if assert.NotNil(t, perm.GoalPlayerID) {
			assert.Equal(t, uint(5), *perm.GoalPlayerID)
		}
		if assert.NotNil(t, perm.UserProfileID) {
			assert.Equal(t, uint(8), *perm.UserProfileID)
		}
	}
	mockGoals.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGoalService_UpdateProgress(t *testing.T) {
	goal := &model.Goal{ID: 10, PlayerID: 5, CoachID: 7, Progress: model.ProgressNotStarted}

	t.Run("owning player updates progress", func(t *testing.T) {
		mockGoals := new(MockGoalRepository)
		mockGoals.On("FindByID", mock.Anything, uint(10)).Return(goal, nil)
		mockGoals.On("UpdateProgress", mock.Anything, uint(10), model.ProgressExcellentProgress, "").Return(nil)

		service := NewGoalService(mockGoals, new(MockPlayerRepository))
		update, err := service.UpdateProgress(context.Background(), playerPrincipal(5), 10, model.ProgressExcellentProgress, "")

		assert.NoError(t, err)
		assert.Equal(t, model.ProgressExcellentProgress, update.Progress)
		assert.Equal(t, 75, update.ProgressPercentage)
		mockGoals.AssertExpectations(t)
	})

	t.Run("other coach gets denial with diagnostics", func(t *testing.T) {
		mockGoals := new(MockGoalRepository)
		mockGoals.On("FindByID", mock.Anything, uint(10)).Return(goal, nil)

		service := NewGoalService(mockGoals, new(MockPlayerRepository))
		_, err := service.UpdateProgress(context.Background(), coachPrincipal(8), 10, model.ProgressCompleted, "")

		var perm *errors.PermissionError
		if assert.ErrorAs(t, err, &perm) {
			assert.Equal(t, "coach", perm.Role)
			if assert.NotNil(t, perm.GoalPlayerID) {
				assert.Equal(t, uint(5), *perm.GoalPlayerID)
			}
			if assert.NotNil(t, perm.UserProfileID) {
				assert.Equal(t, uint(8), *perm.UserProfileID)
			}
		}
		mockGoals.AssertNotCalled(t, "UpdateProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid progress value leaves the goal untouched", func(t *testing.T) {
		mockGoals := new(MockGoalRepository)
		mockGoals.On("FindByID", mock.Anything, uint(10)).Return(goal, nil)

		service := NewGoalService(mockGoals, new(MockPlayerRepository))
		_, err := service.UpdateProgress(context.Background(), playerPrincipal(5), 10, model.Progress("banana"), "")

		assert.Equal(t, errors.ErrInvalidProgress, err)
		mockGoals.AssertNotCalled(t, "UpdateProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown goal", func(t *testing.T) {
		mockGoals := new(MockGoalRepository)
		mockGoals.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		service := NewGoalService(mockGoals, new(MockPlayerRepository))
		_, err := service.UpdateProgress(context.Background(), adminPrincipal(), 404, model.ProgressCompleted, "")

		assert.Equal(t, errors.ErrNotFound, err)
	})
}
