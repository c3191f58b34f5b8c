package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"teamgoals/internal/model"
)

func adminPrincipal() *Principal {
	return &Principal{User: &model.User{ID: 1, Role: model.RoleAdmin}}
}

func coachPrincipal(coachID uint) *Principal {
	return &Principal{
		User:  &model.User{ID: 2, Role: model.RoleCoach},
		Coach: &model.Coach{ID: coachID, UserID: 2},
	}
}

func playerPrincipal(playerID uint) *Principal {
	return &Principal{
		User:   &model.User{ID: 3, Role: model.RolePlayer},
		Player: &model.Player{ID: playerID, UserID: 3},
	}
}

func TestForPrincipal_Permissions(t *testing.T) {
	goal := &model.Goal{ID: 10, PlayerID: 5, CoachID: 7}

	tests := []struct {
		name              string
		principal         *Principal
		canView           bool
		canListCoaches    bool
		canCreateGoals    bool
		canEdit           bool
		canUpdateProgress bool
		fields            FieldSet
	}{
		{
			name:              "admin sees and edits everything but never creates",
			principal:         adminPrincipal(),
			canView:           true,
			canListCoaches:    true,
			canCreateGoals:    false,
			canEdit:           true,
			canUpdateProgress: true,
			fields:            FullFields,
		},
		{
			name:              "assigning coach owns the goal",
			principal:         coachPrincipal(7),
			canView:           true,
			canCreateGoals:    true,
			canEdit:           true,
			canUpdateProgress: true,
			fields:            FullFields,
		},
		{
			name:      "another coach is shut out",
			principal: coachPrincipal(8),
			// a stranger coach may still create goals, just not touch this one
			canCreateGoals: true,
			fields:         FullFields,
		},
		{
			name:              "owning player updates progress only",
			principal:         playerPrincipal(5),
			canView:           true,
			canUpdateProgress: true,
			fields:            ProgressFields,
		},
		{
			name:      "another player is shut out",
			principal: playerPrincipal(6),
			fields:    ProgressFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := ForPrincipal(tt.principal)
			assert.Equal(t, tt.canView, policy.CanViewGoal(goal))
			assert.Equal(t, tt.canListCoaches, policy.CanListCoaches())
			assert.Equal(t, tt.canCreateGoals, policy.CanCreateGoals())
			assert.Equal(t, tt.canEdit, policy.CanEditGoal(goal))
			assert.Equal(t, tt.canUpdateProgress, policy.CanUpdateProgress(goal))
			assert.Equal(t, tt.fields, policy.EditableFields())
		})
	}
}

func TestForPrincipal_MissingProfileFailsClosed(t *testing.T) {
	goal := &model.Goal{ID: 10, PlayerID: 5, CoachID: 7}

	t.Run("coach without profile", func(t *testing.T) {
		policy := ForPrincipal(&Principal{User: &model.User{ID: 2, Role: model.RoleCoach}})
		assert.False(t, policy.CanViewGoal(goal))
		assert.False(t, policy.CanCreateGoals())
		assert.False(t, policy.CanEditGoal(goal))
		assert.False(t, policy.CanUpdateProgress(goal))
	})

	t.Run("player without profile", func(t *testing.T) {
		policy := ForPrincipal(&Principal{User: &model.User{ID: 3, Role: model.RolePlayer}})
		assert.False(t, policy.CanViewGoal(goal))
		assert.False(t, policy.CanUpdateProgress(goal))
	})
}

func TestPrincipal_ProfileID(t *testing.T) {
	assert.Nil(t, adminPrincipal().ProfileID())

	coach := coachPrincipal(7)
	if assert.NotNil(t, coach.ProfileID()) {
		assert.Equal(t, uint(7), *coach.ProfileID())
	}

	player := playerPrincipal(5)
	if assert.NotNil(t, player.ProfileID()) {
		assert.Equal(t, uint(5), *player.ProfileID())
	}
}
