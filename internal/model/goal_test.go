package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Percentage(t *testing.T) {
	tests := []struct {
		progress Progress
		expected int
	}{
		{ProgressNotStarted, 0},
		{ProgressInProgress, 25},
		{ProgressGoodProgress, 50},
		{ProgressExcellentProgress, 75},
		{ProgressCompleted, 100},
		{Progress("banana"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.progress), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.progress.Percentage())
		})
	}
}

func TestProgress_Valid(t *testing.T) {
	assert.True(t, ProgressNotStarted.Valid())
	assert.True(t, ProgressCompleted.Valid())
	assert.False(t, Progress("").Valid())
	assert.False(t, Progress("done").Valid())
}

func TestGoal_IsOverdue(t *testing.T) {
	today := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)
	yesterday := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		targetDate *time.Time
		progress   Progress
		expected   bool
	}{
		{"past target still open", &yesterday, ProgressInProgress, true},
		{"past target completed", &yesterday, ProgressCompleted, false},
		{"future target", &tomorrow, ProgressInProgress, false},
		{"no target date", nil, ProgressNotStarted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := &Goal{TargetDate: tt.targetDate, Progress: tt.progress}
			assert.Equal(t, tt.expected, goal.IsOverdue(today))
		})
	}
}

func TestGoal_IsOverdue_TargetToday(t *testing.T) {
	// A target of today is not overdue until the day has passed.
	today := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	target := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	goal := &Goal{TargetDate: &target, Progress: ProgressInProgress}
	assert.False(t, goal.IsOverdue(today))
}

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		name      string
		progress  Progress
		total     int64
		completed int64
		expected  int
	}{
		{"no process goals falls back to own progress", ProgressGoodProgress, 0, 0, 50},
		{"no process goals not started", ProgressNotStarted, 0, 0, 0},
		{"partial completion rounds down", ProgressNotStarted, 3, 1, 33},
		{"two of three", ProgressNotStarted, 3, 2, 66},
		{"all completed", ProgressInProgress, 4, 4, 100},
		{"none completed", ProgressInProgress, 4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := &Goal{Progress: tt.progress}
			assert.Equal(t, tt.expected, CompletionPercentage(goal, tt.total, tt.completed))
		})
	}
}

func TestShouldAutoComplete(t *testing.T) {
	assert.False(t, ShouldAutoComplete(0, 0))
	assert.False(t, ShouldAutoComplete(3, 2))
	assert.True(t, ShouldAutoComplete(3, 3))
	assert.True(t, ShouldAutoComplete(1, 1))
}

func TestGoal_JSONOmitsUnloadedRelations(t *testing.T) {
	goal := &Goal{ID: 10, Name: "Improve first touch", PlayerID: 5, CoachID: 7}

	data, err := json.Marshal(goal)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), `"player":`)
	assert.NotContains(t, string(data), `"coach":`)
	assert.NotContains(t, string(data), `"process_goals":`)
}

func TestPlayer_Age(t *testing.T) {
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	t.Run("unknown date of birth", func(t *testing.T) {
		player := &Player{}
		assert.Nil(t, player.Age(today))
	})

	t.Run("birthday already passed this year", func(t *testing.T) {
		dob := time.Date(2006, 3, 21, 0, 0, 0, 0, time.UTC)
		player := &Player{User: User{DateOfBirth: &dob}}
		age := player.Age(today)
		assert.NotNil(t, age)
		assert.Equal(t, 20, *age)
	})

	t.Run("birthday still ahead this year", func(t *testing.T) {
		dob := time.Date(2006, 11, 2, 0, 0, 0, 0, time.UTC)
		player := &Player{User: User{DateOfBirth: &dob}}
		age := player.Age(today)
		assert.NotNil(t, age)
		assert.Equal(t, 19, *age)
	})
}
