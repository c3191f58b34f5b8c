package model

import "time"

// Area categorizes what part of the game a goal develops.
type Area string

const (
	AreaPhysical  Area = "physical"
	AreaTechnical Area = "technical"
	AreaTactical  Area = "tactical"
	AreaMental    Area = "mental"
)

// Valid reports whether a is a recognized area.
func (a Area) Valid() bool {
	switch a {
	case AreaPhysical, AreaTechnical, AreaTactical, AreaMental:
		return true
	}
	return false
}

// Timeframe is the planning horizon of a goal.
type Timeframe string

const (
	TimeframeShortTerm  Timeframe = "short_term"
	TimeframeMediumTerm Timeframe = "medium_term"
	TimeframeLongTerm   Timeframe = "long_term"
)

// Valid reports whether t is a recognized timeframe.
func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeShortTerm, TimeframeMediumTerm, TimeframeLongTerm:
		return true
	}
	return false
}

// Goal is a development goal a coach assigns to a player. Deleting the player
// or the assigning coach cascades to the goal.
type Goal struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"size:200;not null"`
	PlayerID    uint       `json:"player_id" gorm:"not null;index"`
	CoachID     uint       `json:"coach_id" gorm:"not null;index"`
	Area        Area       `json:"area" gorm:"type:varchar(20);not null;default:'technical';index"`
	Timeframe   Timeframe  `json:"timeframe" gorm:"type:varchar(20);not null;default:'medium_term';index"`
	Progress    Progress   `json:"progress" gorm:"type:varchar(20);not null;default:'not_started';index"`
	Description string     `json:"description" gorm:"type:text"`
	TargetDate  *time.Time `json:"target_date" gorm:"type:date"`
	Notes       string     `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Player       *Player       `json:"player,omitempty" gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
	Coach        *Coach        `json:"coach,omitempty" gorm:"foreignKey:CoachID;constraint:OnDelete:CASCADE"`
	ProcessGoals []ProcessGoal `json:"process_goals,omitempty" gorm:"foreignKey:MainGoalID"`
}

// ProgressPercentage returns the fixed percentage for the goal's progress.
func (g *Goal) ProgressPercentage() int {
	return g.Progress.Percentage()
}

// IsOverdue reports whether the goal's target date has passed without the
// goal being completed.
func (g *Goal) IsOverdue(today time.Time) bool {
	return overdue(g.TargetDate, g.Progress, today)
}

// CompletionPercentage derives overall completion from process goal counts.
// A goal without process goals falls back to its own progress percentage.
func CompletionPercentage(goal *Goal, total, completed int64) int {
	if total == 0 {
		return goal.ProgressPercentage()
	}
	return int(completed * 100 / total)
}

// ShouldAutoComplete reports whether a goal with process goals has completed
// all of them. Goals without process goals never auto-complete.
func ShouldAutoComplete(total, completed int64) bool {
	return total > 0 && completed == total
}
