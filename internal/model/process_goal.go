package model

import "time"

// ProcessGoal is an ordered sub-goal under a main goal. Deleting the main
// goal cascades to its process goals.
type ProcessGoal struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"size:200;not null"`
	MainGoalID  uint       `json:"main_goal_id" gorm:"not null;index"`
	Progress    Progress   `json:"progress" gorm:"type:varchar(20);not null;default:'not_started';index"`
	Description string     `json:"description" gorm:"type:text"`
	TargetDate  *time.Time `json:"target_date" gorm:"type:date"`
	Order       uint       `json:"order" gorm:"column:sort_order;default:0"`
	Notes       string     `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	MainGoal Goal `json:"-" gorm:"foreignKey:MainGoalID;constraint:OnDelete:CASCADE"`
}

// ProgressPercentage returns the fixed percentage for the process goal's
// progress.
func (p *ProcessGoal) ProgressPercentage() int {
	return p.Progress.Percentage()
}

// IsOverdue reports whether the process goal's target date has passed without
// it being completed.
func (p *ProcessGoal) IsOverdue(today time.Time) bool {
	return overdue(p.TargetDate, p.Progress, today)
}
