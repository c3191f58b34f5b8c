package model

import "time"

// Coach is the coach profile owned by a user with the coach role.
type Coach struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Specialization  string    `json:"specialization" gorm:"size:100"`
	ExperienceYears uint      `json:"experience_years" gorm:"default:0"`
	Bio             string    `json:"bio" gorm:"type:text"`
	// HireDate is set once at creation and never updated afterwards.
	HireDate  time.Time `json:"hire_date" gorm:"type:date;not null;<-:create"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User    User     `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Players []Player `json:"players,omitempty" gorm:"foreignKey:CoachID"`
}
