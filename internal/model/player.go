package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Player is the player profile owned by a user with the player role. A player
// may be assigned to a coach; deleting the coach detaches the player instead
// of deleting it.
type Player struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	UserID       uint             `json:"user_id" gorm:"uniqueIndex;not null"`
	CoachID      *uint            `json:"coach_id" gorm:"index"`
	Position     string           `json:"position" gorm:"size:50"`
	JerseyNumber *uint            `json:"jersey_number" gorm:"uniqueIndex"`
	HeightCm     *decimal.Decimal `json:"height_cm" gorm:"type:decimal(5,2)"`
	WeightKg     *decimal.Decimal `json:"weight_kg" gorm:"type:decimal(5,2)"`
	// JoinDate is set once at creation and never updated afterwards.
	JoinDate  time.Time `json:"join_date" gorm:"type:date;not null;<-:create"`
	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User  User   `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Coach *Coach `json:"coach,omitempty" gorm:"foreignKey:CoachID;constraint:OnDelete:SET NULL"`
}

// Age returns the player's age in whole years, or nil when the date of birth
// is unknown.
func (p *Player) Age(today time.Time) *int {
	if p.User.DateOfBirth == nil {
		return nil
	}
	dob := *p.User.DateOfBirth
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return &age
}
