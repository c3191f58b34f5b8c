package access

import (
	"gorm.io/gorm"

	"teamgoals/internal/model"
)

// Principal is the authenticated actor behind a request: the user row plus
// the role profile, when one exists. A non-admin user without its profile row
// keeps a nil Coach/Player pointer and every scope fails closed.
type Principal struct {
	User   *model.User
	Coach  *model.Coach
	Player *model.Player
}

// Role returns the principal's role.
func (p *Principal) Role() model.Role {
	return p.User.Role
}

// ProfileID returns the ID of the role profile, or nil when it is absent.
func (p *Principal) ProfileID() *uint {
	switch {
	case p.Coach != nil:
		return &p.Coach.ID
	case p.Player != nil:
		return &p.Player.ID
	}
	return nil
}

// FieldSet selects which subset of goal fields an update may touch.
type FieldSet int

const (
	// FullFields covers the business fields: name, player assignment, area,
	// timeframe, description, target date, order and notes.
	FullFields FieldSet = iota
	// ProgressFields covers progress and notes only.
	ProgressFields
)

// Policy decides visibility and mutation rights for one role. One
// implementation exists per role; ForPrincipal picks it by the role tag.
type Policy interface {
	// ScopePlayers narrows a player query to what the principal may see.
	ScopePlayers() func(*gorm.DB) *gorm.DB
	// ScopeGoals narrows a goal query to what the principal may see.
	ScopeGoals() func(*gorm.DB) *gorm.DB

	// CanViewGoal reports whether a single goal is inside the principal's scope.
	CanViewGoal(goal *model.Goal) bool
	// CanListCoaches reports whether the principal may list coach profiles.
	CanListCoaches() bool
	// CanCreateGoals reports whether the principal may create goals and
	// process goals.
	CanCreateGoals() bool
	// CanEditGoal reports whether the principal may change a goal's full
	// business fields.
	CanEditGoal(goal *model.Goal) bool
	// CanUpdateProgress reports whether the principal may change the progress
	// of the goal or of any of its process goals.
	CanUpdateProgress(goal *model.Goal) bool

	// EditableFields is the field-set selector for update forms: coaches and
	// admins edit business fields, players edit progress and notes only.
	EditableFields() FieldSet
}

// ForPrincipal returns the policy matching the principal's role.
func ForPrincipal(p *Principal) Policy {
	switch p.User.Role {
	case model.RoleAdmin:
		return adminPolicy{}
	case model.RoleCoach:
		return coachPolicy{coach: p.Coach}
	default:
		return playerPolicy{player: p.Player}
	}
}

// none is the fail-closed scope used when a role profile is missing.
func none() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("1 = 0")
	}
}

func all() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db
	}
}

type adminPolicy struct{}

func (adminPolicy) ScopePlayers() func(*gorm.DB) *gorm.DB { return all() }
func (adminPolicy) ScopeGoals() func(*gorm.DB) *gorm.DB   { return all() }
func (adminPolicy) CanViewGoal(*model.Goal) bool          { return true }
func (adminPolicy) CanListCoaches() bool                  { return true }
func (adminPolicy) CanCreateGoals() bool                  { return false }
func (adminPolicy) CanEditGoal(*model.Goal) bool          { return true }
func (adminPolicy) CanUpdateProgress(*model.Goal) bool    { return true }
func (adminPolicy) EditableFields() FieldSet              { return FullFields }

type coachPolicy struct {
	coach *model.Coach
}

func (p coachPolicy) ScopePlayers() func(*gorm.DB) *gorm.DB {
	if p.coach == nil {
		return none()
	}
	coachID := p.coach.ID
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("players.coach_id = ?", coachID)
	}
}

func (p coachPolicy) ScopeGoals() func(*gorm.DB) *gorm.DB {
	if p.coach == nil {
		return none()
	}
	coachID := p.coach.ID
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("goals.coach_id = ?", coachID)
	}
}

func (p coachPolicy) CanViewGoal(goal *model.Goal) bool {
	return p.coach != nil && goal.CoachID == p.coach.ID
}

func (p coachPolicy) CanListCoaches() bool { return false }

func (p coachPolicy) CanCreateGoals() bool { return p.coach != nil }

func (p coachPolicy) CanEditGoal(goal *model.Goal) bool {
	return p.CanViewGoal(goal)
}

func (p coachPolicy) CanUpdateProgress(goal *model.Goal) bool {
	return p.CanViewGoal(goal)
}

func (p coachPolicy) EditableFields() FieldSet { return FullFields }

type playerPolicy struct {
	player *model.Player
}

func (p playerPolicy) ScopePlayers() func(*gorm.DB) *gorm.DB {
	if p.player == nil {
		return none()
	}
	playerID := p.player.ID
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("players.id = ?", playerID)
	}
}

func (p playerPolicy) ScopeGoals() func(*gorm.DB) *gorm.DB {
	if p.player == nil {
		return none()
	}
	playerID := p.player.ID
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("goals.player_id = ?", playerID)
	}
}

func (p playerPolicy) CanViewGoal(goal *model.Goal) bool {
	return p.player != nil && goal.PlayerID == p.player.ID
}

func (p playerPolicy) CanListCoaches() bool { return false }

func (p playerPolicy) CanCreateGoals() bool { return false }

func (p playerPolicy) CanEditGoal(*model.Goal) bool { return false }

func (p playerPolicy) CanUpdateProgress(goal *model.Goal) bool {
	return p.CanViewGoal(goal)
}

func (p playerPolicy) EditableFields() FieldSet { return ProgressFields }
