package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"teamgoals/internal/access"
	"teamgoals/internal/errors"
	"teamgoals/internal/model"
	"teamgoals/internal/repository"
)

const bcryptCost = 10

// CreateUserInput carries an admin-created user plus its role profile fields.
// Coach fields apply when role is coach, player fields when role is player.
type CreateUserInput struct {
	Username    string
	Password    string
	Role        model.Role
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
	DateOfBirth *time.Time

	// Coach profile
	Specialization  string
	ExperienceYears uint
	Bio             string

	// Player profile
	CoachID      *uint
	Position     string
	JerseyNumber *uint
	HeightCm     *decimal.Decimal
	WeightKg     *decimal.Decimal
}

// Profile is what the profile endpoint returns: the user plus the role
// profile when one exists.
type Profile struct {
	Role   model.Role    `json:"role"`
	User   *model.User   `json:"user"`
	Coach  *model.Coach  `json:"coach,omitempty"`
	Player *model.Player `json:"player,omitempty"`
}

// UserService handles user administration and profile lookups.
type UserService interface {
	Create(ctx context.Context, principal *access.Principal, input CreateUserInput) (*model.User, error)
	Profile(ctx context.Context, principal *access.Principal) (*Profile, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Create creates a user together with its role profile. Admin only. Hire and
// join dates are stamped here, once, and never touched by later updates.
func (s *userService) Create(ctx context.Context, principal *access.Principal, input CreateUserInput) (*model.User, error) {
	if !principal.User.IsAdmin() {
		return nil, errors.Denied(string(principal.Role()))
	}
	if !input.Role.Valid() {
		return nil, errors.NewHTTPError(400, "invalid role value", "INVALID_ROLE")
	}

	if existing, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil && existing != nil {
		return nil, errors.ErrUsernameTaken
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         input.Role,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  input.PhoneNumber,
		DateOfBirth:  input.DateOfBirth,
	}

	today := time.Now()
	var coach *model.Coach
	var player *model.Player
	switch input.Role {
	case model.RoleCoach:
		coach = &model.Coach{
			Specialization:  input.Specialization,
			ExperienceYears: input.ExperienceYears,
			Bio:             input.Bio,
			HireDate:        today,
		}
	case model.RolePlayer:
		player = &model.Player{
			CoachID:      input.CoachID,
			Position:     input.Position,
			JerseyNumber: input.JerseyNumber,
			HeightCm:     input.HeightCm,
			WeightKg:     input.WeightKg,
			JoinDate:     today,
			IsActive:     true,
		}
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, coach, player); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			// Username was checked above; the remaining unique index is the
			// jersey number.
			return nil, errors.ErrJerseyNumberTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Profile returns the role-appropriate profile of the caller. A non-admin
// user without its profile row gets the matching profile-missing error, which
// the handlers surface as a recoverable notice.
func (s *userService) Profile(ctx context.Context, principal *access.Principal) (*Profile, error) {
	profile := &Profile{Role: principal.Role(), User: principal.User}
	switch {
	case principal.User.IsCoach():
		if principal.Coach == nil {
			return nil, errors.ErrCoachProfileMissing
		}
		profile.Coach = principal.Coach
	case principal.User.IsPlayer():
		if principal.Player == nil {
			return nil, errors.ErrPlayerProfileMissing
		}
		profile.Player = principal.Player
	}
	return profile, nil
}
