package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"teamgoals/internal/access"
	"teamgoals/internal/repository"
)

// PrincipalService resolves JWT claims into a Principal with the role profile
// attached. A missing profile is not an error here; scoping fails closed and
// the endpoints that require a profile report it themselves.
type PrincipalService interface {
	Load(ctx context.Context, userID uint) (*access.Principal, error)
}

type principalService struct {
	userRepo   repository.UserRepository
	coachRepo  repository.CoachRepository
	playerRepo repository.PlayerRepository
}

// NewPrincipalService creates a new principal service.
func NewPrincipalService(userRepo repository.UserRepository, coachRepo repository.CoachRepository, playerRepo repository.PlayerRepository) PrincipalService {
	return &principalService{
		userRepo:   userRepo,
		coachRepo:  coachRepo,
		playerRepo: playerRepo,
	}
}

// Load fetches the user row and its role profile, when one exists.
func (s *principalService) Load(ctx context.Context, userID uint) (*access.Principal, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}

	principal := &access.Principal{User: user}
	switch {
	case user.IsCoach():
		coach, err := s.coachRepo.FindByUserID(ctx, user.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("load coach profile: %w", err)
		}
		principal.Coach = coach
	case user.IsPlayer():
		player, err := s.playerRepo.FindByUserID(ctx, user.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("load player profile: %w", err)
		}
		principal.Player = player
	}
	return principal, nil
}
