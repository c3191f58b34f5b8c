package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"teamgoals/internal/access"
	"teamgoals/internal/errors"
	"teamgoals/internal/model"
	"teamgoals/internal/repository"
)

// PlayerService handles role-scoped player listings and details.
type PlayerService interface {
	List(ctx context.Context, principal *access.Principal, search string, page repository.Page) ([]model.Player, int64, error)
	Get(ctx context.Context, principal *access.Principal, id uint) (*model.Player, error)
}

type playerService struct {
	playerRepo repository.PlayerRepository
}

// NewPlayerService creates a new player service.
func NewPlayerService(playerRepo repository.PlayerRepository) PlayerService {
	return &playerService{playerRepo: playerRepo}
}

// List returns the players visible to the principal.
func (s *playerService) List(ctx context.Context, principal *access.Principal, search string, page repository.Page) ([]model.Player, int64, error) {
	policy := access.ForPrincipal(principal)
	return s.playerRepo.List(ctx, policy.ScopePlayers(), search, page)
}

// Get returns a single player inside the principal's scope. Out-of-scope
// players surface as not found.
func (s *playerService) Get(ctx context.Context, principal *access.Principal, id uint) (*model.Player, error) {
	policy := access.ForPrincipal(principal)
	player, err := s.playerRepo.FindByID(ctx, policy.ScopePlayers(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("find player: %w", err)
	}
	return player, nil
}
