package service

import (
	"context"

	"teamgoals/internal/access"
	"teamgoals/internal/errors"
	"teamgoals/internal/model"
	"teamgoals/internal/repository"
)

// CoachService handles coach listing for the back office.
type CoachService interface {
	List(ctx context.Context, principal *access.Principal, search string, page repository.Page) ([]model.Coach, int64, error)
}

type coachService struct {
	coachRepo repository.CoachRepository
}

// NewCoachService creates a new coach service.
func NewCoachService(coachRepo repository.CoachRepository) CoachService {
	return &coachService{coachRepo: coachRepo}
}

// List returns a page of coaches. Admin only.
func (s *coachService) List(ctx context.Context, principal *access.Principal, search string, page repository.Page) ([]model.Coach, int64, error) {
	if !access.ForPrincipal(principal).CanListCoaches() {
		return nil, 0, errors.Denied(string(principal.Role()))
	}
	return s.coachRepo.List(ctx, search, page)
}
