package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"teamgoals/internal/access"
	"teamgoals/internal/cache"
	"teamgoals/internal/errors"
	"teamgoals/internal/model"
	"teamgoals/internal/repository"
)

const (
	adminDashboardCacheKey = "dashboard:admin"
	adminDashboardCacheTTL = 5 * time.Minute
	dashboardRecentLimit   = 5
)

// AdminDashboard is the admin landing view: totals plus recent arrivals.
type AdminDashboard struct {
	TotalUsers    int64          `json:"total_users"`
	TotalCoaches  int64          `json:"total_coaches"`
	TotalPlayers  int64          `json:"total_players"`
	ActivePlayers int64          `json:"active_players"`
	RecentPlayers []model.Player `json:"recent_players"`
	RecentCoaches []model.Coach  `json:"recent_coaches"`
}

// CoachDashboard is the coach landing view: own profile and active roster.
type CoachDashboard struct {
	Coach        *model.Coach   `json:"coach"`
	Players      []model.Player `json:"players"`
	TotalPlayers int            `json:"total_players"`
}

// PlayerDashboard is the player landing view: own profile and assigned coach.
type PlayerDashboard struct {
	Player *model.Player `json:"player"`
	Coach  *model.Coach  `json:"coach,omitempty"`
}

// Dashboard wraps the role-specific view; exactly one field is set.
type Dashboard struct {
	Role   model.Role       `json:"role"`
	Admin  *AdminDashboard  `json:"admin,omitempty"`
	Coach  *CoachDashboard  `json:"coach,omitempty"`
	Player *PlayerDashboard `json:"player,omitempty"`
}

// DashboardService builds role-based dashboards.
type DashboardService interface {
	Get(ctx context.Context, principal *access.Principal) (*Dashboard, error)
}

type dashboardService struct {
	userRepo   repository.UserRepository
	coachRepo  repository.CoachRepository
	playerRepo repository.PlayerRepository
	cache      *cache.Client
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(userRepo repository.UserRepository, coachRepo repository.CoachRepository, playerRepo repository.PlayerRepository, cache *cache.Client) DashboardService {
	return &dashboardService{
		userRepo:   userRepo,
		coachRepo:  coachRepo,
		playerRepo: playerRepo,
		cache:      cache,
	}
}

// Get dispatches on the caller's role. A non-admin user without its profile
// row gets the matching profile-missing error.
func (s *dashboardService) Get(ctx context.Context, principal *access.Principal) (*Dashboard, error) {
	switch {
	case principal.User.IsAdmin():
		admin, err := s.adminDashboard(ctx)
		if err != nil {
			return nil, err
		}
		return &Dashboard{Role: model.RoleAdmin, Admin: admin}, nil
	case principal.User.IsCoach():
		if principal.Coach == nil {
			return nil, errors.ErrCoachProfileMissing
		}
		players, err := s.playerRepo.ListActiveByCoach(ctx, principal.Coach.ID)
		if err != nil {
			return nil, fmt.Errorf("list roster: %w", err)
		}
		return &Dashboard{
			Role: model.RoleCoach,
			Coach: &CoachDashboard{
				Coach:        principal.Coach,
				Players:      players,
				TotalPlayers: len(players),
			},
		}, nil
	default:
		if principal.Player == nil {
			return nil, errors.ErrPlayerProfileMissing
		}
		return &Dashboard{
			Role: model.RolePlayer,
			Player: &PlayerDashboard{
				Player: principal.Player,
				Coach:  principal.Player.Coach,
			},
		}, nil
	}
}

// adminDashboard aggregates the admin stats, served from redis when fresh.
func (s *dashboardService) adminDashboard(ctx context.Context) (*AdminDashboard, error) {
	if data, _ := s.cache.Get(ctx, adminDashboardCacheKey); data != nil {
		var cached AdminDashboard
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	dashboard := &AdminDashboard{}
	var err error
	if dashboard.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if dashboard.TotalCoaches, err = s.coachRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count coaches: %w", err)
	}
	if dashboard.TotalPlayers, err = s.playerRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count players: %w", err)
	}
	if dashboard.ActivePlayers, err = s.playerRepo.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("count active players: %w", err)
	}
	if dashboard.RecentPlayers, err = s.playerRepo.Recent(ctx, dashboardRecentLimit); err != nil {
		return nil, fmt.Errorf("recent players: %w", err)
	}
	if dashboard.RecentCoaches, err = s.coachRepo.Recent(ctx, dashboardRecentLimit); err != nil {
		return nil, fmt.Errorf("recent coaches: %w", err)
	}

	if payload, err := json.Marshal(dashboard); err == nil {
		_ = s.cache.Set(ctx, adminDashboardCacheKey, payload, adminDashboardCacheTTL)
	}
	return dashboard, nil
}
