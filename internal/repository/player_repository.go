package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"teamgoals/internal/model"
)

// Scope narrows a query to what a caller is allowed to see.
type Scope func(*gorm.DB) *gorm.DB

// PlayerRepository defines player persistence operations.
type PlayerRepository interface {
	FindByID(ctx context.Context, scope Scope, id uint) (*model.Player, error)
	FindByUserID(ctx context.Context, userID uint) (*model.Player, error)
	List(ctx context.Context, scope Scope, search string, page Page) ([]model.Player, int64, error)
	ListActiveByCoach(ctx context.Context, coachID uint) ([]model.Player, error)
	Recent(ctx context.Context, limit int) ([]model.Player, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new player repository.
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

// FindByID finds a player within the caller's scope. Out-of-scope players
// surface as not found, matching the listing behavior.
func (r *playerRepository) FindByID(ctx context.Context, scope Scope, id uint) (*model.Player, error) {
	var player model.Player
	err := r.db.WithContext(ctx).
		Preload("User").Preload("Coach").Preload("Coach.User").
		Scopes(scope).
		Where("players.id = ?", id).
		First(&player).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// FindByUserID finds the player profile owned by a user.
func (r *playerRepository) FindByUserID(ctx context.Context, userID uint) (*model.Player, error) {
	var player model.Player
	err := r.db.WithContext(ctx).
		Preload("User").Preload("Coach").Preload("Coach.User").
		Where("user_id = ?", userID).
		First(&player).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func playerSearch(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		pattern := "%" + strings.ToLower(search) + "%"
		return db.Where(
			"LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ? OR LOWER(players.position) LIKE ? OR CAST(players.jersey_number AS CHAR) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
}

// List returns a page of players inside the scope, ordered by name, with an
// optional search over names, position and jersey number.
func (r *playerRepository) List(ctx context.Context, scope Scope, search string, page Page) ([]model.Player, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Player{}).
		Joins("JOIN users ON users.id = players.user_id").
		Scopes(scope, playerSearch(search))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var players []model.Player
	err := base.Preload("User").Preload("Coach").Preload("Coach.User").
		Order("users.first_name, users.last_name").
		Scopes(paginate(page)).
		Find(&players).Error
	if err != nil {
		return nil, 0, err
	}
	return players, total, nil
}

// ListActiveByCoach returns the active roster of one coach, unpaginated.
func (r *playerRepository) ListActiveByCoach(ctx context.Context, coachID uint) ([]model.Player, error) {
	var players []model.Player
	err := r.db.WithContext(ctx).Preload("User").
		Where("coach_id = ? AND is_active = ?", coachID, true).
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

// Recent returns the most recently joined players.
func (r *playerRepository) Recent(ctx context.Context, limit int) ([]model.Player, error) {
	var players []model.Player
	err := r.db.WithContext(ctx).
		Preload("User").Preload("Coach").Preload("Coach.User").
		Order("join_date DESC").Limit(limit).
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

// Count returns the total number of players.
func (r *playerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Player{}).Count(&count).Error
	return count, err
}

// CountActive returns the number of active players.
func (r *playerRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Player{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
