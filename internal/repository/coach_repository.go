package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"teamgoals/internal/model"
)

// CoachRepository defines coach persistence operations.
type CoachRepository interface {
	FindByUserID(ctx context.Context, userID uint) (*model.Coach, error)
	List(ctx context.Context, search string, page Page) ([]model.Coach, int64, error)
	Recent(ctx context.Context, limit int) ([]model.Coach, error)
	Count(ctx context.Context) (int64, error)
}

type coachRepository struct {
	db *gorm.DB
}

// NewCoachRepository creates a new coach repository.
func NewCoachRepository(db *gorm.DB) CoachRepository {
	return &coachRepository{db: db}
}

// FindByUserID finds the coach profile owned by a user.
func (r *coachRepository) FindByUserID(ctx context.Context, userID uint) (*model.Coach, error) {
	var coach model.Coach
	if err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&coach).Error; err != nil {
		return nil, err
	}
	return &coach, nil
}

func coachSearch(search string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		pattern := "%" + strings.ToLower(search) + "%"
		return db.Where(
			"LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(coaches.specialization) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
}

// List returns a page of coaches ordered by first name, with an optional
// case-insensitive search over names, email and specialization.
func (r *coachRepository) List(ctx context.Context, search string, page Page) ([]model.Coach, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Coach{}).
		Joins("JOIN users ON users.id = coaches.user_id").
		Scopes(coachSearch(search))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var coaches []model.Coach
	err := base.Preload("User").
		Order("users.first_name, users.last_name").
		Scopes(paginate(page)).
		Find(&coaches).Error
	if err != nil {
		return nil, 0, err
	}
	return coaches, total, nil
}

// Recent returns the most recently hired coaches.
func (r *coachRepository) Recent(ctx context.Context, limit int) ([]model.Coach, error) {
	var coaches []model.Coach
	err := r.db.WithContext(ctx).Preload("User").
		Order("hire_date DESC").Limit(limit).
		Find(&coaches).Error
	if err != nil {
		return nil, err
	}
	return coaches, nil
}

// Count returns the total number of coaches.
func (r *coachRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Coach{}).Count(&count).Error
	return count, err
}
