package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"teamgoals/internal/model"
)

// GoalFilter holds the optional goal listing filters. All set filters compose
// with AND; Search matches case-insensitively.
type GoalFilter struct {
	Search    string
	Area      model.Area
	Progress  model.Progress
	Timeframe model.Timeframe
}

func (f GoalFilter) scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Search != "" {
			pattern := "%" + strings.ToLower(f.Search) + "%"
			db = db.Where(
				"LOWER(goals.name) LIKE ? OR LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ? OR LOWER(goals.area) LIKE ?",
				pattern, pattern, pattern, pattern,
			)
		}
		if f.Area != "" {
			db = db.Where("goals.area = ?", f.Area)
		}
		if f.Progress != "" {
			db = db.Where("goals.progress = ?", f.Progress)
		}
		if f.Timeframe != "" {
			db = db.Where("goals.timeframe = ?", f.Timeframe)
		}
		return db
	}
}

// GoalRepository defines goal persistence operations.
type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	Update(ctx context.Context, goal *model.Goal) error
	FindByID(ctx context.Context, id uint) (*model.Goal, error)
	FindByIDScoped(ctx context.Context, scope Scope, id uint) (*model.Goal, error)
	List(ctx context.Context, scope Scope, filter GoalFilter, page Page) ([]model.Goal, int64, error)
	UpdateProgress(ctx context.Context, id uint, progress model.Progress, notes string) error
	ProcessGoalCounts(ctx context.Context, goalID uint) (total, completed int64, err error)
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository.
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

// Create creates a new goal.
func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

// Update saves a goal row.
func (r *goalRepository) Update(ctx context.Context, goal *model.Goal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

// FindByID finds a goal regardless of scope. Callers that need a permission
// decision rather than a not-found use this and check the policy themselves.
func (r *goalRepository) FindByID(ctx context.Context, id uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.db.WithContext(ctx).
		Preload("Player").Preload("Player.User").
		Preload("Coach").Preload("Coach.User").
		Where("id = ?", id).
		First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// FindByIDScoped finds a goal within the caller's scope; out-of-scope goals
// surface as not found.
func (r *goalRepository) FindByIDScoped(ctx context.Context, scope Scope, id uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.db.WithContext(ctx).
		Preload("Player").Preload("Player.User").
		Preload("Coach").Preload("Coach.User").
		Scopes(scope).
		Where("goals.id = ?", id).
		First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// List returns a page of goals inside the scope, newest first.
func (r *goalRepository) List(ctx context.Context, scope Scope, filter GoalFilter, page Page) ([]model.Goal, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Goal{}).
		Joins("JOIN players ON players.id = goals.player_id").
		Joins("JOIN users ON users.id = players.user_id").
		Scopes(scope, filter.scope())

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var goals []model.Goal
	err := base.
		Preload("Player").Preload("Player.User").
		Preload("Coach").Preload("Coach.User").
		Order("goals.created_at DESC").
		Scopes(paginate(page)).
		Find(&goals).Error
	if err != nil {
		return nil, 0, err
	}
	return goals, total, nil
}

// UpdateProgress writes the progress and, when non-empty, the notes of a goal.
func (r *goalRepository) UpdateProgress(ctx context.Context, id uint, progress model.Progress, notes string) error {
	updates := map[string]interface{}{"progress": progress}
	if notes != "" {
		updates["notes"] = notes
	}
	return r.db.WithContext(ctx).Model(&model.Goal{}).Where("id = ?", id).Updates(updates).Error
}

// ProcessGoalCounts returns the total and completed process goal counts of a goal.
func (r *goalRepository) ProcessGoalCounts(ctx context.Context, goalID uint) (int64, int64, error) {
	var total, completed int64
	if err := r.db.WithContext(ctx).Model(&model.ProcessGoal{}).
		Where("main_goal_id = ?", goalID).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&model.ProcessGoal{}).
		Where("main_goal_id = ? AND progress = ?", goalID, model.ProgressCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}
