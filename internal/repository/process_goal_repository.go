package repository

import (
	"context"

	"gorm.io/gorm"

	"teamgoals/internal/model"
)

// ProcessGoalRepository defines process goal persistence operations.
type ProcessGoalRepository interface {
	Create(ctx context.Context, processGoal *model.ProcessGoal) error
	Update(ctx context.Context, processGoal *model.ProcessGoal) error
	FindByID(ctx context.Context, id uint) (*model.ProcessGoal, error)
	ListByGoal(ctx context.Context, goalID uint, page Page) ([]model.ProcessGoal, int64, error)
	UpdateProgress(ctx context.Context, id uint, progress model.Progress, notes string) error
}

type processGoalRepository struct {
	db *gorm.DB
}

// NewProcessGoalRepository creates a new process goal repository.
func NewProcessGoalRepository(db *gorm.DB) ProcessGoalRepository {
	return &processGoalRepository{db: db}
}

// Create creates a new process goal.
func (r *processGoalRepository) Create(ctx context.Context, processGoal *model.ProcessGoal) error {
	return r.db.WithContext(ctx).Create(processGoal).Error
}

// Update saves a process goal row.
func (r *processGoalRepository) Update(ctx context.Context, processGoal *model.ProcessGoal) error {
	return r.db.WithContext(ctx).Save(processGoal).Error
}

// FindByID finds a process goal with its main goal preloaded, so ownership
// can be decided from the parent.
func (r *processGoalRepository) FindByID(ctx context.Context, id uint) (*model.ProcessGoal, error) {
	var processGoal model.ProcessGoal
	err := r.db.WithContext(ctx).
		Preload("MainGoal").
		Preload("MainGoal.Player").Preload("MainGoal.Player.User").
		Preload("MainGoal.Coach").Preload("MainGoal.Coach.User").
		Where("id = ?", id).
		First(&processGoal).Error
	if err != nil {
		return nil, err
	}
	return &processGoal, nil
}

// ListByGoal returns a page of a goal's process goals ordered by their
// explicit order, then creation time.
func (r *processGoalRepository) ListByGoal(ctx context.Context, goalID uint, page Page) ([]model.ProcessGoal, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.ProcessGoal{}).
		Where("main_goal_id = ?", goalID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var processGoals []model.ProcessGoal
	err := base.
		Order("sort_order, created_at").
		Scopes(paginate(page)).
		Find(&processGoals).Error
	if err != nil {
		return nil, 0, err
	}
	return processGoals, total, nil
}

// UpdateProgress writes the progress and, when non-empty, the notes of a
// process goal.
func (r *processGoalRepository) UpdateProgress(ctx context.Context, id uint, progress model.Progress, notes string) error {
	updates := map[string]interface{}{"progress": progress}
	if notes != "" {
		updates["notes"] = notes
	}
	return r.db.WithContext(ctx).Model(&model.ProcessGoal{}).Where("id = ?", id).Updates(updates).Error
}
