package repository

import (
	"context"

	"gorm.io/gorm"

	"teamgoals/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	CreateWithProfile(ctx context.Context, user *model.User, coach *model.Coach, player *model.Player) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithProfile creates a user and its role profile in one transaction.
// Exactly one of coach/player may be non-nil; both nil creates a bare user.
func (r *userRepository) CreateWithProfile(ctx context.Context, user *model.User, coach *model.Coach, player *model.Player) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if coach != nil {
			coach.UserID = user.ID
			if err := tx.Create(coach).Error; err != nil {
				return err
			}
		}
		if player != nil {
			player.UserID = user.ID
			if err := tx.Create(player).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Count returns the total number of users.
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}
