package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"teamgoals/internal/model"
	"teamgoals/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateWithProfile(ctx context.Context, user *model.User, coach *model.Coach, player *model.Player) error {
	args := m.Called(ctx, user, coach, player)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockGoalRepository is a mock implementation of GoalRepository.
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) Create(ctx context.Context, goal *model.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) Update(ctx context.Context, goal *model.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) FindByID(ctx context.Context, id uint) (*model.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Goal), args.Error(1)
}

func (m *MockGoalRepository) FindByIDScoped(ctx context.Context, scope repository.Scope, id uint) (*model.Goal, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Goal), args.Error(1)
}

func (m *MockGoalRepository) List(ctx context.Context, scope repository.Scope, filter repository.GoalFilter, page repository.Page) ([]model.Goal, int64, error) {
	args := m.Called(ctx, scope, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Goal), args.Get(1).(int64), args.Error(2)
}

func (m *MockGoalRepository) UpdateProgress(ctx context.Context, id uint, progress model.Progress, notes string) error {
	args := m.Called(ctx, id, progress, notes)
	return args.Error(0)
}

func (m *MockGoalRepository) ProcessGoalCounts(ctx context.Context, goalID uint) (int64, int64, error) {
	args := m.Called(ctx, goalID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockPlayerRepository is a mock implementation of PlayerRepository.
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) FindByID(ctx context.Context, scope repository.Scope, id uint) (*model.Player, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Player), args.Error(1)
}

func (m *MockPlayerRepository) FindByUserID(ctx context.Context, userID uint) (*model.Player, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Player), args.Error(1)
}

func (m *MockPlayerRepository) List(ctx context.Context, scope repository.Scope, search string, page repository.Page) ([]model.Player, int64, error) {
	args := m.Called(ctx, scope, search, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Player), args.Get(1).(int64), args.Error(2)
}

func (m *MockPlayerRepository) ListActiveByCoach(ctx context.Context, coachID uint) ([]model.Player, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Player), args.Error(1)
}

func (m *MockPlayerRepository) Recent(ctx context.Context, limit int) ([]model.Player, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Player), args.Error(1)
}

func (m *MockPlayerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlayerRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockProcessGoalRepository is a mock implementation of ProcessGoalRepository.
type MockProcessGoalRepository struct {
	mock.Mock
}

func (m *MockProcessGoalRepository) Create(ctx context.Context, processGoal *model.ProcessGoal) error {
	args := m.Called(ctx, processGoal)
	return args.Error(0)
}

func (m *MockProcessGoalRepository) Update(ctx context.Context, processGoal *model.ProcessGoal) error {
	args := m.Called(ctx, processGoal)
	return args.Error(0)
}

func (m *MockProcessGoalRepository) FindByID(ctx context.Context, id uint) (*model.ProcessGoal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProcessGoal), args.Error(1)
}

func (m *MockProcessGoalRepository) ListByGoal(ctx context.Context, goalID uint, page repository.Page) ([]model.ProcessGoal, int64, error) {
	args := m.Called(ctx, goalID, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.ProcessGoal), args.Get(1).(int64), args.Error(2)
}

func (m *MockProcessGoalRepository) UpdateProgress(ctx context.Context, id uint, progress model.Progress, notes string) error {
	args := m.Called(ctx, id, progress, notes)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, role model.Role, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, model.Role, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.Get(1).(model.Role), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}
