package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"teamgoals/internal/access"
	"teamgoals/internal/errors"
	"teamgoals/internal/model"
	"teamgoals/internal/repository"
	"teamgoals/internal/service"
)

// MockGoalService is a mock implementation of GoalService.
type MockGoalService struct {
	mock.Mock
}

func (m *MockGoalService) List(ctx context.Context, principal *access.Principal, filter repository.GoalFilter, page repository.Page) ([]model.Goal, int64, error) {
	args := m.Called(ctx, principal, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Goal), args.Get(1).(int64), args.Error(2)
}

func (m *MockGoalService) Get(ctx context.Context, principal *access.Principal, id uint) (*service.GoalDetail, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GoalDetail), args.Error(1)
}

func (m *MockGoalService) Create(ctx context.Context, principal *access.Principal, input service.CreateGoalInput) (*model.Goal, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Goal), args.Error(1)
}

func (m *MockGoalService) Update(ctx context.Context, principal *access.Principal, id uint, input service.UpdateGoalInput) (*model.Goal, error) {
	args := m.Called(ctx, principal, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Goal), args.Error(1)
}

func (m *MockGoalService) UpdateProgress(ctx context.Context, principal *access.Principal, id uint, progress model.Progress, notes string) (*service.ProgressUpdate, error) {
	args := m.Called(ctx, principal, id, progress, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProgressUpdate), args.Error(1)
}

type structValidator struct {
	validator *validator.Validate
}

func (v *structValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho(principal *access.Principal, goalHandler *GoalHandler) *echo.Echo {
	e := echo.New()
	e.Validator = &structValidator{validator: validator.New()}
	withPrincipal := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(principalContextKey, principal)
			return next(c)
		}
	}
	e.POST("/api/goals/:id/progress", goalHandler.UpdateGoalProgress, withPrincipal)
	return e
}

func testPlayerPrincipal(playerID uint) *access.Principal {
	return &access.Principal{
		User:   &model.User{ID: 3, Role: model.RolePlayer},
		Player: &model.Player{ID: playerID, UserID: 3},
	}
}

func TestGoalHandler_UpdateGoalProgress(t *testing.T) {
	t.Run("requires the asynchronous request marker", func(t *testing.T) {
		mockService := new(MockGoalService)
		e := newTestEcho(testPlayerPrincipal(5), NewGoalHandler(mockService))

		req := httptest.NewRequest(http.MethodPost, "/api/goals/10/progress", strings.NewReader(`{"progress":"completed"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Invalid request", body["error"])
		mockService.AssertNotCalled(t, "UpdateProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("successful update", func(t *testing.T) {
		mockService := new(MockGoalService)
		mockService.On("UpdateProgress", mock.Anything, mock.Anything, uint(10), model.ProgressExcellentProgress, "").
			Return(&service.ProgressUpdate{
				Progress:           model.ProgressExcellentProgress,
				ProgressPercentage: 75,
				IsOverdue:          false,
			}, nil)
		e := newTestEcho(testPlayerPrincipal(5), NewGoalHandler(mockService))

		req := httptest.NewRequest(http.MethodPost, "/api/goals/10/progress", strings.NewReader(`{"progress":"excellent_progress"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "excellent_progress", body["progress"])
		assert.Equal(t, float64(75), body["progress_percentage"])
		assert.Equal(t, false, body["is_overdue"])
		assert.NotContains(t, body, "main_goal_completed")
		mockService.AssertExpectations(t)
	})

	t.Run("denial carries diagnostics", func(t *testing.T) {
		playerID := uint(5)
		profileID := uint(8)
		mockService := new(MockGoalService)
		mockService.On("UpdateProgress", mock.Anything, mock.Anything, uint(10), model.ProgressCompleted, "").
			Return(nil, &errors.PermissionError{
				Reason:        "Permission denied",
				Role:          "coach",
				GoalPlayerID:  &playerID,
				UserProfileID: &profileID,
			})
		e := newTestEcho(testPlayerPrincipal(5), NewGoalHandler(mockService))

		req := httptest.NewRequest(http.MethodPost, "/api/goals/10/progress", strings.NewReader(`{"progress":"completed"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		var body map[string]interface{}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Permission denied", body["error"])
		assert.Equal(t, "coach", body["user_role"])
		assert.Equal(t, float64(5), body["goal_player_id"])
		assert.Equal(t, float64(8), body["user_profile_id"])
	})

	t.Run("invalid progress value", func(t *testing.T) {
		mockService := new(MockGoalService)
		mockService.On("UpdateProgress", mock.Anything, mock.Anything, uint(10), model.Progress("banana"), "").
			Return(nil, errors.ErrInvalidProgress)
		e := newTestEcho(testPlayerPrincipal(5), NewGoalHandler(mockService))

		req := httptest.NewRequest(http.MethodPost, "/api/goals/10/progress", strings.NewReader(`{"progress":"banana"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing progress field", func(t *testing.T) {
		mockService := new(MockGoalService)
		e := newTestEcho(testPlayerPrincipal(5), NewGoalHandler(mockService))

		req := httptest.NewRequest(http.MethodPost, "/api/goals/10/progress", strings.NewReader(`{"notes":"x"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "UpdateProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
