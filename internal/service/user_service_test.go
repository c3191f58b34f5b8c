package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"teamgoals/internal/errors"
	"teamgoals/internal/model"
)

func TestUserService_Create(t *testing.T) {
	jersey := uint(10)

	t.Run("admin creates player with profile", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByUsername", mock.Anything, "p.martins").Return(nil, gorm.ErrRecordNotFound)
		mockUsers.On("CreateWithProfile", mock.Anything, mock.AnythingOfType("*model.User"), (*model.Coach)(nil), mock.AnythingOfType("*model.Player")).
			Run(func(args mock.Arguments) {
				player := args.Get(3).(*model.Player)
				assert.Equal(t, &jersey, player.JerseyNumber)
				assert.True(t, player.IsActive)
				assert.False(t, player.JoinDate.IsZero())
			}).
			Return(nil)

		service := NewUserService(mockUsers)
		user, err := service.Create(context.Background(), adminPrincipal(), CreateUserInput{
			Username:     "p.martins",
			Password:     "s3cret-pass",
			Role:         model.RolePlayer,
			JerseyNumber: &jersey,
		})

		assert.NoError(t, err)
		assert.Equal(t, model.RolePlayer, user.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))
		mockUsers.AssertExpectations(t)
	})

	t.Run("jersey number already assigned to another player", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByUsername", mock.Anything, "p.second").Return(nil, gorm.ErrRecordNotFound)
		mockUsers.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(gorm.ErrDuplicatedKey)

		service := NewUserService(mockUsers)
		_, err := service.Create(context.Background(), adminPrincipal(), CreateUserInput{
			Username:     "p.second",
			Password:     "s3cret-pass",
			Role:         model.RolePlayer,
			JerseyNumber: &jersey,
		})

		assert.Equal(t, errors.ErrJerseyNumberTaken, err)
	})

	t.Run("username already taken", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByUsername", mock.Anything, "p.martins").Return(&model.User{ID: 4, Username: "p.martins"}, nil)

		service := NewUserService(mockUsers)
		_, err := service.Create(context.Background(), adminPrincipal(), CreateUserInput{
			Username: "p.martins",
			Password: "s3cret-pass",
			Role:     model.RolePlayer,
		})

		assert.Equal(t, errors.ErrUsernameTaken, err)
		mockUsers.AssertNotCalled(t, "CreateWithProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("coach may not create users", func(t *testing.T) {
		service := NewUserService(new(MockUserRepository))
		_, err := service.Create(context.Background(), coachPrincipal(7), CreateUserInput{
			Username: "x",
			Password: "s3cret-pass",
			Role:     model.RolePlayer,
		})

		var perm *errors.PermissionError
		if assert.ErrorAs(t, err, &perm) {
			assert.Equal(t, "coach", perm.Role)
		}
	})
}
