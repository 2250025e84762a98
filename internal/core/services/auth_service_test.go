package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func existingUser(t *testing.T, password string) *domain.User {
	t.Helper()
	user, err := domain.NewUser("user-1", "tuinier@example.org")
	require.NoError(t, err)
	require.NoError(t, user.SetPassword(password))
	return user
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	t.Run("Success: Should register a valid user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		input := RegisterInput{
			Email:    "Tuinier@Example.org",
			Password: "StrongPassword123!",
		}

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := service.Register(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "tuinier@example.org", user.Email)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, user.PasswordHash)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should return error for invalid email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)

		user, err := service.Register(context.Background(), RegisterInput{Email: "not-an-email", Password: "pass"})

		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return error for short password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)

		user, err := service.Register(context.Background(), RegisterInput{Email: "valid@email.com", Password: "short"})

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should propagate duplicate email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		user, err := service.Register(ctx, RegisterInput{Email: "duplicate@email.com", Password: "StrongPassword123!"})

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		assert.Nil(t, user)
		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	user := existingUser(t, "Courgette2026")

	t.Run("Success: Should accept the right password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		got, err := NewAuthService(mockRepo).Login(ctx, user.Email, "Courgette2026")

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("Fail: Wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		_, err := NewAuthService(mockRepo).Login(ctx, user.Email, "Pompoen2026")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Fail: Unknown email looks like a wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", ctx, "ghost@example.org").Return(nil, domain.ErrUserNotFound)

		_, err := NewAuthService(mockRepo).Login(ctx, "ghost@example.org", "whatever123")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Fail: Backend errors are wrapped", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		boom := errors.New("connection refused")
		mockRepo.On("GetByEmail", ctx, user.Email).Return(nil, boom)

		_, err := NewAuthService(mockRepo).Login(ctx, user.Email, "Courgette2026")

		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success: Should store a new hash", func(t *testing.T) {
		user := existingUser(t, "OudWachtwoord1")
		oldHash := user.PasswordHash

		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", ctx, user.ID).Return(user, nil)
		mockRepo.On("UpdatePassword", ctx, user.ID, mock.MatchedBy(func(h string) bool { return h != oldHash })).Return(nil)

		err := NewAuthService(mockRepo).ChangePassword(ctx, user.ID, "OudWachtwoord1", "NieuwWachtwoord2")

		require.NoError(t, err)
		assert.NoError(t, user.CheckPassword("NieuwWachtwoord2"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Wrong current password", func(t *testing.T) {
		user := existingUser(t, "OudWachtwoord1")
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", ctx, user.ID).Return(user, nil)

		err := NewAuthService(mockRepo).ChangePassword(ctx, user.ID, "fout-wachtwoord", "NieuwWachtwoord2")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		mockRepo.AssertNotCalled(t, "UpdatePassword")
	})

	t.Run("Fail: New password too short", func(t *testing.T) {
		user := existingUser(t, "OudWachtwoord1")
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", ctx, user.ID).Return(user, nil)

		err := NewAuthService(mockRepo).ChangePassword(ctx, user.ID, "OudWachtwoord1", "kort")

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		mockRepo.AssertNotCalled(t, "UpdatePassword")
	})
}
