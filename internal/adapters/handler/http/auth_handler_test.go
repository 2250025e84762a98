package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/adapters/handler/http/middleware"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/services"
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

func setupHandler() (*gin.Engine, *MockUserRepository) {
	gin.SetMode(gin.TestMode)

	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)
	tokens := services.NewTokenService("handler-secret", "tuinbeheer-test", time.Hour, mockRepo)
	authHandler := NewAuthHandler(authService, tokens)

	router := gin.New()
	authHandler.RegisterRoutes(router.Group(""))

	protected := router.Group("")
	protected.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set(middleware.ContextUserIDKey, id)
		}
		c.Next()
	})
	authHandler.RegisterProtectedRoutes(protected)

	return router, mockRepo
}

func doJSON(router http.Handler, method, path string, payload any, header ...string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func userWithPassword(t *testing.T, id, email, password string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(id, email)
	require.NoError(t, err)
	require.NoError(t, u.SetPassword(password))
	return u
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Success: Should return 201 and created user (No Password)", func(t *testing.T) {
		router, mockRepo := setupHandler()

		payload := map[string]string{
			"email":    "tuinier@example.nl",
			"password": "Zonnebloem2024!",
		}
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		w := doJSON(router, http.MethodPost, "/auth/register", payload)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response userResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, payload["email"], response.Email)
		assert.Equal(t, domain.RoleUser, response.Role)
		assert.NotEmpty(t, response.ID)

		assert.NotContains(t, w.Body.String(), "password")

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should return 400 for Bad JSON (Invalid Email)", func(t *testing.T) {
		router, mockRepo := setupHandler()

		w := doJSON(router, http.MethodPost, "/auth/register", map[string]string{
			"email":    "not-an-email",
			"password": "Password123!",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return 400 for Bad JSON (Password too short)", func(t *testing.T) {
		router, mockRepo := setupHandler()

		w := doJSON(router, http.MethodPost, "/auth/register", map[string]string{
			"email":    "valid@example.nl",
			"password": "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return 409 Conflict if email exists", func(t *testing.T) {
		router, mockRepo := setupHandler()

		mockRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		w := doJSON(router, http.MethodPost, "/auth/register", map[string]string{
			"email":    "dubbel@example.nl",
			"password": "PasswordValid!",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "email already exists")
	})

	t.Run("Fail: Should return 500 Internal Server Error on DB failure", func(t *testing.T) {
		router, mockRepo := setupHandler()

		mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db connection lost"))

		w := doJSON(router, http.MethodPost, "/auth/register", map[string]string{
			"email":    "crash@example.nl",
			"password": "PasswordValid!",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal server error")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Success: Should return a token and the user", func(t *testing.T) {
		router, mockRepo := setupHandler()
		user := userWithPassword(t, "u-1", "tuinier@example.nl", "Zonnebloem2024!")
		mockRepo.On("GetByEmail", mock.Anything, "tuinier@example.nl").Return(user, nil)

		w := doJSON(router, http.MethodPost, "/auth/login", map[string]string{
			"email":    "tuinier@example.nl",
			"password": "Zonnebloem2024!",
		})

		require.Equal(t, http.StatusOK, w.Code)
		var resp loginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "u-1", resp.User.ID)
	})

	t.Run("Fail: Wrong password is 401", func(t *testing.T) {
		router, mockRepo := setupHandler()
		user := userWithPassword(t, "u-1", "tuinier@example.nl", "Zonnebloem2024!")
		mockRepo.On("GetByEmail", mock.Anything, "tuinier@example.nl").Return(user, nil)

		w := doJSON(router, http.MethodPost, "/auth/login", map[string]string{
			"email":    "tuinier@example.nl",
			"password": "Paardenbloem",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	})

	t.Run("Fail: Unknown email is 401", func(t *testing.T) {
		router, mockRepo := setupHandler()
		mockRepo.On("GetByEmail", mock.Anything, "nobody@example.nl").Return(nil, domain.ErrUserNotFound)

		w := doJSON(router, http.MethodPost, "/auth/login", map[string]string{
			"email":    "nobody@example.nl",
			"password": "whatever1",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: Missing fields is 400", func(t *testing.T) {
		router, _ := setupHandler()

		w := doJSON(router, http.MethodPost, "/auth/login", map[string]string{"email": "x@example.nl"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("Success: Should return 204", func(t *testing.T) {
		router, mockRepo := setupHandler()
		user := userWithPassword(t, "u-1", "tuinier@example.nl", "OudWachtwoord1")
		mockRepo.On("GetByID", mock.Anything, "u-1").Return(user, nil)
		mockRepo.On("UpdatePassword", mock.Anything, "u-1", mock.AnythingOfType("string")).Return(nil)

		w := doJSON(router, http.MethodPut, "/auth/password", map[string]string{
			"current_password": "OudWachtwoord1",
			"new_password":     "NieuwWachtwoord2",
		}, "X-Test-User", "u-1")

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Wrong current password is 401", func(t *testing.T) {
		router, mockRepo := setupHandler()
		user := userWithPassword(t, "u-1", "tuinier@example.nl", "OudWachtwoord1")
		mockRepo.On("GetByID", mock.Anything, "u-1").Return(user, nil)

		w := doJSON(router, http.MethodPut, "/auth/password", map[string]string{
			"current_password": "Fout",
			"new_password":     "NieuwWachtwoord2",
		}, "X-Test-User", "u-1")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Fail: New password too short is 400", func(t *testing.T) {
		router, mockRepo := setupHandler()

		w := doJSON(router, http.MethodPut, "/auth/password", map[string]string{
			"current_password": "OudWachtwoord1",
			"new_password":     "kort",
		}, "X-Test-User", "u-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Fail: No user in context is 500", func(t *testing.T) {
		router, _ := setupHandler()

		w := doJSON(router, http.MethodPut, "/auth/password", map[string]string{
			"current_password": "OudWachtwoord1",
			"new_password":     "NieuwWachtwoord2",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
