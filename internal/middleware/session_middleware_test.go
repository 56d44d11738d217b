package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/rajasunrise/inkwell/internal/middleware"
	"github.com/rajasunrise/inkwell/internal/models"
	"github.com/rajasunrise/inkwell/internal/repositories"
	"github.com/rajasunrise/inkwell/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func setupApp(userRepo repositories.UserRepository, authService *services.AuthService) *fiber.App {
	app := fiber.New()
	app.Use(middleware.LoadPrincipal(authService, userRepo))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		if user := middleware.Principal(c); user != nil {
			return c.SendString(user.Name)
		}
		return c.SendString("anonymous")
	})
	app.Get("/admin", middleware.AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendString("welcome")
	})
	return app
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	resp.Body.Close()
	return string(data)
}

func TestLoadPrincipal(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_secret", bcrypt.MinCost)
	app := setupApp(mockRepo, authService)

	// no cookie: anonymous
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, "anonymous", body(t, resp))

	// valid cookie: principal resolved from the store
	alice := &models.User{ID: 2, Name: "Alice", Role: models.RoleMember}
	token, err := authService.IssueSession(alice)
	assert.NoError(t, err)
	mockRepo.On("GetByID", uint(2)).Return(alice, nil).Once()

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, "Alice", body(t, resp))
	mockRepo.AssertExpectations(t)

	// tampered cookie: silently anonymous, not an error
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "garbage"})
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, "anonymous", body(t, resp))
}

func TestAdminOnly(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_secret", bcrypt.MinCost)
	app := setupApp(mockRepo, authService)

	// anonymous: terminal 403, no redirect
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// member: still 403
	alice := &models.User{ID: 2, Name: "Alice", Role: models.RoleMember}
	token, _ := authService.IssueSession(alice)
	mockRepo.On("GetByID", uint(2)).Return(alice, nil).Once()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// admin: allowed through
	root := &models.User{ID: 1, Name: "Root", Role: models.RoleAdmin}
	token, _ = authService.IssueSession(root)
	mockRepo.On("GetByID", uint(1)).Return(root, nil).Once()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "welcome", body(t, resp))
	mockRepo.AssertExpectations(t)
}
