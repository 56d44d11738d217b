package services_test

import (
	"io"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

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

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_secret", bcrypt.MinCost)

	mockRepo.On("GetByEmail", "a@x.com").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.Register("Alice", "a@x.com", "pw123")
	assert.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "a@x.com", user.Email)
	// the stored credential is never the raw password
	assert.NotEqual(t, "pw123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123")))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_secret", bcrypt.MinCost)

	mockRepo.On("GetByEmail", "a@x.com").Return(&models.User{ID: 1, Email: "a@x.com"}, nil).Once()

	user, err := authService.Register("Alice", "a@x.com", "pw123")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, services.ErrDuplicateEmail)
	// nothing was written
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_ConflictOnInsert(t *testing.T) {
	// A concurrent registration can slip between the pre-check and the
	// insert; the store's unique index still surfaces DuplicateEmail.
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_secret", bcrypt.MinCost)

	mockRepo.On("GetByEmail", "a@x.com").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(repositories.ErrConflict).Once()

	_, err := authService.Register("Alice", "a@x.com", "pw123")
	assert.ErrorIs(t, err, services.ErrDuplicateEmail)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_secret", bcrypt.MinCost)

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw123"), bcrypt.MinCost)
	stored := &models.User{ID: 2, Name: "Alice", Email: "a@x.com", PasswordHash: string(hash)}

	mockRepo.On("GetByEmail", "a@x.com").Return(stored, nil).Once()
	user, err := authService.Login("a@x.com", "pw123")
	assert.NoError(t, err)
	assert.Equal(t, uint(2), user.ID)

	mockRepo.On("GetByEmail", "a@x.com").Return(stored, nil).Once()
	_, err = authService.Login("a@x.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	mockRepo.On("GetByEmail", "ghost@x.com").Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.Login("ghost@x.com", "pw123")
	assert.ErrorIs(t, err, services.ErrUnknownEmail)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_SessionRoundTrip(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_secret", bcrypt.MinCost)

	token, err := authService.IssueSession(&models.User{ID: 7})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	id, err := authService.ValidateSession(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), id)

	// a token signed with another secret does not verify
	other := services.NewAuthService(mockRepo, "other_secret", bcrypt.MinCost)
	_, err = other.ValidateSession(token)
	assert.Error(t, err)

	_, err = authService.ValidateSession("not-a-token")
	assert.Error(t, err)
}
