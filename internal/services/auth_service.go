package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/rajasunrise/inkwell/internal/models"
	"github.com/rajasunrise/inkwell/internal/repositories"
)

// AuthService handles registration, credential verification, and the
// signed session cookie tokens.
//
// Passwords are stored as bcrypt hashes: iterated Blowfish with a
// random 16-byte per-password salt embedded in the hash string. The
// cost factor is configuration, not a hidden detail, so stored hashes
// remain verifiable by any future implementation.
type AuthService struct {
	userRepo      repositories.UserRepository
	sessionSecret []byte
	bcryptCost    int
	sessionDurat  time.Duration
}

// NewAuthService creates a new AuthService. A bcryptCost of 0 selects
// bcrypt.DefaultCost.
func NewAuthService(userRepo repositories.UserRepository, sessionSecret string, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:      userRepo,
		sessionSecret: []byte(sessionSecret),
		bcryptCost:    bcryptCost,
		sessionDurat:  24 * time.Hour,
	}
}

// Register creates a new user with a hashed password. It fails with
// ErrDuplicateEmail before writing anything if the email is already
// taken; the unique index backs that check up under concurrency.
func (s *AuthService) Register(name, email, rawPassword string) (*models.User, error) {
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, ErrDuplicateEmail
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and returns the matched user. The
// two failure modes are distinct so the route layer can surface the
// original flash messages for each.
func (s *AuthService) Login(email, rawPassword string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(rawPassword)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueSession returns a signed token binding the session cookie to
// the user. The token carries only the user id; the principal is
// re-loaded from the store on every request.
func (s *AuthService) IssueSession(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.sessionDurat).Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString(s.sessionSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateSession parses and verifies a session token, returning the
// user id it is bound to.
func (s *AuthService) ValidateSession(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.sessionSecret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid session token")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("session token missing user id")
	}
	return uint(id), nil
}
