package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/rajasunrise/inkwell/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create persists a new user. Role assignment and the insert run in a
// single transaction: the first user ever stored becomes the admin,
// everyone after that a member. The unique index on email is the
// authoritative guard against concurrent duplicate registration.
func (r *GORMUserRepository) Create(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if user.Role == "" {
			var count int64
			if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to count users: %w", err)
			}
			if count == 0 {
				user.Role = models.RoleAdmin
			} else {
				user.Role = models.RoleMember
			}
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", translate(err))
		}
		return nil
	})
}

// GetByEmail retrieves a user by their email. The match is exact and
// case-sensitive, the same way the email was stored.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, translate(err))
	}
	return &user, nil
}

// GetByID retrieves a user by their ID.
func (r *GORMUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, translate(err))
	}
	return &user, nil
}
