package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors shared by every repository implementation so the
// service layer can branch without knowing about the storage driver.
var (
	// ErrNotFound reports that no row matched the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrConflict reports a unique-constraint violation, the store's
	// authoritative guard behind the services' friendlier pre-checks.
	ErrConflict = errors.New("unique constraint violated")
)

// translate maps GORM's sentinel errors onto the repository ones.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
