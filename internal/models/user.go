package models

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// Roles a user can hold. The first registered user is promoted to
// RoleAdmin; everyone after that is a regular member.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User represents a registered reader of the blog.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"type:varchar(250);not null" validate:"required"`
	Email        string `json:"email" gorm:"uniqueIndex;type:varchar(250);not null" validate:"required,email"`
	PasswordHash string `json:"-" gorm:"type:varchar(500);not null"` // bcrypt hash, never the raw password
	Role         string `json:"role" gorm:"type:varchar(20);not null;default:member"`
}

// IsAdmin reports whether the user may manage posts.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AvatarURL returns the Gravatar image URL for the user's email,
// sized and rated the way the post detail view expects. Value
// receiver so templates can call it on embedded comment posters.
func (u User) AvatarURL() string {
	normalized := strings.ToLower(strings.TrimSpace(u.Email))
	digest := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=100&d=retro&r=g", digest)
}
