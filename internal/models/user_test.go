package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rajasunrise/inkwell/internal/models"
)

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&models.User{Role: models.RoleAdmin}).IsAdmin())
	assert.False(t, (&models.User{Role: models.RoleMember}).IsAdmin())

	var anonymous *models.User
	assert.False(t, anonymous.IsAdmin())
}

func TestUser_AvatarURL(t *testing.T) {
	user := &models.User{Email: "a@x.com"}
	url := user.AvatarURL()
	assert.Contains(t, url, "https://www.gravatar.com/avatar/")
	assert.Contains(t, url, "s=100")
	assert.Contains(t, url, "d=retro")

	// gravatar hashes the trimmed, lowercased email
	messy := &models.User{Email: "  A@X.com "}
	assert.Equal(t, url, messy.AvatarURL())

	other := &models.User{Email: "b@x.com"}
	assert.NotEqual(t, url, other.AvatarURL())
}
