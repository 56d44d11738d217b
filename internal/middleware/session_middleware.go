package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/rajasunrise/inkwell/internal/models"
	"github.com/rajasunrise/inkwell/internal/repositories"
	"github.com/rajasunrise/inkwell/internal/services"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session"

const principalKey = "principal"

// LoadPrincipal is a Fiber middleware that resolves the session cookie
// into the current principal. It never rejects a request: a missing,
// expired, or tampered cookie simply leaves the request anonymous, and
// enforcement is left to the guards behind it.
func LoadPrincipal(authService *services.AuthService, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return c.Next()
		}

		userID, err := authService.ValidateSession(token)
		if err != nil {
			log.Printf("Session validation failed: %v", err)
			return c.Next()
		}

		user, err := userRepo.GetByID(userID)
		if err != nil {
			log.Printf("Session principal %d not found: %v", userID, err)
			return c.Next()
		}

		c.Locals(principalKey, user)
		return c.Next()
	}
}

// Principal returns the authenticated user of the request, or nil when
// the request is anonymous.
func Principal(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(principalKey).(*models.User)
	return user
}

// AdminOnly guards the post-management routes. Anyone who is not the
// admin gets a terminal 403 with no redirect and no further detail.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !Principal(c).IsAdmin() {
			return c.Status(fiber.StatusForbidden).SendString("Forbidden")
		}
		return c.Next()
	}
}
