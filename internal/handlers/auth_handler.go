package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/rajasunrise/inkwell/internal/middleware"
	"github.com/rajasunrise/inkwell/internal/models"
	"github.com/rajasunrise/inkwell/internal/services"
)

// AuthHandler handles the registration, login, and logout routes.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/register", h.ShowRegister)
	router.Post("/register", h.HandleRegister)
	router.Get("/login", h.ShowLogin)
	router.Post("/login", h.HandleLogin)
	router.Get("/logout", h.HandleLogout)
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	return render(c, "register", nil)
}

// HandleRegister registers a new user and logs them in. A duplicate
// email redirects to the login page instead of back to the form.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var form RegisterForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing register form: %v", err)
		setFlash(c, "Invalid form submission. Try Again!")
		return c.Redirect("/register", fiber.StatusSeeOther)
	}
	if err := h.validate.Struct(form); err != nil {
		setFlash(c, "Please fill in all fields with a valid Email-Id.")
		return c.Redirect("/register", fiber.StatusSeeOther)
	}

	user, err := h.authService.Register(form.Name, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			setFlash(c, "A user with this Email-Id already exists. Try Logging In instead!")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	return h.establishSession(c, user)
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return render(c, "login", nil)
}

// HandleLogin verifies the credentials and starts a session. Each
// failure mode has its own flash message and no session side effect.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var form LoginForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing login form: %v", err)
		setFlash(c, "Invalid form submission. Try Again!")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	if err := h.validate.Struct(form); err != nil {
		setFlash(c, "Please fill in all fields with a valid Email-Id.")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	user, err := h.authService.Login(form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownEmail):
			setFlash(c, "This Email-Id does not exist. Try Again or Register!")
		case errors.Is(err, services.ErrInvalidCredentials):
			setFlash(c, "Incorrect Password. Try Again!")
		default:
			log.Printf("Error during login for %s: %v", form.Email, err)
			setFlash(c, "Login failed. Try Again!")
		}
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	return h.establishSession(c, user)
}

// HandleLogout clears the session cookie and redirects home. It is a
// no-op when no session exists.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *AuthHandler) establishSession(c *fiber.Ctx, user *models.User) error {
	token, err := h.authService.IssueSession(user)
	if err != nil {
		log.Printf("Error issuing session for user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
	})
	return c.Redirect("/", fiber.StatusSeeOther)
}
