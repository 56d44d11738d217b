package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/rajasunrise/inkwell/internal/services"
)

// PageHandler handles the public reading pages.
type PageHandler struct {
	contentService *services.ContentService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(contentService *services.ContentService) *PageHandler {
	return &PageHandler{contentService: contentService}
}

// RegisterRoutes registers the page routes with the Fiber app.
func (h *PageHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.Home)
	router.Get("/about", h.About)
	router.Get("/contact", h.Contact)
}

// Home lists every post in creation order.
func (h *PageHandler) Home(c *fiber.Ctx) error {
	posts, err := h.contentService.ListPosts()
	if err != nil {
		log.Printf("Error listing posts: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}
	return render(c, "index", fiber.Map{"Posts": posts})
}

// About renders the static about page.
func (h *PageHandler) About(c *fiber.Ctx) error {
	return render(c, "about", nil)
}

// Contact renders the static contact page. The form on it has no
// backing logic; submissions are not accepted.
func (h *PageHandler) Contact(c *fiber.Ctx) error {
	return render(c, "contact", nil)
}
