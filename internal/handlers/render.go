package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rajasunrise/inkwell/internal/middleware"
)

// flashCookie carries a one-shot user-visible message across a
// redirect. The next render consumes and clears it.
const flashCookie = "flash"

const mainLayout = "layouts/main"

func setFlash(c *fiber.Ctx, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HTTPOnly: true,
	})
}

func takeFlash(c *fiber.Ctx) string {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return ""
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	message, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return message
}

// render wraps c.Render with the data every template needs: the
// current principal and any pending flash message.
func render(c *fiber.Ctx, template string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["User"] = middleware.Principal(c)
	data["Flash"] = takeFlash(c)
	return c.Render(template, data, mainLayout)
}
