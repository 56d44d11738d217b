package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/rajasunrise/inkwell/internal/middleware"
	"github.com/rajasunrise/inkwell/internal/services"
)

// PostHandler handles the post detail, comment, and post-management
// routes.
type PostHandler struct {
	contentService *services.ContentService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(contentService *services.ContentService) *PostHandler {
	return &PostHandler{contentService: contentService}
}

// RegisterRoutes registers the post routes. The management routes are
// wrapped with the supplied admin guard before any handler runs.
func (h *PostHandler) RegisterRoutes(router fiber.Router, adminOnly fiber.Handler) {
	router.Get("/post/:id", h.ShowPost)
	router.Post("/post/:id", h.HandleComment)

	router.Get("/new-post", adminOnly, h.ShowNewPost)
	router.Post("/new-post", adminOnly, h.HandleNewPost)
	router.Get("/edit-post/:id", adminOnly, h.ShowEditPost)
	router.Post("/edit-post/:id", adminOnly, h.HandleEditPost)
	router.Get("/delete/:id", adminOnly, h.HandleDelete)
}

// ShowPost renders a post with its comments and the comment form.
func (h *PostHandler) ShowPost(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Post not found")
	}
	post, err := h.contentService.GetPost(id)
	if err != nil {
		return h.contentError(c, err)
	}
	return render(c, "post", fiber.Map{"Post": post})
}

// HandleComment adds a comment to a post. Anonymous submissions are
// redirected to login and the comment text is dropped.
func (h *PostHandler) HandleComment(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Post not found")
	}
	var form CommentForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing comment form: %v", err)
		setFlash(c, "Invalid form submission. Try Again!")
		return c.Redirect(fmt.Sprintf("/post/%d", id), fiber.StatusSeeOther)
	}

	_, err = h.contentService.AddComment(middleware.Principal(c), id, form.Comment)
	if err != nil {
		if errors.Is(err, services.ErrUnauthenticated) {
			setFlash(c, "You must be logged in to comment on a post!")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			setFlash(c, "Your comment cannot be empty!")
			return c.Redirect(fmt.Sprintf("/post/%d", id), fiber.StatusSeeOther)
		}
		return h.contentError(c, err)
	}
	return c.Redirect(fmt.Sprintf("/post/%d", id), fiber.StatusSeeOther)
}

// ShowNewPost renders the empty create-post form.
func (h *PostHandler) ShowNewPost(c *fiber.Ctx) error {
	return render(c, "make-post", fiber.Map{"Editing": false})
}

// HandleNewPost creates a post authored by the admin.
func (h *PostHandler) HandleNewPost(c *fiber.Ctx) error {
	var form PostForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing post form: %v", err)
		setFlash(c, "Invalid form submission. Try Again!")
		return c.Redirect("/new-post", fiber.StatusSeeOther)
	}

	post, err := h.contentService.CreatePost(middleware.Principal(c), postFields(form))
	if err != nil {
		if msg, recovered := formErrorMessage(err); recovered {
			setFlash(c, msg)
			return c.Redirect("/new-post", fiber.StatusSeeOther)
		}
		return h.contentError(c, err)
	}

	log.Printf("Post %d %q created", post.ID, post.Title)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// ShowEditPost renders the edit form pre-filled with the post's
// current fields.
func (h *PostHandler) ShowEditPost(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Post not found")
	}
	post, err := h.contentService.GetPost(id)
	if err != nil {
		return h.contentError(c, err)
	}
	return render(c, "make-post", fiber.Map{"Editing": true, "Post": post})
}

// HandleEditPost overwrites a post's mutable fields.
func (h *PostHandler) HandleEditPost(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Post not found")
	}
	var form PostForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing post form: %v", err)
		setFlash(c, "Invalid form submission. Try Again!")
		return c.Redirect(fmt.Sprintf("/edit-post/%d", id), fiber.StatusSeeOther)
	}

	post, err := h.contentService.EditPost(middleware.Principal(c), id, postFields(form))
	if err != nil {
		if msg, recovered := formErrorMessage(err); recovered {
			setFlash(c, msg)
			return c.Redirect(fmt.Sprintf("/edit-post/%d", id), fiber.StatusSeeOther)
		}
		return h.contentError(c, err)
	}
	return c.Redirect(fmt.Sprintf("/post/%d", post.ID), fiber.StatusSeeOther)
}

// HandleDelete deletes a post and its comments, then redirects home.
func (h *PostHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Post not found")
	}
	if err := h.contentService.DeletePost(middleware.Principal(c), id); err != nil {
		return h.contentError(c, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// contentError maps the remaining service errors onto terminal
// responses.
func (h *PostHandler) contentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		return c.Status(fiber.StatusNotFound).SendString("Post not found")
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).SendString("Forbidden")
	default:
		log.Printf("Content service error: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}
}

// formErrorMessage turns recoverable create/edit failures into flash
// text; other errors stay terminal.
func formErrorMessage(err error) (string, bool) {
	if errors.Is(err, services.ErrDuplicateTitle) {
		return "A post with this title already exists. Pick another title!", true
	}
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf("The %s field %s.", verr.Field, verr.Reason), true
	}
	return "", false
}

func postID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid post id %q", c.Params("id"))
	}
	return uint(id), nil
}

func postFields(form PostForm) services.PostFields {
	return services.PostFields{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImageURL: form.ImageURL,
	}
}
