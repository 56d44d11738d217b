package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rajasunrise/inkwell/internal/models"
	"github.com/rajasunrise/inkwell/internal/repositories"
	"github.com/rajasunrise/inkwell/pkg/events"
)

// PostFields carries the editable attributes of a blog post through
// create and edit. Date and author are not here: they are stamped at
// creation and immutable afterwards.
type PostFields struct {
	Title    string `validate:"required"`
	Subtitle string `validate:"required"`
	Body     string `validate:"required"`
	ImageURL string `validate:"required,url"`
}

// form field names as the templates know them
var postFieldNames = map[string]string{
	"Title":    "title",
	"Subtitle": "subtitle",
	"Body":     "body",
	"ImageURL": "img_url",
}

// ContentService handles business logic for blog posts and comments.
// Post management requires the admin principal; commenting requires
// any authenticated principal.
type ContentService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	publisher   *events.Publisher // may be nil when no broker is configured
	validate    *validator.Validate
}

// NewContentService creates a new ContentService.
func NewContentService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, publisher *events.Publisher) *ContentService {
	return &ContentService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		publisher:   publisher,
		validate:    validator.New(),
	}
}

// requireAdmin is the authorization gate in front of every
// post-management operation. Anonymous and non-admin principals both
// get a terminal ErrForbidden; nothing downstream runs.
func requireAdmin(principal *models.User) error {
	if !principal.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// validateFields maps the first validator failure onto the taxonomy's
// per-field ValidationError.
func (s *ContentService) validateFields(fields PostFields) error {
	if err := s.validate.Struct(fields); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			reason := "is required"
			if e.Tag() == "url" {
				reason = "must be a valid URL"
			}
			return &ValidationError{Field: postFieldNames[e.Field()], Reason: reason}
		}
		return fmt.Errorf("failed to validate post fields: %w", err)
	}
	return nil
}

// ListPosts retrieves all posts in creation order. Safe to call
// repeatedly; it never mutates anything.
func (s *ContentService) ListPosts() ([]models.BlogPost, error) {
	return s.postRepo.GetAll()
}

// GetPost retrieves a single post with its comments.
func (s *ContentService) GetPost(id uint) (*models.BlogPost, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// CreatePost validates the fields, stamps the creation date, and
// persists a new post authored by the admin principal.
func (s *ContentService) CreatePost(principal *models.User, fields PostFields) (*models.BlogPost, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}
	if err := s.validateFields(fields); err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetByTitle(fields.Title); err == nil {
		return nil, ErrDuplicateTitle
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check title uniqueness: %w", err)
	}

	post := &models.BlogPost{
		Title:    fields.Title,
		Subtitle: fields.Subtitle,
		Date:     time.Now().Format(models.DateLayout),
		Body:     fields.Body,
		ImageURL: fields.ImageURL,
		AuthorID: principal.ID,
	}
	if err := s.postRepo.Create(post); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}

	s.publish("post.created", post)
	return post, nil
}

// EditPost re-validates the fields the same way create does and
// overwrites title, subtitle, body, and image URL. Date and author
// stay exactly as they were stamped at creation.
func (s *ContentService) EditPost(principal *models.User, id uint, fields PostFields) (*models.BlogPost, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateFields(fields); err != nil {
		return nil, err
	}
	if other, err := s.postRepo.GetByTitle(fields.Title); err == nil && other.ID != id {
		return nil, ErrDuplicateTitle
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check title uniqueness: %w", err)
	}

	post.Title = fields.Title
	post.Subtitle = fields.Subtitle
	post.Body = fields.Body
	post.ImageURL = fields.ImageURL
	if err := s.postRepo.Update(post); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and all of its comments in one
// transaction.
func (s *ContentService) DeletePost(principal *models.User, id uint) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}
	post, err := s.GetPost(id)
	if err != nil {
		return err
	}
	if err := s.postRepo.DeleteWithComments(id); err != nil {
		return err
	}

	s.publish("post.deleted", post)
	return nil
}

// AddComment persists a comment on a post by an authenticated
// principal. The comment text is not preserved across the
// unauthenticated failure path; callers redirect to login and the
// submission is dropped.
func (s *ContentService) AddComment(principal *models.User, postID uint, text string) (*models.Comment, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}
	if text == "" {
		return nil, &ValidationError{Field: "comment", Reason: "is required"}
	}
	if _, err := s.GetPost(postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{Text: text, PosterID: principal.ID, PostID: postID}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// publish sends a post lifecycle event when a broker is configured.
// Publish failures are logged, never surfaced: the write has already
// committed and the event stream is best effort.
func (s *ContentService) publish(event string, post *models.BlogPost) {
	if s.publisher == nil {
		return
	}
	payload := map[string]interface{}{
		"postID": post.ID,
		"title":  post.Title,
		"author": post.AuthorID,
	}
	if err := s.publisher.Publish(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event for post %d: %v", event, post.ID, err)
	}
}
