package repositories

import "github.com/rajasunrise/inkwell/internal/models"

// PostRepository defines the interface for blog post data access.
type PostRepository interface {
	GetAll() ([]models.BlogPost, error)
	GetByID(id uint) (*models.BlogPost, error)
	GetByTitle(title string) (*models.BlogPost, error)
	Create(post *models.BlogPost) error
	Update(post *models.BlogPost) error
	DeleteWithComments(id uint) error
}

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(comment *models.Comment) error
	ListByPost(postID uint) ([]models.Comment, error)
}
