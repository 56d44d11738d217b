package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/rajasunrise/inkwell/internal/models"
)

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{db: db}
}

// GetAll retrieves every post in creation order with its author loaded.
func (r *GORMPostRepository) GetAll() ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := r.db.Preload("Author").Order("id").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetByID retrieves a single post with its author, comments, and each
// comment's poster loaded.
func (r *GORMPostRepository) GetByID(id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.Preload("Author").Preload("Comments").Preload("Comments.Poster").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get post by ID %d: %w", id, translate(err))
	}
	return &post, nil
}

// GetByTitle retrieves a post by its exact title.
func (r *GORMPostRepository) GetByTitle(title string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.First(&post, "title = ?", title).Error; err != nil {
		return nil, fmt.Errorf("failed to get post by title %q: %w", title, translate(err))
	}
	return &post, nil
}

// Create persists a new post. The unique index on title is the
// authoritative guard against concurrent duplicate titles.
func (r *GORMPostRepository) Create(post *models.BlogPost) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", translate(err))
	}
	return nil
}

// Update overwrites the mutable columns of an existing post. Date and
// author are intentionally not part of the update set.
func (r *GORMPostRepository) Update(post *models.BlogPost) error {
	err := r.db.Model(&models.BlogPost{ID: post.ID}).Updates(map[string]interface{}{
		"title":     post.Title,
		"subtitle":  post.Subtitle,
		"body":      post.Body,
		"image_url": post.ImageURL,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update post %d: %w", post.ID, translate(err))
	}
	return nil
}

// DeleteWithComments removes a post and all of its comments in one
// transaction so no orphan comments can remain.
func (r *GORMPostRepository) DeleteWithComments(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments of post %d: %w", id, err)
		}
		if err := tx.Delete(&models.BlogPost{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete post %d: %w", id, err)
		}
		return nil
	})
}
