package models

// Comment represents a reply left on a blog post. Comments are never
// edited or deleted on their own; they only disappear when their post
// is deleted.
type Comment struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Text string `json:"text" gorm:"type:text;not null" validate:"required"`

	PosterID uint `json:"poster_id" gorm:"not null;index"`
	Poster   User `json:"poster" gorm:"foreignKey:PosterID"`
	PostID   uint `json:"post_id" gorm:"not null;index"`
}
