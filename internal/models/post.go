package models

// DateLayout is the human-readable format posts are stamped with,
// e.g. "April 05, 2025". The date is captured once at creation and
// never rewritten by edits.
const DateLayout = "January 02, 2006"

// BlogPost represents a published article.
type BlogPost struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Title    string `json:"title" gorm:"uniqueIndex;type:varchar(250);not null" validate:"required"`
	Subtitle string `json:"subtitle" gorm:"type:varchar(250);not null" validate:"required"`
	Date     string `json:"date" gorm:"type:varchar(250);not null"`
	Body     string `json:"body" gorm:"type:text;not null" validate:"required"`
	ImageURL string `json:"img_url" gorm:"type:varchar(250);not null" validate:"required,url"`

	AuthorID uint      `json:"author_id" gorm:"not null;index"`
	Author   User      `json:"author" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"comments" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
