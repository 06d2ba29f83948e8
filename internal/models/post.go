package models

import "time"

// Post represents an article written by a single author.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   *string   `gorm:"type:text" json:"content"`
	Published bool      `gorm:"not null;default:false;index" json:"published"`
	AuthorID  uint      `gorm:"not null;index" json:"authorId"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostDetail is a post together with every comment attached to it.
// Comments is always encoded, even when empty.
type PostDetail struct {
	Post
	Comments []Comment `json:"comments"`
}
