package models

import "time"

// Comment is a dated reply attached to exactly one post.
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PostID      uint      `gorm:"index;not null" json:"postId"`
	AuthorName  string    `gorm:"size:64;not null" json:"authorName"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	CommentDate time.Time `gorm:"not null" json:"commentDate"`
	CreatedAt   time.Time `json:"createdAt"`
}
