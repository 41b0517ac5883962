package models

import "time"

// Post is a bulletin-board entry. UploadDate is the activity date chosen by
// the author and drives list ordering; CreatedAt is the record timestamp.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       *string   `gorm:"size:255" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	AuthorName  string    `gorm:"size:64;not null;index" json:"authorName"`
	UploadDate  time.Time `gorm:"not null;index" json:"uploadDate"`
	ImageURL    *string   `gorm:"size:1024" json:"imageUrl"`
	FolderID    *uint     `gorm:"index" json:"folderId"`
	CreatedAt   time.Time `json:"createdAt"`
	Comments    []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments"`
}
