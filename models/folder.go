package models

import "time"

// DefaultFolderColor is applied when a folder is created without a color.
const DefaultFolderColor = "#3B82F6"

// Folder is an optional grouping label for posts. Deleting a folder keeps its
// posts and clears their folder reference.
type Folder struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Color       string    `gorm:"size:16;not null;default:'#3B82F6'" json:"color"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Posts       []Post    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"posts"`
	PostCount   int64     `gorm:"-" json:"postCount"`
}

// FolderSummary is a folder as it appears in listings and write responses,
// without its posts.
type FolderSummary struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	PostCount   int64     `json:"postCount"`
}

// Summary drops the posts from the folder.
func (f *Folder) Summary() FolderSummary {
	return FolderSummary{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Color:       f.Color,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
		PostCount:   f.PostCount,
	}
}
