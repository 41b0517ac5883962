// Package repository provides the persistence layer for folders, posts and comments.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/classboard/models"
)

var (
	// ErrNotFound is returned when the referenced row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidFolder is returned when a post names a folder that does not exist.
	ErrInvalidFolder = errors.New("folder does not exist")
)

// FolderPatch carries the fields of a partial folder update. Nil fields are
// left untouched. A supplied blank description clears it.
type FolderPatch struct {
	Name        *string
	Description *string
	Color       *string
}

// PostFilter narrows ListPosts.
type PostFilter struct {
	FolderID *uint
}

// Stats summarizes the board.
type Stats struct {
	FolderCount  int64 `json:"folderCount"`
	PostCount    int64 `json:"postCount"`
	CommentCount int64 `json:"commentCount"`
}

// ContentStore defines folder, post and comment operations.
type ContentStore interface {
	CreateFolder(ctx context.Context, folder *models.Folder) error
	ListFolders(ctx context.Context) ([]models.FolderSummary, error)
	GetFolder(ctx context.Context, id uint) (*models.Folder, error)
	UpdateFolder(ctx context.Context, id uint, patch FolderPatch) (*models.Folder, error)
	DeleteFolder(ctx context.Context, id uint) error

	CreatePost(ctx context.Context, post *models.Post) error
	ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error)
	GetPost(ctx context.Context, id uint) (*models.Post, error)
	DeletePost(ctx context.Context, id uint) error

	CreateComment(ctx context.Context, comment *models.Comment) error

	Stats(ctx context.Context) (Stats, error)
}

// GormContentStore implements ContentStore on top of GORM.
type GormContentStore struct {
	db *gorm.DB
}

// NewContentStore creates a ContentStore backed by db.
func NewContentStore(db *gorm.DB) *GormContentStore {
	return &GormContentStore{db: db}
}

var _ ContentStore = (*GormContentStore)(nil)

func commentsOldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

func (s *GormContentStore) CreateFolder(ctx context.Context, folder *models.Folder) error {
	if strings.TrimSpace(folder.Color) == "" {
		folder.Color = models.DefaultFolderColor
	}
	if err := s.db.WithContext(ctx).Create(folder).Error; err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

// ListFolders returns folders newest first, each with its post count.
func (s *GormContentStore) ListFolders(ctx context.Context) ([]models.FolderSummary, error) {
	db := s.db.WithContext(ctx)

	var folders []models.Folder
	if err := db.Order("created_at DESC, id DESC").Find(&folders).Error; err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	var counts []struct {
		FolderID uint
		N        int64
	}
	err := db.Model(&models.Post{}).
		Select("folder_id, COUNT(*) AS n").
		Where("folder_id IS NOT NULL").
		Group("folder_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("count folder posts: %w", err)
	}
	byFolder := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byFolder[c.FolderID] = c.N
	}
	summaries := make([]models.FolderSummary, 0, len(folders))
	for i := range folders {
		folders[i].PostCount = byFolder[folders[i].ID]
		summaries = append(summaries, folders[i].Summary())
	}
	return summaries, nil
}

// GetFolder returns the folder with its posts, newest first.
func (s *GormContentStore) GetFolder(ctx context.Context, id uint) (*models.Folder, error) {
	var folder models.Folder
	err := s.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC, id DESC") }).
		Preload("Posts.Comments", commentsOldestFirst).
		First(&folder, id).Error
	if err != nil {
		return nil, notFound("get folder", err)
	}
	if folder.Posts == nil {
		folder.Posts = []models.Post{}
	}
	folder.PostCount = int64(len(folder.Posts))
	return &folder, nil
}

func (s *GormContentStore) UpdateFolder(ctx context.Context, id uint, patch FolderPatch) (*models.Folder, error) {
	db := s.db.WithContext(ctx)

	var folder models.Folder
	if err := db.First(&folder, id).Error; err != nil {
		return nil, notFound("update folder", err)
	}

	updates := map[string]interface{}{}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		updates["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		if d := strings.TrimSpace(*patch.Description); d != "" {
			updates["description"] = d
		} else {
			updates["description"] = nil
		}
	}
	if patch.Color != nil && strings.TrimSpace(*patch.Color) != "" {
		updates["color"] = strings.TrimSpace(*patch.Color)
	}
	if len(updates) > 0 {
		if err := db.Model(&folder).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update folder: %w", err)
		}
	}

	if err := db.First(&folder, id).Error; err != nil {
		return nil, notFound("reload folder", err)
	}
	if err := db.Model(&models.Post{}).Where("folder_id = ?", id).Count(&folder.PostCount).Error; err != nil {
		return nil, fmt.Errorf("count folder posts: %w", err)
	}
	return &folder, nil
}

// DeleteFolder removes the folder and detaches its posts.
func (s *GormContentStore) DeleteFolder(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var folder models.Folder
		if err := tx.Select("id").First(&folder, id).Error; err != nil {
			return notFound("delete folder", err)
		}
		if err := tx.Model(&models.Post{}).Where("folder_id = ?", id).Update("folder_id", nil).Error; err != nil {
			return fmt.Errorf("detach folder posts: %w", err)
		}
		if err := tx.Delete(&models.Folder{}, id).Error; err != nil {
			return fmt.Errorf("delete folder: %w", err)
		}
		return nil
	})
}

func (s *GormContentStore) CreatePost(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if post.FolderID != nil {
			var n int64
			if err := tx.Model(&models.Folder{}).Where("id = ?", *post.FolderID).Count(&n).Error; err != nil {
				return fmt.Errorf("check folder: %w", err)
			}
			if n == 0 {
				return ErrInvalidFolder
			}
		}
		if err := tx.Create(post).Error; err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		if post.Comments == nil {
			post.Comments = []models.Comment{}
		}
		return nil
	})
}

// ListPosts returns posts by activity date, newest first, with their comments.
func (s *GormContentStore) ListPosts(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	q := s.db.WithContext(ctx).Preload("Comments", commentsOldestFirst)
	if filter.FolderID != nil {
		q = q.Where("folder_id = ?", *filter.FolderID)
	}

	posts := []models.Post{}
	if err := q.Order("upload_date DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *GormContentStore) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("Comments", commentsOldestFirst).First(&post, id).Error; err != nil {
		return nil, notFound("get post", err)
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	return &post, nil
}

// DeletePost removes the post together with its comments.
func (s *GormContentStore) DeletePost(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, id).Error; err != nil {
			return notFound("delete post", err)
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete post comments: %w", err)
		}
		if err := tx.Delete(&models.Post{}, id).Error; err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	})
}

// CreateComment adds a comment under an existing post.
func (s *GormContentStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Post{}).Where("id = ?", comment.PostID).Count(&n).Error; err != nil {
			return fmt.Errorf("check post: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		return nil
	})
}

func (s *GormContentStore) Stats(ctx context.Context) (Stats, error) {
	db := s.db.WithContext(ctx)
	var st Stats
	if err := db.Model(&models.Folder{}).Count(&st.FolderCount).Error; err != nil {
		return Stats{}, fmt.Errorf("count folders: %w", err)
	}
	if err := db.Model(&models.Post{}).Count(&st.PostCount).Error; err != nil {
		return Stats{}, fmt.Errorf("count posts: %w", err)
	}
	if err := db.Model(&models.Comment{}).Count(&st.CommentCount).Error; err != nil {
		return Stats{}, fmt.Errorf("count comments: %w", err)
	}
	return st, nil
}

func notFound(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
