// Package seed fills the board with demo folders, posts and comments for
// local development.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/cppla/classboard/models"
	"github.com/cppla/classboard/repository"
)

// Options controls how much demo data is created.
type Options struct {
	Folders         int
	Posts           int
	CommentsPerPost int
	// Authors are picked at random for posts and comments.
	Authors []string
	// MaxDays spreads activity dates over the last MaxDays days.
	MaxDays int
	// Seed makes the output reproducible when non-zero.
	Seed int64
}

// Result counts what Run created.
type Result struct {
	Folders  int
	Posts    int
	Comments int
}

// Run creates demo content through the store.
func Run(ctx context.Context, store repository.ContentStore, opts Options) (Result, error) {
	if len(opts.Authors) == 0 {
		return Result{}, fmt.Errorf("seed: at least one author is required")
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	f := gofakeit.New(seed)
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -opts.MaxDays)

	var res Result
	folderIDs := make([]uint, 0, opts.Folders)
	for i := 0; i < opts.Folders; i++ {
		desc := f.Sentence(6)
		folder := models.Folder{
			Name:        f.Noun() + " " + f.Noun(),
			Description: &desc,
			Color:       f.HexColor(),
		}
		if err := store.CreateFolder(ctx, &folder); err != nil {
			return res, err
		}
		folderIDs = append(folderIDs, folder.ID)
		res.Folders++
	}

	for i := 0; i < opts.Posts; i++ {
		title := f.Sentence(4)
		desc := f.Paragraph(1, 3, 8, "\n")
		image := fmt.Sprintf("https://picsum.photos/seed/%s/800/600", f.UUID())
		post := models.Post{
			Title:       &title,
			Description: &desc,
			AuthorName:  f.RandomString(opts.Authors),
			UploadDate:  f.DateRange(start, end).UTC().Truncate(24 * time.Hour),
			ImageURL:    &image,
		}
		// about a third of the posts stay outside any folder
		if len(folderIDs) > 0 && f.Number(0, 2) > 0 {
			id := folderIDs[f.Number(0, len(folderIDs)-1)]
			post.FolderID = &id
		}
		if err := store.CreatePost(ctx, &post); err != nil {
			return res, err
		}
		res.Posts++

		for j := 0; j < opts.CommentsPerPost; j++ {
			comment := models.Comment{
				PostID:      post.ID,
				AuthorName:  f.RandomString(opts.Authors),
				Content:     f.Sentence(8),
				CommentDate: f.DateRange(post.UploadDate, end.Add(24*time.Hour)).UTC(),
			}
			if err := store.CreateComment(ctx, &comment); err != nil {
				return res, err
			}
			res.Comments++
		}
	}
	return res, nil
}
