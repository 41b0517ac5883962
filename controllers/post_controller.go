package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/classboard/models"
	"github.com/cppla/classboard/repository"
	"github.com/cppla/classboard/utils"
)

// PostController manages posts and their comments.
type PostController struct {
	store repository.ContentStore
	cache *utils.Cache
}

// NewPostController creates a new PostController instance. cache may be nil.
func NewPostController(store repository.ContentStore, cache *utils.Cache) *PostController {
	return &PostController{store: store, cache: cache}
}

// ListPosts returns posts by activity date, newest first, optionally for one folder.
func (p *PostController) ListPosts(ctx *gin.Context) {
	var filter repository.PostFilter
	cacheKey := utils.CacheKeyPostList + "all"
	if raw := strings.TrimSpace(ctx.Query("folderId")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			utils.Error(ctx, http.StatusBadRequest, 40012, utils.MsgInvalidFolderID)
			return
		}
		folderID := uint(id)
		filter.FolderID = &folderID
		cacheKey = utils.CacheKeyPostList + "folder=" + raw
	}

	if serveCached(ctx, p.cache, cacheKey) {
		return
	}
	posts, err := p.store.ListPosts(ctx.Request.Context(), filter)
	if err != nil {
		storeFailure(ctx, err, 0, "", 50020, "list posts")
		return
	}
	p.cache.SetJSON(ctx.Request.Context(), cacheKey, posts)
	utils.Success(ctx, posts)
}

// CreatePost stores a new post. authorName and uploadDate are required.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		AuthorName  string  `json:"authorName"`
		UploadDate  string  `json:"uploadDate"`
		ImageURL    *string `json:"imageUrl"`
		FolderID    *uint   `json:"folderId"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, utils.MsgInvalidPayload)
		return
	}

	author := utils.CleanText(req.AuthorName)
	if author == "" || strings.TrimSpace(req.UploadDate) == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, utils.MsgPostFieldsMissing)
		return
	}
	uploadDate, err := utils.ParseActivityDate(req.UploadDate)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, utils.MsgInvalidDate)
		return
	}

	post := models.Post{
		Title:       utils.CleanOptional(req.Title),
		Description: utils.CleanOptional(req.Description),
		AuthorName:  author,
		UploadDate:  uploadDate,
		ImageURL:    trimOptional(req.ImageURL),
		FolderID:    req.FolderID,
	}
	if err := p.store.CreatePost(ctx.Request.Context(), &post); err != nil {
		if errors.Is(err, repository.ErrInvalidFolder) {
			utils.Error(ctx, http.StatusBadRequest, 40023, utils.MsgFolderNotFound)
			return
		}
		storeFailure(ctx, err, 0, "", 50021, "create post")
		return
	}

	p.invalidate(ctx, post.FolderID != nil)
	utils.Created(ctx, post)
}

// GetPost returns one post with its comments, oldest first.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40024, utils.MsgInvalidPostID)
		return
	}
	key := utils.CacheKeyPostDetail + strconv.FormatUint(uint64(id), 10)
	if serveCached(ctx, p.cache, key) {
		return
	}

	post, err := p.store.GetPost(ctx.Request.Context(), id)
	if err != nil {
		storeFailure(ctx, err, 40402, utils.MsgPostNotFound, 50022, "get post")
		return
	}
	p.cache.SetJSON(ctx.Request.Context(), key, post)
	utils.Success(ctx, post)
}

// DeletePost removes a post and its comments. Routed behind TeacherRequired.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40024, utils.MsgInvalidPostID)
		return
	}
	if err := p.store.DeletePost(ctx.Request.Context(), id); err != nil {
		storeFailure(ctx, err, 40402, utils.MsgPostNotFound, 50023, "delete post")
		return
	}

	p.invalidate(ctx, true)
	utils.Success(ctx, gin.H{"message": "게시물이 삭제되었습니다."})
}

// CreateComment adds a comment to an existing post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40024, utils.MsgInvalidPostID)
		return
	}
	var req struct {
		AuthorName  string `json:"authorName"`
		Content     string `json:"content"`
		CommentDate string `json:"commentDate"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40025, utils.MsgInvalidPayload)
		return
	}

	author := utils.CleanText(req.AuthorName)
	content := utils.CleanText(req.Content)
	if author == "" || content == "" || strings.TrimSpace(req.CommentDate) == "" {
		utils.Error(ctx, http.StatusBadRequest, 40026, utils.MsgCommentFields)
		return
	}
	commentDate, err := utils.ParseActivityDate(req.CommentDate)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, utils.MsgInvalidDate)
		return
	}

	comment := models.Comment{
		PostID:      id,
		AuthorName:  author,
		Content:     content,
		CommentDate: commentDate,
	}
	if err := p.store.CreateComment(ctx.Request.Context(), &comment); err != nil {
		storeFailure(ctx, err, 40402, utils.MsgPostNotFound, 50024, "create comment")
		return
	}

	p.invalidate(ctx, true)
	utils.Created(ctx, comment)
}

// invalidate drops cached post views; folder views embed posts as well.
func (p *PostController) invalidate(ctx *gin.Context, folders bool) {
	prefixes := []string{utils.CacheKeyPostList, utils.CacheKeyPostDetail}
	if folders {
		prefixes = append(prefixes, utils.CacheKeyFolderList, utils.CacheKeyFolderPages)
	}
	p.cache.InvalidateByPrefix(ctx.Request.Context(), prefixes...)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
