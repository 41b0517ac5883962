package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cppla/classboard/models"
	"github.com/cppla/classboard/repository"
	"github.com/cppla/classboard/utils"
)

// FolderController manages folders.
type FolderController struct {
	store repository.ContentStore
	cache *utils.Cache
}

// NewFolderController creates a new FolderController instance. cache may be nil.
func NewFolderController(store repository.ContentStore, cache *utils.Cache) *FolderController {
	return &FolderController{store: store, cache: cache}
}

type folderRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// ListFolders returns all folders, newest first, with post counts.
func (f *FolderController) ListFolders(ctx *gin.Context) {
	if serveCached(ctx, f.cache, utils.CacheKeyFolderList) {
		return
	}
	folders, err := f.store.ListFolders(ctx.Request.Context())
	if err != nil {
		storeFailure(ctx, err, 0, "", 50010, "list folders")
		return
	}
	f.cache.SetJSON(ctx.Request.Context(), utils.CacheKeyFolderList, folders)
	utils.Success(ctx, folders)
}

// CreateFolder creates a folder; color falls back to the default.
func (f *FolderController) CreateFolder(ctx *gin.Context) {
	var req folderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, utils.MsgInvalidPayload)
		return
	}
	name := ""
	if req.Name != nil {
		name = utils.CleanText(*req.Name)
	}
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40011, utils.MsgFolderNameRequired)
		return
	}

	folder := models.Folder{
		Name:        name,
		Description: utils.CleanOptional(req.Description),
	}
	if req.Color != nil {
		folder.Color = utils.CleanText(*req.Color)
	}
	if err := f.store.CreateFolder(ctx.Request.Context(), &folder); err != nil {
		storeFailure(ctx, err, 0, "", 50011, "create folder")
		return
	}

	f.cache.InvalidateByPrefix(ctx.Request.Context(), utils.CacheKeyFolderList)
	utils.Created(ctx, folder.Summary())
}

// GetFolder returns a folder with its posts, newest first.
func (f *FolderController) GetFolder(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40012, utils.MsgInvalidFolderID)
		return
	}
	key := utils.CacheKeyFolderPages + strconv.FormatUint(uint64(id), 10)
	if serveCached(ctx, f.cache, key) {
		return
	}

	folder, err := f.store.GetFolder(ctx.Request.Context(), id)
	if err != nil {
		storeFailure(ctx, err, 40401, utils.MsgFolderNotFound, 50012, "get folder")
		return
	}
	f.cache.SetJSON(ctx.Request.Context(), key, folder)
	utils.Success(ctx, folder)
}

// UpdateFolder applies the supplied fields only. A blank name or color is ignored.
func (f *FolderController) UpdateFolder(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40012, utils.MsgInvalidFolderID)
		return
	}
	var req folderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, utils.MsgInvalidPayload)
		return
	}

	var patch repository.FolderPatch
	if req.Name != nil {
		name := utils.CleanText(*req.Name)
		patch.Name = &name
	}
	if req.Description != nil {
		desc := utils.CleanText(*req.Description)
		patch.Description = &desc
	}
	if req.Color != nil {
		color := utils.CleanText(*req.Color)
		patch.Color = &color
	}

	folder, err := f.store.UpdateFolder(ctx.Request.Context(), id, patch)
	if err != nil {
		storeFailure(ctx, err, 40401, utils.MsgFolderNotFound, 50013, "update folder")
		return
	}

	f.cache.InvalidateByPrefix(ctx.Request.Context(), utils.CacheKeyFolderList, utils.CacheKeyFolderPages)
	utils.Success(ctx, folder.Summary())
}

// DeleteFolder removes a folder; its posts stay and lose the folder reference.
func (f *FolderController) DeleteFolder(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40012, utils.MsgInvalidFolderID)
		return
	}
	if err := f.store.DeleteFolder(ctx.Request.Context(), id); err != nil {
		storeFailure(ctx, err, 40401, utils.MsgFolderNotFound, 50014, "delete folder")
		return
	}

	// posts embed folderId, so their cached copies are stale too
	f.cache.InvalidateByPrefix(ctx.Request.Context(),
		utils.CacheKeyFolderList, utils.CacheKeyFolderPages,
		utils.CacheKeyPostList, utils.CacheKeyPostDetail,
	)
	utils.Success(ctx, gin.H{"success": true})
}
