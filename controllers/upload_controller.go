package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/classboard/filestore"
	"github.com/cppla/classboard/utils"
)

// UploadController relays uploaded files to object storage.
type UploadController struct {
	blobs filestore.BlobStore
}

// NewUploadController creates a new UploadController. blobs may be nil when
// storage is not configured; uploads then fail with 500.
func NewUploadController(blobs filestore.BlobStore) *UploadController {
	return &UploadController{blobs: blobs}
}

// Upload accepts the multipart field "file" and returns its public URL.
func (u *UploadController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, utils.MsgNoFile)
		return
	}
	if u.blobs == nil {
		utils.Sugar.Errorw("upload rejected: object storage is not configured", "filename", file.Filename)
		utils.Error(ctx, http.StatusInternalServerError, 50030, utils.MsgUploadFailed)
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.Sugar.Errorw("open uploaded file failed", "filename", file.Filename, "err", err)
		utils.Error(ctx, http.StatusInternalServerError, 50031, utils.MsgUploadFailed)
		return
	}
	defer src.Close()

	url, err := u.blobs.Put(ctx.Request.Context(), file.Filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		utils.Sugar.Errorw("store uploaded file failed", "filename", file.Filename, "size", file.Size, "err", err)
		utils.Error(ctx, http.StatusInternalServerError, 50032, utils.MsgUploadFailed)
		return
	}

	utils.Sugar.Infow("file uploaded", "filename", file.Filename, "size", file.Size, "url", url)
	utils.Success(ctx, gin.H{"url": url})
}
