package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cppla/classboard/repository"
	"github.com/cppla/classboard/utils"
)

// parseID reads a positive numeric path parameter.
func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// storeFailure maps a store error to 404 or a logged 500.
func storeFailure(ctx *gin.Context, err error, notFoundCode int, notFoundMsg string, serverCode int, op string) {
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, notFoundCode, notFoundMsg)
		return
	}
	utils.Sugar.Errorw(op+" failed", "path", ctx.Request.URL.Path, "err", err)
	utils.Error(ctx, http.StatusInternalServerError, serverCode, utils.MsgServerError)
}

// serveCached writes a cached JSON body and reports whether it did.
func serveCached(ctx *gin.Context, cache *utils.Cache, key string) bool {
	b, ok := cache.GetBytes(ctx.Request.Context(), key)
	if !ok {
		return false
	}
	ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
	return true
}
