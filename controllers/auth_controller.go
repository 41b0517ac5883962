package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/classboard/middleware"
	"github.com/cppla/classboard/utils"
)

// AuthController handles roster login and the session cookie.
type AuthController struct {
	directory *utils.Directory
	sessions  *utils.SessionCodec
	metrics   *middleware.Metrics
}

// NewAuthController creates a new AuthController instance. metrics may be nil.
func NewAuthController(directory *utils.Directory, sessions *utils.SessionCodec, metrics *middleware.Metrics) *AuthController {
	return &AuthController{directory: directory, sessions: sessions, metrics: metrics}
}

// Login checks name and code against the roster and sets the session cookie.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		a.metrics.ObserveLogin("invalid")
		utils.Error(ctx, http.StatusBadRequest, 40001, utils.MsgInvalidPayload)
		return
	}
	if req.Name == "" || req.Code == "" {
		a.metrics.ObserveLogin("invalid")
		utils.Error(ctx, http.StatusBadRequest, 40002, utils.MsgLoginFieldsMissing)
		return
	}

	account, ok := a.directory.VerifyLogin(req.Name, req.Code)
	if !ok {
		a.metrics.ObserveLogin("failure")
		utils.Sugar.Infow("login rejected", "ip", ctx.ClientIP())
		utils.Error(ctx, http.StatusUnauthorized, 40106, utils.MsgLoginFailed)
		return
	}

	token, _, err := a.sessions.Issue(account)
	if err != nil {
		utils.Sugar.Errorw("issue session failed", "err", err)
		utils.Error(ctx, http.StatusInternalServerError, 50001, utils.MsgServerError)
		return
	}
	a.sessions.SetCookie(ctx, token)
	a.metrics.ObserveLogin("success")

	utils.Success(ctx, gin.H{"user": account})
}

// Me returns the signed-in account, or null.
func (a *AuthController) Me(ctx *gin.Context) {
	claims, ok := middleware.CurrentSession(ctx)
	if !ok {
		utils.Success(ctx, gin.H{"user": nil})
		return
	}
	utils.Success(ctx, gin.H{"user": claims.Account()})
}

// Logout revokes the current session and clears the cookie.
func (a *AuthController) Logout(ctx *gin.Context) {
	if claims, ok := middleware.CurrentSession(ctx); ok {
		a.sessions.Revoke(ctx.Request.Context(), claims)
	}
	a.sessions.ClearCookie(ctx)
	utils.Success(ctx, gin.H{"success": true})
}
