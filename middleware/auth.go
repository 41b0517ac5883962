package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/classboard/utils"
)

// ContextSessionKey is the key used to store the verified session in Gin context.
const ContextSessionKey = "session"

// LoadSession verifies the session cookie, if any, and stores its claims in
// the context. It never rejects a request; a missing, forged, expired or
// revoked cookie simply leaves the request anonymous.
func LoadSession(codec *utils.SessionCodec) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := codec.FromRequest(ctx)
		if err == nil {
			ctx.Set(ContextSessionKey, claims)
		} else if !errors.Is(err, utils.ErrNoSession) {
			utils.Sugar.Debugw("ignoring invalid session cookie", "path", ctx.Request.URL.Path, "err", err)
		}
		ctx.Next()
	}
}

// CurrentSession returns the session loaded by LoadSession.
func CurrentSession(ctx *gin.Context) (*utils.SessionClaims, bool) {
	v, ok := ctx.Get(ContextSessionKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.SessionClaims)
	return claims, ok && claims != nil
}

// AuthRequired rejects anonymous requests.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := CurrentSession(ctx); !ok {
			utils.Error(ctx, http.StatusUnauthorized, 40101, utils.MsgUnauthorized)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// TeacherRequired rejects anonymous requests with 401 and students with 403.
func TeacherRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := CurrentSession(ctx)
		if !ok {
			utils.Error(ctx, http.StatusUnauthorized, 40101, utils.MsgUnauthorized)
			ctx.Abort()
			return
		}
		if !claims.Account().IsTeacher() {
			utils.Error(ctx, http.StatusForbidden, 40301, utils.MsgTeacherOnly)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
