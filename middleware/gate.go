package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

var gateExemptPrefixes = []string{"/api/", "/static/"}

var gateExemptPaths = map[string]bool{
	"/api":         true,
	"/health":      true,
	"/metrics":     true,
	"/favicon.ico": true,
}

// PageGate keeps anonymous visitors on the login page and signed-in users off it.
// It must run after LoadSession.
func PageGate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if gateExempt(path) {
			ctx.Next()
			return
		}

		_, authenticated := CurrentSession(ctx)
		onLogin := path == LoginPath

		switch {
		case !authenticated && !onLogin:
			ctx.Redirect(http.StatusTemporaryRedirect, LoginPath)
			ctx.Abort()
		case authenticated && onLogin:
			ctx.Redirect(http.StatusTemporaryRedirect, HomePath)
			ctx.Abort()
		default:
			ctx.Next()
		}
	}
}

func gateExempt(path string) bool {
	if gateExemptPaths[path] {
		return true
	}
	for _, p := range gateExemptPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
