package routes

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cppla/classboard/config"
	"github.com/cppla/classboard/controllers"
	"github.com/cppla/classboard/filestore"
	"github.com/cppla/classboard/middleware"
	"github.com/cppla/classboard/repository"
	"github.com/cppla/classboard/utils"
)

// Dependencies are the long-lived components the HTTP surface is built from.
type Dependencies struct {
	Store     repository.ContentStore
	Directory *utils.Directory
	Sessions  *utils.SessionCodec
	Blobs     filestore.BlobStore // nil disables uploads
	Cache     *utils.Cache        // nil disables response caching
	Metrics   *middleware.Metrics // nil creates a fresh registry
}

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(cfg config.AppConfig, deps Dependencies) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log goes to its own rolling file; fall back to the app logger
	accessLog := utils.Logger
	if cfg.GinPath != "" {
		gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
		if err == nil {
			accessLog = gl
		} else {
			utils.Sugar.Warnw("gin access log unavailable, using app logger", "path", cfg.GinPath, "err", err)
		}
	}
	r.Use(utils.Ginzap(accessLog, time.RFC3339, true))
	r.Use(utils.RecoveryWithZap(accessLog, true))

	metrics := deps.Metrics
	if metrics == nil {
		metrics = middleware.NewMetrics("classboard")
	}
	r.Use(metrics.Middleware())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		// credentials cannot be combined with a literal "*"
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Use(middleware.LoadSession(deps.Sessions))

	staticDir := cfg.StaticDir
	page := func(name string) gin.HandlerFunc {
		file := filepath.Join(staticDir, name)
		return func(c *gin.Context) {
			c.File(file)
		}
	}

	r.Static("/static", staticDir)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	pages := r.Group("", middleware.PageGate())
	pages.GET("/", page("index.html"))
	pages.GET("/login", page("login.html"))
	pages.GET("/upload", page("upload.html"))
	pages.GET("/posts/:id", page("post.html"))

	authController := controllers.NewAuthController(deps.Directory, deps.Sessions, metrics)
	folderController := controllers.NewFolderController(deps.Store, deps.Cache)
	postController := controllers.NewPostController(deps.Store, deps.Cache)
	uploadController := controllers.NewUploadController(deps.Blobs)
	statsController := controllers.NewStatsController(deps.Store)

	api := r.Group("/api")

	// only credential guesses are throttled; /me runs on every page load
	authGroup := api.Group("/auth")
	authGroup.POST("/login", middleware.RateLimit(cfg.RateLimitPerMinute), authController.Login)
	authGroup.GET("/me", authController.Me)
	authGroup.POST("/logout", authController.Logout)

	folders := api.Group("/folders")
	folders.GET("", folderController.ListFolders)
	folders.POST("", folderController.CreateFolder)
	folders.GET("/:id", folderController.GetFolder)
	folders.PUT("/:id", folderController.UpdateFolder)
	folders.DELETE("/:id", folderController.DeleteFolder)

	posts := api.Group("/posts")
	posts.GET("", postController.ListPosts)
	posts.POST("", postController.CreatePost)
	posts.GET("/:id", postController.GetPost)
	posts.DELETE("/:id", middleware.TeacherRequired(), postController.DeletePost)
	posts.POST("/:id/comments", postController.CreateComment)

	api.POST("/upload", uploadController.Upload)
	api.GET("/stats", statsController.GetStats)

	r.NoRoute(middleware.PageGate(), func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if path == "/api" || strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, utils.MsgRouteNotFound)
			return
		}
		if path == "/favicon.ico" || strings.HasPrefix(path, "/static/") {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "static asset not found"})
			return
		}
		// everything else falls back to the app entry page
		ctx.Status(http.StatusOK)
		ctx.File(filepath.Join(staticDir, "index.html"))
	})

	return r
}
