package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cppla/classboard/config"
	"github.com/cppla/classboard/filestore"
	"github.com/cppla/classboard/repository"
	"github.com/cppla/classboard/routes"
	"github.com/cppla/classboard/utils"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	rc := utils.NewRedisClient(cfg)
	if rc != nil {
		defer func() { _ = rc.Close() }()
	}

	store := repository.NewContentStore(db)
	revoker := utils.NewRevoker(rc)
	deps := routes.Dependencies{
		Store:     store,
		Directory: utils.NewDirectory(cfg.Teacher, cfg.Students),
		Sessions:  utils.NewSessionCodec(cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction(), revoker),
		Cache:     utils.NewCache(rc, time.Hour),
	}
	if cfg.S3Bucket != "" {
		blobs, err := filestore.NewS3Store(ctx, filestore.S3Config{
			Bucket:        cfg.S3Bucket,
			BasePath:      cfg.S3BasePath,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicBaseURL,
			UsePathStyle:  cfg.S3UsePathStyle,
		})
		if err != nil {
			return err
		}
		deps.Blobs = blobs
	} else {
		utils.Sugar.Warn("s3.bucket is not set; uploads will fail")
	}

	r := routes.SetupRouter(cfg, deps)

	scheduler, err := newHousekeeping(store, revoker)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.Serve(ctx, ":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Errorf("server stopped with error: %v", err)
		return err
	}
	return nil
}

// newHousekeeping schedules the background jobs that run alongside the server.
func newHousekeeping(store repository.ContentStore, revoker *utils.Revoker) (*utils.Scheduler, error) {
	s := utils.NewScheduler()
	if err := s.Every("sweep-revoked-sessions", 10*time.Minute, func(ctx context.Context) error {
		if n := revoker.Sweep(); n > 0 {
			utils.Sugar.Debugw("revoked sessions held in memory", "count", n)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if err := s.Every("board-stats", time.Hour, func(ctx context.Context) error {
		st, err := store.Stats(ctx)
		if err != nil {
			return err
		}
		utils.Sugar.Infow("board stats", "folders", st.FolderCount, "posts", st.PostCount, "comments", st.CommentCount)
		return nil
	}); err != nil {
		return nil, err
	}
	return s, nil
}
