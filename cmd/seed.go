package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cppla/classboard/config"
	"github.com/cppla/classboard/repository"
	"github.com/cppla/classboard/seed"
	"github.com/cppla/classboard/utils"
)

// NewSeedCmd creates the seed command
func NewSeedCmd() *cobra.Command {
	opts := seed.Options{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the board with demo folders, posts and comments",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := utils.InitLogger(cfg); err != nil {
				return err
			}
			db, err := config.OpenDatabase(cfg)
			if err != nil {
				return err
			}
			if err := config.Migrate(db); err != nil {
				return err
			}

			opts.Authors = make([]string, 0, len(cfg.Students))
			for _, s := range cfg.Students {
				opts.Authors = append(opts.Authors, s.Name)
			}
			res, err := seed.Run(cmd.Context(), repository.NewContentStore(db), opts)
			if err != nil {
				cmd.PrintErrf("Seeding failed after %d posts: %v\n", res.Posts, err)
				return err
			}
			cmd.Printf("Created %d folders, %d posts, %d comments\n", res.Folders, res.Posts, res.Comments)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Folders, "folders", 3, "number of folders to create")
	cmd.Flags().IntVar(&opts.Posts, "posts", 20, "number of posts to create")
	cmd.Flags().IntVar(&opts.CommentsPerPost, "comments", 2, "comments per post")
	cmd.Flags().IntVar(&opts.MaxDays, "max-days", 90, "spread activity dates over this many past days")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 picks one)")
	return cmd
}
