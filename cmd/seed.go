package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/marcus/tabsync/internal/config"
	"github.com/marcus/tabsync/internal/feed"
	"github.com/marcus/tabsync/internal/output"
	"github.com/spf13/cobra"
)

// seedIfEmpty seeds an empty feed with n activities and returns the count.
func seedIfEmpty(ctx context.Context, store *feed.Store, n int) (int, error) {
	if err := store.Seed(ctx, n, time.Now()); err != nil {
		return 0, err
	}
	return store.Count(ctx)
}

// openFeed opens the configured feed database.
func openFeed() (*feed.Store, error) {
	baseDir := getBaseDir()
	cfg, err := config.Load(baseDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return feed.Open(cfg.FeedDBPath(baseDir))
}

var seedCmd = &cobra.Command{
	Use:     "seed",
	Short:   "Fill an empty feed with demo activity",
	GroupID: "data",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("count")
		if n <= 0 {
			output.Error("count must be positive")
			return fmt.Errorf("invalid count %d", n)
		}

		store, err := openFeed()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer store.Close()

		before, err := store.Count(cmd.Context())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if before > 0 {
			output.Info("feed already has %d activities", before)
			return nil
		}

		total, err := seedIfEmpty(cmd.Context(), store, n)
		if err != nil {
			output.Error("seed feed: %v", err)
			return err
		}
		output.Success("seeded %d activities", total)
		return nil
	},
}

var feedCmd = &cobra.Command{
	Use:     "feed",
	Short:   "Print recent activity",
	GroupID: "data",
	RunE: func(cmd *cobra.Command, args []string) error {
		verb, _ := cmd.Flags().GetString("verb")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		asJSON, _ := cmd.Flags().GetBool("json")

		store, err := openFeed()
		if err != nil {
			if asJSON {
				output.JSONError(output.ErrCodeDatabaseError, err.Error())
			} else {
				output.Error("%v", err)
			}
			return err
		}
		defer store.Close()

		items, err := store.ListByVerb(cmd.Context(), verb, offset, limit)
		if err != nil {
			if asJSON {
				output.JSONError(output.ErrCodeDatabaseError, err.Error())
			} else {
				output.Error("%v", err)
			}
			return err
		}

		if asJSON {
			return output.JSON(items)
		}
		if len(items) == 0 {
			output.Info("no activity yet (run: tabsync seed)")
			return nil
		}
		for _, a := range items {
			fmt.Println(output.FormatActivity(a))
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().IntP("count", "n", defaultSeed, "number of activities to insert")
	feedCmd.Flags().String("verb", "", "only show this verb, e.g. minted")
	feedCmd.Flags().IntP("limit", "l", 20, "maximum entries")
	feedCmd.Flags().Int("offset", 0, "entries to skip")
	feedCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(seedCmd, feedCmd)
}
