package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"zwallpaper/internal/application"
	"zwallpaper/internal/application/commands"
	"zwallpaper/internal/domain"
)

var (
	prefetchTier    string
	prefetchWorkers int
)

var prefetchCmd = &cobra.Command{
	Use:   "prefetch [category]",
	Short: "Fill the cache for a whole category",
	Long: `Fetch every image of a category (or of the whole collection) into the
cache, so browsing later works without waiting on the network.

Examples:
  zwallpaper-cli prefetch
  zwallpaper-cli prefetch nature --tier wallpapers --workers 8`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tier, err := domain.ParseTier(prefetchTier)
		if err != nil {
			return err
		}

		ctx := context.Background()
		if err := loadCatalog(ctx); err != nil {
			return err
		}

		category := domain.AllCategories
		if len(args) == 1 {
			category = args[0]
		}
		items, err := commands.NewListItemsCommand(GetService(), category).Execute(ctx)
		if err != nil {
			return err
		}

		result := GetService().Prefetch(ctx, items, tier, prefetchWorkers)

		failed := make([]string, 0, len(result.Failed))
		for path := range result.Failed {
			failed = append(failed, path)
		}
		sort.Strings(failed)
		for _, path := range failed {
			fmt.Printf("failed: %s: %v\n", path, result.Failed[path])
		}

		fmt.Printf("Fetched %d of %d %s\n", result.Fetched, len(items), tier)
		if len(failed) > 0 {
			return fmt.Errorf("%d downloads failed", len(failed))
		}
		return nil
	},
}

func init() {
	prefetchCmd.Flags().StringVar(&prefetchTier, "tier", "thumbnails", "thumbnails or wallpapers")
	prefetchCmd.Flags().IntVar(&prefetchWorkers, "workers", application.DefaultPrefetchWorkers, "concurrent downloads")
	rootCmd.AddCommand(prefetchCmd)
}
