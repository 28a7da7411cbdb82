package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"zwallpaper/internal/domain"
)

var cacheTier string

var cacheCmd = &cobra.Command{
	Use:   "cache [stats|list|clear|sync]",
	Short: "Inspect and manage the local image cache",
	Long: `Inspect and manage the local image cache.

The cache keeps thumbnails and full-resolution images under the
application directory. A SQLite ledger tracks what is stored.

Examples:
  zwallpaper-cli cache stats
  zwallpaper-cli cache list --tier thumbnails
  zwallpaper-cli cache clear --tier wallpapers`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cached file counts and sizes per tier",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := stack.Index.Stats()
		if err != nil {
			return err
		}

		for _, tier := range []domain.Tier{domain.TierThumbnail, domain.TierFull} {
			fmt.Printf("%-12s %6d files  %s\n", tier, stats.Entries[tier], humanBytes(stats.Bytes[tier]))
		}
		entries, bytes := stats.Total()
		fmt.Printf("%-12s %6d files  %s\n", "total", entries, humanBytes(bytes))
		fmt.Printf("location     %s\n", stack.Cache.Root())
		return nil
	},
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tiers, err := selectedTiers()
		if err != nil {
			return err
		}

		for _, tier := range tiers {
			entries, err := stack.Index.List(tier)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%s/%s  %s  %s\n", e.Tier, e.FileName, humanBytes(e.Size), e.StoredAt.Format(time.DateTime))
			}
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tiers, err := selectedTiers()
		if err != nil {
			return err
		}

		if err := stack.Cache.Clear(tiers...); err != nil {
			return err
		}
		fmt.Println("Cache cleared")
		return nil
	},
}

var cacheSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the cache ledger with the files on disk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := stack.Index.Sync(stack.Cache.Dirs())
		if err != nil {
			return err
		}
		fmt.Printf("Scanned %d files: %d added, %d removed (%s)\n",
			stats.FilesScanned, stats.EntriesAdded, stats.EntriesDeleted, stats.Duration.Round(time.Millisecond))
		return nil
	},
}

// selectedTiers returns the tier named by --tier, or both
func selectedTiers() ([]domain.Tier, error) {
	if cacheTier == "" {
		return []domain.Tier{domain.TierThumbnail, domain.TierFull}, nil
	}
	tier, err := domain.ParseTier(cacheTier)
	if err != nil {
		return nil, err
	}
	return []domain.Tier{tier}, nil
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func init() {
	cacheCmd.PersistentFlags().StringVar(&cacheTier, "tier", "", "thumbnails or wallpapers (default both)")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheSyncCmd)
	rootCmd.AddCommand(cacheCmd)
}
