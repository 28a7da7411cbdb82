package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"zwallpaper/internal/application"
	"zwallpaper/internal/config"
	"zwallpaper/internal/logging"
	"zwallpaper/internal/wiring"
)

var (
	collectionID string
	logLevel     string
	cfg          *config.Config
	logger       *log.Logger
	stack        *wiring.Stack
)

var rootCmd = &cobra.Command{
	Use:   "zwallpaper-cli",
	Short: "CLI for browsing and applying wallpapers from an archive.org collection",
	Long: `zwallpaper-cli browses a wallpaper collection hosted on archive.org.

It lists categories and wallpapers, fetches thumbnails and full images
into the local cache, sets the desktop background, and serves the
catalog over a small HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.FromEnvironment()
		if err != nil {
			return err
		}
		if logLevel == "" {
			logLevel = cfg.Log.Level
		}
		logger = logging.New(os.Stderr, logLevel)

		stack, err = wiring.Build(cfg, collectionID, logger)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if stack != nil {
			return stack.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, application.StatusMessage(err))
		if stack != nil {
			stack.Close()
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&collectionID, "collection", "c", "", "archive.org collection (default from config or ZWALLPAPER_COLLECTION)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn, error or off")
}

// GetService returns the initialized catalog service
func GetService() *application.CatalogService {
	return stack.Service
}

// loadCatalog fetches the manifest; every catalog command starts here
func loadCatalog(ctx context.Context) error {
	_, status, err := GetService().RefreshCatalog(ctx)
	if err != nil {
		return err
	}
	logger.Debug(status)
	return nil
}
