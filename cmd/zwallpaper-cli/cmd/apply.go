package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"zwallpaper/internal/application/commands"
	"zwallpaper/internal/config"
)

var downloadDest string

var applyCmd = &cobra.Command{
	Use:   "apply <path>",
	Short: "Set a wallpaper as the desktop background",
	Long: `Fetch the full-resolution image (unless cached) and set it as the
desktop background using the mechanism of the current platform.

Examples:
  zwallpaper-cli apply nature/sunset_4k.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadCatalog(ctx); err != nil {
			return err
		}

		result, err := commands.NewApplyCommand(GetService(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download <path>",
	Short: "Save the full-resolution image to a directory",
	Long: `Copy the full-resolution image out of the cache into a directory,
fetching it first when needed. The directory is created if missing.

Examples:
  zwallpaper-cli download space/nebula_8k.png
  zwallpaper-cli download space/nebula_8k.png --dest ~/Pictures`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadCatalog(ctx); err != nil {
			return err
		}

		dest := config.ExpandPath(downloadDest)
		result, err := commands.NewDownloadCommand(GetService(), args[0], dest).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadDest, "dest", "d", "", "destination directory (default from config)")
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(downloadCmd)
}
