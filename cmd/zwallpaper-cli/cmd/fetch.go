package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail <path>",
	Short: "Cache the thumbnail of a wallpaper and print its location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadCatalog(ctx); err != nil {
			return err
		}

		item, err := GetService().Item(args[0])
		if err != nil {
			return err
		}

		path, err := GetService().GetThumbnail(ctx, item)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <path>",
	Short: "Cache the full-resolution image and print its location",
	Long: `Download the full-resolution image into the local cache, print its
location and its resolution.

Examples:
  zwallpaper-cli fetch nature/sunset_4k.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadCatalog(ctx); err != nil {
			return err
		}

		item, err := GetService().Item(args[0])
		if err != nil {
			return err
		}

		preview, err := GetService().Preview(ctx, item)
		if err != nil {
			return err
		}
		fmt.Println(preview.FullPath)
		fmt.Println(preview.Info())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(thumbnailCmd)
	rootCmd.AddCommand(fetchCmd)
}
