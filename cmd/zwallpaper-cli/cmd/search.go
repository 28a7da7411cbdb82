package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"zwallpaper/internal/application/commands"
)

var searchCategory string

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search wallpapers by file name",
	Long: `Search for wallpapers whose file name contains the query, ignoring case.

Examples:
  zwallpaper-cli search sunset
  zwallpaper-cli search 4k --category nature`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadCatalog(ctx); err != nil {
			return err
		}

		searchCmd := commands.NewSearchCommand(GetService(), args[0], searchCategory)
		result, err := searchCmd.Execute(ctx)
		if err != nil {
			return err
		}

		if len(result.Items) == 0 {
			fmt.Println("No results found")
			return nil
		}

		printItems(result.Items)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "only search this category")
	rootCmd.AddCommand(searchCmd)
}
