package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"zwallpaper/internal/application/commands"
	"zwallpaper/internal/domain"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with their wallpaper counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := loadCatalog(ctx); err != nil {
			return err
		}

		for _, c := range GetService().ListCategories() {
			fmt.Printf("%-24s %d\n", c.Name, c.Count)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List wallpapers",
	Long: `List wallpapers in one category, or in every category.

Each line shows the item path, used by the other commands to address
a wallpaper, followed by its display name.

Examples:
  zwallpaper-cli list
  zwallpaper-cli list nature`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		printItems(items)
		return nil
	},
}

func printItems(items []domain.CatalogItem) {
	for _, i := range items {
		fmt.Printf("%s  %s\n", i.Path, i.DisplayName)
	}
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(listCmd)
}
