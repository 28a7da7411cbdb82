package commands

import (
	"context"
	"fmt"

	"zwallpaper/internal/application"
	"zwallpaper/internal/domain"
)

// ListItemsCommand lists the wallpapers of one category
type ListItemsCommand struct {
	catalog  Catalog
	Category string
}

// NewListItemsCommand creates a new ListItemsCommand
func NewListItemsCommand(catalog Catalog, category string) *ListItemsCommand {
	return &ListItemsCommand{
		catalog:  catalog,
		Category: category,
	}
}

// Execute runs the list items command. Unlike SelectCategory, an unknown
// category is reported instead of returning an empty list.
func (c *ListItemsCommand) Execute(ctx context.Context) ([]domain.CatalogItem, error) {
	items := c.catalog.SelectCategory(c.Category)
	if len(items) == 0 && c.Category != "" && c.Category != domain.AllCategories {
		return nil, fmt.Errorf("%w: category %s", application.ErrItemNotFound, c.Category)
	}
	return items, nil
}
