package commands

import (
	"context"

	"zwallpaper/internal/application"
	"zwallpaper/internal/domain"
)

// ApplyResult contains the result of applying a wallpaper
type ApplyResult struct {
	Item    domain.CatalogItem
	Message string
}

// ApplyCommand sets a catalog item as the desktop wallpaper
type ApplyCommand struct {
	catalog  Catalog
	ItemPath string
}

// NewApplyCommand creates a new ApplyCommand
func NewApplyCommand(catalog Catalog, itemPath string) *ApplyCommand {
	return &ApplyCommand{
		catalog:  catalog,
		ItemPath: itemPath,
	}
}

// Validate checks the command names an item
func (c *ApplyCommand) Validate() error {
	return application.ValidateRequired("itemPath", c.ItemPath)
}

// Execute runs the apply command
func (c *ApplyCommand) Execute(ctx context.Context) (*ApplyResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	item, err := c.catalog.Item(c.ItemPath)
	if err != nil {
		return nil, err
	}

	if err := c.catalog.ApplyWallpaper(ctx, item); err != nil {
		return nil, err
	}

	return &ApplyResult{
		Item:    item,
		Message: "Applied: " + item.DisplayName,
	}, nil
}
