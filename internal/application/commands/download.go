package commands

import (
	"context"

	"zwallpaper/internal/application"
	"zwallpaper/internal/domain"
)

// DownloadResult contains the result of downloading a wallpaper
type DownloadResult struct {
	Item    domain.CatalogItem
	Path    string
	Message string
}

// DownloadCommand saves a full-resolution copy of a catalog item
type DownloadCommand struct {
	catalog     Catalog
	ItemPath    string
	Destination string // empty means the configured downloads directory
}

// NewDownloadCommand creates a new DownloadCommand
func NewDownloadCommand(catalog Catalog, itemPath, destination string) *DownloadCommand {
	return &DownloadCommand{
		catalog:     catalog,
		ItemPath:    itemPath,
		Destination: destination,
	}
}

// Validate checks the command names an item and a usable destination
func (c *DownloadCommand) Validate() error {
	if err := application.ValidateRequired("itemPath", c.ItemPath); err != nil {
		return err
	}
	if c.Destination != "" {
		return application.ValidateDirectory("destination", c.Destination)
	}
	return nil
}

// Execute runs the download command
func (c *DownloadCommand) Execute(ctx context.Context) (*DownloadResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	item, err := c.catalog.Item(c.ItemPath)
	if err != nil {
		return nil, err
	}

	path, err := c.catalog.DownloadTo(ctx, item, c.Destination)
	if err != nil {
		return nil, err
	}

	return &DownloadResult{
		Item:    item,
		Path:    path,
		Message: "Downloaded to " + path,
	}, nil
}
