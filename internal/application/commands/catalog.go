package commands

import (
	"context"

	"zwallpaper/internal/domain"
)

// Catalog is the part of application.CatalogService the commands drive
type Catalog interface {
	Item(path string) (domain.CatalogItem, error)
	SelectCategory(name string) []domain.CatalogItem
	Search(query, withinCategory string) []domain.CatalogItem
	ApplyWallpaper(ctx context.Context, item domain.CatalogItem) error
	DownloadTo(ctx context.Context, item domain.CatalogItem, dir string) (string, error)
}
