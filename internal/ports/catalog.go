package ports

import (
	"context"
	"time"

	"zwallpaper/internal/domain"
)

// CatalogSource defines the interface for the remote wallpaper collection
type CatalogSource interface {
	// FetchManifest lists every file in a collection. An empty listing is
	// reported as a domain.NotFoundError.
	FetchManifest(ctx context.Context, collectionID string) ([]domain.RawEntry, error)

	// FetchBytes downloads a single file, giving up after timeout
	FetchBytes(ctx context.Context, url string, timeout time.Duration) ([]byte, error)

	// BaseURL returns the prefix that item paths are appended to
	BaseURL(collectionID string) string
}
