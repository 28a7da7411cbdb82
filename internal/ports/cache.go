package ports

import (
	"context"

	"zwallpaper/internal/domain"
)

// CacheRequest identifies one image to resolve to a local file
type CacheRequest struct {
	Tier     domain.Tier
	FileName string
	URL      string
}

// ImageCache defines the interface for the two-tier on-disk image store
type ImageCache interface {
	// Get returns the local path for the request, filling a miss from the
	// network. Concurrent calls for the same tier and file share one fetch.
	Get(ctx context.Context, req CacheRequest) (string, error)

	// Path returns where a file lives in a tier, whether or not it exists
	Path(tier domain.Tier, fileName string) string

	// Export copies a cached file to dst atomically
	Export(tier domain.Tier, fileName, dst string) error

	// Dimensions reports the pixel size of a cached image
	Dimensions(tier domain.Tier, fileName string) (width, height int, err error)

	// Clear removes every cached file in the given tiers
	Clear(tiers ...domain.Tier) error
}

// CacheIndex is a ledger of files stored by the image cache
type CacheIndex interface {
	// Lifecycle
	Open(dbPath string) error
	Close() error

	Record(entry domain.CacheEntry) error
	Remove(tier domain.Tier, fileName string) error
	List(tier domain.Tier) ([]domain.CacheEntry, error)
	Stats() (domain.CacheStats, error)
	Clear(tiers ...domain.Tier) error

	// Sync reconciles the ledger with the files present in each tier directory
	Sync(dirs map[domain.Tier]string) (*domain.SyncStats, error)
}
