package imagecache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/singleflight"

	"zwallpaper/internal/domain"
	"zwallpaper/internal/logging"
	"zwallpaper/internal/ports"
)

var errInvalidName = errors.New("invalid cache file name")

// Cache implements ports.ImageCache on the local filesystem.
// Layout: {root}/thumbnails/{fileName} and {root}/wallpapers/{fileName}.
type Cache struct {
	root   string
	source ports.CatalogSource
	index  ports.CacheIndex
	log    *log.Logger
	group  singleflight.Group
}

// Ensure Cache implements ImageCache
var _ ports.ImageCache = (*Cache)(nil)

// Option configures the Cache
type Option func(*Cache)

// WithIndex records every stored file in a ledger
func WithIndex(index ports.CacheIndex) Option {
	return func(c *Cache) {
		c.index = index
	}
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(c *Cache) {
		c.log = l
	}
}

// NewCache creates a cache rooted at root, filling misses from source
func NewCache(root string, source ports.CatalogSource, opts ...Option) *Cache {
	c := &Cache{
		root:   root,
		source: source,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = logging.OrDiscard(c.log)
	return c
}

// Root returns the cache root directory
func (c *Cache) Root() string {
	return c.root
}

// Dir returns the directory of a tier
func (c *Cache) Dir(tier domain.Tier) string {
	return filepath.Join(c.root, tier.String())
}

// Dirs returns every tier directory keyed by tier
func (c *Cache) Dirs() map[domain.Tier]string {
	return map[domain.Tier]string{
		domain.TierThumbnail: c.Dir(domain.TierThumbnail),
		domain.TierFull:      c.Dir(domain.TierFull),
	}
}

// Path returns where fileName is stored in tier
func (c *Cache) Path(tier domain.Tier, fileName string) string {
	return filepath.Join(c.Dir(tier), filepath.Base(fileName))
}

// EnsureDirs creates both tier directories
func (c *Cache) EnsureDirs() error {
	for _, dir := range c.Dirs() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &domain.StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	return nil
}

// Has reports whether fileName is already cached in tier
func (c *Cache) Has(tier domain.Tier, fileName string) bool {
	return fileExists(c.Path(tier, fileName))
}

// Get returns the local path of the requested image, fetching it on a miss.
// Callers asking for the same tier and file at the same time share one fetch.
// The fetch ignores cancellation of whichever caller started it and is bounded
// only by the per-tier timeout.
func (c *Cache) Get(ctx context.Context, req ports.CacheRequest) (string, error) {
	name, err := cleanName(req.FileName)
	if err != nil {
		return "", &domain.StorageError{Op: "resolve", Path: req.FileName, Err: err}
	}

	path := c.Path(req.Tier, name)
	if fileExists(path) {
		return path, nil
	}

	key := req.Tier.String() + "/" + name
	v, err, shared := c.group.Do(key, func() (any, error) {
		// A previous flight may have finished between the check and Do
		if fileExists(path) {
			return path, nil
		}
		return c.fill(context.WithoutCancel(ctx), req, name, path)
	})
	if shared {
		c.log.Debugf("shared fetch for %s", key)
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// fill produces the file for a miss and stores it atomically
func (c *Cache) fill(ctx context.Context, req ports.CacheRequest, name, path string) (string, error) {
	start := time.Now()

	var data []byte
	var err error
	switch req.Tier {
	case domain.TierThumbnail:
		data, err = c.thumbnailBytes(ctx, req, name)
	case domain.TierFull:
		data, err = c.source.FetchBytes(ctx, req.URL, domain.FullImageTimeout)
	default:
		return "", fmt.Errorf("unknown cache tier %d", req.Tier)
	}
	if err != nil {
		return "", &domain.FetchError{Tier: req.Tier, FileName: name, Err: err}
	}

	if err := writeAtomic(path, data); err != nil {
		return "", err
	}

	c.log.Infof("cached %s/%s (%d bytes, %s)", req.Tier, name, len(data), time.Since(start).Round(time.Millisecond))
	c.record(req.Tier, name, path, int64(len(data)))
	return path, nil
}

// thumbnailBytes derives a thumbnail from the full-resolution tier when it
// is cached, otherwise from a fresh download.
func (c *Cache) thumbnailBytes(ctx context.Context, req ports.CacheRequest, name string) ([]byte, error) {
	if full, err := os.ReadFile(c.Path(domain.TierFull, name)); err == nil {
		return MakeThumbnail(full)
	}
	fetched, err := c.source.FetchBytes(ctx, req.URL, domain.ThumbnailTimeout)
	if err != nil {
		return nil, err
	}
	return MakeThumbnail(fetched)
}

func (c *Cache) record(tier domain.Tier, name, path string, size int64) {
	if c.index == nil {
		return
	}
	err := c.index.Record(domain.CacheEntry{
		Tier:     tier,
		FileName: name,
		Path:     path,
		Size:     size,
		StoredAt: time.Now(),
	})
	if err != nil {
		c.log.Warnf("cache index: record %s/%s: %v", tier, name, err)
	}
}

// Export copies a cached file to dst. The file must already be cached.
func (c *Cache) Export(tier domain.Tier, fileName, dst string) error {
	return copyFile(c.Path(tier, fileName), dst)
}

// Dimensions reports the pixel size of a cached image
func (c *Cache) Dimensions(tier domain.Tier, fileName string) (int, int, error) {
	return imageSize(c.Path(tier, fileName))
}

// Clear deletes every cached file in the given tiers (all tiers when none given)
func (c *Cache) Clear(tiers ...domain.Tier) error {
	if len(tiers) == 0 {
		tiers = []domain.Tier{domain.TierThumbnail, domain.TierFull}
	}
	for _, tier := range tiers {
		dir := c.Dir(tier)
		entries, err := os.ReadDir(dir)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return &domain.StorageError{Op: "read", Path: dir, Err: err}
		}
		for _, e := range entries {
			p := filepath.Join(dir, e.Name())
			if err := os.RemoveAll(p); err != nil {
				return &domain.StorageError{Op: "remove", Path: p, Err: err}
			}
		}
	}
	if c.index != nil {
		if err := c.index.Clear(tiers...); err != nil {
			c.log.Warnf("cache index: clear: %v", err)
		}
	}
	return nil
}

// cleanName reduces a file name to a single path element
func cleanName(fileName string) (string, error) {
	name := filepath.Base(filepath.Clean(fileName))
	if fileName == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", errInvalidName
	}
	return name, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
