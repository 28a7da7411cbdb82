package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"

	"zwallpaper/internal/domain"
	"zwallpaper/internal/logging"
	"zwallpaper/internal/ports"
)

// DefaultPrefetchWorkers bounds concurrent downloads during Prefetch
const DefaultPrefetchWorkers = 4

// CatalogService owns the current catalog and runs every user-facing
// operation against the cache, the remote source and the desktop
type CatalogService struct {
	source       ports.CatalogSource
	cache        ports.ImageCache
	applier      ports.WallpaperApplier
	collectionID string
	downloadsDir string
	log          *log.Logger

	catalog atomic.Pointer[domain.Catalog]

	mu          sync.Mutex // guards collectionID and lastApplied
	lastApplied *domain.CatalogItem
}

// Option configures the CatalogService
type Option func(*CatalogService)

// WithCollection sets the collection loaded by RefreshCatalog
func WithCollection(id string) Option {
	return func(s *CatalogService) {
		s.collectionID = id
	}
}

// WithDownloadsDir sets the default DownloadTo destination
func WithDownloadsDir(dir string) Option {
	return func(s *CatalogService) {
		s.downloadsDir = dir
	}
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(s *CatalogService) {
		s.log = l
	}
}

// NewCatalogService wires the service to its ports
func NewCatalogService(source ports.CatalogSource, cache ports.ImageCache, applier ports.WallpaperApplier, opts ...Option) *CatalogService {
	s := &CatalogService{
		source:  source,
		cache:   cache,
		applier: applier,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.downloadsDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			s.downloadsDir = filepath.Join(home, "Downloads")
		}
	}
	s.log = logging.OrDiscard(s.log)
	return s
}

// CollectionID returns the collection RefreshCatalog loads
func (s *CatalogService) CollectionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collectionID
}

// Catalog returns the current snapshot, nil before the first successful load
func (s *CatalogService) Catalog() *domain.Catalog {
	return s.catalog.Load()
}

// LoadCatalog fetches and builds the catalog of collectionID and publishes it.
// The status message is always set, on failure as "Error: ...".
// A failed load leaves the previous catalog in place.
func (s *CatalogService) LoadCatalog(ctx context.Context, collectionID string) (*domain.Catalog, string, error) {
	if collectionID == "" {
		collectionID = s.CollectionID()
	}
	if err := ValidateCollectionID(collectionID); err != nil {
		return nil, StatusMessage(err), err
	}

	entries, err := s.source.FetchManifest(ctx, collectionID)
	if err != nil {
		s.log.Errorf("load %s: %v", collectionID, err)
		return nil, StatusMessage(err), err
	}

	c := domain.BuildCatalog(entries, s.source.BaseURL(collectionID))
	if c.Len() == 0 {
		err := &domain.NotFoundError{
			Collection: collectionID,
			Message: fmt.Sprintf("no wallpapers found in collection %s: %d files listed, none are images (%s)",
				collectionID, len(entries), "jpg, jpeg, png, webp, bmp"),
		}
		s.log.Warnf("load %s: %v", collectionID, err)
		return nil, StatusMessage(err), err
	}

	s.catalog.Store(c)
	s.mu.Lock()
	s.collectionID = collectionID
	s.mu.Unlock()
	s.log.Infof("loaded %d wallpapers in %d categories from %s", c.Len(), len(c.Categories()), collectionID)
	return c, fmt.Sprintf("Loaded %d wallpapers", c.Len()), nil
}

// RefreshCatalog rebuilds the catalog of the configured collection.
// Readers keep the old snapshot until the new one is published.
func (s *CatalogService) RefreshCatalog(ctx context.Context) (*domain.Catalog, string, error) {
	return s.LoadCatalog(ctx, s.CollectionID())
}

// ListCategories returns each category with its item count, sorted by name
func (s *CatalogService) ListCategories() []domain.CategoryCount {
	counts := s.Catalog().CategoryCounts()
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Name < counts[j].Name
	})
	return counts
}

// SelectCategory returns the items of a category; "all" or "" select everything
func (s *CatalogService) SelectCategory(name string) []domain.CatalogItem {
	return s.Catalog().Category(name)
}

// Search filters the selected category by a case-insensitive file name match
func (s *CatalogService) Search(query, withinCategory string) []domain.CatalogItem {
	return domain.FilterByName(s.SelectCategory(withinCategory), query)
}

// Item looks up a catalog item by remote path
func (s *CatalogService) Item(path string) (domain.CatalogItem, error) {
	c := s.Catalog()
	if c == nil {
		return domain.CatalogItem{}, ErrNoCatalog
	}
	item, ok := c.Item(path)
	if !ok {
		return domain.CatalogItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, path)
	}
	return item, nil
}

// GetThumbnail returns the local path of the item's thumbnail
func (s *CatalogService) GetThumbnail(ctx context.Context, item domain.CatalogItem) (string, error) {
	path, err := s.cache.Get(ctx, ports.CacheRequest{
		Tier:     domain.TierThumbnail,
		FileName: item.FileName,
		URL:      item.DownloadURL,
	})
	if err != nil {
		return "", &domain.ItemError{Op: "thumbnail", Path: item.Path, Err: err}
	}
	return path, nil
}

// GetFullImage returns the local path of the full-resolution image
func (s *CatalogService) GetFullImage(ctx context.Context, item domain.CatalogItem) (string, error) {
	path, err := s.cache.Get(ctx, ports.CacheRequest{
		Tier:     domain.TierFull,
		FileName: item.FileName,
		URL:      item.DownloadURL,
	})
	if err != nil {
		return "", &domain.ItemError{Op: "fetch", Path: item.Path, Err: err}
	}
	return path, nil
}

// Preview holds what a preview pane shows for one item
type Preview struct {
	Item          domain.CatalogItem
	FullPath      string
	ThumbnailPath string
	Width         int
	Height        int
}

// Info returns the "Category: X | Resolution: WxHpx" line
func (p Preview) Info() string {
	info := "Category: " + domain.CategoryTitle(p.Item.Category)
	if p.Width > 0 && p.Height > 0 {
		info += fmt.Sprintf(" | Resolution: %dx%dpx", p.Width, p.Height)
	}
	return info
}

// Preview fetches the full image, derives its thumbnail locally and reads its size
func (s *CatalogService) Preview(ctx context.Context, item domain.CatalogItem) (Preview, error) {
	p := Preview{Item: item}

	full, err := s.GetFullImage(ctx, item)
	if err != nil {
		return p, err
	}
	p.FullPath = full

	// Full tier is populated, so this never hits the network
	if thumb, err := s.GetThumbnail(ctx, item); err == nil {
		p.ThumbnailPath = thumb
	} else {
		s.log.Warnf("preview %s: %v", item.Path, err)
	}

	if w, h, err := s.cache.Dimensions(domain.TierFull, item.FileName); err == nil {
		p.Width, p.Height = w, h
	}
	return p, nil
}

// ApplyWallpaper fetches the full image if needed and sets it as the desktop background
func (s *CatalogService) ApplyWallpaper(ctx context.Context, item domain.CatalogItem) error {
	path, err := s.GetFullImage(ctx, item)
	if err != nil {
		return err
	}

	if err := s.applier.Apply(ctx, path); err != nil {
		s.log.Errorf("apply %s: %v", item.Path, err)
		return &domain.ItemError{Op: "apply", Path: item.Path, Err: err}
	}

	s.mu.Lock()
	applied := item
	s.lastApplied = &applied
	s.mu.Unlock()

	s.log.Infof("applied %s", item.Path)
	return nil
}

// LastApplied returns the item most recently applied in this session
func (s *CatalogService) LastApplied() (domain.CatalogItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastApplied == nil {
		return domain.CatalogItem{}, false
	}
	return *s.lastApplied, true
}

// DownloadTo copies the full image into dir (the default downloads directory
// when empty) and returns the written path
func (s *CatalogService) DownloadTo(ctx context.Context, item domain.CatalogItem, dir string) (string, error) {
	if dir == "" {
		dir = s.downloadsDir
	}
	if err := ValidateRequired("destination", dir); err != nil {
		return "", err
	}
	if err := ValidateDirectory("destination", dir); err != nil {
		return "", err
	}

	if _, err := s.GetFullImage(ctx, item); err != nil {
		return "", err
	}

	dst := filepath.Join(dir, item.FileName)
	if err := s.cache.Export(domain.TierFull, item.FileName, dst); err != nil {
		return "", &domain.ItemError{Op: "download", Path: item.Path, Err: err}
	}

	s.log.Infof("downloaded %s to %s", item.Path, dst)
	return dst, nil
}

// PrefetchResult summarises a Prefetch run
type PrefetchResult struct {
	Fetched int
	Failed  map[string]error // item path -> error
}

// Prefetch warms one cache tier for items using up to workers concurrent
// fetches. Per-item failures are collected, not fatal.
func (s *CatalogService) Prefetch(ctx context.Context, items []domain.CatalogItem, tier domain.Tier, workers int) PrefetchResult {
	if workers <= 0 {
		workers = DefaultPrefetchWorkers
	}

	var mu sync.Mutex
	result := PrefetchResult{Failed: make(map[string]error)}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, item := range items {
		g.Go(func() error {
			var err error
			if tier == domain.TierThumbnail {
				_, err = s.GetThumbnail(ctx, item)
			} else {
				_, err = s.GetFullImage(ctx, item)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[item.Path] = err
			} else {
				result.Fetched++
			}
			return nil
		})
	}
	g.Wait()

	return result
}
