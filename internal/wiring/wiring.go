// Package wiring assembles the adapters behind a CatalogService. Every
// binary builds the same stack; only the logger destination differs.
package wiring

import (
	"fmt"

	"github.com/labstack/gommon/log"

	"zwallpaper/internal/adapters/archiveorg"
	"zwallpaper/internal/adapters/desktop"
	"zwallpaper/internal/adapters/imagecache"
	"zwallpaper/internal/adapters/sqlite"
	"zwallpaper/internal/application"
	"zwallpaper/internal/config"
	"zwallpaper/internal/logging"
)

// Stack holds the wired components. Close releases the cache ledger.
type Stack struct {
	Config  *config.Config
	Source  *archiveorg.Source
	Cache   *imagecache.Cache
	Index   *sqlite.Index
	Applier *desktop.Applier
	Service *application.CatalogService
}

// Build wires the stack for cfg. collectionID overrides the configured
// collection when not empty.
func Build(cfg *config.Config, collectionID string, logger *log.Logger) (*Stack, error) {
	logger = logging.OrDiscard(logger)
	if collectionID == "" {
		collectionID = cfg.Collection.ID
	}
	if err := application.ValidateCollectionID(collectionID); err != nil {
		return nil, err
	}

	source := archiveorg.NewSource(
		archiveorg.WithBaseURLs(cfg.Collection.MetadataURL, cfg.Collection.DownloadURL),
		archiveorg.WithLogger(logger),
	)

	index := sqlite.NewIndex()
	if err := index.Open(cfg.IndexPath()); err != nil {
		return nil, fmt.Errorf("failed to open cache index: %w", err)
	}

	cache := imagecache.NewCache(cfg.CacheDir(), source,
		imagecache.WithIndex(index),
		imagecache.WithLogger(logger),
	)
	if err := cache.EnsureDirs(); err != nil {
		index.Close()
		return nil, err
	}

	// Files added or removed while no binary was running
	if stats, err := index.Sync(cache.Dirs()); err != nil {
		logger.Warnf("cache index sync failed: %v", err)
	} else if stats.EntriesAdded+stats.EntriesDeleted > 0 {
		logger.Infof("cache index synced: %d added, %d removed", stats.EntriesAdded, stats.EntriesDeleted)
	}

	applier := desktop.NewApplier(desktop.WithLogger(logger))

	svc := application.NewCatalogService(source, cache, applier,
		application.WithCollection(collectionID),
		application.WithDownloadsDir(cfg.DownloadsDir()),
		application.WithLogger(logger),
	)

	return &Stack{
		Config:  cfg,
		Source:  source,
		Cache:   cache,
		Index:   index,
		Applier: applier,
		Service: svc,
	}, nil
}

func (s *Stack) Close() error {
	return s.Index.Close()
}
