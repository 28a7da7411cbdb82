package domain

import (
	"fmt"
	"time"
)

// Tier selects which copy of an image the cache holds
type Tier int

const (
	TierThumbnail Tier = iota
	TierFull
)

// Thumbnail bounds and encoding
const (
	ThumbnailMaxWidth  = 250
	ThumbnailMaxHeight = 140
	ThumbnailQuality   = 85
)

// Fetch timeouts per tier
const (
	ManifestTimeout  = 10 * time.Second
	ThumbnailTimeout = 10 * time.Second
	FullImageTimeout = 30 * time.Second
)

// String returns the tier name, also used as its cache directory name
func (t Tier) String() string {
	switch t {
	case TierThumbnail:
		return "thumbnails"
	case TierFull:
		return "wallpapers"
	default:
		return "unknown"
	}
}

// Timeout returns the network timeout used to fill a miss in this tier
func (t Tier) Timeout() time.Duration {
	if t == TierThumbnail {
		return ThumbnailTimeout
	}
	return FullImageTimeout
}

// ParseTier converts a tier name back to a Tier
func ParseTier(s string) (Tier, error) {
	switch s {
	case "thumbnails", "thumbnail", "thumb":
		return TierThumbnail, nil
	case "wallpapers", "full":
		return TierFull, nil
	default:
		return 0, fmt.Errorf("unknown cache tier: %q", s)
	}
}

// CacheEntry records one file stored by the image cache
type CacheEntry struct {
	Tier     Tier
	FileName string
	Path     string // Absolute location on disk
	Size     int64
	StoredAt time.Time
}

// CacheStats summarises the cache contents per tier
type CacheStats struct {
	Entries map[Tier]int
	Bytes   map[Tier]int64
}

// Total returns the combined entry count and size
func (s CacheStats) Total() (entries int, bytes int64) {
	for _, n := range s.Entries {
		entries += n
	}
	for _, b := range s.Bytes {
		bytes += b
	}
	return entries, bytes
}

// SyncStats holds statistics from reconciling the cache ledger with disk
type SyncStats struct {
	FilesScanned   int
	EntriesAdded   int
	EntriesDeleted int
	Duration       time.Duration
}
