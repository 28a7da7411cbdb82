package domain

import (
	"net/url"
	"slices"
	"strings"
)

// UncategorizedCategory is assigned to entries that sit at the collection root
const UncategorizedCategory = "uncategorized"

// AllCategories selects the flat item list instead of a single category
const AllCategories = "all"

// Allowed image extensions (compared lowercase)
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".bmp"}

// Archive metadata files that share the collection listing
var metadataSuffixes = []string{"_files.xml", "_meta.xml", "_meta.sqlite"}

// RawEntry is one file as listed by the remote manifest
type RawEntry struct {
	Path string // Collection-relative path, unique within a manifest
	Size int64  // Informational only
}

// CatalogItem is a wallpaper that passed filtering
type CatalogItem struct {
	Path        string // Full remote path, identity of the item
	FileName    string // Last path segment, also the cache key
	Category    string
	DownloadURL string
	DisplayName string
	Size        int64
}

// CategoryCount pairs a category with how many items it holds
type CategoryCount struct {
	Name  string
	Count int
}

// Catalog is an immutable snapshot of the collection.
// Build a new one to refresh; never mutate a published Catalog.
type Catalog struct {
	items      []CatalogItem
	byCategory map[string][]CatalogItem
	byPath     map[string]int
	categories []string
}

// BuildCatalog filters raw entries and groups them by category.
// Manifest order is preserved both in the flat list and inside each category.
func BuildCatalog(entries []RawEntry, baseURL string) *Catalog {
	c := &Catalog{
		byCategory: make(map[string][]CatalogItem),
		byPath:     make(map[string]int),
	}

	for _, e := range entries {
		item, ok := NewCatalogItem(e, baseURL)
		if !ok {
			continue
		}
		if _, dup := c.byPath[item.Path]; dup {
			continue
		}

		if _, seen := c.byCategory[item.Category]; !seen {
			c.categories = append(c.categories, item.Category)
		}
		c.byPath[item.Path] = len(c.items)
		c.items = append(c.items, item)
		c.byCategory[item.Category] = append(c.byCategory[item.Category], item)
	}

	return c
}

// NewCatalogItem derives a CatalogItem from a raw entry.
// Returns false when the entry is not a wallpaper.
func NewCatalogItem(e RawEntry, baseURL string) (CatalogItem, bool) {
	path := strings.TrimPrefix(e.Path, "/")
	if !IsWallpaperPath(path) {
		return CatalogItem{}, false
	}

	category, fileName := SplitPath(path)
	if fileName == "" {
		return CatalogItem{}, false
	}

	size := e.Size
	if size < 0 {
		size = 0
	}

	return CatalogItem{
		Path:        path,
		FileName:    fileName,
		Category:    category,
		DownloadURL: DownloadURL(baseURL, path),
		DisplayName: DisplayName(fileName),
		Size:        size,
	}, true
}

// IsWallpaperPath reports whether a manifest path names a wallpaper image
func IsWallpaperPath(path string) bool {
	lower := strings.ToLower(path)

	hasExt := false
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			hasExt = true
			break
		}
	}
	if !hasExt {
		return false
	}

	for _, suffix := range metadataSuffixes {
		if strings.HasSuffix(path, suffix) {
			return false
		}
	}

	category, fileName := SplitPath(path)
	if strings.Contains(strings.ToLower(category), "thumb") ||
		strings.Contains(strings.ToLower(fileName), "thumb") {
		return false
	}

	return true
}

// SplitPath returns the category (first segment) and file name (last segment)
func SplitPath(path string) (category, fileName string) {
	parts := strings.Split(path, "/")
	if len(parts) == 1 {
		return UncategorizedCategory, parts[0]
	}
	return parts[0], parts[len(parts)-1]
}

// DownloadURL joins the collection base URL and an escaped remote path
func DownloadURL(baseURL, path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + strings.Join(segments, "/")
}

// Items returns a copy of the flat item list in manifest order
func (c *Catalog) Items() []CatalogItem {
	if c == nil {
		return nil
	}
	return slices.Clone(c.items)
}

// Len returns the number of items
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Categories returns category names in first-appearance order
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.categories)
}

// Category returns a copy of the items of one category; "all" or "" return
// every item
func (c *Catalog) Category(name string) []CatalogItem {
	if c == nil {
		return nil
	}
	if name == "" || name == AllCategories {
		return slices.Clone(c.items)
	}
	return slices.Clone(c.byCategory[name])
}

// Item looks up an item by its remote path
func (c *Catalog) Item(path string) (CatalogItem, bool) {
	if c == nil {
		return CatalogItem{}, false
	}
	i, ok := c.byPath[path]
	if !ok {
		return CatalogItem{}, false
	}
	return c.items[i], true
}

// CategoryCounts returns every category with its size, in first-appearance order
func (c *Catalog) CategoryCounts() []CategoryCount {
	if c == nil {
		return nil
	}
	counts := make([]CategoryCount, 0, len(c.categories))
	for _, name := range c.categories {
		counts = append(counts, CategoryCount{Name: name, Count: len(c.byCategory[name])})
	}
	return counts
}

// FilterByName keeps items whose file name contains query, ignoring case.
// An empty query returns a copy of items.
func FilterByName(items []CatalogItem, query string) []CatalogItem {
	query = strings.ToLower(query)
	if query == "" {
		return slices.Clone(items)
	}

	matches := []CatalogItem{}
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.FileName), query) {
			matches = append(matches, item)
		}
	}
	return matches
}
