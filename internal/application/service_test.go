package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"zwallpaper/internal/domain"
	"zwallpaper/internal/ports"
)

type fakeSource struct {
	entries []domain.RawEntry
	err     error
}

func (f *fakeSource) FetchManifest(ctx context.Context, collectionID string) ([]domain.RawEntry, error) {
	return f.entries, f.err
}

func (f *fakeSource) FetchBytes(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	return nil, errors.New("not used")
}

func (f *fakeSource) BaseURL(collectionID string) string {
	return "https://archive.org/download/" + collectionID + "/"
}

// fakeCache stores files under a temp dir, failing when getErr is set
type fakeCache struct {
	root   string
	getErr error

	mu    sync.Mutex
	calls []ports.CacheRequest
}

func newFakeCache(t *testing.T) *fakeCache {
	t.Helper()
	return &fakeCache{root: t.TempDir()}
}

func (f *fakeCache) Get(ctx context.Context, req ports.CacheRequest) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.getErr != nil {
		return "", &domain.FetchError{Tier: req.Tier, FileName: req.FileName, Err: f.getErr}
	}
	path := f.Path(req.Tier, req.FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte("image:"+req.FileName), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (f *fakeCache) Path(tier domain.Tier, fileName string) string {
	return filepath.Join(f.root, tier.String(), fileName)
}

func (f *fakeCache) Export(tier domain.Tier, fileName, dst string) error {
	data, err := os.ReadFile(f.Path(tier, fileName))
	if err != nil {
		return &domain.StorageError{Op: "read", Path: fileName, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

func (f *fakeCache) Dimensions(tier domain.Tier, fileName string) (int, int, error) {
	return 3840, 2160, nil
}

func (f *fakeCache) Clear(tiers ...domain.Tier) error {
	return nil
}

func (f *fakeCache) requests() []ports.CacheRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ports.CacheRequest(nil), f.calls...)
}

type fakeApplier struct {
	err     error
	applied []string
}

func (f *fakeApplier) Apply(ctx context.Context, localPath string) error {
	if f.err != nil {
		return f.err
	}
	f.applied = append(f.applied, localPath)
	return nil
}

var testEntries = []domain.RawEntry{
	{Path: "space/nebula.png"},
	{Path: "nature/sunset_4k.jpg"},
	{Path: "nature/forest.webp"},
	{Path: "zwallpaper_meta.xml"},
	{Path: "thumbs/sunset_4k.jpg"},
}

func newTestService(t *testing.T, source *fakeSource, cache *fakeCache, applier *fakeApplier) *CatalogService {
	t.Helper()
	return NewCatalogService(source, cache, applier,
		WithCollection("zwallpaper"),
		WithDownloadsDir(filepath.Join(t.TempDir(), "Downloads")),
	)
}

func loadedService(t *testing.T) (*CatalogService, *fakeCache, *fakeApplier) {
	t.Helper()
	cache := newFakeCache(t)
	applier := &fakeApplier{}
	svc := newTestService(t, &fakeSource{entries: testEntries}, cache, applier)
	if _, _, err := svc.RefreshCatalog(context.Background()); err != nil {
		t.Fatalf("RefreshCatalog() error = %v", err)
	}
	return svc, cache, applier
}

func TestLoadCatalog(t *testing.T) {
	svc := newTestService(t, &fakeSource{entries: testEntries}, newFakeCache(t), &fakeApplier{})

	c, status, err := svc.LoadCatalog(context.Background(), "zwallpaper")
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	if status != "Loaded 3 wallpapers" {
		t.Errorf("status = %q", status)
	}
	if svc.Catalog() != c {
		t.Error("Catalog() should return the published snapshot")
	}

	item, err := svc.Item("nature/sunset_4k.jpg")
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	if item.DownloadURL != "https://archive.org/download/zwallpaper/nature/sunset_4k.jpg" {
		t.Errorf("DownloadURL = %q", item.DownloadURL)
	}
}

func TestLoadCatalog_Errors(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		source     *fakeSource
		wantKind   string
	}{
		{
			name:       "no image files",
			collection: "zwallpaper",
			source:     &fakeSource{entries: []domain.RawEntry{{Path: "x_meta.xml"}, {Path: "notes.txt"}}},
			wantKind:   "not_found",
		},
		{
			name:       "empty collection",
			collection: "zwallpaper",
			source: &fakeSource{err: &domain.NotFoundError{
				Collection: "zwallpaper",
				Message:    "no files found in collection zwallpaper",
			}},
			wantKind: "not_found",
		},
		{
			name:       "network failure",
			collection: "zwallpaper",
			source:     &fakeSource{err: &domain.SourceError{Op: "manifest", Status: 503, Kind: domain.ErrNetwork}},
			wantKind:   "network",
		},
		{
			name:       "invalid collection",
			collection: "bad/id",
			source:     &fakeSource{entries: testEntries},
			wantKind:   "invalid_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.source, newFakeCache(t), &fakeApplier{})

			c, status, err := svc.LoadCatalog(context.Background(), tt.collection)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if c != nil {
				t.Error("expected no catalog on failure")
			}
			if got := ErrorKind(err); got != tt.wantKind {
				t.Errorf("ErrorKind() = %q, want %q (err: %v)", got, tt.wantKind, err)
			}
			if !strings.HasPrefix(status, "Error:") {
				t.Errorf("status = %q, want Error: prefix", status)
			}
		})
	}
}

func TestRefreshCatalog_FailureKeepsPrevious(t *testing.T) {
	source := &fakeSource{entries: testEntries}
	svc := newTestService(t, source, newFakeCache(t), &fakeApplier{})

	first, _, err := svc.RefreshCatalog(context.Background())
	if err != nil {
		t.Fatalf("first refresh error = %v", err)
	}

	source.err = &domain.SourceError{Op: "manifest", Kind: domain.ErrTimeout, Err: context.DeadlineExceeded}
	if _, _, err := svc.RefreshCatalog(context.Background()); !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("second refresh error = %v, want timeout", err)
	}

	if svc.Catalog() != first {
		t.Error("failed refresh replaced the previous catalog")
	}
}

func TestListCategories(t *testing.T) {
	svc, _, _ := loadedService(t)

	got := svc.ListCategories()
	want := []domain.CategoryCount{{Name: "nature", Count: 2}, {Name: "space", Count: 1}}
	if len(got) != len(want) {
		t.Fatalf("ListCategories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListCategories()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	// Catalog keeps first-appearance order
	if svc.Catalog().Categories()[0] != "space" {
		t.Error("ListCategories must not reorder the catalog")
	}
}

func TestSearch(t *testing.T) {
	svc, _, _ := loadedService(t)

	tests := []struct {
		name     string
		query    string
		category string
		want     int
	}{
		{"all categories", "e", domain.AllCategories, 3},
		{"within category", "e", "nature", 2},
		{"substring", "sun", "", 1},
		{"case insensitive", "NEBULA", "", 1},
		{"empty query", "", "nature", 2},
		{"no match", "zz_not_present", "", 0},
		{"unknown category", "a", "cars", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Search(tt.query, tt.category)
			if len(got) != tt.want {
				t.Errorf("Search(%q, %q) returned %d items, want %d", tt.query, tt.category, len(got), tt.want)
			}
		})
	}
}

func TestItem_Errors(t *testing.T) {
	svc := newTestService(t, &fakeSource{entries: testEntries}, newFakeCache(t), &fakeApplier{})

	if _, err := svc.Item("nature/sunset_4k.jpg"); !errors.Is(err, ErrNoCatalog) {
		t.Errorf("Item() before load error = %v, want ErrNoCatalog", err)
	}

	svc.RefreshCatalog(context.Background())
	if _, err := svc.Item("nature/missing.jpg"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Item() error = %v, want ErrItemNotFound", err)
	}
}

func TestGetThumbnail_UsesThumbnailTier(t *testing.T) {
	svc, cache, _ := loadedService(t)
	item, _ := svc.Item("nature/sunset_4k.jpg")

	path, err := svc.GetThumbnail(context.Background(), item)
	if err != nil {
		t.Fatalf("GetThumbnail() error = %v", err)
	}
	if path != cache.Path(domain.TierThumbnail, "sunset_4k.jpg") {
		t.Errorf("path = %q", path)
	}

	reqs := cache.requests()
	if len(reqs) != 1 || reqs[0].Tier != domain.TierThumbnail || reqs[0].URL != item.DownloadURL {
		t.Errorf("cache requests = %+v", reqs)
	}
}

func TestPreview(t *testing.T) {
	svc, cache, _ := loadedService(t)
	item, _ := svc.Item("nature/sunset_4k.jpg")

	p, err := svc.Preview(context.Background(), item)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if p.FullPath != cache.Path(domain.TierFull, item.FileName) {
		t.Errorf("FullPath = %q", p.FullPath)
	}
	if p.ThumbnailPath != cache.Path(domain.TierThumbnail, item.FileName) {
		t.Errorf("ThumbnailPath = %q", p.ThumbnailPath)
	}
	if got := p.Info(); got != "Category: Nature | Resolution: 3840x2160px" {
		t.Errorf("Info() = %q", got)
	}

	reqs := cache.requests()
	if len(reqs) != 2 || reqs[0].Tier != domain.TierFull {
		t.Errorf("Preview should fetch the full image first, got %+v", reqs)
	}
}

func TestApplyWallpaper(t *testing.T) {
	svc, cache, applier := loadedService(t)
	item, _ := svc.Item("space/nebula.png")

	if _, ok := svc.LastApplied(); ok {
		t.Error("LastApplied() should be empty before any apply")
	}

	if err := svc.ApplyWallpaper(context.Background(), item); err != nil {
		t.Fatalf("ApplyWallpaper() error = %v", err)
	}
	if len(applier.applied) != 1 || applier.applied[0] != cache.Path(domain.TierFull, "nebula.png") {
		t.Errorf("applied = %v", applier.applied)
	}

	last, ok := svc.LastApplied()
	if !ok || last.Path != item.Path {
		t.Errorf("LastApplied() = %+v, %v", last, ok)
	}
}

func TestApplyWallpaper_Errors(t *testing.T) {
	tests := []struct {
		name       string
		getErr     error
		applyErr   error
		wantTarget error
		wantKind   string
	}{
		{
			name:       "fetch timeout",
			getErr:     &domain.SourceError{Op: "download", Kind: domain.ErrTimeout, Err: context.DeadlineExceeded},
			wantTarget: domain.ErrFetch,
			wantKind:   "timeout",
		},
		{
			name:       "command failed",
			applyErr:   &domain.CommandError{Command: "gsettings", Err: errors.New("exit status 1")},
			wantTarget: domain.ErrCommand,
			wantKind:   "command_failed",
		},
		{
			name:       "unsupported platform",
			applyErr:   &domain.UnsupportedPlatformError{Target: domain.PlatformLinuxGeneric, Reason: "feh not installed"},
			wantTarget: domain.ErrUnsupportedPlatform,
			wantKind:   "unsupported_platform",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := newFakeCache(t)
			cache.getErr = tt.getErr
			applier := &fakeApplier{err: tt.applyErr}
			svc := newTestService(t, &fakeSource{entries: testEntries}, cache, applier)
			svc.RefreshCatalog(context.Background())
			item, _ := svc.Item("nature/forest.webp")

			err := svc.ApplyWallpaper(context.Background(), item)
			if !errors.Is(err, tt.wantTarget) {
				t.Fatalf("ApplyWallpaper() error = %v, want %v", err, tt.wantTarget)
			}
			if got := ErrorKind(err); got != tt.wantKind {
				t.Errorf("ErrorKind() = %q, want %q", got, tt.wantKind)
			}
			if !strings.Contains(err.Error(), item.Path) {
				t.Errorf("error %q should name the item", err)
			}
			if _, ok := svc.LastApplied(); ok {
				t.Error("failed apply must not update LastApplied")
			}
		})
	}
}

func TestDownloadTo(t *testing.T) {
	svc, _, _ := loadedService(t)
	item, _ := svc.Item("nature/sunset_4k.jpg")

	t.Run("missing directory is created", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "new", "dir")

		dst, err := svc.DownloadTo(context.Background(), item, dir)
		if err != nil {
			t.Fatalf("DownloadTo() error = %v", err)
		}
		if dst != filepath.Join(dir, "sunset_4k.jpg") {
			t.Errorf("dst = %q", dst)
		}
		data, err := os.ReadFile(dst)
		if err != nil || string(data) != "image:sunset_4k.jpg" {
			t.Errorf("downloaded content = %q, %v", data, err)
		}
	})

	t.Run("default directory", func(t *testing.T) {
		dst, err := svc.DownloadTo(context.Background(), item, "")
		if err != nil {
			t.Fatalf("DownloadTo() error = %v", err)
		}
		if filepath.Base(filepath.Dir(dst)) != "Downloads" {
			t.Errorf("dst = %q, want inside Downloads", dst)
		}
	})

	t.Run("destination is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.txt")
		os.WriteFile(file, []byte("x"), 0o644)

		_, err := svc.DownloadTo(context.Background(), item, file)
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("DownloadTo() error = %v, want ValidationError", err)
		}
	})
}

func TestPrefetch(t *testing.T) {
	svc, cache, _ := loadedService(t)
	items := svc.SelectCategory("")

	result := svc.Prefetch(context.Background(), items, domain.TierThumbnail, 2)
	if result.Fetched != 3 || len(result.Failed) != 0 {
		t.Errorf("Prefetch() = %+v, want 3 fetched", result)
	}
	for _, req := range cache.requests() {
		if req.Tier != domain.TierThumbnail {
			t.Errorf("unexpected tier %s", req.Tier)
		}
	}

	cache.getErr = errors.New("boom")
	result = svc.Prefetch(context.Background(), items, domain.TierFull, 0)
	if result.Fetched != 0 || len(result.Failed) != 3 {
		t.Errorf("Prefetch() with failures = %+v", result)
	}
}
