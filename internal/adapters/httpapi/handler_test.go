package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zwallpaper/internal/application"
	"zwallpaper/internal/domain"
)

type fakeService struct {
	catalog      *domain.Catalog
	refreshErr   error
	applyErr     error
	applied      []string
	thumbDir     string
	thumbnailErr error
}

func newFakeService(t *testing.T) *fakeService {
	return &fakeService{
		catalog: domain.BuildCatalog([]domain.RawEntry{
			{Path: "nature/sunset_4k.jpg"},
			{Path: "nature/forest.webp"},
			{Path: "space/nebula.png"},
		}, "https://archive.org/download/zwallpaper/"),
		thumbDir: t.TempDir(),
	}
}

func (f *fakeService) Catalog() *domain.Catalog { return f.catalog }

func (f *fakeService) RefreshCatalog(ctx context.Context) (*domain.Catalog, string, error) {
	if f.refreshErr != nil {
		return nil, application.StatusMessage(f.refreshErr), f.refreshErr
	}
	return f.catalog, "Loaded 3 wallpapers", nil
}

func (f *fakeService) ListCategories() []domain.CategoryCount { return f.catalog.CategoryCounts() }

func (f *fakeService) Item(path string) (domain.CatalogItem, error) {
	item, ok := f.catalog.Item(path)
	if !ok {
		return domain.CatalogItem{}, application.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeService) SelectCategory(name string) []domain.CatalogItem {
	return f.catalog.Category(name)
}

func (f *fakeService) Search(query, withinCategory string) []domain.CatalogItem {
	return domain.FilterByName(f.catalog.Category(withinCategory), query)
}

func (f *fakeService) ApplyWallpaper(ctx context.Context, item domain.CatalogItem) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, item.Path)
	return nil
}

func (f *fakeService) DownloadTo(ctx context.Context, item domain.CatalogItem, dir string) (string, error) {
	return filepath.Join(dir, item.FileName), nil
}

func (f *fakeService) GetThumbnail(ctx context.Context, item domain.CatalogItem) (string, error) {
	if f.thumbnailErr != nil {
		return "", f.thumbnailErr
	}
	path := filepath.Join(f.thumbDir, item.FileName)
	if err := os.WriteFile(path, []byte("thumb:"+item.FileName), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func serve(svc Service, method, target, body string) *httptest.ResponseRecorder {
	e := NewServer(svc, nil)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCategories(t *testing.T) {
	rec := serve(newFakeService(t), http.MethodGet, "/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got []categoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []categoryResponse{{Name: "nature", Count: 2}, {Name: "space", Count: 1}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("categories = %+v, want %+v", got, want)
	}
}

func TestItems(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantPaths  []string
	}{
		{
			name:       "all",
			target:     "/items",
			wantStatus: http.StatusOK,
			wantPaths:  []string{"nature/sunset_4k.jpg", "nature/forest.webp", "space/nebula.png"},
		},
		{
			name:       "category",
			target:     "/items?category=space",
			wantStatus: http.StatusOK,
			wantPaths:  []string{"space/nebula.png"},
		},
		{
			name:       "search within category",
			target:     "/items?category=nature&q=SUN",
			wantStatus: http.StatusOK,
			wantPaths:  []string{"nature/sunset_4k.jpg"},
		},
		{
			name:       "search without matches",
			target:     "/items?q=zz_not_present",
			wantStatus: http.StatusOK,
			wantPaths:  []string{},
		},
		{
			name:       "unknown category",
			target:     "/items?category=cars",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newFakeService(t), http.MethodGet, tt.target, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantPaths == nil {
				return
			}

			var got []itemResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got) != len(tt.wantPaths) {
				t.Fatalf("got %d items, want %d", len(got), len(tt.wantPaths))
			}
			for i, path := range tt.wantPaths {
				if got[i].Path != path {
					t.Errorf("item %d = %q, want %q", i, got[i].Path, path)
				}
			}
		})
	}
}

func TestThumbnail(t *testing.T) {
	svc := newFakeService(t)

	rec := serve(svc, http.MethodGet, "/thumbnails/nature/sunset_4k.jpg", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "thumb:sunset_4k.jpg" {
		t.Errorf("body = %q", rec.Body.String())
	}

	rec = serve(svc, http.MethodGet, "/thumbnails/nature/missing.jpg", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing item status = %d", rec.Code)
	}

	svc.thumbnailErr = &domain.FetchError{
		Tier:     domain.TierThumbnail,
		FileName: "nebula.png",
		Err:      &domain.SourceError{Op: "download", Kind: domain.ErrNetwork, Err: errors.New("connection refused")},
	}
	rec = serve(svc, http.MethodGet, "/thumbnails/space/nebula.png", "")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("fetch failure status = %d", rec.Code)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		applyErr   error
		wantStatus int
		wantKind   string
	}{
		{name: "applies", body: `{"path":"space/nebula.png"}`, wantStatus: http.StatusOK},
		{name: "missing path", body: `{}`, wantStatus: http.StatusBadRequest, wantKind: "invalid_request"},
		{name: "unknown item", body: `{"path":"space/missing.png"}`, wantStatus: http.StatusNotFound, wantKind: "not_found"},
		{
			name:       "unsupported platform",
			body:       `{"path":"space/nebula.png"}`,
			applyErr:   &domain.UnsupportedPlatformError{Target: domain.PlatformUnsupported, Reason: "no wallpaper command"},
			wantStatus: http.StatusNotImplemented,
			wantKind:   "unsupported_platform",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeService(t)
			svc.applyErr = tt.applyErr

			rec := serve(svc, http.MethodPost, "/apply", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if tt.wantKind != "" {
				if body["kind"] != tt.wantKind {
					t.Errorf("kind = %q, want %q", body["kind"], tt.wantKind)
				}
				return
			}
			if body["message"] != "Applied: Nebula" {
				t.Errorf("message = %q", body["message"])
			}
			if len(svc.applied) != 1 {
				t.Errorf("applied = %v", svc.applied)
			}
		})
	}
}

func TestCatalogLoadFailure(t *testing.T) {
	svc := newFakeService(t)
	svc.catalog = nil
	svc.refreshErr = &domain.SourceError{Op: "manifest", Kind: domain.ErrTimeout}

	rec := serve(svc, http.MethodGet, "/categories", "")
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
}
