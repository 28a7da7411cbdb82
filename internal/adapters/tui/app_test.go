package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"zwallpaper/internal/adapters/tui/views"
	"zwallpaper/internal/application"
	"zwallpaper/internal/domain"
)

// stubService never completes network work; routing tests do not need it
type stubService struct {
	catalog *domain.Catalog
}

func (s *stubService) RefreshCatalog(ctx context.Context) (*domain.Catalog, string, error) {
	return s.catalog, "Loaded", nil
}
func (s *stubService) ListCategories() []domain.CategoryCount { return s.catalog.CategoryCounts() }
func (s *stubService) Search(q, c string) []domain.CatalogItem {
	return domain.FilterByName(s.catalog.Category(c), q)
}
func (s *stubService) GetThumbnail(ctx context.Context, item domain.CatalogItem) (string, error) {
	return "", nil
}
func (s *stubService) GetFullImage(ctx context.Context, item domain.CatalogItem) (string, error) {
	return "", nil
}
func (s *stubService) Preview(ctx context.Context, item domain.CatalogItem) (application.Preview, error) {
	return application.Preview{Item: item}, nil
}
func (s *stubService) ApplyWallpaper(ctx context.Context, item domain.CatalogItem) error { return nil }
func (s *stubService) DownloadTo(ctx context.Context, item domain.CatalogItem, dir string) (string, error) {
	return dir, nil
}

func newTestApp() (*App, domain.CatalogItem) {
	c := domain.BuildCatalog([]domain.RawEntry{{Path: "nature/sunset_4k.jpg"}}, "https://example.org/")
	actions := views.NewActions(context.Background(), &stubService{catalog: c}, application.NewRequestTracker(), nil)
	item, _ := c.Item("nature/sunset_4k.jpg")
	return NewApp(actions, "/home/user/Downloads"), item
}

func TestApp_ViewSwitching(t *testing.T) {
	app, item := newTestApp()

	app.Update(views.PreviewReadyMsg{Preview: application.Preview{Item: item}})
	if app.state != ViewPreview {
		t.Fatalf("state = %d, want preview", app.state)
	}

	app.Update(views.SwitchToDownloadMsg{Item: item})
	if app.state != ViewDownload {
		t.Fatalf("state = %d, want download", app.state)
	}

	// A late preview must not pull the user out of the prompt
	app.Update(views.PreviewReadyMsg{Preview: application.Preview{Item: item}})
	if app.state != ViewDownload {
		t.Errorf("state = %d, want download", app.state)
	}

	app.Update(views.SwitchToBrowserMsg{})
	app.Update(views.SwitchToHelpMsg{})
	if app.state != ViewHelp {
		t.Errorf("state = %d, want help", app.state)
	}
}

func TestApp_StatusReachesAllViews(t *testing.T) {
	app, item := newTestApp()
	app.Update(views.PreviewReadyMsg{Preview: application.Preview{Item: item}})

	app.Update(views.StatusMsg{Text: "Error: feh: exit status 1", IsErr: true})

	if app.browser.Message != "Error: feh: exit status 1" || !app.browser.MessageErr {
		t.Errorf("browser message = %q", app.browser.Message)
	}
	if app.preview.Message != "Error: feh: exit status 1" {
		t.Errorf("preview message = %q", app.preview.Message)
	}
}

func TestApp_WindowSize(t *testing.T) {
	app, _ := newTestApp()
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	if app.width != 100 || app.help.Width != 100 || app.browser.Height != 30 {
		t.Errorf("sizes not propagated: app %dx%d", app.width, app.height)
	}
}
