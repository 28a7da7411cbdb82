package views

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"zwallpaper/internal/application"
	"zwallpaper/internal/domain"
)

type fakeService struct {
	mu         sync.Mutex
	catalog    *domain.Catalog
	refreshErr error
	applyErr   error
	applied    []string

	previewGate chan struct{} // Preview blocks until closed when set
}

func newFakeService() *fakeService {
	return &fakeService{
		catalog: domain.BuildCatalog([]domain.RawEntry{
			{Path: "space/nebula_8k.png"},
			{Path: "nature/sunset_4k.jpg"},
			{Path: "nature/forest.webp"},
			{Path: "nature/mountain_lake.png"},
		}, "https://archive.org/download/zwallpaper/"),
	}
}

func (f *fakeService) RefreshCatalog(ctx context.Context) (*domain.Catalog, string, error) {
	if f.refreshErr != nil {
		return nil, application.StatusMessage(f.refreshErr), f.refreshErr
	}
	return f.catalog, "Loaded 4 wallpapers", nil
}

func (f *fakeService) ListCategories() []domain.CategoryCount {
	counts := f.catalog.CategoryCounts()
	sort.Slice(counts, func(i, j int) bool { return counts[i].Name < counts[j].Name })
	return counts
}

func (f *fakeService) Search(query, withinCategory string) []domain.CatalogItem {
	return domain.FilterByName(f.catalog.Category(withinCategory), query)
}

func (f *fakeService) GetThumbnail(ctx context.Context, item domain.CatalogItem) (string, error) {
	return "/cache/thumbnails/" + item.FileName, nil
}

func (f *fakeService) GetFullImage(ctx context.Context, item domain.CatalogItem) (string, error) {
	return "/cache/wallpapers/" + item.FileName, nil
}

func (f *fakeService) Preview(ctx context.Context, item domain.CatalogItem) (application.Preview, error) {
	if f.previewGate != nil {
		<-f.previewGate
	}
	return application.Preview{
		Item:     item,
		FullPath: "/cache/wallpapers/" + item.FileName,
		Width:    3840,
		Height:   2160,
	}, nil
}

func (f *fakeService) ApplyWallpaper(ctx context.Context, item domain.CatalogItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, item.Path)
	return nil
}

func (f *fakeService) DownloadTo(ctx context.Context, item domain.CatalogItem, dir string) (string, error) {
	if dir == "" {
		dir = "/home/user/Downloads"
	}
	return dir + "/" + item.FileName, nil
}

func newTestActions(svc Service) *Actions {
	return NewActions(context.Background(), svc, application.NewRequestTracker(), nil)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadedBrowser returns a browser that has received its first catalog
func loadedBrowser(t *testing.T, svc *fakeService) *BrowserModel {
	t.Helper()
	m := NewBrowserModel(newTestActions(svc))
	m.SetSize(120, 40)

	msg := m.actions.Refresh()()
	if _, ok := msg.(catalogLoadedMsg); !ok {
		t.Fatalf("Refresh() produced %T, want catalogLoadedMsg", msg)
	}
	m.Update(msg)
	return m
}

func TestPaginator(t *testing.T) {
	p := NewPaginator(3)
	p.Reset(7)

	if p.TotalPages() != 3 {
		t.Errorf("TotalPages() = %d, want 3", p.TotalPages())
	}
	for range 4 {
		p.CursorDown()
	}
	if p.Cursor() != 4 || p.CurrentPage() != 2 {
		t.Errorf("cursor = %d page = %d, want 4 and 2", p.Cursor(), p.CurrentPage())
	}

	if !p.NextPage() || p.Cursor() != 6 {
		t.Errorf("NextPage() cursor = %d, want 6", p.Cursor())
	}
	if p.NextPage() {
		t.Error("NextPage() past the end should fail")
	}
	start, end := p.VisibleRange()
	if start != 6 || end != 7 {
		t.Errorf("VisibleRange() = %d, %d", start, end)
	}

	p.SetPageSize(10)
	if p.TotalPages() != 1 || p.PageOffset() != 0 {
		t.Errorf("after resize pages = %d offset = %d", p.TotalPages(), p.PageOffset())
	}

	p.SetTotal(2)
	if p.Cursor() != 1 {
		t.Errorf("SetTotal should clamp cursor, got %d", p.Cursor())
	}
}

func TestBrowser_CatalogLoaded(t *testing.T) {
	m := loadedBrowser(t, newFakeService())

	if len(m.categories) != 3 {
		t.Fatalf("categories = %+v, want all, nature, space", m.categories)
	}
	if m.categories[0] != (domain.CategoryCount{Name: domain.AllCategories, Count: 4}) {
		t.Errorf("categories[0] = %+v", m.categories[0])
	}
	if m.categories[1].Name != "nature" || m.categories[2].Name != "space" {
		t.Errorf("categories not sorted by name: %+v", m.categories)
	}
	if len(m.Items()) != 4 {
		t.Errorf("Items() = %d, want 4", len(m.Items()))
	}
	if m.Message != "Loaded 4 wallpapers" || m.MessageErr {
		t.Errorf("message = %q (err %v)", m.Message, m.MessageErr)
	}
	for _, item := range m.Items() {
		if m.thumbs[item.Path] != thumbLoading {
			t.Errorf("thumbnail for %s not requested", item.Path)
		}
	}
}

func TestBrowser_RefreshFailureKeepsItems(t *testing.T) {
	svc := newFakeService()
	m := loadedBrowser(t, svc)

	svc.refreshErr = &domain.SourceError{Op: "manifest", Kind: domain.ErrNetwork, Status: 503}
	m.Update(m.actions.Refresh()())

	if len(m.Items()) != 4 {
		t.Errorf("Items() = %d after failed refresh, want 4", len(m.Items()))
	}
	if !m.MessageErr || !strings.HasPrefix(m.Message, "Error:") {
		t.Errorf("message = %q, want error status", m.Message)
	}
}

func TestBrowser_SelectCategory(t *testing.T) {
	m := loadedBrowser(t, newFakeService())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.SelectedCategory() != "nature" {
		t.Fatalf("SelectedCategory() = %q, want nature", m.SelectedCategory())
	}
	if len(m.Items()) != 3 {
		t.Errorf("Items() = %d, want 3", len(m.Items()))
	}

	// Focus the item list and move within it
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(runes("j"))
	item, ok := m.SelectedItem()
	if !ok || item.Path != "nature/forest.webp" {
		t.Errorf("SelectedItem() = %+v, %v", item, ok)
	}
	if m.SelectedCategory() != "nature" {
		t.Error("moving in the item list changed the category")
	}
}

func TestBrowser_Search(t *testing.T) {
	m := loadedBrowser(t, newFakeService())

	m.Update(runes("/"))
	if !m.searching {
		t.Fatal("expected search mode")
	}
	for _, r := range "SUN" {
		m.Update(runes(string(r)))
	}
	if len(m.Items()) != 1 || m.Items()[0].FileName != "sunset_4k.jpg" {
		t.Errorf("Items() = %+v, want sunset only", m.Items())
	}

	// Keys are typed into the field, not treated as commands
	if m.loading {
		t.Error("typing in search triggered a command")
	}

	m.Update(runes("z"))
	if len(m.Items()) != 0 {
		t.Errorf("Items() = %d, want none", len(m.Items()))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.searching || len(m.Items()) != 4 {
		t.Errorf("esc should clear the filter, searching=%v items=%d", m.searching, len(m.Items()))
	}
}

func TestBrowser_Thumbnails(t *testing.T) {
	m := loadedBrowser(t, newFakeService())

	m.Update(thumbnailMsg{itemPath: "space/nebula_8k.png", path: "/cache/thumbnails/nebula_8k.png"})
	m.Update(thumbnailMsg{itemPath: "nature/forest.webp", err: errors.New("timed out")})

	if m.thumbs["space/nebula_8k.png"] != thumbReady {
		t.Error("nebula thumbnail should be ready")
	}
	if m.thumbs["nature/forest.webp"] != thumbFailed {
		t.Error("forest thumbnail should be failed")
	}

	// Requested thumbnails are not fetched again
	if cmd := m.requestThumbnails(); cmd != nil {
		t.Error("requestThumbnails() should have nothing left to fetch")
	}
}

func TestBrowser_ItemActions(t *testing.T) {
	svc := newFakeService()
	m := loadedBrowser(t, svc)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	t.Run("apply", func(t *testing.T) {
		item, _ := m.SelectedItem()
		msg := m.actions.Apply(item)()
		status, ok := msg.(StatusMsg)
		if !ok || status.IsErr || status.Text != "Applied: "+item.DisplayName {
			t.Errorf("Apply() msg = %#v", msg)
		}
	})

	t.Run("apply failure", func(t *testing.T) {
		svc.applyErr = &domain.UnsupportedPlatformError{Target: domain.PlatformLinuxGeneric, Reason: "feh not installed"}
		defer func() { svc.applyErr = nil }()

		item, _ := m.SelectedItem()
		status, ok := m.actions.Apply(item)().(StatusMsg)
		if !ok || !status.IsErr || !strings.Contains(status.Text, "feh not installed") {
			t.Errorf("Apply() status = %#v", status)
		}
	})

	t.Run("download", func(t *testing.T) {
		item, _ := m.SelectedItem()
		status := m.actions.Download(item, "")().(StatusMsg)
		if status.Text != "Downloaded to /home/user/Downloads/"+item.FileName {
			t.Errorf("Download() status = %q", status.Text)
		}
	})

	t.Run("download to prompt", func(t *testing.T) {
		_, cmd := m.Update(runes("D"))
		if cmd == nil {
			t.Fatal("expected a command")
		}
		if _, ok := cmd().(SwitchToDownloadMsg); !ok {
			t.Error("D should open the download prompt")
		}
	})

	t.Run("open without viewer", func(t *testing.T) {
		_, cmd := m.Update(runes("o"))
		status, ok := cmd().(StatusMsg)
		if !ok || !status.IsErr {
			t.Errorf("open without viewer = %#v", status)
		}
	})
}

func TestActions_SupersededPreviewIsDropped(t *testing.T) {
	svc := newFakeService()
	actions := newTestActions(svc)
	items := svc.catalog.Items()
	gate := make(chan struct{})
	svc.previewGate = gate

	first := actions.Preview(items[0])
	second := actions.Preview(items[1])
	close(gate)

	if msg := second(); msg == nil {
		t.Fatal("latest preview should be delivered")
	} else if ready := msg.(PreviewReadyMsg); ready.Preview.Item.Path != items[1].Path {
		t.Errorf("preview = %s, want %s", ready.Preview.Item.Path, items[1].Path)
	}
	if msg := first(); msg != nil {
		t.Errorf("superseded preview delivered %#v", msg)
	}
}

func TestPreview_View(t *testing.T) {
	svc := newFakeService()
	m := NewPreviewModel(newTestActions(svc))
	item, _ := svc.catalog.Item("nature/sunset_4k.jpg")
	p, _ := svc.Preview(context.Background(), item)
	m.SetPreview(p)

	view := m.View()
	for _, want := range []string{"Sunset", "Category: Nature | Resolution: 3840x2160px", item.DownloadURL} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(SwitchToBrowserMsg); !ok {
		t.Error("esc should return to the browser")
	}
}

func TestDownload_Submit(t *testing.T) {
	svc := newFakeService()
	m := NewDownloadModel(newTestActions(svc), "/home/user/Downloads")
	item, _ := svc.catalog.Item("space/nebula_8k.png")
	m.SetItem(item)

	for _, r := range "/tmp/walls" {
		m.Update(runes(string(r)))
	}
	if m.Destination() != "/tmp/walls" {
		t.Fatalf("Destination() = %q", m.Destination())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should start the download")
	}
}

func TestHelp_Close(t *testing.T) {
	m := NewHelpModel()
	for _, k := range []tea.KeyMsg{{Type: tea.KeyEsc}, runes("q"), runes("?")} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("%s should close help", k)
		}
		if _, ok := cmd().(SwitchToBrowserMsg); !ok {
			t.Errorf("%s did not switch back", k)
		}
	}
}
