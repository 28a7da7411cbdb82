package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"zwallpaper/internal/application"
	"zwallpaper/internal/domain"
	"zwallpaper/internal/ports"
)

// Service is what the views need from application.CatalogService
type Service interface {
	RefreshCatalog(ctx context.Context) (*domain.Catalog, string, error)
	ListCategories() []domain.CategoryCount
	Search(query, withinCategory string) []domain.CatalogItem
	GetThumbnail(ctx context.Context, item domain.CatalogItem) (string, error)
	GetFullImage(ctx context.Context, item domain.CatalogItem) (string, error)
	Preview(ctx context.Context, item domain.CatalogItem) (application.Preview, error)
	ApplyWallpaper(ctx context.Context, item domain.CatalogItem) error
	DownloadTo(ctx context.Context, item domain.CatalogItem, dir string) (string, error)
}

// Actions starts background work for the views. Each action runs as a
// tracked request and its result comes back as a tea.Msg; results of
// superseded requests never reach Update.
type Actions struct {
	ctx     context.Context
	svc     Service
	tracker *application.RequestTracker
	viewer  ports.ImageViewer
}

// NewActions creates the action runner shared by all views. viewer may be nil.
func NewActions(ctx context.Context, svc Service, tracker *application.RequestTracker, viewer ports.ImageViewer) *Actions {
	return &Actions{
		ctx:     ctx,
		svc:     svc,
		tracker: tracker,
		viewer:  viewer,
	}
}

// Running returns the labels of requests still in flight
func (a *Actions) Running() []string {
	return a.tracker.Running()
}

// await turns a task channel into a tea.Cmd
func await[T any](ch <-chan application.TaskResult[T], toMsg func(application.TaskResult[T]) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		r := <-ch
		if !r.Current {
			return nil
		}
		return toMsg(r)
	}
}

type catalogLoad struct {
	catalog *domain.Catalog
	status  string
}

type catalogLoadedMsg struct {
	catalog *domain.Catalog
	status  string
	err     error
}

// Refresh reloads the catalog
func (a *Actions) Refresh() tea.Cmd {
	ch := application.Run(a.ctx, a.tracker, application.SlotCatalog, "loading catalog",
		func(ctx context.Context) (catalogLoad, error) {
			c, status, err := a.svc.RefreshCatalog(ctx)
			return catalogLoad{catalog: c, status: status}, err
		})
	return await(ch, func(r application.TaskResult[catalogLoad]) tea.Msg {
		return catalogLoadedMsg{catalog: r.Value.catalog, status: r.Value.status, err: r.Err}
	})
}

type thumbnailMsg struct {
	itemPath string
	path     string
	err      error
}

// Thumbnail fetches the thumbnail of one item
func (a *Actions) Thumbnail(item domain.CatalogItem) tea.Cmd {
	ch := application.Run(a.ctx, a.tracker, application.ThumbnailSlot(item.Path), "thumbnail "+item.FileName,
		func(ctx context.Context) (string, error) {
			return a.svc.GetThumbnail(ctx, item)
		})
	return await(ch, func(r application.TaskResult[string]) tea.Msg {
		return thumbnailMsg{itemPath: item.Path, path: r.Value, err: r.Err}
	})
}

// PreviewReadyMsg carries a loaded preview
type PreviewReadyMsg struct {
	Preview application.Preview
}

// Preview fetches the full image and its details
func (a *Actions) Preview(item domain.CatalogItem) tea.Cmd {
	ch := application.Run(a.ctx, a.tracker, application.SlotPreview, "preview "+item.FileName,
		func(ctx context.Context) (application.Preview, error) {
			return a.svc.Preview(ctx, item)
		})
	return await(ch, func(r application.TaskResult[application.Preview]) tea.Msg {
		if r.Err != nil {
			return StatusMsg{Text: application.StatusMessage(r.Err), IsErr: true}
		}
		return PreviewReadyMsg{Preview: r.Value}
	})
}

// StatusMsg updates the status line of every view
type StatusMsg struct {
	Text  string
	IsErr bool
}

func statusFor(ok string, err error) tea.Msg {
	if err != nil {
		return StatusMsg{Text: application.StatusMessage(err), IsErr: true}
	}
	return StatusMsg{Text: ok}
}

// Apply sets item as the wallpaper
func (a *Actions) Apply(item domain.CatalogItem) tea.Cmd {
	ch := application.Run(a.ctx, a.tracker, application.SlotApply, "applying "+item.FileName,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, a.svc.ApplyWallpaper(ctx, item)
		})
	return await(ch, func(r application.TaskResult[struct{}]) tea.Msg {
		return statusFor("Applied: "+item.DisplayName, r.Err)
	})
}

// Download copies the full image into dir, or the downloads directory when empty
func (a *Actions) Download(item domain.CatalogItem, dir string) tea.Cmd {
	ch := application.Run(a.ctx, a.tracker, application.SlotDownload, "downloading "+item.FileName,
		func(ctx context.Context) (string, error) {
			return a.svc.DownloadTo(ctx, item, dir)
		})
	return await(ch, func(r application.TaskResult[string]) tea.Msg {
		return statusFor("Downloaded to "+r.Value, r.Err)
	})
}

// Open shows the full image in the system image viewer
func (a *Actions) Open(item domain.CatalogItem) tea.Cmd {
	if a.viewer == nil {
		return func() tea.Msg {
			return StatusMsg{Text: "Error: no image viewer available", IsErr: true}
		}
	}
	ch := application.Run(a.ctx, a.tracker, application.SlotOpen, "opening "+item.FileName,
		func(ctx context.Context) (string, error) {
			path, err := a.svc.GetFullImage(ctx, item)
			if err != nil {
				return "", err
			}
			return path, a.viewer.Open(path)
		})
	return await(ch, func(r application.TaskResult[string]) tea.Msg {
		return statusFor("Opened "+item.DisplayName, r.Err)
	})
}
