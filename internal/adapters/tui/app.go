package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"zwallpaper/internal/adapters/tui/views"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewPreview
	ViewDownload
	ViewHelp
)

// App is the main TUI application model
type App struct {
	state    ViewState
	browser  *views.BrowserModel
	preview  *views.PreviewModel
	download *views.DownloadModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. downloadsDir is offered as the
// default destination of the download prompt.
func NewApp(actions *views.Actions, downloadsDir string) *App {
	return &App{
		state:    ViewBrowser,
		browser:  views.NewBrowserModel(actions),
		preview:  views.NewPreviewModel(actions),
		download: views.NewDownloadModel(actions, downloadsDir),
		help:     views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.preview.SetSize(msg.Width, msg.Height)
		a.download.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.SwitchToDownloadMsg:
		a.state = ViewDownload
		a.download.SetItem(msg.Item)
		return a, a.download.Init()

	case views.PreviewReadyMsg:
		// Only switch while the user is still browsing
		a.browser.ClearMessage()
		a.preview.SetPreview(msg.Preview)
		if a.state == ViewBrowser {
			a.state = ViewPreview
		}
		return a, nil

	// Results of background actions go to every view's status line
	case views.StatusMsg:
		a.browser.SetMessage(msg.Text, msg.IsErr)
		a.preview.SetMessage(msg.Text, msg.IsErr)
		return a, nil
	}

	// Catalog and thumbnail results always reach the browser
	var browserCmd tea.Cmd
	if a.state != ViewBrowser {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			_, browserCmd = a.browser.Update(msg)
		}
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewPreview:
		_, cmd = a.preview.Update(msg)
	case ViewDownload:
		_, cmd = a.download.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, tea.Batch(browserCmd, cmd)
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewPreview:
		return a.preview.View()
	case ViewDownload:
		return a.download.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
