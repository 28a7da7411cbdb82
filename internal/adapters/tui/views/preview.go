package views

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"zwallpaper/internal/application"
	"zwallpaper/internal/domain"
)

// PreviewKeyMap defines key bindings for the preview view
type PreviewKeyMap struct {
	Apply      key.Binding
	Download   key.Binding
	DownloadTo key.Binding
	Open       key.Binding
	Copy       key.Binding
	Back       key.Binding
}

var PreviewKeys = PreviewKeyMap{
	Apply:      BrowserKeys.Apply,
	Download:   BrowserKeys.Download,
	DownloadTo: BrowserKeys.DownloadTo,
	Open:       BrowserKeys.Open,
	Copy:       BrowserKeys.Copy,
	Back: key.NewBinding(
		key.WithKeys("esc", "q", "backspace"),
		key.WithHelp("esc", "back"),
	),
}

// PreviewModel shows one wallpaper's details once its full image is cached
type PreviewModel struct {
	ViewState
	actions *Actions
	preview application.Preview
}

// NewPreviewModel creates a new preview view model
func NewPreviewModel(actions *Actions) *PreviewModel {
	return &PreviewModel{actions: actions}
}

// SetPreview replaces the wallpaper being shown
func (m *PreviewModel) SetPreview(p application.Preview) {
	m.preview = p
	m.ClearMessage()
}

// Item returns the wallpaper being shown
func (m *PreviewModel) Item() domain.CatalogItem {
	return m.preview.Item
}

// Init initializes the preview view
func (m *PreviewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the preview view
func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		item := m.preview.Item
		switch {
		case key.Matches(msg, PreviewKeys.Back):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }

		case key.Matches(msg, PreviewKeys.Apply):
			m.SetMessage("Applying "+item.DisplayName+"...", false)
			return m, m.actions.Apply(item)

		case key.Matches(msg, PreviewKeys.Download):
			m.SetMessage("Downloading "+item.FileName+"...", false)
			return m, m.actions.Download(item, "")

		case key.Matches(msg, PreviewKeys.DownloadTo):
			return m, func() tea.Msg { return SwitchToDownloadMsg{Item: item} }

		case key.Matches(msg, PreviewKeys.Open):
			return m, m.actions.Open(item)

		case key.Matches(msg, PreviewKeys.Copy):
			if err := clipboard.WriteAll(item.DownloadURL); err != nil {
				m.SetMessage("Error: clipboard: "+err.Error(), true)
			} else {
				m.SetMessage("Copied "+item.DownloadURL, false)
			}
			return m, nil
		}
	}

	return m, nil
}

// View renders the preview view
func (m *PreviewModel) View() string {
	p := m.preview
	return newScreen(p.Item.DisplayName).
		subtitle(p.Info()).
		field("File", p.Item.Path).
		field("URL", p.Item.DownloadURL).
		field("Cached", p.FullPath).
		field("Thumbnail", p.ThumbnailPath).
		blank().
		status(m.Message, m.MessageErr).
		keys(
			PreviewKeys.Apply,
			PreviewKeys.Download,
			PreviewKeys.DownloadTo,
			PreviewKeys.Open,
			PreviewKeys.Copy,
			PreviewKeys.Back,
		).
		String()
}
