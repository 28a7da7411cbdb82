package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"zwallpaper/internal/adapters/tui/styles"
	"zwallpaper/internal/domain"
)

// DownloadKeyMap defines key bindings for the destination prompt
type DownloadKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var DownloadKeys = DownloadKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "download"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// DownloadModel asks where to save a wallpaper
type DownloadModel struct {
	ViewState
	actions *Actions
	item    domain.CatalogItem
	input   textinput.Model
}

// NewDownloadModel creates a new destination prompt. defaultDir is shown
// as the placeholder and used when the field is left empty.
func NewDownloadModel(actions *Actions, defaultDir string) *DownloadModel {
	input := textinput.New()
	input.Placeholder = defaultDir
	input.CharLimit = 4096

	return &DownloadModel{
		actions: actions,
		input:   input,
	}
}

// SetItem resets the prompt for item
func (m *DownloadModel) SetItem(item domain.CatalogItem) {
	m.item = item
	m.input.SetValue("")
	m.input.Focus()
	m.ClearMessage()
}

// Init initializes the prompt
func (m *DownloadModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the prompt
func (m *DownloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DownloadKeys.Cancel):
			m.input.Blur()
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }

		case key.Matches(msg, DownloadKeys.Submit):
			m.input.Blur()
			dir := strings.TrimSpace(m.input.Value())
			return m, tea.Batch(
				func() tea.Msg { return SwitchToBrowserMsg{} },
				m.actions.Download(m.item, dir),
			)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Destination returns the typed directory
func (m *DownloadModel) Destination() string {
	return strings.TrimSpace(m.input.Value())
}

// View renders the prompt
func (m *DownloadModel) View() string {
	return newScreen("Download").
		subtitle(m.item.DisplayName+" ("+m.item.FileName+")").
		line(styles.InputLabel.Render("Destination directory")).
		line(styles.InputFocused.Render(m.input.View())).
		blank().
		status(m.Message, m.MessageErr).
		keys(DownloadKeys.Submit, DownloadKeys.Cancel).
		String()
}
