package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"zwallpaper/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("zwallpaper Help"))
	b.WriteString("\n\n")

	b.WriteString(helpSection("Navigation",
		[2]string{"j / k / ↑ / ↓", "Move up/down"},
		[2]string{"tab / h / l", "Switch between categories and wallpapers"},
		[2]string{"ctrl+f / ctrl+b", "Next / previous page"},
		[2]string{"/", "Filter by file name (esc clears)"},
	))
	b.WriteString(helpSection("Wallpaper",
		[2]string{"enter", "Preview (downloads the full image)"},
		[2]string{"a", "Set as desktop wallpaper"},
		[2]string{"d", "Download to the downloads directory"},
		[2]string{"D", "Download to another directory"},
		[2]string{"o", "Open in the image viewer"},
		[2]string{"y", "Copy download URL"},
	))
	b.WriteString(helpSection("General",
		[2]string{"r", "Refresh catalog"},
		[2]string{"?", "Toggle help"},
		[2]string{"q / ctrl+c", "Quit"},
	))

	b.WriteString(styles.InputLabel.Render("Thumbnails"))
	b.WriteString("\n  ")
	for _, st := range []thumbState{thumbReady, thumbLoading, thumbFailed, thumbNone} {
		b.WriteString(renderThumbMarker(st) + " " + renderMuted(st.String()) + "  ")
	}
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}
