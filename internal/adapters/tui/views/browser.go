package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zwallpaper/internal/adapters/tui/styles"
	"zwallpaper/internal/domain"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Switch     key.Binding
	Enter      key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	Search     key.Binding
	Apply      key.Binding
	Download   key.Binding
	DownloadTo key.Binding
	Copy       key.Binding
	Open       key.Binding
	Refresh    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Switch: key.NewBinding(
		key.WithKeys("tab", "h", "l", "left", "right"),
		key.WithHelp("tab", "switch pane"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "preview"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "prev page"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Apply: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "apply"),
	),
	Download: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "download"),
	),
	DownloadTo: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "download to..."),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy url"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// SearchKeys are active while the search field has focus
var SearchKeys = struct {
	Accept key.Binding
	Cancel key.Binding
}{
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "keep filter"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
}

type pane int

const (
	paneCategories pane = iota
	paneItems
)

type thumbState int

const (
	thumbNone thumbState = iota
	thumbLoading
	thumbReady
	thumbFailed
)

func (s thumbState) String() string {
	switch s {
	case thumbLoading:
		return "loading"
	case thumbReady:
		return "cached"
	case thumbFailed:
		return "failed"
	default:
		return "not requested"
	}
}

// BrowserModel shows categories on the left and the selected category's
// wallpapers on the right
type BrowserModel struct {
	ViewState
	actions *Actions

	categories []domain.CategoryCount // first entry is "all"
	catPager   *Paginator
	items      []domain.CatalogItem
	itemPager  *Paginator
	focus      pane

	search    textinput.Model
	searching bool

	thumbs  map[string]thumbState
	spinner spinner.Model
	loading bool
	loaded  bool
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(actions *Actions) *BrowserModel {
	input := textinput.New()
	input.Placeholder = "Filter by file name..."
	input.Prompt = "/ "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &BrowserModel{
		actions:   actions,
		catPager:  NewPaginator(20),
		itemPager: NewPaginator(20),
		focus:     paneCategories,
		search:    input,
		thumbs:    make(map[string]thumbState),
		spinner:   s,
	}
}

// Init starts the first catalog load
func (m *BrowserModel) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.actions.Refresh())
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// Previous catalog stays on screen
			m.SetMessage(msg.status, true)
			return m, nil
		}
		m.loaded = true
		m.SetMessage(msg.status, false)
		m.thumbs = make(map[string]thumbState)
		m.rebuildCategories()
		m.refreshItems()
		return m, m.requestThumbnails()

	case thumbnailMsg:
		if msg.err != nil {
			m.thumbs[msg.itemPath] = thumbFailed
		} else {
			m.thumbs[msg.itemPath] = thumbReady
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *BrowserModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, SearchKeys.Cancel):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.refreshItems()
		return m, m.requestThumbnails()

	case key.Matches(msg, SearchKeys.Accept):
		m.searching = false
		m.search.Blur()
		m.focus = paneItems
		return m, m.requestThumbnails()
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.refreshItems()
	}
	return m, cmd
}

func (m *BrowserModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.ClearMessage()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, BrowserKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, BrowserKeys.Refresh):
		m.loading = true
		m.SetMessage("Refreshing catalog...", false)
		return m, tea.Batch(m.spinner.Tick, m.actions.Refresh())

	case key.Matches(msg, BrowserKeys.Search):
		if !m.loaded {
			return m, nil
		}
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, BrowserKeys.Switch):
		if m.focus == paneCategories {
			m.focus = paneItems
		} else {
			m.focus = paneCategories
		}
		return m, nil

	case key.Matches(msg, BrowserKeys.Up):
		if m.focus == paneCategories {
			if m.catPager.CursorUp() {
				m.refreshItems()
				return m, m.requestThumbnails()
			}
			return m, nil
		}
		if m.itemPager.CursorUp() {
			return m, m.requestThumbnails()
		}
		return m, nil

	case key.Matches(msg, BrowserKeys.Down):
		if m.focus == paneCategories {
			if m.catPager.CursorDown() {
				m.refreshItems()
				return m, m.requestThumbnails()
			}
			return m, nil
		}
		if m.itemPager.CursorDown() {
			return m, m.requestThumbnails()
		}
		return m, nil

	case key.Matches(msg, BrowserKeys.NextPage):
		if m.itemPager.NextPage() {
			return m, m.requestThumbnails()
		}
		return m, nil

	case key.Matches(msg, BrowserKeys.PrevPage):
		if m.itemPager.PrevPage() {
			return m, m.requestThumbnails()
		}
		return m, nil

	case key.Matches(msg, BrowserKeys.Enter):
		if m.focus == paneCategories {
			m.focus = paneItems
			return m, nil
		}
		if item, ok := m.SelectedItem(); ok {
			m.SetMessage("Loading preview of "+item.DisplayName+"...", false)
			return m, tea.Batch(m.spinner.Tick, m.actions.Preview(item))
		}
		return m, nil
	}

	// Item actions
	item, ok := m.SelectedItem()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, BrowserKeys.Apply):
		m.SetMessage("Applying "+item.DisplayName+"...", false)
		return m, tea.Batch(m.spinner.Tick, m.actions.Apply(item))

	case key.Matches(msg, BrowserKeys.Download):
		m.SetMessage("Downloading "+item.FileName+"...", false)
		return m, tea.Batch(m.spinner.Tick, m.actions.Download(item, ""))

	case key.Matches(msg, BrowserKeys.DownloadTo):
		return m, func() tea.Msg { return SwitchToDownloadMsg{Item: item} }

	case key.Matches(msg, BrowserKeys.Copy):
		if err := clipboard.WriteAll(item.DownloadURL); err != nil {
			m.SetMessage("Error: clipboard: "+err.Error(), true)
		} else {
			m.SetMessage("Copied "+item.DownloadURL, false)
		}
		return m, nil

	case key.Matches(msg, BrowserKeys.Open):
		return m, m.actions.Open(item)
	}

	return m, nil
}

func (m *BrowserModel) rebuildCategories() {
	counts := m.actions.svc.ListCategories()
	total := 0
	for _, c := range counts {
		total += c.Count
	}

	selected := m.SelectedCategory()
	m.categories = append([]domain.CategoryCount{{Name: domain.AllCategories, Count: total}}, counts...)
	m.catPager.Reset(len(m.categories))

	// Keep the selection across refreshes when the category still exists
	for i, c := range m.categories {
		if c.Name == selected {
			m.catPager.SetCursor(i)
			break
		}
	}
}

// refreshItems re-runs the category and search filter
func (m *BrowserModel) refreshItems() {
	m.items = m.actions.svc.Search(strings.TrimSpace(m.search.Value()), m.SelectedCategory())
	m.itemPager.Reset(len(m.items))
}

// requestThumbnails fetches thumbnails for the visible page
func (m *BrowserModel) requestThumbnails() tea.Cmd {
	var cmds []tea.Cmd
	start, end := m.itemPager.VisibleRange()
	for _, item := range m.items[start:end] {
		if m.thumbs[item.Path] != thumbNone {
			continue
		}
		m.thumbs[item.Path] = thumbLoading
		cmds = append(cmds, m.actions.Thumbnail(item))
	}
	return tea.Batch(cmds...)
}

// SelectedCategory returns the highlighted category name
func (m *BrowserModel) SelectedCategory() string {
	i := m.catPager.Cursor()
	if i >= 0 && i < len(m.categories) {
		return m.categories[i].Name
	}
	return domain.AllCategories
}

// SelectedItem returns the highlighted wallpaper
func (m *BrowserModel) SelectedItem() (domain.CatalogItem, bool) {
	i := m.itemPager.Cursor()
	if i >= 0 && i < len(m.items) {
		return m.items[i], true
	}
	return domain.CatalogItem{}, false
}

// Items returns the wallpapers currently listed
func (m *BrowserModel) Items() []domain.CatalogItem {
	return m.items
}

// View renders the browser
func (m *BrowserModel) View() string {
	sc := newScreen("zwallpaper")

	if !m.loaded {
		if m.loading {
			sc.line(m.spinner.View() + " Loading catalog...")
		}
		return sc.blank().
			status(m.Message, m.MessageErr).
			keys(BrowserKeys.Refresh, BrowserKeys.Quit).
			String()
	}

	if m.searching || m.search.Value() != "" {
		style := styles.InputField
		if m.searching {
			style = styles.InputFocused
		}
		sc.line(style.Render(m.search.View()))
	}

	sc.line(lipgloss.JoinHorizontal(lipgloss.Top, m.renderCategories(), m.renderItems()))
	sc.line(renderActivity(m.spinner.View(), m.actions.Running(), m.Message, m.MessageErr))

	if m.searching {
		return sc.keys(SearchKeys.Accept, SearchKeys.Cancel).String()
	}
	return sc.keys(
		BrowserKeys.Switch,
		BrowserKeys.Enter,
		BrowserKeys.Search,
		BrowserKeys.Apply,
		BrowserKeys.Download,
		BrowserKeys.Copy,
		BrowserKeys.Refresh,
		BrowserKeys.Help,
		BrowserKeys.Quit,
	).String()
}

func (m *BrowserModel) renderCategories() string {
	var b strings.Builder
	b.WriteString(styles.InputLabel.Render("Categories"))
	b.WriteString("\n")

	start, end := m.catPager.VisibleRange()
	for i := start; i < end; i++ {
		c := m.categories[i]
		name := domain.CategoryTitle(c.Name)
		if c.Name == domain.AllCategories {
			name = "All"
		}
		line := fmt.Sprintf("%-16s %s", name, styles.CategoryCount.Render(fmt.Sprintf("%d", c.Count)))
		switch {
		case i == m.catPager.Cursor() && m.focus == paneCategories:
			line = styles.Selected.Render(fmt.Sprintf("%-16s %d", name, c.Count))
		case i == m.catPager.Cursor():
			line = styles.Category.Bold(true).Render(fmt.Sprintf("%-16s %d", name, c.Count))
		default:
			line = styles.Category.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.focus == paneCategories {
		return styles.SidebarFocused.Render(b.String())
	}
	return styles.Sidebar.Render(b.String())
}

func (m *BrowserModel) renderItems() string {
	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(fmt.Sprintf("%d wallpapers", len(m.items))))
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(renderMuted("No wallpapers match"))
	}

	start, end := m.itemPager.VisibleRange()
	for i := start; i < end; i++ {
		item := m.items[i]
		text := fmt.Sprintf("%s  %s", item.DisplayName, styles.MutedText.Render(item.FileName))
		if i == m.itemPager.Cursor() && m.focus == paneItems {
			text = styles.Selected.Render(fmt.Sprintf("%s  %s", item.DisplayName, item.FileName))
		}
		b.WriteString(renderThumbMarker(m.thumbs[item.Path]) + " " + text)
		b.WriteString("\n")
	}

	if m.itemPager.TotalPages() > 1 {
		b.WriteString(renderMuted(fmt.Sprintf("page %d/%d", m.itemPager.CurrentPage(), m.itemPager.TotalPages())))
	}

	if m.focus == paneItems {
		return styles.ItemPaneFocused.Render(b.String())
	}
	return styles.ItemPane.Render(b.String())
}

// SetSize updates the view dimensions and the page sizes of both panes
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	rows := max(height-14, 5)
	m.catPager.SetPageSize(rows)
	m.itemPager.SetPageSize(rows)
}

// Messages for view switching
type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}

type SwitchToDownloadMsg struct {
	Item domain.CatalogItem
}
