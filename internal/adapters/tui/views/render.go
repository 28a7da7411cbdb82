package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"zwallpaper/internal/adapters/tui/styles"
)

// screen accumulates the lines of one full-window view
type screen struct {
	b strings.Builder
}

func newScreen(title string) *screen {
	s := &screen{}
	s.b.WriteString(styles.Title.Render(title))
	s.b.WriteString("\n\n")
	return s
}

func (s *screen) subtitle(text string) *screen {
	s.b.WriteString(styles.Subtitle.Render(text))
	s.b.WriteString("\n\n")
	return s
}

func (s *screen) line(text string) *screen {
	s.b.WriteString(text)
	s.b.WriteString("\n")
	return s
}

func (s *screen) blank() *screen {
	s.b.WriteString("\n")
	return s
}

// field writes "label: value"; empty values are skipped
func (s *screen) field(label, value string) *screen {
	if value == "" {
		return s
	}
	return s.line(styles.InputLabel.Render(label+":") + " " + value)
}

func (s *screen) status(message string, isErr bool) *screen {
	if message == "" {
		return s
	}
	s.b.WriteString(renderStatusText(message, isErr))
	s.b.WriteString("\n\n")
	return s
}

func (s *screen) keys(bindings ...key.Binding) *screen {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	s.b.WriteString(strings.Join(parts, styles.HelpSeparator.String()))
	return s
}

func (s *screen) String() string {
	return styles.App.Render(s.b.String())
}

func renderStatusText(message string, isErr bool) string {
	if message == "" {
		return ""
	}
	if isErr {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

func renderMuted(text string) string {
	return styles.MutedText.Render(text)
}

// renderActivity shows the first running task next to the spinner frame,
// then the current status message
func renderActivity(frame string, running []string, message string, isErr bool) string {
	if len(running) == 0 {
		return renderStatusText(message, isErr)
	}
	status := frame + " " + running[0]
	if len(running) > 1 {
		status += fmt.Sprintf(" (+%d more)", len(running)-1)
	}
	if message != "" {
		status += "  " + renderStatusText(message, isErr)
	}
	return styles.StatusBar.Render(status)
}

func renderThumbMarker(state thumbState) string {
	switch state {
	case thumbReady:
		return styles.ThumbReady.String()
	case thumbLoading:
		return styles.ThumbLoading.String()
	case thumbFailed:
		return styles.ThumbFailed.String()
	default:
		return styles.ThumbNone.String()
	}
}

// helpSection renders a heading followed by aligned key/description rows
func helpSection(heading string, rows ...[2]string) string {
	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(heading))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString("  ")
		b.WriteString(styles.HelpKey.Render(fmt.Sprintf("%-20s", r[0])))
		b.WriteString(styles.HelpDesc.Render(r[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
