package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/log"
)

const header = "${time_rfc3339} ${level} ${prefix} ${short_file}:${line}"

// New returns a leveled logger writing to out
func New(out io.Writer, level string) *log.Logger {
	l := log.New("zwallpaper")
	l.SetHeader(header)
	l.SetOutput(out)
	l.SetLevel(ParseLevel(level))
	return l
}

// NewFile returns a logger appending to path, for when stderr belongs to the TUI.
// The returned closer must be closed on exit.
func NewFile(path, level string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return New(f, level), f, nil
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	l := New(io.Discard, "off")
	return l
}

// ParseLevel maps a config level name to a gommon level. Unknown names mean info.
func ParseLevel(level string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off", "none":
		return log.OFF
	default:
		return log.INFO
	}
}

// OrDiscard returns l, or a discarding logger when l is nil
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
