package desktop

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/labstack/gommon/log"

	"zwallpaper/internal/domain"
	"zwallpaper/internal/logging"
	"zwallpaper/internal/ports"
)

// Applier implements ports.WallpaperApplier by dispatching to the
// mechanism of the current desktop
type Applier struct {
	runner    ports.CommandRunner
	goos      string
	getenv    func(string) string
	setNative func(path string) error
	log       *log.Logger
}

// Ensure Applier implements WallpaperApplier
var _ ports.WallpaperApplier = (*Applier)(nil)

// Option configures the Applier
type Option func(*Applier)

// WithRunner replaces the command runner
func WithRunner(r ports.CommandRunner) Option {
	return func(a *Applier) {
		a.runner = r
	}
}

// WithPlatform overrides the detected OS and environment lookup
func WithPlatform(goos string, getenv func(string) string) Option {
	return func(a *Applier) {
		a.goos = goos
		a.getenv = getenv
	}
}

// WithNative replaces the Windows API call
func WithNative(fn func(path string) error) Option {
	return func(a *Applier) {
		a.setNative = fn
	}
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(a *Applier) {
		a.log = l
	}
}

// NewApplier creates an applier for the running system
func NewApplier(opts ...Option) *Applier {
	a := &Applier{
		runner:    NewExecRunner(),
		goos:      runtime.GOOS,
		getenv:    os.Getenv,
		setNative: setNativeWallpaper,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = logging.OrDiscard(a.log)
	return a
}

// Session returns the desktop session identifier: DESKTOP_SESSION,
// falling back to XDG_CURRENT_DESKTOP
func (a *Applier) Session() string {
	if s := a.getenv("DESKTOP_SESSION"); s != "" {
		return s
	}
	return a.getenv("XDG_CURRENT_DESKTOP")
}

// Target resolves the platform target for this system
func (a *Applier) Target() domain.PlatformTarget {
	return domain.ResolvePlatform(a.goos, a.Session())
}

// Apply sets localPath as the desktop background
func (a *Applier) Apply(ctx context.Context, localPath string) error {
	path, err := filepath.Abs(localPath)
	if err != nil {
		return &domain.StorageError{Op: "resolve", Path: localPath, Err: err}
	}

	target := a.Target()
	a.log.Infof("applying %s via %s", path, target)

	switch target {
	case domain.PlatformWindows:
		if err := a.setNative(path); err != nil {
			return &domain.CommandError{Command: "SystemParametersInfoW", Err: err}
		}
		return nil

	case domain.PlatformLinuxGeneric:
		if _, err := a.runner.LookPath(genericSetter); err != nil {
			return &domain.UnsupportedPlatformError{
				Target: target,
				Reason: fmt.Sprintf("desktop session %q is not recognised and %s is not installed", a.Session(), genericSetter),
			}
		}
		return a.run(ctx, target, path)

	case domain.PlatformMacOS, domain.PlatformLinuxGnome, domain.PlatformLinuxKDE, domain.PlatformLinuxXfce:
		return a.run(ctx, target, path)

	default:
		return &domain.UnsupportedPlatformError{Target: target, Reason: fmt.Sprintf("operating system %q", a.goos)}
	}
}

func (a *Applier) run(ctx context.Context, target domain.PlatformTarget, path string) error {
	name, args := Command(target, path)

	if _, err := a.runner.LookPath(name); err != nil {
		return &domain.CommandError{Command: name, Err: err}
	}

	out, err := a.runner.Run(ctx, name, args...)
	if err != nil {
		return &domain.CommandError{Command: name, Output: strings.TrimSpace(string(out)), Err: err}
	}
	a.log.Debugf("%s: %s", name, strings.TrimSpace(string(out)))
	return nil
}
