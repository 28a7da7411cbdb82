package ports

import "context"

// WallpaperApplier sets the desktop background
type WallpaperApplier interface {
	// Apply sets the image at localPath as the wallpaper. No retries.
	Apply(ctx context.Context, localPath string) error
}

// CommandRunner runs external programs. Abstracted for testing.
type CommandRunner interface {
	// Run executes name with args and returns combined stdout and stderr
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// LookPath reports where an executable lives on PATH
	LookPath(name string) (string, error)
}

// ImageViewer opens a local image outside the terminal
type ImageViewer interface {
	Open(path string) error
}
