package viewer

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"zwallpaper/internal/ports"
)

// Opener implements ports.ImageViewer by launching an external program
type Opener struct {
	goos     string
	getenv   func(string) string
	lookPath func(string) (string, error)
}

// Ensure Opener implements ImageViewer
var _ ports.ImageViewer = (*Opener)(nil)

// NewOpener creates a new image viewer opener
func NewOpener() *Opener {
	return &Opener{
		goos:     runtime.GOOS,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
	}
}

// Open shows the image in the user's viewer without waiting for it to exit
func (o *Opener) Open(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Command returns the exec.Cmd that would open path
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	name, args, err := o.resolve(path)
	if err != nil {
		return nil, err
	}
	return exec.Command(name, args...), nil
}

// resolve picks the viewer: $ZWALLPAPER_VIEWER, then the OS default handler,
// then common image viewers on PATH
func (o *Opener) resolve(path string) (string, []string, error) {
	if v := o.getenv("ZWALLPAPER_VIEWER"); v != "" {
		return v, []string{path}, nil
	}

	switch o.goos {
	case "darwin":
		return "open", []string{path}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", path}, nil
	}

	if p, err := o.lookPath("xdg-open"); err == nil {
		return p, []string{path}, nil
	}

	viewers := []string{"feh", "eog", "sxiv", "imv", "gwenview"}
	for _, v := range viewers {
		if p, err := o.lookPath(v); err == nil {
			return p, []string{path}, nil
		}
	}

	return "", nil, fmt.Errorf("no image viewer found: set $ZWALLPAPER_VIEWER")
}
