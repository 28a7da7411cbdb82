package desktop

import (
	"fmt"
	"strings"

	"zwallpaper/internal/domain"
)

const genericSetter = "feh"

// Command returns the program and arguments that set path as the wallpaper
// for a command-driven target. Windows has no command; it uses the native API.
func Command(target domain.PlatformTarget, path string) (string, []string) {
	switch target {
	case domain.PlatformMacOS:
		script := fmt.Sprintf(`tell application "Finder" to set desktop picture to POSIX file "%s"`, appleScriptEscape(path))
		return "osascript", []string{"-e", script}

	case domain.PlatformLinuxGnome:
		return "gsettings", []string{"set", "org.gnome.desktop.background", "picture-uri", "file://" + path}

	case domain.PlatformLinuxKDE:
		return "qdbus", []string{
			"org.kde.plasmashell",
			"/PlasmaShell",
			"org.kde.PlasmaShell.evaluateScript",
			plasmaScript(path),
		}

	case domain.PlatformLinuxXfce:
		return "xfconf-query", []string{
			"-c", "xfce4-desktop",
			"-p", "/backdrop/screen0/monitor0/workspace0/last-image",
			"-s", path,
		}

	case domain.PlatformLinuxGeneric:
		return genericSetter, []string{"--bg-scale", path}

	default:
		return "", nil
	}
}

// plasmaScript sets the image on every Plasma desktop
func plasmaScript(path string) string {
	return `var allDesktops = desktops();` +
		`for (i=0;i<allDesktops.length;i++) {` +
		`d = allDesktops[i];` +
		`d.wallpaperPlugin = "org.kde.image";` +
		`d.currentConfigGroup = Array("Wallpaper", "org.kde.image", "General");` +
		`d.writeConfig("Image", "file://` + jsEscape(path) + `")}`
}

func appleScriptEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func jsEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
