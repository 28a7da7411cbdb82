package domain

import "strings"

// PlatformTarget identifies how a wallpaper gets applied on this machine
type PlatformTarget int

const (
	PlatformUnsupported PlatformTarget = iota
	PlatformWindows
	PlatformMacOS
	PlatformLinuxGnome
	PlatformLinuxKDE
	PlatformLinuxXfce
	PlatformLinuxGeneric
)

// String returns the target name
func (p PlatformTarget) String() string {
	switch p {
	case PlatformWindows:
		return "windows"
	case PlatformMacOS:
		return "macos"
	case PlatformLinuxGnome:
		return "linux-gnome"
	case PlatformLinuxKDE:
		return "linux-kde"
	case PlatformLinuxXfce:
		return "linux-xfce"
	case PlatformLinuxGeneric:
		return "linux-generic"
	default:
		return "unsupported"
	}
}

// ResolvePlatform maps an OS name (runtime.GOOS) and desktop session identifier
// to a PlatformTarget. Session matching is a case-insensitive substring test,
// checked in order gnome/ubuntu, kde/plasma, xfce.
func ResolvePlatform(goos, session string) PlatformTarget {
	switch goos {
	case "windows":
		return PlatformWindows
	case "darwin":
		return PlatformMacOS
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		// fall through to session detection
	default:
		return PlatformUnsupported
	}

	s := strings.ToLower(session)
	switch {
	case strings.Contains(s, "gnome"), strings.Contains(s, "ubuntu"):
		return PlatformLinuxGnome
	case strings.Contains(s, "kde"), strings.Contains(s, "plasma"):
		return PlatformLinuxKDE
	case strings.Contains(s, "xfce"):
		return PlatformLinuxXfce
	default:
		return PlatformLinuxGeneric
	}
}
