package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Resolution markers removed from display names
var resolutionTokens = []string{"_4k", "_2k", "_1080p", "_1440p", "_2160p", "_8k"}

// DisplayName derives a human readable title from a file name.
// "sunset_4k.jpg" becomes "Sunset".
func DisplayName(fileName string) string {
	name := trimImageExtension(fileName)

	for _, token := range resolutionTokens {
		name = strings.ReplaceAll(name, token, "")
	}

	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)

	return cases.Title(language.Und).String(strings.TrimSpace(name))
}

// trimImageExtension drops a known image extension. Other dots are part of
// the name, so a derived title maps to itself.
func trimImageExtension(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// CategoryTitle formats a category name for display
func CategoryTitle(category string) string {
	return cases.Title(language.Und).String(category)
}
