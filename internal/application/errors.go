package application

import (
	"errors"
	"fmt"

	"zwallpaper/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNoCatalog    = errors.New("catalog not loaded")
	ErrItemNotFound = errors.New("wallpaper not found")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrorKind classifies err for surfaces that report a machine-readable code
func ErrorKind(err error) string {
	var valErr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &valErr):
		return "invalid_request"
	case errors.Is(err, ErrItemNotFound), errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNoCatalog):
		return "no_catalog"
	case errors.Is(err, domain.ErrTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, domain.ErrNetwork):
		return "network"
	case errors.Is(err, domain.ErrStorage):
		return "storage"
	case errors.Is(err, domain.ErrUnsupportedPlatform):
		return "unsupported_platform"
	case errors.Is(err, domain.ErrCommand):
		return "command_failed"
	default:
		return "internal"
	}
}

// StatusMessage renders err as a one-line status for the user
func StatusMessage(err error) string {
	if err == nil {
		return ""
	}
	switch ErrorKind(err) {
	case "timeout":
		return "Error: request timed out: " + err.Error()
	case "unsupported_platform":
		return "Error: " + err.Error() + " (install feh or use a supported desktop)"
	default:
		return "Error: " + err.Error()
	}
}
