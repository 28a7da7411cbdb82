package domain

import (
	"errors"
	"fmt"
)

// Error classes. Match with errors.Is; the typed errors below report
// their class through Is and keep the underlying cause through Unwrap.
var (
	ErrNetwork             = errors.New("network error")
	ErrTimeout             = errors.New("timed out")
	ErrNotFound            = errors.New("not found")
	ErrMalformedResponse   = errors.New("malformed response")
	ErrFetch               = errors.New("fetch failed")
	ErrStorage             = errors.New("storage error")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrCommand             = errors.New("command failed")
)

// SourceError is a failed request against the remote catalog
type SourceError struct {
	Op     string // "manifest" or "download"
	URL    string
	Status int   // HTTP status, 0 when no response arrived
	Kind   error // one of the class sentinels
	Err    error
}

func (e *SourceError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Op, e.URL)
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	} else if e.Kind != nil {
		msg += ": " + e.Kind.Error()
	}
	return msg
}

func (e *SourceError) Unwrap() error { return e.Err }

func (e *SourceError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// NotFoundError means the collection exists but holds nothing usable
type NotFoundError struct {
	Collection string
	Message    string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FetchError is a cache miss that could not be filled from the network
type FetchError struct {
	Tier     Tier
	FileName string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s %s: %v", e.Tier, e.FileName, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// StorageError is a local filesystem failure
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// CommandError is a wallpaper command that was missing or exited non-zero
type CommandError struct {
	Command string
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

func (e *CommandError) Is(target error) bool {
	return target == ErrCommand
}

// UnsupportedPlatformError means no wallpaper mechanism exists for this system
type UnsupportedPlatformError struct {
	Target PlatformTarget
	Reason string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("cannot set wallpaper on %s: %s", e.Target, e.Reason)
}

func (e *UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}

// ItemError attaches the catalog item an operation was working on
type ItemError struct {
	Op   string
	Path string
	Err  error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }
