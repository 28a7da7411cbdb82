package archiveorg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/gommon/log"

	"zwallpaper/internal/domain"
	"zwallpaper/internal/logging"
	"zwallpaper/internal/ports"
)

const (
	DefaultMetadataURL = "https://archive.org/metadata"
	DefaultDownloadURL = "https://archive.org/download"
)

// Source implements ports.CatalogSource against the Internet Archive item API
type Source struct {
	httpClient  *http.Client
	metadataURL string
	downloadURL string
	log         *log.Logger
}

// Ensure Source implements CatalogSource
var _ ports.CatalogSource = (*Source)(nil)

// Option configures the Source
type Option func(*Source)

// WithHTTPClient replaces the default client
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		s.httpClient = c
	}
}

// WithBaseURLs points the source at other metadata and download endpoints
func WithBaseURLs(metadataURL, downloadURL string) Option {
	return func(s *Source) {
		if metadataURL != "" {
			s.metadataURL = strings.TrimRight(metadataURL, "/")
		}
		if downloadURL != "" {
			s.downloadURL = strings.TrimRight(downloadURL, "/")
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(s *Source) {
		s.log = l
	}
}

// NewSource creates a new Internet Archive source
func NewSource(opts ...Option) *Source {
	s := &Source{
		// Per-request timeouts come from the caller's context
		httpClient:  &http.Client{},
		metadataURL: DefaultMetadataURL,
		downloadURL: DefaultDownloadURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logging.OrDiscard(s.log)
	return s
}

// metadataResponse is the subset of the item metadata document we read.
// Files are decoded one by one so a bad entry does not sink the listing.
type metadataResponse struct {
	Files []json.RawMessage `json:"files"`
}

type fileEntry struct {
	Name string   `json:"name"`
	Size flexSize `json:"size"`
}

// flexSize accepts sizes encoded either as JSON numbers or decimal strings.
// Anything unparseable decodes to 0.
type flexSize int64

func (s *flexSize) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		*s = 0
		return nil
	}
	*s = flexSize(n)
	return nil
}

// BaseURL returns the download prefix for a collection
func (s *Source) BaseURL(collectionID string) string {
	return fmt.Sprintf("%s/%s/", s.downloadURL, collectionID)
}

// FetchManifest lists the files of a collection
func (s *Source) FetchManifest(ctx context.Context, collectionID string) ([]domain.RawEntry, error) {
	url := fmt.Sprintf("%s/%s", s.metadataURL, collectionID)
	s.log.Debugf("fetching manifest %s", url)

	body, err := s.get(ctx, "manifest", url, domain.ManifestTimeout)
	if err != nil {
		return nil, err
	}

	var meta metadataResponse
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, &domain.SourceError{Op: "manifest", URL: url, Kind: domain.ErrMalformedResponse, Err: err}
	}

	if len(meta.Files) == 0 {
		return nil, &domain.NotFoundError{
			Collection: collectionID,
			Message:    fmt.Sprintf("no files found in collection %s: make sure wallpapers were uploaded", collectionID),
		}
	}

	entries := make([]domain.RawEntry, 0, len(meta.Files))
	for i, raw := range meta.Files {
		var f fileEntry
		if err := json.Unmarshal(raw, &f); err != nil {
			s.log.Debugf("manifest %s: skipping entry %d: %v", collectionID, i, err)
			continue
		}
		if f.Name == "" {
			continue
		}
		entries = append(entries, domain.RawEntry{Path: f.Name, Size: int64(f.Size)})
	}

	s.log.Infof("manifest %s: %d files", collectionID, len(entries))
	return entries, nil
}

// FetchBytes downloads one file
func (s *Source) FetchBytes(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	s.log.Debugf("downloading %s (timeout %s)", url, timeout)
	return s.get(ctx, "download", url, timeout)
}

// get performs a single GET with its own deadline. Never retried.
func (s *Source) get(ctx context.Context, op, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.SourceError{Op: op, URL: url, Kind: domain.ErrNetwork, Err: err}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &domain.SourceError{Op: op, URL: url, Kind: classify(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, handleStatus(op, url, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.SourceError{Op: op, URL: url, Kind: classify(err), Err: err}
	}
	return body, nil
}

// handleStatus maps a non-2xx response to the error taxonomy
func handleStatus(op, url string, resp *http.Response) error {
	kind := domain.ErrNetwork
	if resp.StatusCode == http.StatusNotFound {
		kind = domain.ErrNotFound
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	var err error
	if msg := strings.TrimSpace(string(snippet)); msg != "" {
		err = fmt.Errorf("%s: %s", kind, msg)
	}
	return &domain.SourceError{Op: op, URL: url, Status: resp.StatusCode, Kind: kind, Err: err}
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.ErrTimeout
	}
	return domain.ErrNetwork
}
