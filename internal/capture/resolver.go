// Package capture acquires analyzable image bytes from a URL: a direct HTTP
// fetch when the URL points at an image file, a headless-browser screenshot
// when it points at a web page.
package capture

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// Provenance records how an image payload was obtained.
type Provenance string

const (
	ProvenanceUpload     Provenance = "upload"
	ProvenanceFetch      Provenance = "fetch"
	ProvenanceScreenshot Provenance = "screenshot"
)

// Acquired is the outcome of resolving a URL: raw bytes plus where they came
// from. It lives for the duration of a single request.
type Acquired struct {
	Data       []byte
	Provenance Provenance
	SourceURL  string
}

// ImageFetcher downloads a direct image URL.
type ImageFetcher interface {
	Fetch(ctx context.Context, imageURL string) ([]byte, error)
}

// Screenshotter renders a web page and captures its viewport.
type Screenshotter interface {
	Capture(ctx context.Context, pageURL string) ([]byte, error)
}

// imageExtensions is the fixed set of path suffixes that classify a URL as a
// direct image rather than a page to render.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".svg"}

// blockedHosts are loopback/local addresses rejected before any browser work
// to keep the screenshot path from probing the internal network.
var blockedHosts = map[string]struct{}{
	"localhost": {},
	"127.0.0.1": {},
	"0.0.0.0":   {},
}

// ErrInvalidURL is returned for URLs the resolver refuses to touch.
var ErrInvalidURL = errors.New("URL inválida ou não suportada")

// Options configures a Resolver. Fetcher and Screenshotter default to the
// real implementations when nil.
type Options struct {
	MaxSize       int64
	Logger        zerolog.Logger
	Fetcher       ImageFetcher
	Screenshotter Screenshotter
}

// Resolver classifies URLs and acquires image bytes accordingly. It holds
// fixed configuration only and is safe for concurrent use.
type Resolver struct {
	fetcher       ImageFetcher
	screenshotter Screenshotter
	logger        zerolog.Logger
}

// NewResolver builds a resolver, wiring the HTTP fetcher and headless-browser
// capturer unless fakes are supplied.
func NewResolver(opts Options) *Resolver {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = NewHTTPImageFetcher(maxSize, opts.Logger)
	}
	screenshotter := opts.Screenshotter
	if screenshotter == nil {
		screenshotter = NewBrowserCapturer(maxSize, opts.Logger)
	}
	return &Resolver{
		fetcher:       fetcher,
		screenshotter: screenshotter,
		logger:        opts.Logger,
	}
}

// IsDirectImageURL reports whether rawURL is an http/https URL whose path
// ends in a recognized image extension.
func IsDirectImageURL(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Resolve acquires image bytes for rawURL. Direct-image URLs are fetched over
// HTTP; every other http/https URL is rendered and screenshotted, unless its
// host is blocked. Non-network schemes fail before any I/O.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*Acquired, error) {
	trimmed := strings.TrimSpace(rawURL)
	u, err := url.Parse(trimmed)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, ErrInvalidURL
	}

	if IsDirectImageURL(trimmed) {
		data, err := r.fetcher.Fetch(ctx, trimmed)
		if err != nil {
			return nil, err
		}
		r.logger.Debug().Str("url", trimmed).Int("bytes", len(data)).Msg("capture: fetched direct image")
		return &Acquired{Data: data, Provenance: ProvenanceFetch, SourceURL: trimmed}, nil
	}

	if _, blocked := blockedHosts[strings.ToLower(u.Hostname())]; blocked {
		return nil, ErrInvalidURL
	}

	data, err := r.screenshotter.Capture(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	r.logger.Debug().Str("url", trimmed).Int("bytes", len(data)).Msg("capture: captured page screenshot")
	return &Acquired{Data: data, Provenance: ProvenanceScreenshot, SourceURL: trimmed}, nil
}
