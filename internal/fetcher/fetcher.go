// Package fetcher acquires document bytes from local files, HTTP URLs or a
// headless browser.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ludo-technologies/domscan/domain"
	"github.com/ludo-technologies/domscan/internal/logging"
)

const (
	// DefaultUserAgent identifies domscan to remote servers
	DefaultUserAgent = "Mozilla/5.0 (compatible; domscan/1.0; +https://github.com/ludo-technologies/domscan)"

	// DefaultMaxBytes caps the size of a fetched page
	DefaultMaxBytes int64 = 10 << 20

	// DefaultTimeout bounds a single fetch or render
	DefaultTimeout = 30 * time.Second
)

// Options configures a Loader
type Options struct {
	UserAgent string
	MaxBytes  int64
	Timeout   time.Duration

	// Render loads URLs in a headless browser instead of a plain GET
	Render bool

	// Viewport used when rendering
	ViewportWidth  int
	ViewportHeight int
}

// Renderer returns the live document markup of a URL
type Renderer interface {
	Render(ctx context.Context, url string) ([]byte, error)
}

// Loader implements domain.SourceLoader
type Loader struct {
	opts     Options
	client   *http.Client
	renderer Renderer
	logger   *zap.Logger
}

// Option customizes a Loader
type Option func(*Loader)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithRenderer replaces the headless browser renderer
func WithRenderer(r Renderer) Option {
	return func(l *Loader) { l.renderer = r }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) { l.logger = logging.OrNop(logger) }
}

// NewLoader creates a loader, filling unset options with defaults
func NewLoader(opts Options, options ...Option) *Loader {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	l := &Loader{
		opts:   opts,
		client: &http.Client{},
		logger: zap.NewNop(),
	}
	for _, o := range options {
		o(l)
	}
	if l.renderer == nil {
		l.renderer = NewRodRenderer(opts, l.logger)
	}
	return l
}

// IsURL reports whether source should be fetched over the network
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load returns the raw bytes of a file or URL
func (l *Loader) Load(ctx context.Context, source string) ([]byte, error) {
	if !IsURL(source) {
		return l.loadFile(source)
	}

	ctx, cancel := context.WithTimeout(ctx, l.opts.Timeout)
	defer cancel()

	if l.opts.Render {
		l.logger.Debug("rendering page", zap.String("url", source))
		data, err := l.renderer.Render(ctx, source)
		if err != nil {
			return nil, domain.NewFetchError(source, err)
		}
		if int64(len(data)) > l.opts.MaxBytes {
			return nil, domain.NewFetchError(source, fmt.Errorf("rendered document exceeds %d bytes", l.opts.MaxBytes))
		}
		return data, nil
	}

	l.logger.Debug("fetching page", zap.String("url", source))
	return l.fetch(ctx, source)
}

func (l *Loader) loadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		return nil, domain.NewInvalidInputError("failed to read "+path, err)
	}
	return data, nil
}
