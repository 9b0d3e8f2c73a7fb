package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/ludo-technologies/domscan/internal/logging"
)

const (
	defaultViewportWidth  = 1366
	defaultViewportHeight = 768

	// stableWindow is how long the DOM must stay unchanged before capture
	stableWindow = 500 * time.Millisecond
)

// RodRenderer loads pages in a headless Chrome and captures the live DOM
type RodRenderer struct {
	width     int
	height    int
	userAgent string
	logger    *zap.Logger
}

// NewRodRenderer creates a renderer that launches a browser per call
func NewRodRenderer(opts Options, logger *zap.Logger) *RodRenderer {
	r := &RodRenderer{
		width:     opts.ViewportWidth,
		height:    opts.ViewportHeight,
		userAgent: opts.UserAgent,
		logger:    logging.OrNop(logger),
	}
	if r.width <= 0 {
		r.width = defaultViewportWidth
	}
	if r.height <= 0 {
		r.height = defaultViewportHeight
	}
	return r
}

// Render navigates to url, waits for load and a stable DOM, then returns
// document.documentElement.outerHTML
func (r *RodRenderer) Render(ctx context.Context, url string) ([]byte, error) {
	l := launcher.New().Headless(true).Context(ctx)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             r.width,
		Height:            r.height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}
	if r.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: r.userAgent}); err != nil {
			return nil, fmt.Errorf("set user agent: %w", err)
		}
	}

	if err := page.Navigate(url); err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}
	if err := page.WaitStable(stableWindow); err != nil {
		r.logger.Warn("page did not settle, capturing current DOM",
			zap.String("url", url), zap.Error(err))
	}

	markup, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	r.logger.Debug("rendered page", zap.String("url", url), zap.Int("bytes", len(markup)))
	return []byte(markup), nil
}
