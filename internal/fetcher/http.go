package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ludo-technologies/domscan/domain"
)

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewFetchError(url, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", l.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, domain.NewFetchError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewFetchError(url, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status))
	}

	// read one byte past the limit to detect oversized pages
	body, err := io.ReadAll(io.LimitReader(resp.Body, l.opts.MaxBytes+1))
	if err != nil {
		return nil, domain.NewFetchError(url, fmt.Errorf("failed to read response: %w", err))
	}
	if int64(len(body)) > l.opts.MaxBytes {
		return nil, domain.NewFetchError(url, fmt.Errorf("response exceeds %d bytes", l.opts.MaxBytes))
	}

	l.logger.Debug("fetched page",
		zap.String("url", url),
		zap.Int("bytes", len(body)),
		zap.String("content_type", resp.Header.Get("Content-Type")))
	return body, nil
}
