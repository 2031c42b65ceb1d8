package fetcher

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"hn-scraper/internal/config"
	"hn-scraper/internal/observability"
)

// RenderedFetcher acquires a page through headless Chrome, for targets that
// build their listing with JavaScript. Same contract as Fetcher.Fetch: one
// page per call, the serialized DOM as the body.
type RenderedFetcher struct {
	cfg    *config.Config
	logger *observability.Logger
}

func NewRenderedFetcher(cfg *config.Config, logger *observability.Logger) *RenderedFetcher {
	return &RenderedFetcher{
		cfg:    cfg,
		logger: logger,
	}
}

func (f *RenderedFetcher) Fetch(ctx context.Context, urlStr string) (*FetchResponse, error) {
	l := launcher.New().Headless(true)
	if f.cfg.Rod.ChromePath != "" {
		l = l.Bin(f.cfg.Rod.ChromePath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			f.logger.Warn("failed to close browser", "error", err)
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	page = page.Timeout(f.cfg.GetRodPageTimeout())

	if err := page.Navigate(urlStr); err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}

	if err := page.Timeout(f.cfg.GetRodWaitLoadTimeout()).WaitLoad(); err != nil {
		return nil, fmt.Errorf("page load failed: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered DOM: %w", err)
	}

	f.logger.Debug("rendered page acquired", "url", urlStr, "body_bytes", len(html))

	return &FetchResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(html),
		URL:        urlStr,
	}, nil
}
