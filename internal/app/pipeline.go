package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"hn-scraper/internal/config"
	"hn-scraper/internal/fetcher"
	"hn-scraper/internal/observability"
	"hn-scraper/internal/render"
	"hn-scraper/internal/scraper"
)

// PageFetcher is what the pipeline needs from a page source. Satisfied by
// both the HTTP fetcher and the headless-Chrome one.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.FetchResponse, error)
}

// Pipeline wires fetch → parse → extract → render for one run. Any stage
// error aborts before anything is written to out.
type Pipeline struct {
	cfg      *config.Config
	logger   *observability.Logger
	fetcher  PageFetcher
	scraper  *scraper.Scraper
	renderer render.Renderer
	out      io.Writer
}

func NewPipeline(
	cfg *config.Config,
	logger *observability.Logger,
	f PageFetcher,
	s *scraper.Scraper,
	r render.Renderer,
	out io.Writer,
) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		logger:   logger,
		fetcher:  f,
		scraper:  s,
		renderer: r,
		out:      out,
	}
}

type RunStats struct {
	Records int
	Skipped int
	Elapsed time.Duration
}

// Run performs one fetch-to-render pass over pageURL. Output order is
// document order end to end.
func (p *Pipeline) Run(ctx context.Context, pageURL string) (*RunStats, error) {
	start := time.Now()

	p.logger.Info("starting run", "url", pageURL)

	resp, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		p.logger.Error("fetch failed", "url", pageURL, "error", err.Error())
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	stories, skipped, err := p.scraper.ParseStories(string(resp.Body), resp.URL)
	if err != nil {
		p.logger.Error("extraction failed", "url", pageURL, "error", err.Error())
		return nil, fmt.Errorf("extract %s: %w", pageURL, err)
	}

	if err := p.renderer.Render(p.out, stories); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	stats := &RunStats{
		Records: len(stories),
		Skipped: skipped,
		Elapsed: time.Since(start),
	}

	p.logger.Info("run completed",
		"url", pageURL,
		"stories", stats.Records,
		"skipped", stats.Skipped,
		"elapsed", stats.Elapsed.String(),
	)

	return stats, nil
}

// RunLinks performs one fetch-and-list-hrefs pass. Like Run, the output is
// buffered and written once.
func (p *Pipeline) RunLinks(ctx context.Context, pageURL string) (*RunStats, error) {
	start := time.Now()

	resp, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		p.logger.Error("fetch failed", "url", pageURL, "error", err.Error())
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	links, err := p.scraper.ParseLinks(string(resp.Body))
	if err != nil {
		p.logger.Error("extraction failed", "url", pageURL, "error", err.Error())
		return nil, fmt.Errorf("extract %s: %w", pageURL, err)
	}

	var buf bytes.Buffer
	for _, link := range links {
		fmt.Fprintln(&buf, link)
	}
	if _, err := p.out.Write(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return &RunStats{
		Records: len(links),
		Elapsed: time.Since(start),
	}, nil
}
