package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hn-scraper/internal/config"
	"hn-scraper/internal/fetcher"
	"hn-scraper/internal/observability"
	"hn-scraper/internal/render"
	"hn-scraper/internal/scraper"
)

const frontPageHTML = `<html><body><table>
<tr><td class="pad"></td><td class="pad"></td><td><span class="pagetop"><a href="login?goto=news">login</a></span></td></tr>
<tr class="athing">
<td class="title"><span class="rank">1.</span></td>
<td class="votelinks"></td>
<td class="title"><span class="titleline"><a href="http://a">Story A</a></span></td>
</tr>
<tr class="athing">
<td class="title"><span class="rank">2.</span></td>
<td class="votelinks"></td>
<td class="title"><span class="titleline"><a href="http://b">Story B</a></span></td>
</tr>
</table></body></html>`

const missingHrefHTML = `<html><body><table>
<tr class="athing">
<td class="title"><span class="rank">1.</span></td>
<td class="votelinks"></td>
<td class="title"><span class="titleline"><a>Broken story</a></span></td>
</tr>
</table></body></html>`

func newTestPipeline(t *testing.T, serverURL string, out *bytes.Buffer) (*Pipeline, *config.Config) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.BaseURL = serverURL

	logger := observability.NewNop()
	f := fetcher.NewFetcher(cfg, logger)
	s := scraper.NewScraper(scraper.StorySelectors(), cfg.Extract.Lenient, logger)
	return NewPipeline(cfg, logger, f, s, render.NewLineRenderer(), out), cfg
}

func TestPipelineRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(frontPageHTML))
	}))
	defer server.Close()

	var out bytes.Buffer
	pipeline, cfg := newTestPipeline(t, server.URL, &out)

	stats, err := pipeline.Run(context.Background(), cfg.BaseURL)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Records)
	assert.Zero(t, stats.Skipped)

	want := " | 1. | Story A\n" +
		"http://a\n" +
		"\n" +
		" | 2. | Story B\n" +
		"http://b\n" +
		"\n"
	assert.Equal(t, want, out.String())
}

func TestPipelineRunNoOutputOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	var out bytes.Buffer
	pipeline, cfg := newTestPipeline(t, server.URL, &out)

	_, err := pipeline.Run(context.Background(), cfg.BaseURL)
	require.Error(t, err)
	assert.Empty(t, out.String(), "a failed fetch must produce zero rendered records")
}

func TestPipelineRunNoOutputOnExtractError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(missingHrefHTML))
	}))
	defer server.Close()

	var out bytes.Buffer
	pipeline, cfg := newTestPipeline(t, server.URL, &out)

	_, err := pipeline.Run(context.Background(), cfg.BaseURL)
	require.Error(t, err)
	assert.Empty(t, out.String(), "a failed extraction must produce zero rendered records")
}

const mixedHrefHTML = `<html><body><table>
<tr class="athing">
<td class="title"><span class="rank">1.</span></td>
<td class="votelinks"></td>
<td class="title"><span class="titleline"><a href="http://a">Story A</a></span></td>
</tr>
<tr class="athing">
<td class="title"><span class="rank">2.</span></td>
<td class="votelinks"></td>
<td class="title"><span class="titleline"><a>Broken story</a></span></td>
</tr>
<tr class="athing">
<td class="title"><span class="rank">3.</span></td>
<td class="votelinks"></td>
<td class="title"><span class="titleline"><a href="http://c">Story C</a></span></td>
</tr>
</table></body></html>`

func TestPipelineRunLenientCountsSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mixedHrefHTML))
	}))
	defer server.Close()

	cfg := config.DefaultConfig()
	cfg.BaseURL = server.URL
	cfg.Extract.Lenient = true

	logger := observability.NewNop()
	f := fetcher.NewFetcher(cfg, logger)
	s := scraper.NewScraper(scraper.StorySelectors(), cfg.Extract.Lenient, logger)

	var out bytes.Buffer
	pipeline := NewPipeline(cfg, logger, f, s, render.NewLineRenderer(), &out)

	stats, err := pipeline.Run(context.Background(), cfg.BaseURL)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Records)
	assert.Equal(t, 1, stats.Skipped)

	assert.Contains(t, out.String(), "Story A")
	assert.Contains(t, out.String(), "Story C")
	assert.NotContains(t, out.String(), "Broken story")
}

func TestPipelineRunLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(frontPageHTML))
	}))
	defer server.Close()

	var out bytes.Buffer
	pipeline, cfg := newTestPipeline(t, server.URL, &out)

	stats, err := pipeline.RunLinks(context.Background(), cfg.BaseURL)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Records)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(t, []string{"login?goto=news", "http://a", "http://b"}, lines)
}
