package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSelectors(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "selectors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSelectors(t *testing.T) {
	path := writeSelectors(t, `
item_selector: "tr.athing"
rank_selectors:
  - "span.rank"
title_selectors:
  - "span.titleline > a"
url_selectors:
  - "span.titleline > a"
skip_titles:
  - "login"
`)

	selectors, err := LoadSelectors(path)
	require.NoError(t, err)

	assert.Equal(t, "tr.athing", selectors.ItemSelector)
	assert.Equal(t, []string{"span.rank"}, selectors.RankSelectors)
	assert.Equal(t, []string{"login"}, selectors.SkipTitles)
	assert.False(t, selectors.AnchorMode)
}

func TestLoadSelectorsAnchorMode(t *testing.T) {
	// Anchor mode needs no title/url selector lists.
	path := writeSelectors(t, `
item_selector: "td:nth-child(3) > span > a"
anchor_mode: true
skip_titles:
  - "login"
`)

	selectors, err := LoadSelectors(path)
	require.NoError(t, err)
	assert.True(t, selectors.AnchorMode)
}

func TestLoadSelectorsMissingItemSelector(t *testing.T) {
	path := writeSelectors(t, "anchor_mode: true\n")

	_, err := LoadSelectors(path)
	assert.ErrorContains(t, err, "item_selector")
}

func TestLoadSelectorsMissingTitleSelectors(t *testing.T) {
	path := writeSelectors(t, "item_selector: \"tr.athing\"\n")

	_, err := LoadSelectors(path)
	assert.ErrorContains(t, err, "title_selectors")
}

func TestLoadSelectorsKeepsStdoutClean(t *testing.T) {
	// Stdout carries rendered records only; loader diagnostics go through
	// the log package.
	path := writeSelectors(t, `
item_selector: "tr.athing"
title_selectors:
  - "span.titleline > a"
url_selectors:
  - "span.titleline > a"
`)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	_, loadErr := LoadSelectors(path)

	require.NoError(t, w.Close())
	os.Stdout = orig

	captured, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, loadErr)
	assert.Empty(t, string(captured))
}

func TestLoadSelectorsEmptyPath(t *testing.T) {
	_, err := LoadSelectors("")
	assert.Error(t, err)
}
