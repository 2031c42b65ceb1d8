// Package normalize cleans extracted text and link targets before they reach
// the renderer.
package normalize

import (
	"net/url"
	"regexp"
	"strings"
)

var spaceRe = regexp.MustCompile(`\s+`)

// CollapseSpaces trims the string and collapses internal whitespace runs
// (including NBSP) to single spaces.
func CollapseSpaces(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StripFragment drops the #anchor part of a URL.
func StripFragment(urlStr string) string {
	urlStr = strings.TrimSpace(urlStr)
	if idx := strings.Index(urlStr, "#"); idx > -1 {
		urlStr = urlStr[:idx]
	}
	return urlStr
}

// Resolve makes href absolute against the page URL. The front page links
// its own discussion pages relatively (item?id=...), external stories
// absolutely. Unparseable input comes back unchanged.
func Resolve(pageURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return href
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}

	return base.ResolveReference(ref).String()
}
