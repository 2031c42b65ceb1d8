package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"hn-scraper/internal/normalize"
	"hn-scraper/internal/observability"
)

// ErrEmptyDocument is returned for a blank response body. Anything that looks
// like HTML parses; goquery does not reject malformed input.
var ErrEmptyDocument = errors.New("empty HTML document")

// ExtractError reports a required field missing from an item that matched the
// item selector. Fatal to the run unless the scraper is lenient.
type ExtractError struct {
	Field    string
	Selector string
	Index    int
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("item %d (selector %q): missing %s", e.Index, e.Selector, e.Field)
}

type Scraper struct {
	selectors *Selectors
	lenient   bool
	logger    *observability.Logger
}

// NewScraper builds a scraper for one selector set. With lenient=false a
// missing required field aborts the whole parse; with lenient=true the item
// is skipped with a warning.
func NewScraper(selectors *Selectors, lenient bool, logger *observability.Logger) *Scraper {
	if logger == nil {
		logger = observability.NewNop()
	}
	return &Scraper{
		selectors: selectors,
		lenient:   lenient,
		logger:    logger,
	}
}

// ParseStories extracts stories in document order, which encodes page rank.
// pageURL anchors relative hrefs. skipped counts title-filtered entries and,
// in lenient mode, entries dropped for missing fields.
func (s *Scraper) ParseStories(html, pageURL string) (stories []*Story, skipped int, err error) {
	if strings.TrimSpace(html) == "" {
		return nil, 0, ErrEmptyDocument
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse HTML: %w", err)
	}

	stories = []*Story{}
	var extractErr error

	doc.Find(s.selectors.ItemSelector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		story, err := s.extractStory(i, sel, pageURL)
		if err != nil {
			if s.lenient {
				s.logger.Warn("skipping entry", "index", i, "error", err.Error())
				skipped++
				return true
			}
			extractErr = err
			return false
		}
		if story == nil {
			// Filtered by title (the page's login control).
			skipped++
			return true
		}

		story.SequenceNum = len(stories)
		stories = append(stories, story)
		return true
	})

	if extractErr != nil {
		return nil, 0, extractErr
	}

	return stories, skipped, nil
}

// ParseLinks returns every anchor's href in document order, unresolved.
func (s *Scraper) ParseLinks(html string) ([]string, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyDocument
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	links := []string{}
	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		if href, exists := sel.Attr("href"); exists && href != "" {
			links = append(links, href)
		}
	})

	return links, nil
}

func (s *Scraper) extractStory(index int, sel *goquery.Selection, pageURL string) (*Story, error) {
	anchor := sel
	if !s.selectors.AnchorMode {
		anchor = findFirst(sel, s.selectors.TitleSelectors)
		if anchor == nil {
			return nil, &ExtractError{Field: "title", Selector: s.selectors.ItemSelector, Index: index}
		}
	}

	title := normalize.CollapseSpaces(anchor.Text())
	if title == "" {
		return nil, &ExtractError{Field: "title", Selector: s.selectors.ItemSelector, Index: index}
	}

	for _, skip := range s.selectors.SkipTitles {
		if title == skip {
			s.logger.Debug("filtered entry by title", "index", index, "title", title)
			return nil, nil
		}
	}

	urlAnchor := anchor
	if !s.selectors.AnchorMode && len(s.selectors.URLSelectors) > 0 {
		if found := findFirst(sel, s.selectors.URLSelectors); found != nil {
			urlAnchor = found
		}
	}
	href, exists := urlAnchor.Attr("href")
	if !exists || strings.TrimSpace(href) == "" {
		return nil, &ExtractError{Field: "href", Selector: s.selectors.ItemSelector, Index: index}
	}

	story := &Story{
		Title: title,
		URL:   normalize.StripFragment(normalize.Resolve(pageURL, href)),
	}

	// Rank is a sibling row cell, not a descendant of the anchor.
	if !s.selectors.AnchorMode {
		if rankSel := findFirst(sel, s.selectors.RankSelectors); rankSel != nil {
			story.Rank = normalize.CollapseSpaces(rankSel.Text())
		}
	}

	return story, nil
}

// findFirst tries selectors in order and returns the first non-empty match.
func findFirst(sel *goquery.Selection, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		found := sel.Find(selector).First()
		if found.Length() > 0 {
			return found
		}
	}
	return nil
}
