package scraper

// Story is one extracted front-page entry. Rank is optional: the
// positional-anchor layout carries no rank marker. SequenceNum counts emitted
// stories in document order, which is the page's ranking order.
type Story struct {
	Rank        string
	Title       string
	URL         string
	SequenceNum int
}

// Selectors describes how to locate entries in one page layout. Title, URL
// and rank selectors are tried in order until one matches, so a set can cover
// old and new revisions of the same markup. With AnchorMode the item selector
// targets the story anchor itself and the title/URL lists are unused.
type Selectors struct {
	ItemSelector   string   `yaml:"item_selector"`
	RankSelectors  []string `yaml:"rank_selectors"`
	TitleSelectors []string `yaml:"title_selectors"`
	URLSelectors   []string `yaml:"url_selectors"`
	AnchorMode     bool     `yaml:"anchor_mode"`
	SkipTitles     []string `yaml:"skip_titles"`
}

// StorySelectors matches the row-marker layout: one tr.athing per story, a
// rank span, the title anchor under the title cell. The a.storylink and
// td.title fallbacks cover the pre-titleline revisions of the markup.
func StorySelectors() *Selectors {
	return &Selectors{
		ItemSelector:   "tr.athing",
		RankSelectors:  []string{"span.rank"},
		TitleSelectors: []string{"span.titleline > a", "a.storylink", "td.title > a"},
		URLSelectors:   []string{"span.titleline > a", "a.storylink", "td.title > a"},
		SkipTitles:     []string{"login"},
	}
}

// AnchorSelectors matches the positional layout: the third cell's nested
// anchor is the story link itself. The page's login control matches the same
// selector, hence the skip list.
func AnchorSelectors() *Selectors {
	return &Selectors{
		ItemSelector: "td:nth-child(3) > span > a",
		AnchorMode:   true,
		SkipTitles:   []string{"login"},
	}
}
