package render

import (
	"bytes"
	"fmt"
	"io"

	"hn-scraper/internal/scraper"
)

// LineRenderer emits one block per story: a rank/title line, then the URL on
// its own line. The rank field is omitted when the story carries none.
type LineRenderer struct{}

func NewLineRenderer() LineRenderer {
	return LineRenderer{}
}

func (LineRenderer) Render(w io.Writer, stories []*scraper.Story) error {
	var buf bytes.Buffer
	for _, story := range stories {
		if story.Rank != "" {
			fmt.Fprintf(&buf, " | %s | %s\n", story.Rank, story.Title)
		} else {
			fmt.Fprintf(&buf, " | %s\n", story.Title)
		}
		fmt.Fprintf(&buf, "%s\n\n", story.URL)
	}

	_, err := w.Write(buf.Bytes())
	return err
}
