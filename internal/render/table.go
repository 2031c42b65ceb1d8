package render

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"hn-scraper/internal/scraper"
)

// TableRenderer emits two rows per story: a highlighted title row and a
// colored link row. No header; row order is story order; the table is written
// once after all rows are appended.
type TableRenderer struct{}

func NewTableRenderer() TableRenderer {
	return TableRenderer{}
}

func (TableRenderer) Render(w io.Writer, stories []*scraper.Story) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	titleColors := text.Colors{text.FgBlack, text.BgYellow, text.Bold}
	linkColors := text.Colors{text.FgYellow}

	for _, story := range stories {
		t.AppendRow(table.Row{titleColors.Sprint(story.Title)})
		t.AppendRow(table.Row{linkColors.Sprint(story.URL)})
	}

	t.Render()
	return nil
}
