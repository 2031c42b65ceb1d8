// Package render turns extracted stories into terminal output. Rendering is
// a pure function of its input and runs only after extraction has finished
// for the whole page, so a failed run never produces partial output.
package render

import (
	"io"

	"hn-scraper/internal/scraper"
)

type Renderer interface {
	Render(w io.Writer, stories []*scraper.Story) error
}
