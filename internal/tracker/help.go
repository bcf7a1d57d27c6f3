package tracker

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/yutounun/storetracker/internal/core/styles"
)

const helpTitle = "How to use"

const helpMarkdown = "Press **Shift+Z** anywhere to show or hide this panel. " +
	"Click a store name, or focus it with `tab` and press `enter`, to expand its snapshot.\n\n" +
	"```go\n" +
	"stores := tracker.Stores{}.\n" +
	"    Add(\"cart\", cart).\n" +
	"    Add(\"session\", &session)\n" +
	"\n" +
	"debug := tracker.New(stores, tracker.WithHelpSection(true))\n" +
	"release := debug.Mount(bus)\n" +
	"defer release()\n" +
	"```\n\n" +
	"Values implementing `Snapshot() any` are asked for a copy on every render.\n"

// helpCache keeps the rendered help text for the last width.
type helpCache struct {
	width int
	lines []string
}

// helpLines renders the help markdown wrapped to width. Rendering errors
// fall back to the raw markdown.
func (t *Tracker) helpLines(width int) []string {
	if t.help.lines != nil && t.help.width == width {
		return t.help.lines
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)

	var out string
	if err == nil {
		out, err = renderer.Render(helpMarkdown)
	}
	if err != nil {
		t.logger.Debug().Err(err).Msg("help markdown render failed, showing raw text")
		out = helpMarkdown
	}

	t.help = helpCache{
		width: width,
		lines: strings.Split(strings.Trim(out, "\n"), "\n"),
	}
	return t.help.lines
}
