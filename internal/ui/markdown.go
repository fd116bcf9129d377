package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
)

// noteWrapWidth keeps rendered notes readable alongside the demo's
// two-space indented output.
const noteWrapWidth = 80

// RenderMarkdown renders a markdown note to stderr. When the renderer
// cannot be built or the note fails to render, the raw markdown is
// printed instead so the content is never lost.
func RenderMarkdown(md string) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(noteWrapWidth),
		glamour.WithEmoji(),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, md)
		return
	}

	out, err := renderer.Render(md)
	if err != nil {
		fmt.Fprintln(os.Stderr, md)
		return
	}

	fmt.Fprintln(os.Stderr, strings.TrimRight(out, "\n"))
}
