package format

import (
	"bufio"
	"io"
	"strings"

	"github.com/aretw0/notes/pkg/core"
)

// TextSeparator ends every note in the plain text export.
var TextSeparator = strings.Repeat("-", 40)

// TextEncoder writes title, blank line, content and a separator per note.
// Plain text carries no tags, so it has no decoder.
type TextEncoder struct{}

// NewTextEncoder creates a new plain text encoder.
func NewTextEncoder() *TextEncoder {
	return &TextEncoder{}
}

func (e *TextEncoder) Encode(w io.Writer, notes []core.Note) error {
	bw := bufio.NewWriter(w)
	for _, n := range notes {
		bw.WriteString(n.Title)
		bw.WriteString("\n\n")
		if n.Content != "" {
			bw.WriteString(n.Content)
			bw.WriteString("\n")
		}
		bw.WriteString(TextSeparator)
		bw.WriteString("\n")
	}
	return bw.Flush()
}
