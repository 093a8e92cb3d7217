package format

import (
	"bytes"
	"html/template"
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"

	"github.com/aretw0/notes/pkg/core"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
</head>
<body>
<main>
{{.Content}}
</main>
</body>
</html>
`

var page = template.Must(template.New("export").Parse(pageTemplate))

type pageData struct {
	Title   string
	Content template.HTML
}

// HTMLEncoder renders the Markdown export as a standalone, sanitized HTML page.
type HTMLEncoder struct {
	Title string
}

// NewHTMLEncoder creates a new HTML encoder.
func NewHTMLEncoder() *HTMLEncoder {
	return &HTMLEncoder{Title: "Notes"}
}

func (e *HTMLEncoder) Encode(w io.Writer, notes []core.Note) error {
	var md bytes.Buffer
	if err := NewMarkdownCodec().Encode(&md, notes); err != nil {
		return err
	}
	return page.Execute(w, pageData{
		Title:   e.Title,
		Content: template.HTML(RenderMarkdown(md.Bytes())),
	})
}

// RenderMarkdown converts markdown to sanitized HTML.
func RenderMarkdown(src []byte) []byte {
	// Parser is stateful, one per call.
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})

	unsafe := markdown.ToHTML(src, p, renderer)
	return bluemonday.UGCPolicy().SanitizeBytes(unsafe)
}
