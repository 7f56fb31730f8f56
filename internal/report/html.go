package report

import (
	"io"

	"hypotest/domain/stats"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// HTMLRenderer converts the markdown narrative into a standalone HTML page.
type HTMLRenderer struct {
	Title string
}

// NewHTMLRenderer creates an HTML renderer
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{Title: "One-sample t-test"}
}

// Format returns "html"
func (r *HTMLRenderer) Format() string { return FormatHTML }

// Render writes the HTML page to w.
func (r *HTMLRenderer) Render(w io.Writer, rep *stats.Report) error {
	doc, err := markdownDocument(rep)
	if err != nil {
		return err
	}

	// Parsers carry state and must not be reused across documents.
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: r.Title,
		Flags: html.CommonFlags | html.CompletePage,
	})

	_, err = w.Write(markdown.ToHTML([]byte(doc), p, renderer))
	return err
}
