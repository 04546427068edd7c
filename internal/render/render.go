// Package render converts card markdown into HTML fragments using goldmark.
package render

import (
	"bytes"
	stdhtml "html"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Options controls the optional parts of the HTML output
type Options struct {
	HighlightStyle string // chroma style for fenced code, "" disables highlighting
	HardWraps      bool   // render soft line breaks as <br>
	XHTML          bool   // emit self-closing void elements
}

// DefaultOptions returns the options used by the package-level Render
func DefaultOptions() Options {
	return Options{HighlightStyle: "github"}
}

// Renderer turns markdown into HTML. It holds no per-call state and is
// safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a renderer with every supported markdown extension enabled
func New(opts Options) *Renderer {
	extensions := []goldmark.Extender{
		extension.GFM, // tables, strikethrough, linkify, task lists
		extension.Footnote,
		extension.DefinitionList,
		extension.Typographer,
		emoji.Emoji,
	}
	if opts.HighlightStyle != "" {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(opts.HighlightStyle),
		))
	}

	// Raw HTML must pass through so the <br> blank-line marker survives
	rendererOpts := []renderer.Option{html.WithUnsafe()}
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if opts.XHTML {
		rendererOpts = append(rendererOpts, html.WithXHTML())
	}

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extensions...),
			goldmark.WithRendererOptions(rendererOpts...),
		),
	}
}

// Render converts text to an HTML fragment. It never fails: if goldmark
// reports an error the escaped text is returned as a single paragraph.
func (r *Renderer) Render(text string) string {
	if text == "" {
		return ""
	}

	var buf bytes.Buffer
	buf.Grow(len(text) + len(text)/2)
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "<p>" + stdhtml.EscapeString(text) + "</p>\n"
	}
	return buf.String()
}

var defaultRenderer = New(DefaultOptions())

// Render converts text to HTML with the default options
func Render(text string) string {
	return defaultRenderer.Render(text)
}
