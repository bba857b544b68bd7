// Package markdown renders ministry bodies into HTML and derives reading
// metadata. It is the rendering capability injected into the ministries
// normalizer.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Rendered carries the HTML body plus derived metadata for one document.
type Rendered struct {
	HTML        []byte
	WordCount   int
	ReadingTime int
}

// Renderer turns markdown source into rendered output.
type Renderer interface {
	Render(ctx context.Context, source []byte) (*Rendered, error)
}

// wordsPerMinute matches the rate the site's reading-time plugin assumed.
const wordsPerMinute = 200

// GoldmarkRenderer implements Renderer with the goldmark engine. The engine
// is built once and is safe for concurrent use.
type GoldmarkRenderer struct {
	engine goldmark.Markdown
}

// NewGoldmarkRenderer constructs a renderer with GFM extensions, auto
// heading IDs, and raw HTML passthrough enabled.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	return &GoldmarkRenderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render converts the markdown body to HTML and computes word count and
// reading time (ceiling of words over 200 wpm, minimum of one minute for a
// non-empty body).
func (r *GoldmarkRenderer) Render(ctx context.Context, source []byte) (*Rendered, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.engine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}

	words := len(strings.Fields(string(source)))
	minutes := 0
	if words > 0 {
		minutes = (words + wordsPerMinute - 1) / wordsPerMinute
	}

	return &Rendered{
		HTML:        buf.Bytes(),
		WordCount:   words,
		ReadingTime: minutes,
	}, nil
}
