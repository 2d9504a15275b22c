package markdown

import (
	"context"
	"html/template"
	"sync"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Body is the content handle of a parsed document. The Markdown is rendered
// on the first HTML call and the result, or error, is kept.
type Body struct {
	markdown []byte
	parser   interfaces.MarkdownParser

	once sync.Once
	html template.HTML
	err  error
}

var _ interfaces.ContentHandle = (*Body)(nil)

// NewBody wraps markdown for lazy rendering with parser.
func NewBody(markdown []byte, parser interfaces.MarkdownParser) *Body {
	return &Body{markdown: markdown, parser: parser}
}

// HTML renders the body. A cancelled ctx is reported without rendering.
func (b *Body) HTML(ctx context.Context) (template.HTML, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b.once.Do(func() {
		out, err := b.parser.Parse(b.markdown)
		if err != nil {
			b.err = err
			return
		}
		b.html = template.HTML(out)
	})
	return b.html, b.err
}
