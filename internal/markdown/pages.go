package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ErrPageNotFound is returned when no standalone page matches a name.
var ErrPageNotFound = errors.New("markdown: page not found")

// Page is a standalone Markdown document outside the post collection, such
// as a resume or an about page.
type Page struct {
	Name     string
	Metadata interfaces.PostMetadata
	Body     *Body
}

// PageLoader reads pages from a single directory of a filesystem.
type PageLoader struct {
	fs        fs.FS
	root      string
	extension string
	parser    interfaces.MarkdownParser
}

// NewPageLoader builds a loader for <root>/<name><ext> files.
func NewPageLoader(filesystem fs.FS, cfg SourceConfig, parser interfaces.MarkdownParser) *PageLoader {
	if parser == nil {
		parser = NewGoldmarkParser(interfaces.ParseOptions{})
	}
	return &PageLoader{
		fs:        filesystem,
		root:      cleanRoot(cfg.Root),
		extension: extensionOrDefault(cfg.Extension),
		parser:    parser,
	}
}

// Load reads the page called name. Names are single path segments; anything
// else is reported as ErrPageNotFound.
func (l *PageLoader) Load(ctx context.Context, name string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return nil, ErrPageNotFound
	}

	file := path.Join(l.root, name+l.extension)
	data, err := fs.ReadFile(l.fs, file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrPageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("markdown page read %s: %w", file, err)
	}

	meta, body, err := ParseMetadata(data)
	if err != nil {
		return nil, fmt.Errorf("markdown page %s: %w", file, err)
	}

	page := &Page{Name: name, Body: NewBody(body, l.parser)}
	if meta != nil {
		page.Metadata = *meta
	}
	if page.Metadata.Title == "" {
		page.Metadata.Title = name
	}
	return page, nil
}
