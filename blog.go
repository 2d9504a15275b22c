package blog

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/site"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// PostService exports the content index query contract.
type PostService = interfaces.PostService

// Post exports the post shape served by the index.
type Post = interfaces.Post

// PostMetadata exports the frontmatter of a post.
type PostMetadata = interfaces.PostMetadata

// Diagnostic exports the record of a document left out of the index.
type Diagnostic = posts.Diagnostic

// IsNotFound reports whether err is a missing post.
func IsNotFound(err error) bool {
	return posts.IsNotFound(err)
}

type options struct {
	fs             fs.FS
	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer
	parser         interfaces.MarkdownParser
}

// Option overrides a collaborator of the module.
type Option func(*options)

// WithFS reads content from fsys instead of Content.Dir on disk.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithLoggerProvider replaces the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *options) {
		o.loggerProvider = provider
	}
}

// WithLogWriter redirects the console provider output.
func WithLogWriter(w io.Writer) Option {
	return func(o *options) {
		o.logWriter = w
	}
}

// WithMarkdownParser replaces the goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(o *options) {
		o.parser = parser
	}
}

// Module represents the top level blog runtime façade.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	index    *posts.Index
	pages    *markdown.PageLoader
	site     *site.Site
}

// New wires the content index, page loader and site from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.fs == nil {
		o.fs = os.DirFS(cfg.Content.Dir)
	}
	if o.loggerProvider == nil {
		provider, err := newLoggerProvider(cfg.Logging, o.logWriter)
		if err != nil {
			return nil, err
		}
		o.loggerProvider = provider
	}
	if o.parser == nil {
		o.parser = markdown.NewGoldmarkParser(cfg.Markdown.ParseOptions())
	}

	postsRoot := path.Clean(strings.Trim(cfg.Content.PostsRoot, "/"))
	source := markdown.NewSource(o.fs, markdown.SourceConfig{
		Root:      postsRoot,
		Extension: cfg.Content.Extension,
	}, o.parser, logging.MarkdownLogger(o.loggerProvider))

	index, err := posts.New(source, posts.Config{
		Rules:           posts.IdentifierRules{Root: source.Root(), Extension: source.Extension()},
		LoadConcurrency: cfg.Content.LoadConcurrency,
	}, posts.WithLogger(logging.PostsLogger(o.loggerProvider)))
	if err != nil {
		return nil, err
	}

	pages := markdown.NewPageLoader(o.fs, markdown.SourceConfig{
		Root:      cfg.Content.PagesRoot,
		Extension: cfg.Content.Extension,
	}, o.parser)

	handler, err := site.New(index, site.Config{
		Title:          cfg.Site.Title,
		Description:    cfg.Site.Description,
		Author:         cfg.Site.Author,
		BaseURL:        cfg.Site.BaseURL,
		StaticPaths:    cfg.Site.StaticPaths,
		RecentLimit:    cfg.Site.RecentLimit,
		RequestTimeout: cfg.Server.RequestTimeout,
	}, site.WithLogger(logging.SiteLogger(o.loggerProvider)), site.WithPages(pages))
	if err != nil {
		return nil, err
	}

	return &Module{
		cfg:      cfg,
		provider: o.loggerProvider,
		index:    index,
		pages:    pages,
		site:     handler,
	}, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// Posts returns the content index.
func (m *Module) Posts() PostService {
	return m.index
}

// Diagnostics lists the documents the completed load left out.
func (m *Module) Diagnostics() []Diagnostic {
	return m.index.Diagnostics()
}

// Handler returns the HTTP handler serving the site.
func (m *Module) Handler() http.Handler {
	return m.site
}

// Sitemap renders the sitemap for the configured base URL.
func (m *Module) Sitemap(ctx context.Context) (string, error) {
	return m.site.Sitemap(ctx, "")
}

// Logger returns the module logger registered under name.
func (m *Module) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(m.provider, name)
}

func newLoggerProvider(cfg LoggingConfig, w io.Writer) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
		})
		if err != nil {
			return nil, fmt.Errorf("blog: logging: %w", err)
		}
		return provider, nil
	default:
		level := console.ParseLevel(cfg.Level)
		return console.NewProvider(console.Options{Writer: w, MinLevel: &level}), nil
	}
}
