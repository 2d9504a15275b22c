package site

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ErrPostsRequired is returned when New is called without a post service.
var ErrPostsRequired = errors.New("site: post service is required")

const (
	projectsTag = "project"
	readingTag  = "book"
)

// Config describes the public site.
type Config struct {
	Title       string
	Description string
	Author      string
	// BaseURL is the public origin. When empty, absolute URLs are built from
	// the scheme and host of the request being served.
	BaseURL     string
	StaticPaths []string
	RecentLimit int
	// RequestTimeout bounds each request. Zero disables the timeout.
	RequestTimeout time.Duration
}

// PageLoader loads standalone Markdown pages by name.
type PageLoader interface {
	Load(ctx context.Context, name string) (*markdown.Page, error)
}

// Option customises a Site.
type Option func(*Site)

// WithLogger sets the site logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Site) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPages enables the standalone page route.
func WithPages(pages PageLoader) Option {
	return func(s *Site) {
		s.pages = pages
	}
}

// Site is the HTTP front of the blog.
type Site struct {
	posts     interfaces.PostService
	pages     PageLoader
	cfg       Config
	logger    interfaces.Logger
	templates map[string]*template.Template
	router    chi.Router
}

// New builds the site and its router.
func New(posts interfaces.PostService, cfg Config, opts ...Option) (*Site, error) {
	if posts == nil {
		return nil, ErrPostsRequired
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.StaticPaths == nil {
		cfg.StaticPaths = []string{"/", "/blog", "/projects", "/reading", "/resume"}
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 3
	}
	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = "Blog"
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Site{
		posts:     posts,
		cfg:       cfg,
		logger:    logging.NoOp(),
		templates: templates,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.router = s.routes()
	return s, nil
}

// ServeHTTP dispatches to the site router.
func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Site) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}

	r.Get("/", s.handleHome)
	r.Get("/blog", s.handleBlog)
	r.Get("/blog/*", s.handlePost)
	r.Get("/projects", s.handleTagged(projectsTag, "Projects"))
	r.Get("/reading", s.handleTagged(readingTag, "Reading"))
	r.Get("/tags", s.handleTags)
	r.Get("/tags/{tag}", s.handleTag)
	r.Get("/api/posts", s.handleAPIPosts)
	r.Get("/sitemap.xml", s.handleSitemap)
	r.Get("/robots.txt", s.handleRobots)
	r.Get("/feed.xml", s.handleFeed)
	r.Get("/health", s.handleHealth)
	r.Get("/{page}", s.handlePage)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderStatus(w, r, http.StatusNotFound, "Page not found")
	})
	return r
}
