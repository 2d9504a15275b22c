package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// ErrStaticPathInvalid reports a sitemap static path that is not rooted.
var ErrStaticPathInvalid = errors.New("blog config: static paths must start with /")

// Config aggregates the settings of the blog module and its server.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Content  ContentConfig  `yaml:"content"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
}

// SiteConfig describes the public site.
type SiteConfig struct {
	Title       string `yaml:"title" env:"BLOG_SITE_TITLE" env-description:"site title used in pages and feeds"`
	Description string `yaml:"description" env:"BLOG_SITE_DESCRIPTION" env-description:"site description used in feeds"`
	Author      string `yaml:"author" env:"BLOG_SITE_AUTHOR"`
	// BaseURL is the public origin. When empty, absolute URLs use the
	// scheme and host of the incoming request.
	BaseURL     string   `yaml:"base_url" env:"BLOG_BASE_URL" env-description:"public origin, e.g. https://example.com"`
	StaticPaths []string `yaml:"static_paths" env:"BLOG_STATIC_PATHS" env-separator:"," env-description:"non-post paths listed in the sitemap"`
	RecentLimit int      `yaml:"recent_limit" env:"BLOG_RECENT_LIMIT" env-description:"number of posts on the home page"`
}

// ContentConfig locates the Markdown content on disk.
type ContentConfig struct {
	Dir       string `yaml:"dir" env:"BLOG_CONTENT_DIR" env-description:"content directory"`
	PostsRoot string `yaml:"posts_root" env:"BLOG_POSTS_ROOT" env-description:"posts directory, relative to the content directory"`
	PagesRoot string `yaml:"pages_root" env:"BLOG_PAGES_ROOT" env-description:"standalone pages directory, relative to the content directory"`
	Extension string `yaml:"extension" env:"BLOG_CONTENT_EXTENSION"`
	// LoadConcurrency caps concurrent document resolutions. Zero is
	// unbounded.
	LoadConcurrency int `yaml:"load_concurrency" env:"BLOG_LOAD_CONCURRENCY"`
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions" env:"BLOG_MARKDOWN_EXTENSIONS" env-separator:","`
	Sanitize   bool     `yaml:"sanitize" env:"BLOG_MARKDOWN_SANITIZE"`
	HardWraps  bool     `yaml:"hard_wraps" env:"BLOG_MARKDOWN_HARD_WRAPS"`
	SafeMode   bool     `yaml:"safe_mode" env:"BLOG_MARKDOWN_SAFE_MODE"`
}

// ParseOptions converts the configuration into parser options.
func (c MarkdownConfig) ParseOptions() interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions: append([]string(nil), c.Extensions...),
		Sanitize:   c.Sanitize,
		HardWraps:  c.HardWraps,
		SafeMode:   c.SafeMode,
	}
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string `yaml:"provider" env:"BLOG_LOG_PROVIDER" env-description:"console or gologger"`
	Level     string `yaml:"level" env:"BLOG_LOG_LEVEL"`
	Format    string `yaml:"format" env:"BLOG_LOG_FORMAT" env-description:"gologger format: json, console or pretty"`
	AddSource bool   `yaml:"add_source" env:"BLOG_LOG_ADD_SOURCE"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"BLOG_ADDR" env-description:"listen address"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"BLOG_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"BLOG_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"BLOG_REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"BLOG_SHUTDOWN_TIMEOUT"`
}

// DefaultStaticPaths are the non-post pages listed in the sitemap.
var DefaultStaticPaths = []string{"/", "/blog", "/projects", "/reading", "/resume"}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title:       "Blog",
			StaticPaths: append([]string(nil), DefaultStaticPaths...),
			RecentLimit: 3,
		},
		Content: ContentConfig{
			Dir:       "content",
			PostsRoot: "posts",
			PagesRoot: "pages",
			Extension: ".md",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			RequestTimeout:  60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Load builds a configuration from the defaults, the optional YAML file at
// path and BLOG_* environment variables, in that order of precedence.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var err error
	if strings.TrimSpace(path) != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("blog config: read: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// EnvUsage describes the environment variables Load reads.
func EnvUsage() (string, error) {
	cfg := DefaultConfig()
	return cleanenv.GetDescription(&cfg, nil)
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	site := cfg.Site
	if err := validation.ValidateStruct(&site,
		validation.Field(&site.BaseURL, is.URL),
		validation.Field(&site.RecentLimit, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("blog config: site: %w", err)
	}
	for _, p := range site.StaticPaths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%w: %q", ErrStaticPathInvalid, p)
		}
	}

	content := cfg.Content
	if err := validation.ValidateStruct(&content,
		validation.Field(&content.Dir, validation.Required),
		validation.Field(&content.PostsRoot, validation.Required),
		validation.Field(&content.PagesRoot, validation.Required),
		validation.Field(&content.LoadConcurrency, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("blog config: content: %w", err)
	}

	server := cfg.Server
	if err := validation.ValidateStruct(&server,
		validation.Field(&server.Addr, validation.Required),
		validation.Field(&server.ReadTimeout, validation.Min(time.Duration(0))),
		validation.Field(&server.WriteTimeout, validation.Min(time.Duration(0))),
		validation.Field(&server.RequestTimeout, validation.Min(time.Duration(0))),
		validation.Field(&server.ShutdownTimeout, validation.Min(time.Duration(0))),
	); err != nil {
		return fmt.Errorf("blog config: server: %w", err)
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
