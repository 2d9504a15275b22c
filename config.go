package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrStaticPathInvalid       = runtimeconfig.ErrStaticPathInvalid
)

type (
	Config         = runtimeconfig.Config
	SiteConfig     = runtimeconfig.SiteConfig
	ContentConfig  = runtimeconfig.ContentConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	ServerConfig   = runtimeconfig.ServerConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads defaults, the optional YAML file at path and BLOG_*
// environment variables.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
