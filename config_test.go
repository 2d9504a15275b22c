package blog_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-blog"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := blog.DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestConfigValidateLoggingProviderUnknown(t *testing.T) {
	cfg := blog.DefaultConfig()
	cfg.Logging.Provider = "invalid"

	if err := cfg.Validate(); !errors.Is(err, blog.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := blog.DefaultConfig()
	cfg.Site.StaticPaths = []string{"resume"}

	if _, err := blog.New(cfg); !errors.Is(err, blog.ErrStaticPathInvalid) {
		t.Fatalf("expected ErrStaticPathInvalid, got %v", err)
	}
}
