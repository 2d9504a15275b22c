package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)

	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
	})

	logger := logging.WithFields(provider.GetLogger("blog.posts"), map[string]any{"module": "blog.posts"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"load_id": "abc"})
	logger = logger.WithContext(ctx)

	logger.Warn("posts.document.skipped",
		"document_path", "posts/draft.md",
		"error", errors.New("title is required"),
	)

	got := strings.TrimSpace(buf.String())
	want := `2024-03-14T15:09:26Z WARN posts.document.skipped document_path=posts/draft.md error="title is required" load_id=abc logger=blog.posts module=blog.posts`
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{Writer: &buf, MinLevel: &minLevel})

	logger := provider.GetLogger("blog.test")
	logger.Debug("ignored.debug")
	logger.Info("included.info", "dangling")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") || !strings.Contains(lines[0], "field_0=dangling") {
		t.Fatalf("unexpected line: %s", lines[0])
	}
}
