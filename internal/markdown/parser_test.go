package markdown

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestGoldmarkParserDefaults(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, `<h1 id="title">Title</h1>`) {
		t.Fatalf("expected heading with auto id, got %s", out)
	}
	if !strings.Contains(out, "<table>") {
		t.Fatalf("expected GFM table, got %s", out)
	}
}

func TestGoldmarkParserSafeModeEscapesHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	unsafe, err := parser.Parse([]byte("<div>raw</div>\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(unsafe), "<div>raw</div>") {
		t.Fatalf("expected raw html by default, got %s", unsafe)
	}

	safe, err := NewGoldmarkParser(interfaces.ParseOptions{SafeMode: true}).Parse([]byte("<div>raw</div>\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if strings.Contains(string(safe), "<div>raw</div>") {
		t.Fatalf("expected raw html to be omitted in safe mode, got %s", safe)
	}
}

func TestBodyRendersOnce(t *testing.T) {
	counter := &countingParser{}
	body := NewBody([]byte("*hi*"), counter)

	for range 3 {
		html, err := body.HTML(context.Background())
		if err != nil {
			t.Fatalf("HTML: %v", err)
		}
		if html != "<p>*hi*</p>" {
			t.Fatalf("unexpected html %q", html)
		}
	}
	if counter.calls != 1 {
		t.Fatalf("expected a single render, got %d", counter.calls)
	}
}

func TestBodyHonoursCancelledContext(t *testing.T) {
	body := NewBody([]byte("x"), &countingParser{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := body.HTML(ctx); err == nil {
		t.Fatal("expected cancelled context error")
	}
}

type countingParser struct {
	calls int
}

func (c *countingParser) Parse(markdown []byte) ([]byte, error) {
	c.calls++
	return []byte("<p>" + string(markdown) + "</p>"), nil
}
