package interfaces

// MarkdownParser converts raw Markdown bytes into HTML.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's settings.
	Parse(markdown []byte) ([]byte, error)
}

// ParseOptions customises Markdown rendering. Field names stay readable so
// they can be populated straight from configuration.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}
