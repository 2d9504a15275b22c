package markdown

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const calendarDateLayout = "2006-01-02"

// ParseMetadata splits source into its frontmatter and Markdown body. YAML
// (---), TOML (+++) and JSON (;;;) delimiters are accepted. Metadata is nil
// when the document has no frontmatter or an empty one.
func ParseMetadata(source []byte) (*interfaces.PostMetadata, []byte, error) {
	var env metadataEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &env)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	if env.isZero() {
		return nil, body, nil
	}
	return env.toMetadata(), body, nil
}

type metadataEnvelope struct {
	Title       string   `yaml:"title" toml:"title" json:"title"`
	Date        any      `yaml:"date" toml:"date" json:"date"`
	Tags        []string `yaml:"tags" toml:"tags" json:"tags"`
	Description string   `yaml:"description" toml:"description" json:"description"`
	Published   *bool    `yaml:"published" toml:"published" json:"published"`
}

func (e metadataEnvelope) isZero() bool {
	return reflect.ValueOf(e).IsZero()
}

func (e metadataEnvelope) toMetadata() *interfaces.PostMetadata {
	tags := make([]string, 0, len(e.Tags))
	for _, tag := range e.Tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	meta := &interfaces.PostMetadata{
		Title:       strings.TrimSpace(e.Title),
		Date:        normalizeDate(e.Date),
		Tags:        tags,
		Description: strings.TrimSpace(e.Description),
	}
	if e.Published != nil {
		published := *e.Published
		meta.Published = &published
	}
	return meta
}

// normalizeDate keeps textual dates as written and formats decoded
// timestamps (YAML/TOML) back to text.
func normalizeDate(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format(calendarDateLayout)
		}
		return v.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
