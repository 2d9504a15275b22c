package posts

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate reads the frontmatter date of a post.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, ErrDateInvalid
}

// validateMetadata checks the required fields and returns the parsed date.
// Failures are wrapped with the validation category.
func validateMetadata(meta *interfaces.PostMetadata) (time.Time, error) {
	if meta == nil {
		return time.Time{}, wrapMetadataError(ErrMetadataMissing)
	}

	var date time.Time
	err := validation.ValidateStruct(meta,
		validation.Field(&meta.Title, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("posts.metadata.title_blank", "cannot be blank")
			}
			return nil
		})),
		validation.Field(&meta.Date, validation.Required, validation.By(func(value any) error {
			parsed, err := ParseDate(value.(string))
			if err != nil {
				return validation.NewError("posts.metadata.date_invalid", "must be a calendar date")
			}
			date = parsed
			return nil
		})),
	)
	if err != nil {
		return time.Time{}, wrapMetadataError(err)
	}
	return date, nil
}
