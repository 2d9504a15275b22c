package posts

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const metadataInvalidCode = "POST_METADATA_INVALID"

var (
	ErrMetadataMissing = errors.New("posts: document has no frontmatter")
	ErrDateInvalid     = errors.New("posts: date is not a calendar date")
	ErrSourceRequired  = errors.New("posts: document source is required")
)

// NotFoundError reports a lookup that matched nothing.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// MalformedPathError reports a discovered path that does not have the
// <root>/<name><ext> shape the index derives identifiers from. It points at a
// misconfigured source rather than bad content.
type MalformedPathError struct {
	Path      string
	Root      string
	Extension string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("posts: cannot derive identifier from %q (expected %s/<name>%s)", e.Path, e.Root, e.Extension)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsMetadataError reports whether err was produced by metadata validation.
func IsMetadataError(err error) bool {
	return err != nil && goerrors.IsCategory(err, goerrors.CategoryValidation)
}

func wrapMetadataError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "post metadata invalid").
		WithTextCode(metadataInvalidCode)
}
