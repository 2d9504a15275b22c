package interfaces

import (
	"context"
	"html/template"
)

// PostMetadata is the frontmatter attached to a post document.
type PostMetadata struct {
	Title       string   `json:"title" yaml:"title"`
	Date        string   `json:"date" yaml:"date"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
	Description string   `json:"description,omitempty" yaml:"description"`
	// Published is nil when the document does not set the flag, which counts
	// as published.
	Published *bool `json:"published,omitempty" yaml:"published"`
}

// IsPublished reports whether the metadata allows the post to be listed.
func (m PostMetadata) IsPublished() bool {
	return m.Published == nil || *m.Published
}

// HasTag reports whether tag is present, compared case-sensitively.
func (m PostMetadata) HasTag(tag string) bool {
	for _, candidate := range m.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

// ContentHandle is the renderable body of a post. The content index passes
// it through untouched; only the presentation layer renders it.
type ContentHandle interface {
	HTML(ctx context.Context) (template.HTML, error)
}

// Post is a validated, published document held by the content index.
type Post struct {
	Metadata PostMetadata
	Slug     string
	Content  ContentHandle
}

// Resolved is what a document resolver yields: its metadata (nil when the
// document carries none) and its content handle.
type Resolved struct {
	Metadata *PostMetadata
	Content  ContentHandle
}

// Resolver lazily reads and parses one document.
type Resolver func(ctx context.Context) (*Resolved, error)

// Document pairs a storage path with the resolver that loads it.
type Document struct {
	Path    string
	Resolve Resolver
}

// DocumentSource discovers the post documents available to the index. The
// returned slice order is the discovery order used to break date ties.
type DocumentSource interface {
	Documents(ctx context.Context) ([]Document, error)
}

// PostService is the query surface the site handlers depend on.
type PostService interface {
	All(ctx context.Context) ([]*Post, error)
	Recent(ctx context.Context, limit int) ([]*Post, error)
	ByTag(ctx context.Context, tag string) ([]*Post, error)
	ByTagSlug(ctx context.Context, tagSlug string) (string, []*Post, error)
	BySlug(ctx context.Context, slug string) (*Post, error)
	Tags(ctx context.Context) ([]TagSummary, error)
}

// TagSummary describes one tag across the collection.
type TagSummary struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}
