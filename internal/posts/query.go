package posts

import (
	"context"
	"net/url"
	"sort"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Recent returns the newest limit posts. A non-positive limit returns all.
func (idx *Index) Recent(ctx context.Context, limit int) ([]*interfaces.Post, error) {
	posts, err := idx.All(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit >= len(posts) {
		return posts, nil
	}
	return posts[:limit:limit], nil
}

// ByTag returns the posts carrying tag, compared case-sensitively, in
// collection order. No match is an empty result, not an error.
func (idx *Index) ByTag(ctx context.Context, tag string) ([]*interfaces.Post, error) {
	posts, err := idx.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*interfaces.Post, 0)
	for _, post := range posts {
		if post.Metadata.HasTag(tag) {
			matched = append(matched, post)
		}
	}
	return matched, nil
}

// ByTagSlug resolves a tag route parameter to a tag, preferring an exact tag
// name over a slug match, and returns the tag with its posts.
func (idx *Index) ByTagSlug(ctx context.Context, tagSlug string) (string, []*interfaces.Post, error) {
	tags, err := idx.Tags(ctx)
	if err != nil {
		return "", nil, err
	}

	tag := tagSlug
	found := false
	for _, summary := range tags {
		if summary.Name == tagSlug {
			found = true
			break
		}
	}
	if !found {
		for _, summary := range tags {
			if summary.Slug == tagSlug {
				tag = summary.Name
				break
			}
		}
	}

	posts, err := idx.ByTag(ctx, tag)
	if err != nil {
		return "", nil, err
	}
	return tag, posts, nil
}

// BySlug returns the first post, in collection order, with the identifier.
func (idx *Index) BySlug(ctx context.Context, identifier string) (*interfaces.Post, error) {
	posts, err := idx.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		if post.Slug == identifier {
			return post, nil
		}
	}
	return nil, &NotFoundError{Resource: "post", Key: identifier}
}

// Tags summarises the tags in use, sorted by name.
func (idx *Index) Tags(ctx context.Context) ([]interfaces.TagSummary, error) {
	posts, err := idx.All(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, post := range posts {
		seen := map[string]struct{}{}
		for _, tag := range post.Metadata.Tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			counts[tag]++
		}
	}

	summaries := make([]interfaces.TagSummary, 0, len(counts))
	for name, count := range counts {
		summaries = append(summaries, interfaces.TagSummary{
			Name:  name,
			Slug:  tagSlug(name),
			Count: count,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

func tagSlug(tag string) string {
	if normalized, err := slug.Normalize(tag); err == nil && normalized != "" {
		return normalized
	}
	return url.PathEscape(tag)
}
