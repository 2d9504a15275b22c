package posts

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func queryIndex(t *testing.T) *Index {
	t.Helper()
	src := &fakeSource{}
	src.set(
		postDoc("posts/go-tips.md", "Go Tips", "2024-04-01", nil, "go", "Dev Notes"),
		postDoc("posts/reading/dune.md", "Dune", "2024-03-01", nil, "book"),
		postDoc("posts/projects/site/index.md", "Site", "2024-02-01", nil, "project", "go"),
		postDoc("posts/old.md", "Old", "2023-01-01", nil, "Go"),
	)
	return newTestIndex(t, src)
}

func TestByTagExactCaseSensitive(t *testing.T) {
	idx := queryIndex(t)

	posts, err := idx.ByTag(context.Background(), "go")
	if err != nil {
		t.Fatalf("ByTag: %v", err)
	}
	if got := strings.Join(titles(posts), ","); got != "Go Tips,Site" {
		t.Fatalf("unexpected tag result %s", got)
	}

	all, _ := idx.All(context.Background())
	for _, post := range all {
		has := post.Metadata.HasTag("go")
		in := false
		for _, p := range posts {
			if p == post {
				in = true
			}
		}
		if has != in {
			t.Fatalf("%s: tag membership mismatch", post.Metadata.Title)
		}
	}
}

func TestByTagNoMatchIsEmpty(t *testing.T) {
	posts, err := queryIndex(t).ByTag(context.Background(), "rust")
	if err != nil {
		t.Fatalf("ByTag: %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", posts)
	}
}

func TestBySlug(t *testing.T) {
	idx := queryIndex(t)

	post, err := idx.BySlug(context.Background(), "projects/site")
	if err != nil {
		t.Fatalf("BySlug: %v", err)
	}
	if post.Metadata.Title != "Site" {
		t.Fatalf("unexpected post %q", post.Metadata.Title)
	}

	_, err = idx.BySlug(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err.Error() != `post "missing" not found` {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRecent(t *testing.T) {
	idx := queryIndex(t)

	recent, err := idx.Recent(context.Background(), 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if got := strings.Join(titles(recent), ","); got != "Go Tips,Dune,Site" {
		t.Fatalf("unexpected recent posts %s", got)
	}
	if cap(recent) != 3 {
		t.Fatalf("expected clipped slice, got cap %d", cap(recent))
	}

	all, _ := idx.Recent(context.Background(), 0)
	if len(all) != 4 {
		t.Fatalf("expected all posts for limit 0, got %d", len(all))
	}
}

func TestTagsAndTagSlugs(t *testing.T) {
	idx := queryIndex(t)

	tags, err := idx.Tags(context.Background())
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	byName := map[string]interfaces.TagSummary{}
	for _, tag := range tags {
		byName[tag.Name] = tag
	}
	if byName["go"].Count != 2 || byName["Go"].Count != 1 {
		t.Fatalf("expected case-sensitive tag counts, got %#v", tags)
	}
	devSlug := byName["Dev Notes"].Slug
	if devSlug == "" || strings.Contains(devSlug, " ") {
		t.Fatalf("expected a URL-safe tag slug, got %q", devSlug)
	}

	tag, posts, err := idx.ByTagSlug(context.Background(), devSlug)
	if err != nil {
		t.Fatalf("ByTagSlug: %v", err)
	}
	if tag != "Dev Notes" || len(posts) != 1 {
		t.Fatalf("expected Dev Notes with one post, got %q %d", tag, len(posts))
	}

	tag, posts, _ = idx.ByTagSlug(context.Background(), "go")
	if tag != "go" || len(posts) != 2 {
		t.Fatalf("expected exact tag match first, got %q %d", tag, len(posts))
	}
}
