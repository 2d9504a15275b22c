package site

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

func fixtureFS() fstest.MapFS {
	post := func(title, date, tags string, extra string) *fstest.MapFile {
		return &fstest.MapFile{Data: []byte("---\ntitle: " + title + "\ndate: " + date + "\ntags: [" + tags + "]\n" + extra + "---\n# " + title + "\n\nBody of " + title + ".\n")}
	}
	return fstest.MapFS{
		"posts/hello-world.md":   post("Hello World", "2024-01-10", "intro", "description: First post\n"),
		"posts/building-site.md": post("Building the Site", "2024-02-20", "project, go", ""),
		"posts/dune/index.md":    post("Reading Dune", "2024-03-05", "book", ""),
		"posts/newest.md":        post("Newest Notes", "2024-04-01", "go", ""),
		"posts/draft.md":         post("Draft", "2024-05-01", "go", "published: false\n"),
		"posts/broken.md":        {Data: []byte("---\ndate: 2024-01-01\n---\nno title\n")},
		"pages/resume.md":        {Data: []byte("---\ntitle: Resume\n---\nWork history.\n")},
	}
}

func newTestSite(t *testing.T, cfg Config) (*Site, *posts.Index) {
	t.Helper()
	fsys := fixtureFS()
	source := markdown.NewSource(fsys, markdown.SourceConfig{Root: "posts"}, nil, nil)
	index, err := posts.New(source, posts.Config{Rules: posts.IdentifierRules{Root: "posts"}})
	require.NoError(t, err)

	if cfg.Title == "" {
		cfg.Title = "Field Notes"
	}
	s, err := New(index, cfg, WithPages(markdown.NewPageLoader(fsys, markdown.SourceConfig{Root: "pages"}, nil)))
	require.NoError(t, err)
	return s, index
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

type failingPosts struct {
	err error
}

func (f failingPosts) All(context.Context) ([]*interfaces.Post, error) { return nil, f.err }
func (f failingPosts) Recent(context.Context, int) ([]*interfaces.Post, error) {
	return nil, f.err
}
func (f failingPosts) ByTag(context.Context, string) ([]*interfaces.Post, error) {
	return nil, f.err
}
func (f failingPosts) ByTagSlug(context.Context, string) (string, []*interfaces.Post, error) {
	return "", nil, f.err
}
func (f failingPosts) BySlug(context.Context, string) (*interfaces.Post, error) {
	return nil, f.err
}
func (f failingPosts) Tags(context.Context) ([]interfaces.TagSummary, error) { return nil, f.err }

func TestNewRequiresPosts(t *testing.T) {
	_, err := New(nil, Config{})
	assert.ErrorIs(t, err, ErrPostsRequired)
}

func TestHomeShowsRecentPosts(t *testing.T) {
	s, _ := newTestSite(t, Config{})

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Newest Notes")
	assert.Contains(t, body, "Reading Dune")
	assert.Contains(t, body, "Building the Site")
	assert.NotContains(t, body, "Hello World")
	assert.NotContains(t, body, "Draft")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestBlogListsAllPostsNewestFirst(t *testing.T) {
	s, _ := newTestSite(t, Config{})

	rec := get(t, s, "/blog")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	titles := []string{"Newest Notes", "Reading Dune", "Building the Site", "Hello World"}
	last := -1
	for _, title := range titles {
		idx := strings.Index(body, title)
		require.Greater(t, idx, last, "expected %q after previous title", title)
		last = idx
	}
	assert.NotContains(t, body, "Draft")
	assert.Contains(t, body, `href="/blog/dune"`)
}

func TestPostPage(t *testing.T) {
	s, _ := newTestSite(t, Config{})

	rec := get(t, s, "/blog/dune")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<p>Body of Reading Dune.</p>")
	assert.Contains(t, rec.Body.String(), "March 5, 2024")

	rec = get(t, s, "/blog/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, s, "/blog/draft")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostPageFailureIsServerError(t *testing.T) {
	s, err := New(failingPosts{err: errors.New("disk gone")}, Config{})
	require.NoError(t, err)

	rec := get(t, s, "/blog/anything")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk gone")
}

func TestTaggedSections(t *testing.T) {
	s, _ := newTestSite(t, Config{})

	projects := get(t, s, "/projects").Body.String()
	assert.Contains(t, projects, "Building the Site")
	assert.NotContains(t, projects, "Reading Dune")

	reading := get(t, s, "/reading").Body.String()
	assert.Contains(t, reading, "Reading Dune")
	assert.NotContains(t, reading, "Building the Site")
}

func TestTagRoutes(t *testing.T) {
	s, _ := newTestSite(t, Config{})

	rec := get(t, s, "/tags")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go</a> (2)")

	rec = get(t, s, "/tags/go")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Newest Notes")
	assert.Contains(t, rec.Body.String(), "Building the Site")
	assert.NotContains(t, rec.Body.String(), "Hello World")

	rec = get(t, s, "/tags/unknown")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No posts tagged unknown yet.")
}

func TestAPIPostsOmitsContent(t *testing.T) {
	s, _ := newTestSite(t, Config{})

	rec := get(t, s, "/api/posts")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var payload []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload, 4)
	for _, entry := range payload {
		assert.Len(t, entry, 2)
		assert.Contains(t, entry, "slug")
		assert.Contains(t, entry, "metadata")
	}

	var decoded []apiPost
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, "newest", decoded[0].Slug)
	assert.Equal(t, "Newest Notes", decoded[0].Metadata.Title)
	assert.Equal(t, "2024-04-01", decoded[0].Metadata.Date)
}

func TestAPIPostsFailure(t *testing.T) {
	s, err := New(failingPosts{err: errors.New("boom")}, Config{})
	require.NoError(t, err)

	rec := get(t, s, "/api/posts")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, rec.Body.String())
}

func TestSitemapUsesRequestOrigin(t *testing.T) {
	s, _ := newTestSite(t, Config{})

	rec := get(t, s, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	for _, loc := range []string{
		"http://example.com/",
		"http://example.com/blog",
		"http://example.com/projects",
		"http://example.com/reading",
		"http://example.com/resume",
		"http://example.com/blog/newest",
		"http://example.com/blog/dune",
		"http://example.com/blog/building-site",
		"http://example.com/blog/hello-world",
	} {
		assert.Contains(t, body, "<loc>"+loc+"</loc>")
	}
	assert.NotContains(t, body, "/blog/draft")
	assert.Equal(t, 9, strings.Count(body, "<changefreq>weekly</changefreq>"))
	assert.Equal(t, 9, strings.Count(body, "<priority>0.7</priority>"))
}

func TestSitemapPrefersBaseURL(t *testing.T) {
	s, _ := newTestSite(t, Config{BaseURL: "https://notes.example.org/", StaticPaths: []string{"/"}})

	body := get(t, s, "/sitemap.xml").Body.String()
	assert.Contains(t, body, "<loc>https://notes.example.org/</loc>")
	assert.Contains(t, body, "<loc>https://notes.example.org/blog/dune</loc>")
	assert.NotContains(t, body, "example.com")
}

func TestRobotsAndFeed(t *testing.T) {
	s, _ := newTestSite(t, Config{BaseURL: "https://notes.example.org", Description: "Notes"})

	robots := get(t, s, "/robots.txt").Body.String()
	assert.Contains(t, robots, "Sitemap: https://notes.example.org/sitemap.xml")

	rec := get(t, s, "/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/rss+xml", rec.Header().Get("Content-Type"))
	feed := rec.Body.String()
	assert.Contains(t, feed, "<title>Field Notes</title>")
	assert.Contains(t, feed, "<link>https://notes.example.org/blog/newest</link>")
	assert.Contains(t, feed, "<description>First post</description>")
	assert.Equal(t, 4, strings.Count(feed, "<item>"))
	assert.Less(t, strings.Index(feed, "Newest Notes"), strings.Index(feed, "Hello World"))
}

func TestStandalonePages(t *testing.T) {
	s, _ := newTestSite(t, Config{})

	rec := get(t, s, "/resume")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<p>Work history.</p>")

	assert.Equal(t, http.StatusNotFound, get(t, s, "/about").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/nested/path").Code)
}

func TestHealthReportsIndexState(t *testing.T) {
	s, index := newTestSite(t, Config{})

	rec := get(t, s, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","posts_loaded":false}`, rec.Body.String())

	_, err := index.All(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","posts_loaded":true}`, get(t, s, "/health").Body.String())
}
