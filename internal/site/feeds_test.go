package site

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestBuildSitemapDeduplicatesAndEscapes(t *testing.T) {
	collection := []*interfaces.Post{
		{Slug: "q&a", Metadata: interfaces.PostMetadata{Title: "Q&A", Date: "2024-02-03"}},
	}

	out := buildSitemap("https://example.org/", []string{"/", "/", "blog"}, collection)

	assert.Equal(t, 1, strings.Count(out, "<loc>https://example.org/</loc>"))
	assert.Contains(t, out, "<loc>https://example.org/blog</loc>")
	assert.Contains(t, out, "<loc>https://example.org/blog/q&amp;a</loc>")
	assert.Contains(t, out, "<lastmod>2024-02-03</lastmod>")
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
}

func TestFeedsEscapePostPaths(t *testing.T) {
	collection := []*interfaces.Post{
		{Slug: "my trip/día 1", Metadata: interfaces.PostMetadata{Title: "Trip", Date: "2024-05-01"}},
	}

	sitemap := buildSitemap("https://ex.com", nil, collection)
	assert.Contains(t, sitemap, "<loc>https://ex.com/blog/my%20trip/d%C3%ADa%201</loc>")
	assert.NotContains(t, sitemap, "my trip")

	feed := buildRSSFeed(feedChannel{Title: "Blog", Link: "https://ex.com"}, collection)
	assert.Contains(t, feed, "<link>https://ex.com/blog/my%20trip/d%C3%ADa%201</link>")
}

func TestBuildRSSFeedSkipsUndatedAndCapsItems(t *testing.T) {
	collection := make([]*interfaces.Post, 0, maxFeedItems+5)
	for range maxFeedItems + 5 {
		collection = append(collection, &interfaces.Post{
			Slug:     "p",
			Metadata: interfaces.PostMetadata{Title: "T <1>", Date: "2024-01-01", Tags: []string{"go"}},
		})
	}

	out := buildRSSFeed(feedChannel{Title: "Blog"}, collection)

	assert.Equal(t, maxFeedItems, strings.Count(out, "<item>"))
	assert.Contains(t, out, "<title>T &lt;1&gt;</title>")
	assert.Contains(t, out, "<link>http://localhost</link>")
	assert.Contains(t, out, "<description>Blog</description>")
	assert.Contains(t, out, "<category>go</category>")
	assert.Contains(t, out, "<lastBuildDate>Mon, 01 Jan 2024 00:00:00 +0000</lastBuildDate>")
}
