package site

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	sitemapChangeFreq = "weekly"
	sitemapPriority   = "0.7"
	maxFeedItems      = 100
)

type sitemapEntry struct {
	Location string
	LastMod  string
}

// buildSitemap lists the static paths first and then one /blog/<slug> entry
// per post, in collection order.
func buildSitemap(origin string, staticPaths []string, collection []*interfaces.Post) string {
	entries := make([]sitemapEntry, 0, len(staticPaths)+len(collection))
	seen := map[string]struct{}{}
	add := func(route, lastMod string) {
		location := absoluteURL(origin, route)
		if _, ok := seen[location]; ok {
			return
		}
		seen[location] = struct{}{}
		entries = append(entries, sitemapEntry{Location: location, LastMod: lastMod})
	}

	for _, route := range staticPaths {
		add(route, "")
	}
	for _, post := range collection {
		lastMod := ""
		if date, err := posts.ParseDate(post.Metadata.Date); err == nil {
			lastMod = date.Format("2006-01-02")
		}
		add(postPath(post.Slug), lastMod)
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, entry := range entries {
		builder.WriteString("  <url>\n")
		builder.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", escapeXML(entry.Location)))
		if entry.LastMod != "" {
			builder.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", entry.LastMod))
		}
		builder.WriteString(fmt.Sprintf("    <changefreq>%s</changefreq>\n", sitemapChangeFreq))
		builder.WriteString(fmt.Sprintf("    <priority>%s</priority>\n", sitemapPriority))
		builder.WriteString("  </url>\n")
	}
	builder.WriteString(`</urlset>` + "\n")
	return builder.String()
}

func buildRobots(origin string) string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n")
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("Sitemap: %s\n", absoluteURL(origin, "/sitemap.xml")))
	return builder.String()
}

type feedChannel struct {
	Title       string
	Description string
	Link        string
}

// buildRSSFeed renders the newest posts as an RSS 2.0 channel. The build
// date is the newest post date.
func buildRSSFeed(channel feedChannel, collection []*interfaces.Post) string {
	if len(collection) > maxFeedItems {
		collection = collection[:maxFeedItems]
	}
	link := baseURLWithFallback(channel.Link)
	description := channel.Description
	if description == "" {
		description = channel.Title
	}

	var lastBuild time.Time
	var builder strings.Builder
	items := make([]string, 0, len(collection))
	for _, post := range collection {
		published, err := posts.ParseDate(post.Metadata.Date)
		if err != nil {
			continue
		}
		if published.After(lastBuild) {
			lastBuild = published
		}
		itemLink := absoluteURL(link, postPath(post.Slug))

		var item strings.Builder
		item.WriteString("    <item>\n")
		item.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(post.Metadata.Title)))
		item.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(itemLink)))
		item.WriteString(fmt.Sprintf("      <guid>%s</guid>\n", escapeXML(itemLink)))
		item.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", published.UTC().Format(time.RFC1123Z)))
		if post.Metadata.Description != "" {
			item.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(post.Metadata.Description)))
		}
		for _, tag := range post.Metadata.Tags {
			item.WriteString(fmt.Sprintf("      <category>%s</category>\n", escapeXML(tag)))
		}
		item.WriteString("    </item>\n")
		items = append(items, item.String())
	}

	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(channel.Title)))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(link)))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(description)))
	if !lastBuild.IsZero() {
		builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", lastBuild.UTC().Format(time.RFC1123Z)))
	}
	for _, item := range items {
		builder.WriteString(item)
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString(`</rss>` + "\n")
	return builder.String()
}

// origin is the configured base URL, or the scheme and host the request
// arrived on.
func (s *Site) origin(r *http.Request) string {
	if s.cfg.BaseURL != "" {
		return s.cfg.BaseURL
	}
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	host := r.Host
	if forwarded := r.Header.Get("X-Forwarded-Host"); forwarded != "" {
		host = forwarded
	}
	if host == "" {
		return baseURLWithFallback("")
	}
	return scheme + "://" + host
}

func baseURLWithFallback(base string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return "http://localhost"
	}
	return trimmed
}

func absoluteURL(base, route string) string {
	targetBase := baseURLWithFallback(base)
	normalized := strings.TrimSpace(route)
	if normalized == "" {
		return targetBase
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return targetBase + normalized
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}

// Sitemap renders the sitemap for origin, falling back to the configured
// base URL when origin is empty.
func (s *Site) Sitemap(ctx context.Context, origin string) (string, error) {
	collection, err := s.posts.All(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(origin) == "" {
		origin = s.cfg.BaseURL
	}
	return buildSitemap(origin, s.cfg.StaticPaths, collection), nil
}
