// Package site serves the public blog over HTTP: HTML pages for the post
// collection and standalone pages, a JSON listing, and the sitemap, robots
// and RSS documents crawlers and feed readers expect.
package site
