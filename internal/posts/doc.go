// Package posts is the content index of the blog. It loads every post
// document once, keeps the valid and published ones sorted newest first, and
// answers the queries of the site handlers from that immutable collection.
package posts
