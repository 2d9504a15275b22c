// Package markdown discovers post documents on a filesystem, parses their
// frontmatter and renders their bodies with goldmark. It is the document
// source of the content index and never decides which posts are listed.
package markdown
