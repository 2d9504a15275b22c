package posts

import (
	"path"
	"strings"
)

// DefaultIndexName is the file name, without extension, that stands for its
// containing folder: posts/trip/index.md is the post "trip".
const DefaultIndexName = "index"

// IdentifierRules describe how storage paths map to post identifiers.
type IdentifierRules struct {
	Root      string
	Extension string
	IndexName string
}

func (r IdentifierRules) normalized() IdentifierRules {
	out := IdentifierRules{
		Root:      strings.Trim(strings.TrimSpace(r.Root), "/"),
		Extension: strings.TrimSpace(r.Extension),
		IndexName: strings.Trim(strings.TrimSpace(r.IndexName), "/"),
	}
	if out.Root == "" {
		out.Root = "."
	} else {
		out.Root = path.Clean(out.Root)
	}
	if out.Extension == "" {
		out.Extension = ".md"
	} else if !strings.HasPrefix(out.Extension, ".") {
		out.Extension = "." + out.Extension
	}
	if out.IndexName == "" {
		out.IndexName = DefaultIndexName
	}
	return out
}

// DeriveIdentifier strips the root prefix and extension from p. A trailing
// index segment is dropped so a folder's index document is identified by the
// folder path. A root-level index document keeps "index" as its identifier.
func DeriveIdentifier(rules IdentifierRules, p string) (string, error) {
	rules = rules.normalized()
	malformed := &MalformedPathError{Path: p, Root: rules.Root, Extension: rules.Extension}

	rest := strings.TrimPrefix(strings.ReplaceAll(p, `\`, "/"), "/")
	if rules.Root != "." {
		prefix := rules.Root + "/"
		if !strings.HasPrefix(rest, prefix) {
			return "", malformed
		}
		rest = rest[len(prefix):]
	}

	if !strings.HasSuffix(rest, rules.Extension) {
		return "", malformed
	}
	name := strings.TrimSuffix(rest, rules.Extension)
	if name == "" {
		return "", malformed
	}

	return strings.TrimSuffix(name, "/"+rules.IndexName), nil
}
