package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DefaultExtension is the file extension of post documents.
const DefaultExtension = ".md"

// SourceConfig selects which files of a filesystem are post documents.
type SourceConfig struct {
	// Root is the slash-separated directory, relative to the filesystem root,
	// that holds posts. "." means the filesystem root itself.
	Root string
	// Extension defaults to DefaultExtension.
	Extension string
}

// Source discovers post documents under Root. Every file ending in
// Extension, at any depth, is one document.
type Source struct {
	fs        fs.FS
	root      string
	extension string
	parser    interfaces.MarkdownParser
	logger    interfaces.Logger
}

var _ interfaces.DocumentSource = (*Source)(nil)

// NewSource builds a Source over filesystem. A nil parser falls back to a
// goldmark parser with default options.
func NewSource(filesystem fs.FS, cfg SourceConfig, parser interfaces.MarkdownParser, logger interfaces.Logger) *Source {
	if parser == nil {
		parser = NewGoldmarkParser(interfaces.ParseOptions{})
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Source{
		fs:        filesystem,
		root:      cleanRoot(cfg.Root),
		extension: extensionOrDefault(cfg.Extension),
		parser:    parser,
		logger:    logger,
	}
}

// Root returns the cleaned root directory.
func (s *Source) Root() string { return s.root }

// Extension returns the document extension.
func (s *Source) Extension() string { return s.extension }

// Documents walks Root and returns one lazily resolved document per file,
// ordered by path. A missing root yields no documents.
func (s *Source) Documents(ctx context.Context) ([]interfaces.Document, error) {
	var paths []string

	err := fs.WalkDir(s.fs, s.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, s.extension) {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("markdown.source.root_missing", "root", s.root)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("markdown source walk %s: %w", s.root, err)
	}

	sort.Strings(paths)

	docs := make([]interfaces.Document, 0, len(paths))
	for _, p := range paths {
		docs = append(docs, interfaces.Document{
			Path:    p,
			Resolve: s.resolver(p),
		})
	}
	s.logger.Debug("markdown.source.discovered", "root", s.root, "documents", len(docs))
	return docs, nil
}

func (s *Source) resolver(p string) interfaces.Resolver {
	return func(ctx context.Context) (*interfaces.Resolved, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(s.fs, p)
		if err != nil {
			return nil, fmt.Errorf("markdown source read %s: %w", p, err)
		}
		meta, body, err := ParseMetadata(data)
		if err != nil {
			return nil, fmt.Errorf("markdown source %s: %w", p, err)
		}
		return &interfaces.Resolved{
			Metadata: meta,
			Content:  NewBody(body, s.parser),
		}, nil
	}
}

func cleanRoot(root string) string {
	trimmed := strings.Trim(strings.TrimSpace(root), "/")
	if trimmed == "" {
		return "."
	}
	return path.Clean(trimmed)
}

func extensionOrDefault(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
