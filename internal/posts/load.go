package posts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DiagnosticKind classifies why a document was left out of the collection.
type DiagnosticKind string

const (
	DiagnosticInvalidMetadata DiagnosticKind = "invalid_metadata"
	DiagnosticUnpublished     DiagnosticKind = "unpublished"
	DiagnosticResolveFailed   DiagnosticKind = "resolve_failed"
)

// Diagnostic records one document dropped during a load.
type Diagnostic struct {
	Path string
	Slug string
	Kind DiagnosticKind
	Err  error
}

type outcome struct {
	post       *interfaces.Post
	date       time.Time
	diagnostic *Diagnostic
}

// loadAll discovers and resolves every document. Resolutions run
// concurrently and each one settles on its own: skips and failures become
// diagnostics and never abort the load. Only discovery failures and
// malformed paths are returned as errors.
func (idx *Index) loadAll(ctx context.Context) ([]*interfaces.Post, []Diagnostic, error) {
	idx.loads.Add(1)
	started := time.Now()

	ctx = logging.ContextWithFields(ctx, map[string]any{"load_id": uuid.NewString()})
	logger := idx.logger.WithContext(ctx)

	docs, err := idx.source.Documents(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("posts: discover documents: %w", err)
	}

	slugs := make([]string, len(docs))
	for i, doc := range docs {
		slug, err := DeriveIdentifier(idx.rules, doc.Path)
		if err != nil {
			logger.Error("posts.index.malformed_path", "document_path", doc.Path, "error", err)
			return nil, nil, err
		}
		slugs[i] = slug
	}

	outcomes := make([]outcome, len(docs))
	var group errgroup.Group
	if idx.concurrency > 0 {
		group.SetLimit(idx.concurrency)
	}
	for i, doc := range docs {
		group.Go(func() error {
			outcomes[i] = idx.resolve(ctx, doc, slugs[i])
			return nil
		})
	}
	_ = group.Wait()

	kept := make([]outcome, 0, len(outcomes))
	var diagnostics []Diagnostic
	for _, out := range outcomes {
		if out.diagnostic != nil {
			diagnostics = append(diagnostics, *out.diagnostic)
			idx.logDiagnostic(logger, *out.diagnostic)
			continue
		}
		kept = append(kept, out)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].date.After(kept[j].date)
	})

	posts := make([]*interfaces.Post, len(kept))
	for i, out := range kept {
		posts[i] = out.post
	}

	logger.Info("posts.index.loaded",
		"documents", len(docs),
		"posts", len(posts),
		"skipped", len(diagnostics),
		"duration", time.Since(started).String(),
	)
	return posts, diagnostics, nil
}

// resolve turns one document into a post or a diagnostic. A panicking
// resolver is contained like any other resolution failure.
func (idx *Index) resolve(ctx context.Context, doc interfaces.Document, slug string) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{diagnostic: &Diagnostic{
				Path: doc.Path,
				Slug: slug,
				Kind: DiagnosticResolveFailed,
				Err:  fmt.Errorf("posts: resolver panic: %v", r),
			}}
		}
	}()

	if doc.Resolve == nil {
		return outcome{diagnostic: &Diagnostic{
			Path: doc.Path,
			Slug: slug,
			Kind: DiagnosticResolveFailed,
			Err:  fmt.Errorf("posts: document %s has no resolver", doc.Path),
		}}
	}

	resolved, err := doc.Resolve(ctx)
	if err != nil {
		return outcome{diagnostic: &Diagnostic{Path: doc.Path, Slug: slug, Kind: DiagnosticResolveFailed, Err: err}}
	}

	var meta *interfaces.PostMetadata
	var content interfaces.ContentHandle
	if resolved != nil {
		meta, content = resolved.Metadata, resolved.Content
	}

	date, err := validateMetadata(meta)
	if err != nil {
		return outcome{diagnostic: &Diagnostic{Path: doc.Path, Slug: slug, Kind: DiagnosticInvalidMetadata, Err: err}}
	}
	if !meta.IsPublished() {
		return outcome{diagnostic: &Diagnostic{Path: doc.Path, Slug: slug, Kind: DiagnosticUnpublished}}
	}

	return outcome{
		post: &interfaces.Post{
			Metadata: *meta,
			Slug:     slug,
			Content:  content,
		},
		date: date,
	}
}

func (idx *Index) logDiagnostic(logger interfaces.Logger, d Diagnostic) {
	logger = logging.WithDocument(logger, d.Path, d.Slug)
	switch d.Kind {
	case DiagnosticInvalidMetadata:
		logger.Warn("posts.document.skipped", "reason", string(d.Kind), "error", d.Err)
	case DiagnosticUnpublished:
		logger.Debug("posts.document.unpublished")
	default:
		logger.Error("posts.document.failed", "error", d.Err)
	}
}
