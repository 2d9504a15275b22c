package posts

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const loadKey = "posts"

type loadState uint8

const (
	stateEmpty loadState = iota
	stateLoading
	stateReady
)

func (s loadState) String() string {
	switch s {
	case stateLoading:
		return "loading"
	case stateReady:
		return "ready"
	default:
		return "empty"
	}
}

// Config tunes the index.
type Config struct {
	Rules IdentifierRules
	// LoadConcurrency caps concurrent document resolutions. Zero or less
	// resolves every document at once.
	LoadConcurrency int
}

// Option customises an Index.
type Option func(*Index)

// WithLogger sets the index logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(idx *Index) {
		if logger != nil {
			idx.logger = logger
		}
	}
}

// Index is the lazily built, process-wide post collection. It moves from
// empty to loading on the first query and to ready once the load succeeds;
// the ready collection is never rebuilt. Concurrent first queries share a
// single load.
type Index struct {
	source      interfaces.DocumentSource
	rules       IdentifierRules
	concurrency int
	logger      interfaces.Logger

	group singleflight.Group
	loads atomic.Int64

	mu          sync.RWMutex
	state       loadState
	posts       []*interfaces.Post
	diagnostics []Diagnostic
}

var _ interfaces.PostService = (*Index)(nil)

// New builds an empty index over source.
func New(source interfaces.DocumentSource, cfg Config, opts ...Option) (*Index, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	idx := &Index{
		source:      source,
		rules:       cfg.Rules.normalized(),
		concurrency: cfg.LoadConcurrency,
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(idx)
		}
	}
	return idx, nil
}

// All returns every post, newest first. The first call loads the collection;
// later calls return the same slice, which callers must not modify. A caller
// whose ctx ends stops waiting, but the shared load keeps running for the
// others.
func (idx *Index) All(ctx context.Context) ([]*interfaces.Post, error) {
	if posts, ok := idx.snapshot(); ok {
		return posts, nil
	}

	ch := idx.group.DoChan(loadKey, func() (any, error) {
		if posts, ok := idx.snapshot(); ok {
			return posts, nil
		}
		return idx.build(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]*interfaces.Post), nil
	}
}

// Ready reports whether the collection has been built.
func (idx *Index) Ready() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.state == stateReady
}

// Diagnostics lists the documents the completed load left out and why.
func (idx *Index) Diagnostics() []Diagnostic {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return slices.Clone(idx.diagnostics)
}

func (idx *Index) snapshot() ([]*interfaces.Post, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.posts, idx.state == stateReady
}

func (idx *Index) setState(state loadState) {
	idx.mu.Lock()
	idx.state = state
	idx.mu.Unlock()
}

// build runs inside the single flight. A failed load returns the index to
// empty so the next query retries.
func (idx *Index) build(ctx context.Context) ([]*interfaces.Post, error) {
	idx.setState(stateLoading)

	posts, diagnostics, err := idx.loadAll(ctx)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if err != nil {
		idx.state = stateEmpty
		return nil, err
	}
	idx.posts = posts
	idx.diagnostics = diagnostics
	idx.state = stateReady
	return posts, nil
}
