// Package loader grows a session's question set toward the configured
// total in the background: cache first, then the content adapter, one
// bounded batch at a time.
package loader

import (
	"context"
	"sync"
	"time"

	"github.com/nikhilr/prepmock/internal/contentgen"
	"github.com/nikhilr/prepmock/internal/exam"
	"github.com/nikhilr/prepmock/internal/store"
)

const (
	// Lookahead is how close the candidate may get to the end of the
	// loaded set before a fetch is forced.
	Lookahead = 5

	// BatchDelay is the pause between consecutive batch fetches.
	BatchDelay = 500 * time.Millisecond
)

// Loader fetches question batches for one session. At most one fetch is
// in flight at a time; Fetch is safe to call from a background goroutine
// while NeedsFetch is polled from the UI loop.
type Loader struct {
	adapter contentgen.Adapter
	cache   store.QuestionCacheRepo // nil disables the cache
	cfg     exam.TestConfig

	mu       sync.Mutex
	ids      map[string]bool
	prompts  []string
	count    int
	inFlight bool

	// stalled is set when a fetch produced nothing new; scheduling
	// stops until the candidate nears the end of the loaded set.
	stalled bool
}

// New creates a loader for the given configuration.
func New(adapter contentgen.Adapter, cache store.QuestionCacheRepo, cfg exam.TestConfig) *Loader {
	return &Loader{
		adapter: adapter,
		cache:   cache,
		cfg:     cfg,
		ids:     make(map[string]bool),
	}
}

// Seed registers questions already in the active set, e.g. from a
// resumed snapshot, so they are neither refetched nor double-counted.
func (l *Loader) Seed(questions []exam.Question) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, q := range questions {
		if q.ID == "" || l.ids[q.ID] {
			continue
		}
		l.ids[q.ID] = true
		l.prompts = append(l.prompts, q.Prompt)
		l.count++
	}
}

// Loaded reports how many questions the loader has produced or seeded.
func (l *Loader) Loaded() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Done reports whether the configured total has been reached.
func (l *Loader) Done() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count >= l.cfg.TotalQuestions
}

// InFlight reports whether a fetch is currently running.
func (l *Loader) InFlight() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight
}

// NeedsFetch reports whether another batch should be scheduled given
// the candidate's current position. A stalled loader retries only when
// the candidate comes within Lookahead of the end of the loaded set.
func (l *Loader) NeedsFetch(currentIndex int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inFlight || l.count >= l.cfg.TotalQuestions {
		return false
	}
	if l.stalled {
		return currentIndex >= l.count-Lookahead
	}
	return true
}

// Fetch runs one batch: drain the cache first, top up from the adapter,
// persist fresh questions back to the cache, and return the accepted
// questions for merging into the session. It returns nil when the
// target is already reached or another fetch holds the latch.
func (l *Loader) Fetch(ctx context.Context) []exam.Question {
	l.mu.Lock()
	if l.inFlight || l.count >= l.cfg.TotalQuestions {
		l.mu.Unlock()
		return nil
	}
	l.inFlight = true
	size := min(l.cfg.TotalQuestions-l.count, contentgen.MaxBatchSize)
	exclude := make(map[string]bool, len(l.ids))
	for id := range l.ids {
		exclude[id] = true
	}
	prompts := append([]string(nil), l.prompts...)
	l.mu.Unlock()

	batch := l.fromCache(ctx, size, exclude)
	if len(batch) < size {
		generated := l.adapter.GenerateQuestions(ctx, l.cfg, size-len(batch), prompts)
		if l.cache != nil && len(generated) > 0 {
			// Cache write failures just mean a regeneration next time.
			_ = l.cache.Put(ctx, generated)
		}
		batch = append(batch, generated...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight = false

	var accepted []exam.Question
	for _, q := range batch {
		if l.count >= l.cfg.TotalQuestions {
			break
		}
		if q.ID == "" || l.ids[q.ID] {
			continue
		}
		l.ids[q.ID] = true
		l.prompts = append(l.prompts, q.Prompt)
		l.count++
		accepted = append(accepted, q)
	}

	l.stalled = len(accepted) == 0
	return accepted
}

// fromCache pulls unused cached questions matching the subject filter.
// Topic-filtered sessions skip the cache since cached questions carry
// no topic guarantee.
func (l *Loader) fromCache(ctx context.Context, limit int, exclude map[string]bool) []exam.Question {
	if l.cache == nil || l.cfg.Mode == exam.ModeTopic {
		return nil
	}
	cached, err := l.cache.GetUpTo(ctx, limit, l.cfg.Subjects, exclude)
	if err != nil {
		// A broken cache degrades to generation only.
		return nil
	}
	return cached
}
