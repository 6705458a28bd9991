package loader

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/nikhilr/prepmock/internal/exam"
)

// stubAdapter returns batchSize questions per call with fresh ids and
// counts requests. A fixed yield below batchSize simulates a generator
// that underdelivers.
type stubAdapter struct {
	mu       sync.Mutex
	requests int
	yield    int // 0 means honor batchSize
	serial   int
}

func (a *stubAdapter) GenerateQuestions(_ context.Context, _ exam.TestConfig, batchSize int, _ []string) []exam.Question {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests++

	n := batchSize
	if a.yield > 0 && a.yield < n {
		n = a.yield
	}
	qs := make([]exam.Question, n)
	for i := range qs {
		a.serial++
		qs[i] = exam.Question{
			ID:          fmt.Sprintf("gen-%d", a.serial),
			Prompt:      fmt.Sprintf("Generated %d", a.serial),
			Options:     []string{"a", "b", "c", "d"},
			AnswerIndex: 0,
			Subject:     exam.SubjectPhysics,
		}
	}
	return qs
}

func (a *stubAdapter) GenerateHint(context.Context, exam.Question) string { return "" }

func (a *stubAdapter) AnswerDoubt(context.Context, exam.Question, string) string { return "" }

func (a *stubAdapter) GenerateFlashcards(context.Context, []string) []exam.Flashcard { return nil }

func (a *stubAdapter) AnalyzePerformance(context.Context, *exam.TestResult, []exam.SubjectStat) exam.Analysis {
	return exam.Analysis{}
}

func (a *stubAdapter) requestCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requests
}

// memCache is an in-memory store.QuestionCacheRepo.
type memCache struct {
	mu        sync.Mutex
	questions []exam.Question
	puts      int
}

func (c *memCache) Put(_ context.Context, qs []exam.Question) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	c.questions = append(c.questions, qs...)
	return nil
}

func (c *memCache) GetUpTo(_ context.Context, limit int, subjects []exam.Subject, exclude map[string]bool) ([]exam.Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	allowed := make(map[exam.Subject]bool)
	for _, s := range subjects {
		allowed[s] = true
	}

	var out []exam.Question
	for _, q := range c.questions {
		if len(out) >= limit {
			break
		}
		if exclude[q.ID] {
			continue
		}
		if len(allowed) > 0 && !allowed[q.Subject] {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (c *memCache) Count(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.questions), nil
}

func (c *memCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.questions = nil
	return nil
}

func loaderConfig(total int) exam.TestConfig {
	return exam.TestConfig{
		Mode:            exam.ModeFull,
		TotalQuestions:  total,
		DurationMinutes: total,
		Subjects:        exam.AllSubjects,
	}
}

// drain runs the loader's continuation loop to completion.
func drain(t *testing.T, l *Loader) int {
	t.Helper()
	ctx := context.Background()
	fetches := 0
	for l.NeedsFetch(0) {
		l.Fetch(ctx)
		fetches++
		if fetches > 100 {
			t.Fatal("loader did not terminate")
		}
	}
	return fetches
}

func TestFetch_ExactRequestCount(t *testing.T) {
	tests := []struct {
		target, yield, want int
	}{
		{30, 5, 6},  // full batches: ceil(30/5)
		{30, 3, 10}, // underdelivering generator: ceil(30/3)
		{7, 5, 2},   // ragged final batch: 5 + 2
		{4, 5, 1},   // below one batch
	}
	for _, tt := range tests {
		adapter := &stubAdapter{yield: tt.yield}
		l := New(adapter, nil, loaderConfig(tt.target))

		drain(t, l)

		if got := adapter.requestCount(); got != tt.want {
			t.Errorf("target=%d yield=%d: %d requests, want %d", tt.target, tt.yield, got, tt.want)
		}
		if l.Loaded() != tt.target {
			t.Errorf("target=%d: loaded %d", tt.target, l.Loaded())
		}
		if l.NeedsFetch(0) {
			t.Errorf("target=%d: loader still wants to fetch after completion", tt.target)
		}
	}
}

func TestFetch_FinalBatchSizeClamped(t *testing.T) {
	adapter := &stubAdapter{}
	l := New(adapter, nil, loaderConfig(7))
	ctx := context.Background()

	first := l.Fetch(ctx)
	second := l.Fetch(ctx)
	if len(first) != 5 || len(second) != 2 {
		t.Fatalf("batch sizes %d, %d; want 5, 2", len(first), len(second))
	}
}

func TestFetch_SingleFlight(t *testing.T) {
	adapter := &stubAdapter{}
	slow := &blockingAdapter{
		stubAdapter: adapter,
		gate:        make(chan struct{}),
		started:     make(chan struct{}),
	}
	l := New(slow, nil, loaderConfig(30))

	results := make(chan int, 2)
	go func() {
		results <- len(l.Fetch(context.Background()))
	}()

	<-slow.started
	// A second fetch while the first holds the latch must bail out.
	if got := l.Fetch(context.Background()); got != nil {
		t.Fatalf("second fetch ran concurrently, returned %d questions", len(got))
	}
	if l.NeedsFetch(0) {
		t.Fatal("NeedsFetch must be false while a fetch is in flight")
	}
	close(slow.gate)

	if got := <-results; got != 5 {
		t.Fatalf("first fetch returned %d questions, want 5", got)
	}
	if adapter.requestCount() != 1 {
		t.Fatalf("requests = %d, want 1", adapter.requestCount())
	}
}

// blockingAdapter holds GenerateQuestions open until its gate closes.
type blockingAdapter struct {
	*stubAdapter
	gate      chan struct{}
	started   chan struct{}
	startOnce sync.Once
}

func (a *blockingAdapter) GenerateQuestions(ctx context.Context, cfg exam.TestConfig, batchSize int, prior []string) []exam.Question {
	a.startOnce.Do(func() { close(a.started) })
	<-a.gate
	return a.stubAdapter.GenerateQuestions(ctx, cfg, batchSize, prior)
}

func TestFetch_CacheFirst(t *testing.T) {
	cache := &memCache{}
	cached := make([]exam.Question, 3)
	for i := range cached {
		cached[i] = exam.Question{
			ID:      fmt.Sprintf("cached-%d", i),
			Prompt:  fmt.Sprintf("Cached %d", i),
			Subject: exam.SubjectPhysics,
		}
	}
	if err := cache.Put(context.Background(), cached); err != nil {
		t.Fatal(err)
	}

	adapter := &stubAdapter{}
	l := New(adapter, cache, loaderConfig(5))

	batch := l.Fetch(context.Background())
	if len(batch) != 5 {
		t.Fatalf("batch = %d, want 5", len(batch))
	}
	// 3 from cache, only 2 generated.
	if batch[0].ID != "cached-0" {
		t.Errorf("cache not drained first: %s", batch[0].ID)
	}
	if adapter.requestCount() != 1 {
		t.Fatalf("requests = %d, want 1", adapter.requestCount())
	}
}

func TestFetch_GeneratedQuestionsCached(t *testing.T) {
	cache := &memCache{}
	adapter := &stubAdapter{}
	l := New(adapter, cache, loaderConfig(5))

	l.Fetch(context.Background())

	n, _ := cache.Count(context.Background())
	if n != 5 {
		t.Fatalf("cache holds %d questions, want 5", n)
	}
}

func TestFetch_DedupesAgainstSeeded(t *testing.T) {
	cache := &memCache{}
	seeded := exam.Question{ID: "cached-0", Prompt: "Seen", Subject: exam.SubjectPhysics}
	extra := exam.Question{ID: "cached-1", Prompt: "Fresh", Subject: exam.SubjectPhysics}
	cache.Put(context.Background(), []exam.Question{seeded, extra})

	adapter := &stubAdapter{}
	l := New(adapter, cache, loaderConfig(3))
	l.Seed([]exam.Question{seeded})

	batch := l.Fetch(context.Background())
	for _, q := range batch {
		if q.ID == "cached-0" {
			t.Fatal("already seeded question refetched")
		}
	}
	if l.Loaded() != 3 {
		t.Fatalf("loaded = %d, want 3", l.Loaded())
	}
}

func TestFetch_EmptyBatchStallsUntilLookahead(t *testing.T) {
	// Every question the adapter returns is already seeded, so each
	// fetch merges nothing.
	adapter := &repeatAdapter{}
	l := New(adapter, nil, loaderConfig(10))
	l.Seed([]exam.Question{{ID: "dup", Prompt: "Dup", Subject: exam.SubjectPhysics}})

	batch := l.Fetch(context.Background())
	if len(batch) != 0 {
		t.Fatalf("expected empty batch, got %d", len(batch))
	}

	// Far from the end of the loaded set: no retry.
	if l.NeedsFetch(-10) {
		t.Fatal("stalled loader must not reschedule immediately")
	}
	// Candidate close to the end: retry allowed.
	if !l.NeedsFetch(0) {
		t.Fatal("stalled loader must retry when the candidate nears the end")
	}
}

// repeatAdapter always returns the same single question id.
type repeatAdapter struct{ stubAdapter }

func (a *repeatAdapter) GenerateQuestions(context.Context, exam.TestConfig, int, []string) []exam.Question {
	return []exam.Question{{ID: "dup", Prompt: "Dup", Subject: exam.SubjectPhysics}}
}

func TestNeedsFetch_LifecycleTriggers(t *testing.T) {
	adapter := &stubAdapter{}
	l := New(adapter, nil, loaderConfig(10))

	// Trigger (a): nothing loaded yet.
	if !l.NeedsFetch(0) {
		t.Fatal("fresh loader must want the initial batch")
	}

	l.Fetch(context.Background())
	// Trigger (c): continuation while short of target.
	if !l.NeedsFetch(0) {
		t.Fatal("loader must continue until the target")
	}

	l.Fetch(context.Background())
	if l.NeedsFetch(0) {
		t.Fatal("loader must stop at the target")
	}
	if !l.Done() {
		t.Fatal("Done must report completion")
	}
}
