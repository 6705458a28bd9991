package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikhilr/prepmock/internal/exam"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func cacheQuestion(id string, subject exam.Subject) exam.Question {
	return exam.Question{
		ID:          id,
		Prompt:      "What is the SI unit of force?",
		Options:     []string{"Newton", "Joule", "Pascal", "Watt"},
		AnswerIndex: 0,
		Subject:     subject,
		Topic:       "Laws of Motion",
		Difficulty:  exam.DifficultyEasy,
		Explanation: "Force is measured in newtons.",
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := s.DB().QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestQuestionCache_PutIsUpsert(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuestionCache()
	ctx := context.Background()

	q := cacheQuestion("q1", exam.SubjectPhysics)
	if err := repo.Put(ctx, []exam.Question{q}); err != nil {
		t.Fatalf("put: %v", err)
	}
	// Second put with a memoized hint must not duplicate.
	q.Hint = "Think of F = ma."
	if err := repo.Put(ctx, []exam.Question{q}); err != nil {
		t.Fatalf("second put: %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 cached question, got %d", n)
	}

	got, err := repo.GetUpTo(ctx, 5, nil, nil)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0].Hint != "Think of F = ma." {
		t.Fatalf("expected updated hint, got %+v", got)
	}
}

func TestQuestionCache_SubjectFilterAndExclude(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuestionCache()
	ctx := context.Background()

	err := repo.Put(ctx, []exam.Question{
		cacheQuestion("p1", exam.SubjectPhysics),
		cacheQuestion("p2", exam.SubjectPhysics),
		cacheQuestion("c1", exam.SubjectChemistry),
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := repo.GetUpTo(ctx, 10, []exam.Subject{exam.SubjectPhysics}, map[string]bool{"p1": true})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("expected only p2, got %+v", got)
	}
}

func TestQuestionCache_Clear(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuestionCache()
	ctx := context.Background()

	if err := repo.Put(ctx, []exam.Question{cacheQuestion("q1", exam.SubjectBiology)}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty cache, got %d", n)
	}
}

func TestSnapshot_SaveOverwritesAndLoads(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// Nothing saved yet.
	snap, err := repo.Load(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	first := &SessionSnapshot{
		RemainingSeconds: 600,
		Responses: map[string]*exam.ResponseRecord{
			"q1": {QuestionID: "q1", SelectedOption: 2, Status: exam.StatusAnswered, Visited: true},
		},
		SavedAt: time.Now(),
	}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := &SessionSnapshot{RemainingSeconds: 590, SavedAt: time.Now()}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := repo.Load(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || got.RemainingSeconds != 590 {
		t.Fatalf("expected overwritten snapshot, got %+v", got)
	}
}

func TestSnapshot_StaleDiscarded(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	stale := &SessionSnapshot{
		RemainingSeconds: 300,
		SavedAt:          time.Now().Add(-25 * time.Hour),
	}
	if err := repo.Save(ctx, stale); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Load(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatalf("expected stale snapshot to be discarded, got %+v", got)
	}

	// A fresh one within the window is offered.
	fresh := &SessionSnapshot{RemainingSeconds: 300, SavedAt: time.Now().Add(-1 * time.Hour)}
	if err := repo.Save(ctx, fresh); err != nil {
		t.Fatalf("save fresh: %v", err)
	}
	got, err = repo.Load(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("load fresh: %v", err)
	}
	if got == nil {
		t.Fatal("expected fresh snapshot to be offered")
	}
}

func TestSnapshot_Delete(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, &SessionSnapshot{SavedAt: time.Now()}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := repo.Load(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatal("expected no snapshot after delete")
	}
}

func TestResults_SaveAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	res := &exam.TestResult{
		TotalQuestions: 30,
		Attempted:      24,
		Correct:        18,
		Wrong:          6,
		Score:          16.00,
		Accuracy:       75.00,
		ElapsedSeconds: 1500,
		Responses: map[string]*exam.ResponseRecord{
			"q1": {QuestionID: "q1", SelectedOption: 1, Status: exam.StatusAnswered},
		},
		CreatedAt: time.Now(),
		Config:    exam.TestConfig{Mode: exam.ModeFull},
	}
	if err := repo.Save(ctx, res); err != nil {
		t.Fatalf("save: %v", err)
	}

	list, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 result, got %d", len(list))
	}
	got := list[0]
	if got.Score != 16.00 || got.Accuracy != 75.00 || got.Config.Mode != exam.ModeFull {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if got.Responses["q1"] == nil || got.Responses["q1"].SelectedOption != 1 {
		t.Fatalf("responses not restored: %+v", got.Responses)
	}
}

func TestEvents_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "mock",
		Model:        "mock",
		Purpose:      "question-gen",
		InputTokens:  120,
		OutputTokens: 480,
		LatencyMs:    900,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	err = repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "hint",
		Success: false, ErrorMessage: "provider unavailable",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	// Most recent first.
	if events[0].Purpose != "hint" || events[0].Success {
		t.Fatalf("unexpected first event: %+v", events[0])
	}

	got, err := repo.GetLLMEvent(ctx, events[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.InputTokens != 120 {
		t.Fatalf("unexpected event: %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing event")
	}
}

func TestEvents_PurposeFilterAppliesBeforeLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	// Interleave so the newest rows are not the ones being filtered for.
	for i := 0; i < 3; i++ {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock", Model: "mock", Purpose: "hint", Success: true,
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
		for j := 0; j < 4; j++ {
			if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
				Provider: "mock", Model: "mock", Purpose: "question-gen", Success: true,
			}); err != nil {
				t.Fatalf("append: %v", err)
			}
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 3, Purpose: "hint"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected the limit to count matching rows only, got %d", len(events))
	}
	for _, e := range events {
		if e.Purpose != "hint" {
			t.Fatalf("unexpected purpose %q", e.Purpose)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 50})
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(all) != 15 {
		t.Fatalf("expected 15 events without a filter, got %d", len(all))
	}
}

func TestEvents_UsageAggregation(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "question-gen",
			InputTokens: 100, OutputTokens: 200, LatencyMs: 1000, Success: true,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 1 || byPurpose[0].Calls != 3 || byPurpose[0].InputTokens != 300 {
		t.Fatalf("unexpected purpose usage: %+v", byPurpose)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 1 || byModel[0].OutputTokens != 600 {
		t.Fatalf("unexpected model usage: %+v", byModel)
	}
}
