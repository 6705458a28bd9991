package contentgen

import (
	"context"

	"github.com/nikhilr/prepmock/internal/exam"
)

// MaxBatchSize caps question generation per provider call. Larger
// batches are empirically unreliable to parse.
const MaxBatchSize = 5

// Adapter is the single boundary to the external content generator.
// Every method absorbs provider failures and returns typed fallback
// content; callers never see raw provider or parse errors.
type Adapter interface {
	// GenerateQuestions produces at most batchSize questions matching
	// the configuration, excluding prompts already seen. The returned
	// slice is never empty: on provider failure the static fallback set
	// is returned, tagged with SourceTagFallback.
	GenerateQuestions(ctx context.Context, cfg exam.TestConfig, batchSize int, priorPrompts []string) []exam.Question

	// GenerateHint returns a short hint for the question, or a generic
	// apology when the provider is unavailable.
	GenerateHint(ctx context.Context, q exam.Question) string

	// AnswerDoubt answers a free-text question about q, or apologizes.
	AnswerDoubt(ctx context.Context, q exam.Question, userText string) string

	// GenerateFlashcards produces revision cards for the given topics.
	// Empty on failure.
	GenerateFlashcards(ctx context.Context, topics []string) []exam.Flashcard

	// AnalyzePerformance reviews the result. A canned analysis is
	// returned on failure.
	AnalyzePerformance(ctx context.Context, result *exam.TestResult, stats []exam.SubjectStat) exam.Analysis
}

// SourceTagFallback marks questions served from the static fallback set.
const SourceTagFallback = "fallback"
