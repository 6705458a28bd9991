package contentgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nikhilr/prepmock/internal/exam"
	"github.com/nikhilr/prepmock/internal/llm"
)

func fullConfig() exam.TestConfig {
	return exam.TestConfig{
		Mode:            exam.ModeFull,
		TotalQuestions:  30,
		DurationMinutes: 30,
		Subjects:        exam.AllSubjects,
	}
}

func batchJSON(n int) json.RawMessage {
	var items []string
	for i := 0; i < n; i++ {
		items = append(items, fmt.Sprintf(`{
			"prompt": "Question %d?",
			"options": ["a", "b", "c", "d"],
			"answer_index": 1,
			"subject": "physics",
			"topic": "Kinematics",
			"difficulty": "medium",
			"explanation": "Because b."
		}`, i))
	}
	return json.RawMessage(`{"questions":[` + strings.Join(items, ",") + `]}`)
}

func TestGenerateQuestions_ParsesBatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(3)})
	a := New(mock, DefaultConfig())

	qs := a.GenerateQuestions(context.Background(), fullConfig(), 3, nil)
	if len(qs) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(qs))
	}
	for _, q := range qs {
		if q.ID == "" {
			t.Error("expected a fresh id on every question")
		}
		if q.Subject != exam.SubjectPhysics {
			t.Errorf("unexpected subject %q", q.Subject)
		}
		if q.SourceTag == SourceTagFallback {
			t.Error("generated question should not carry the fallback tag")
		}
	}
	if qs[0].ID == qs[1].ID {
		t.Error("ids must be unique")
	}
}

func TestGenerateQuestions_CapsBatchSize(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(5)})
	a := New(mock, DefaultConfig())

	a.GenerateQuestions(context.Background(), fullConfig(), 50, nil)

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "Number of questions: 5") {
		t.Fatalf("expected capped request of 5 questions, got:\n%s", msg)
	}
}

func TestGenerateQuestions_NoisyPayloadStillParses(t *testing.T) {
	noisy := "Here you go!\n```json\n" + string(batchJSON(2)) + "\n```\nGood luck!"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(noisy)})
	a := New(mock, DefaultConfig())

	qs := a.GenerateQuestions(context.Background(), fullConfig(), 2, nil)
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions from noisy payload, got %d", len(qs))
	}
	if qs[0].SourceTag == SourceTagFallback {
		t.Fatal("noisy but recoverable payload must not fall back")
	}
}

func TestGenerateQuestions_BareArrayAccepted(t *testing.T) {
	bare := `[{"prompt":"Q?","options":["a","b","c","d"],"answer_index":0,
		"subject":"biology","topic":"Genetics","difficulty":"hard","explanation":"Because a."}]`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("text before " + bare)})
	a := New(mock, DefaultConfig())

	qs := a.GenerateQuestions(context.Background(), fullConfig(), 1, nil)
	if len(qs) != 1 || qs[0].Subject != exam.SubjectBiology {
		t.Fatalf("expected bare array to parse, got %+v", qs)
	}
}

func TestGenerateQuestions_ProviderErrorFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	a := New(mock, DefaultConfig())

	qs := a.GenerateQuestions(context.Background(), fullConfig(), 5, nil)
	if len(qs) == 0 {
		t.Fatal("expected fallback questions")
	}
	for _, q := range qs {
		if q.SourceTag != SourceTagFallback {
			t.Errorf("expected fallback tag, got %q", q.SourceTag)
		}
		if q.ID == "" {
			t.Error("fallback questions still get fresh ids")
		}
	}
}

func TestGenerateQuestions_UnrecoverableGarbageFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("I cannot generate questions today."),
	})
	a := New(mock, DefaultConfig())

	qs := a.GenerateQuestions(context.Background(), fullConfig(), 3, nil)
	if len(qs) == 0 {
		t.Fatal("expected fallback questions")
	}
	// Fallback content is served unchanged apart from id and tag.
	if qs[0].Prompt != fallbackQuestions[0].Prompt {
		t.Fatalf("fallback content altered: %q", qs[0].Prompt)
	}
}

func TestGenerateQuestions_InvalidEntriesRejected(t *testing.T) {
	mixed := `{"questions":[
		{"prompt":"Valid?","options":["a","b","c","d"],"answer_index":2,
		 "subject":"chemistry","topic":"Bonding","difficulty":"easy","explanation":"Because c."},
		{"prompt":"Bad options","options":["a","b"],"answer_index":0,
		 "subject":"chemistry","topic":"Bonding","difficulty":"easy","explanation":"x"},
		{"prompt":"Bad subject","options":["a","b","c","d"],"answer_index":0,
		 "subject":"astrology","topic":"Stars","difficulty":"easy","explanation":"x"}
	]}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(mixed)})
	a := New(mock, DefaultConfig())

	qs := a.GenerateQuestions(context.Background(), fullConfig(), 5, nil)
	if len(qs) != 1 {
		t.Fatalf("expected only the valid question, got %d", len(qs))
	}
	if qs[0].Prompt != "Valid?" {
		t.Fatalf("unexpected survivor: %q", qs[0].Prompt)
	}
}

func TestGenerateHint_FallsBackToApology(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue -> provider unavailable
	a := New(mock, DefaultConfig())

	hint := a.GenerateHint(context.Background(), fallbackQuestions[0])
	if hint != FallbackApology {
		t.Fatalf("expected apology, got %q", hint)
	}
}

func TestGenerateHint_ReturnsText(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("Think about Newton's second law."),
	})
	a := New(mock, DefaultConfig())

	hint := a.GenerateHint(context.Background(), fallbackQuestions[0])
	if hint != "Think about Newton's second law." {
		t.Fatalf("unexpected hint: %q", hint)
	}
}

func TestAnswerDoubt_IncludesQuestionAndDoubt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("The pulmonary vein carries oxygenated blood."),
	})
	a := New(mock, DefaultConfig())

	q := fallbackQuestions[5]
	a.AnswerDoubt(context.Background(), q, "Why not the artery?")

	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, q.Prompt) || !strings.Contains(msg, "Why not the artery?") {
		t.Fatalf("doubt message incomplete:\n%s", msg)
	}
}

func TestGenerateFlashcards_EmptyOnFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	a := New(mock, DefaultConfig())

	cards := a.GenerateFlashcards(context.Background(), []string{"Thermodynamics"})
	if len(cards) != 0 {
		t.Fatalf("expected no cards on failure, got %d", len(cards))
	}
}

func TestGenerateFlashcards_ParsesCards(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"flashcards":[
			{"front":"State the first law of thermodynamics","back":"Energy is conserved","topic":"Thermodynamics"},
			{"front":"","back":"dropped","topic":"x"}
		]}`),
	})
	a := New(mock, DefaultConfig())

	cards := a.GenerateFlashcards(context.Background(), []string{"Thermodynamics"})
	if len(cards) != 1 {
		t.Fatalf("expected 1 valid card, got %d", len(cards))
	}
	if cards[0].Topic != "Thermodynamics" {
		t.Fatalf("unexpected card: %+v", cards[0])
	}
}

func TestAnalyzePerformance_CannedFallback(t *testing.T) {
	mock := llm.NewMockProvider() // provider unavailable
	a := New(mock, DefaultConfig())

	result := &exam.TestResult{TotalQuestions: 30, Attempted: 24, Correct: 18, Wrong: 6, Accuracy: 75}
	analysis := a.AnalyzePerformance(context.Background(), result, nil)
	if analysis.Summary == "" {
		t.Fatal("expected canned analysis summary")
	}
	if len(analysis.Suggestions) == 0 {
		t.Fatal("expected canned suggestions")
	}
}

func TestAnalyzePerformance_ParsesResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"summary":"A solid attempt.",
			"strengths":["Physics accuracy"],
			"weaknesses":["Biology coverage"],
			"suggestions":["Attempt more biology questions"]
		}`),
	})
	a := New(mock, DefaultConfig())

	result := &exam.TestResult{TotalQuestions: 30, Attempted: 20, Correct: 15, Wrong: 5}
	analysis := a.AnalyzePerformance(context.Background(), result, []exam.SubjectStat{
		{Subject: exam.SubjectPhysics, Total: 10, Attempted: 9, Correct: 8},
	})
	if analysis.Summary != "A solid attempt." {
		t.Fatalf("unexpected summary: %q", analysis.Summary)
	}
	if len(analysis.Strengths) != 1 || analysis.Strengths[0] != "Physics accuracy" {
		t.Fatalf("unexpected strengths: %+v", analysis.Strengths)
	}

	// The request should carry the subject-wise numbers.
	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "Physics: 9/10 attempted, 8 correct") {
		t.Fatalf("analysis message missing subject stats:\n%s", msg)
	}
}

func TestAnalyzePerformance_NoisyPayloadStillParses(t *testing.T) {
	noisy := "Here is your review.\n```json\n" + `{
		"summary":"Good run.",
		"strengths":["Time management"],
		"weaknesses":[],
		"suggestions":["Revise organic chemistry"]
	}` + "\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(noisy)})
	a := New(mock, DefaultConfig())

	result := &exam.TestResult{TotalQuestions: 30, Attempted: 25, Correct: 20, Wrong: 5}
	analysis := a.AnalyzePerformance(context.Background(), result, nil)
	if analysis.Summary != "Good run." {
		t.Fatalf("noisy but recoverable payload must not fall back, got %q", analysis.Summary)
	}
	if len(analysis.Suggestions) != 1 || analysis.Suggestions[0] != "Revise organic chemistry" {
		t.Fatalf("unexpected suggestions: %+v", analysis.Suggestions)
	}
}

func TestFallbackBatch_RespectsSubjectFilter(t *testing.T) {
	cfg := exam.TestConfig{
		Mode:     exam.ModeSubject,
		Subjects: []exam.Subject{exam.SubjectBiology},
	}
	qs := fallbackBatch(cfg, 5, nil)
	if len(qs) == 0 {
		t.Fatal("expected biology fallback questions")
	}
	for _, q := range qs {
		if q.Subject != exam.SubjectBiology {
			t.Errorf("subject filter violated: %q", q.Subject)
		}
	}
}

func TestFallbackBatch_SkipsAlreadyServedPrompts(t *testing.T) {
	cfg := fullConfig()
	first := fallbackBatch(cfg, 2, nil)

	var prior []string
	for _, q := range first {
		prior = append(prior, q.Prompt)
	}

	second := fallbackBatch(cfg, 2, prior)
	for _, q := range second {
		for _, p := range prior {
			if q.Prompt == p {
				t.Fatalf("fallback served duplicate prompt %q", p)
			}
		}
	}
}
