package contentgen

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/nikhilr/prepmock/internal/exam"
	"github.com/nikhilr/prepmock/internal/llm"
)

// LLMAdapter implements Adapter on an llm.Provider.
type LLMAdapter struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMAdapter.
func New(provider llm.Provider, cfg Config) *LLMAdapter {
	return &LLMAdapter{provider: provider, config: cfg}
}

// questionOutput is one raw generated question before validation.
type questionOutput struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Subject     string   `json:"subject"`
	Topic       string   `json:"topic"`
	Difficulty  string   `json:"difficulty"`
	Explanation string   `json:"explanation"`
}

type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

func (a *LLMAdapter) GenerateQuestions(ctx context.Context, cfg exam.TestConfig, batchSize int, priorPrompts []string) []exam.Question {
	if batchSize > MaxBatchSize {
		batchSize = MaxBatchSize
	}
	if batchSize <= 0 {
		return nil
	}

	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: questionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionMessage(cfg, batchSize, priorPrompts, a.config.MaxPriorPrompts)},
		},
		Schema:      QuestionBatchSchema,
		MaxTokens:   a.config.QuestionMaxTokens,
		Temperature: a.config.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return fallbackBatch(cfg, batchSize, priorPrompts)
	}

	batch, err := parseBatch(resp.Content)
	if err != nil {
		return fallbackBatch(cfg, batchSize, priorPrompts)
	}

	questions := make([]exam.Question, 0, len(batch.Questions))
	for _, raw := range batch.Questions {
		q := exam.Question{
			// Fresh id at the boundary; generated ids are never trusted.
			ID:          uuid.NewString(),
			Prompt:      raw.Prompt,
			Options:     raw.Options,
			AnswerIndex: raw.AnswerIndex,
			Subject:     exam.Subject(strings.ToLower(raw.Subject)),
			Topic:       raw.Topic,
			Difficulty:  exam.Difficulty(strings.ToLower(raw.Difficulty)),
			Explanation: raw.Explanation,
		}
		if err := validateQuestion(q); err != nil {
			continue
		}
		if len(questions) == batchSize {
			break
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return fallbackBatch(cfg, batchSize, priorPrompts)
	}
	return questions
}

// parseBatch decodes a question batch, tolerating prose or code fences
// around the payload via bracket extraction.
func parseBatch(content json.RawMessage) (*batchOutput, error) {
	var batch batchOutput
	if err := json.Unmarshal(content, &batch); err == nil {
		return &batch, nil
	}

	// The provider wrapped the payload in noise; cut out the object.
	payload, err := extractJSON(string(content), BracketObject)
	if err != nil {
		// A bare array is also accepted.
		payload, err = extractJSON(string(content), BracketArray)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &batch.Questions); err != nil {
			return nil, err
		}
		return &batch, nil
	}
	if err := json.Unmarshal([]byte(payload), &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

func (a *LLMAdapter) GenerateHint(ctx context.Context, q exam.Question) string {
	ctx = llm.WithPurpose(ctx, "hint")

	resp, err := a.provider.Generate(ctx, llm.Request{
		System: hintSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildHintMessage(q)},
		},
		MaxTokens:   a.config.TextMaxTokens,
		Temperature: a.config.Temperature,
	})
	if err != nil {
		return FallbackApology
	}
	text := strings.TrimSpace(string(resp.Content))
	if text == "" {
		return FallbackApology
	}
	return text
}

func (a *LLMAdapter) AnswerDoubt(ctx context.Context, q exam.Question, userText string) string {
	ctx = llm.WithPurpose(ctx, "doubt")

	resp, err := a.provider.Generate(ctx, llm.Request{
		System: doubtSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildDoubtMessage(q, userText)},
		},
		MaxTokens:   a.config.TextMaxTokens,
		Temperature: a.config.Temperature,
	})
	if err != nil {
		return FallbackApology
	}
	text := strings.TrimSpace(string(resp.Content))
	if text == "" {
		return FallbackApology
	}
	return text
}

type flashcardOutput struct {
	Flashcards []struct {
		Front string `json:"front"`
		Back  string `json:"back"`
		Topic string `json:"topic"`
	} `json:"flashcards"`
}

func (a *LLMAdapter) GenerateFlashcards(ctx context.Context, topics []string) []exam.Flashcard {
	if len(topics) == 0 {
		return nil
	}

	ctx = llm.WithPurpose(ctx, "flashcards")

	resp, err := a.provider.Generate(ctx, llm.Request{
		System: flashcardSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Topics:\n- " + strings.Join(topics, "\n- ")},
		},
		Schema:      FlashcardSchema,
		MaxTokens:   a.config.QuestionMaxTokens,
		Temperature: a.config.Temperature,
	})
	if err != nil {
		return nil
	}

	var out flashcardOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		payload, exErr := extractJSON(string(resp.Content), BracketObject)
		if exErr != nil {
			return nil
		}
		if err := json.Unmarshal([]byte(payload), &out); err != nil {
			return nil
		}
	}

	cards := make([]exam.Flashcard, 0, len(out.Flashcards))
	for _, c := range out.Flashcards {
		if c.Front == "" || c.Back == "" {
			continue
		}
		cards = append(cards, exam.Flashcard{Front: c.Front, Back: c.Back, Topic: c.Topic})
	}
	return cards
}

func (a *LLMAdapter) AnalyzePerformance(ctx context.Context, result *exam.TestResult, stats []exam.SubjectStat) exam.Analysis {
	ctx = llm.WithPurpose(ctx, "analysis")

	resp, err := a.provider.Generate(ctx, llm.Request{
		System: analysisSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildAnalysisMessage(result, stats)},
		},
		Schema:      AnalysisSchema,
		MaxTokens:   a.config.AnalysisMaxTokens,
		Temperature: a.config.Temperature,
	})
	if err != nil {
		return fallbackAnalysis(result)
	}

	var out analysisOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		payload, exErr := extractJSON(string(resp.Content), BracketObject)
		if exErr != nil {
			return fallbackAnalysis(result)
		}
		if err := json.Unmarshal([]byte(payload), &out); err != nil {
			return fallbackAnalysis(result)
		}
	}
	if out.Summary == "" {
		return fallbackAnalysis(result)
	}
	return exam.Analysis{
		Summary:     out.Summary,
		Strengths:   out.Strengths,
		Weaknesses:  out.Weaknesses,
		Suggestions: out.Suggestions,
	}
}

type analysisOutput struct {
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}
