package contentgen

import "github.com/nikhilr/prepmock/internal/llm"

// QuestionBatchSchema is the JSON schema for question generation
// responses. The batch is wrapped in an object because several
// providers require an object root for structured output.
var QuestionBatchSchema = &llm.Schema{
	Name:        "question-batch",
	Description: "A batch of multiple-choice exam questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question text shown to the candidate",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer options",
						},
						"answer_index": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     3,
							"description": "Index of the correct option",
						},
						"subject": map[string]any{
							"type": "string",
							"enum": []any{"physics", "chemistry", "biology"},
						},
						"topic": map[string]any{
							"type":        "string",
							"description": "Topic label within the subject",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Brief worked solution shown during review",
						},
					},
					"required": []any{
						"prompt", "options", "answer_index",
						"subject", "topic", "difficulty", "explanation",
					},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// FlashcardSchema is the JSON schema for flashcard generation responses.
var FlashcardSchema = &llm.Schema{
	Name:        "flashcard-batch",
	Description: "Revision flashcards for weak topics",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"flashcards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{"type": "string"},
						"back":  map[string]any{"type": "string"},
						"topic": map[string]any{"type": "string"},
					},
					"required":             []any{"front", "back", "topic"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"flashcards"},
		"additionalProperties": false,
	},
}

// AnalysisSchema is the JSON schema for performance analysis responses.
var AnalysisSchema = &llm.Schema{
	Name:        "performance-analysis",
	Description: "A post-test performance review",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Two or three sentences summarizing the attempt",
			},
			"strengths": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"weaknesses": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"suggestions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []any{"summary", "strengths", "weaknesses", "suggestions"},
		"additionalProperties": false,
	},
}
