package contentgen

import (
	"fmt"

	"github.com/nikhilr/prepmock/internal/exam"
)

// validateQuestion structurally checks one parsed question. Questions
// failing any check are rejected rather than repaired; partially valid
// provider output is not trusted.
func validateQuestion(q exam.Question) error {
	if q.Prompt == "" {
		return fmt.Errorf("empty prompt")
	}
	if len(q.Prompt) > 1000 {
		return fmt.Errorf("prompt exceeds 1000 characters")
	}
	if len(q.Options) != exam.OptionCount {
		return fmt.Errorf("expected %d options, got %d", exam.OptionCount, len(q.Options))
	}
	for i, opt := range q.Options {
		if opt == "" {
			return fmt.Errorf("option %d is empty", i)
		}
	}
	if q.AnswerIndex < 0 || q.AnswerIndex >= exam.OptionCount {
		return fmt.Errorf("answer index %d out of range", q.AnswerIndex)
	}
	if !q.Subject.Valid() {
		return fmt.Errorf("unknown subject %q", q.Subject)
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", q.Difficulty)
	}
	if q.Explanation == "" {
		return fmt.Errorf("empty explanation")
	}
	return nil
}
