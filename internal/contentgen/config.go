package contentgen

// Config controls the LLM adapter's request budgets.
type Config struct {
	// QuestionMaxTokens is the token budget for a question batch.
	QuestionMaxTokens int

	// TextMaxTokens is the budget for hints and doubt answers.
	TextMaxTokens int

	// AnalysisMaxTokens is the budget for the performance review.
	AnalysisMaxTokens int

	// Temperature for generation requests.
	Temperature float64

	// MaxPriorPrompts bounds how many already-asked prompts go into the
	// dedup section of the generation request.
	MaxPriorPrompts int
}

// DefaultConfig returns the recommended budgets.
func DefaultConfig() Config {
	return Config{
		QuestionMaxTokens: 2048,
		TextMaxTokens:     256,
		AnalysisMaxTokens: 768,
		Temperature:       0.7,
		MaxPriorPrompts:   20,
	}
}
