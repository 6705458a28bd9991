package scoring

import "github.com/nikhilr/prepmock/internal/exam"

// ReviewFilter selects which questions the post-test review shows.
type ReviewFilter int

const (
	ReviewAll ReviewFilter = iota
	ReviewIncorrect
	ReviewSkipped
)

// Title returns the filter's display label.
func (f ReviewFilter) Title() string {
	switch f {
	case ReviewIncorrect:
		return "Incorrect"
	case ReviewSkipped:
		return "Skipped"
	}
	return "All"
}

// FilterQuestions returns the questions matching f, preserving order.
// The response map is read only, never mutated.
func FilterQuestions(questions []exam.Question, responses map[string]*exam.ResponseRecord, f ReviewFilter) []exam.Question {
	if f == ReviewAll {
		return questions
	}

	var out []exam.Question
	for _, q := range questions {
		rec, ok := responses[q.ID]
		attempted := ok && rec.Attempted()
		switch f {
		case ReviewIncorrect:
			if attempted && rec.SelectedOption != q.AnswerIndex {
				out = append(out, q)
			}
		case ReviewSkipped:
			if !attempted {
				out = append(out, q)
			}
		}
	}
	return out
}
