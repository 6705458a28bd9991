package exam

import "time"

// Subject is one of the fixed exam subjects.
type Subject string

const (
	SubjectPhysics   Subject = "physics"
	SubjectChemistry Subject = "chemistry"
	SubjectBiology   Subject = "biology"
)

// AllSubjects lists every subject in canonical display order.
var AllSubjects = []Subject{SubjectPhysics, SubjectChemistry, SubjectBiology}

// Valid reports whether s is a known subject.
func (s Subject) Valid() bool {
	switch s {
	case SubjectPhysics, SubjectChemistry, SubjectBiology:
		return true
	}
	return false
}

// Display returns the subject name with an uppercase first letter.
func (s Subject) Display() string {
	switch s {
	case SubjectPhysics:
		return "Physics"
	case SubjectChemistry:
		return "Chemistry"
	case SubjectBiology:
		return "Biology"
	}
	return string(s)
}

// Difficulty is the generator's self-assessed question difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// Question is a single multiple-choice question.
// Immutable once created, except for hint memoization.
type Question struct {
	// ID uniquely identifies the question. Minted at the adapter
	// boundary; generated ids are never trusted.
	ID string

	// Prompt is the question text shown to the candidate.
	Prompt string

	// Options holds exactly OptionCount answer options in display order.
	Options []string

	// AnswerIndex is the index of the correct option (0-3).
	AnswerIndex int

	// Subject the question belongs to.
	Subject Subject

	// Topic is a free-form topic label within the subject,
	// e.g. "Thermodynamics" or "Human Physiology".
	Topic string

	// Difficulty as assessed by the generator.
	Difficulty Difficulty

	// Explanation is a short worked solution shown during review.
	Explanation string

	// SourceTag optionally names where the question came from,
	// e.g. "fallback" or a previous-year paper label.
	SourceTag string

	// Hint is memoized on first request. Empty until then.
	Hint string
}

// Mode selects how the question set is assembled.
type Mode string

const (
	ModeFull    Mode = "full"
	ModeSubject Mode = "subject"
	ModeTopic   Mode = "topic"
	ModeCustom  Mode = "custom"
)

// TestConfig describes one mock-exam session. Created once per session
// and read-only thereafter.
type TestConfig struct {
	Mode            Mode
	TotalQuestions  int
	DurationMinutes int

	// Subjects is the non-empty set of subjects to draw questions from.
	Subjects []Subject

	// Topic optionally restricts generation to a single topic.
	// Only meaningful for ModeTopic.
	Topic string
}

// Duration returns the configured duration as a time.Duration.
func (c TestConfig) Duration() time.Duration {
	return time.Duration(c.DurationMinutes) * time.Minute
}

// HasSubject reports whether s is part of the configured subject set.
func (c TestConfig) HasSubject(s Subject) bool {
	for _, sub := range c.Subjects {
		if sub == s {
			return true
		}
	}
	return false
}

// AnswerStatus tracks where a question sits in the answer lifecycle.
type AnswerStatus string

const (
	StatusNotVisited        AnswerStatus = "not_visited"
	StatusNotAnswered       AnswerStatus = "not_answered"
	StatusAnswered          AnswerStatus = "answered"
	StatusMarkedForReview   AnswerStatus = "marked"
	StatusAnsweredAndMarked AnswerStatus = "answered_marked"
)

// NoSelection is the sentinel for "no option selected".
const NoSelection = -1

// ResponseRecord holds the candidate's state for one question.
// Created lazily when the question first enters the active set and
// mutated only by the owning session.
type ResponseRecord struct {
	QuestionID string

	// SelectedOption is the chosen option index, or NoSelection.
	SelectedOption int

	Status AnswerStatus

	// TimeSpentSeconds accumulates seconds while the question is current.
	// Best-effort telemetry, not scored.
	TimeSpentSeconds int

	Visited    bool
	Bookmarked bool
}

// NewResponseRecord returns the default record for a freshly loaded question.
func NewResponseRecord(questionID string) *ResponseRecord {
	return &ResponseRecord{
		QuestionID:     questionID,
		SelectedOption: NoSelection,
		Status:         StatusNotVisited,
	}
}

// Attempted reports whether an option is selected.
func (r *ResponseRecord) Attempted() bool {
	return r.SelectedOption != NoSelection
}

// TestResult is the immutable outcome of a submitted session.
type TestResult struct {
	TotalQuestions int
	Attempted      int
	Correct        int
	Wrong          int

	// Score is correct - wrong/3, rounded to 2 decimal places.
	Score float64

	// Accuracy is round2(100*correct/attempted), 0 when nothing attempted.
	Accuracy float64

	// ElapsedSeconds is configured duration minus remaining time.
	ElapsedSeconds int

	// Responses maps question id to the final response record.
	Responses map[string]*ResponseRecord

	CreatedAt time.Time

	// Config the session ran with.
	Config TestConfig
}

// Flashcard is a single revision card generated for a weak topic.
type Flashcard struct {
	Front string
	Back  string
	Topic string
}

// SubjectStat is the per-subject aggregation used by the summary
// screen and by the performance-analysis call.
type SubjectStat struct {
	Subject   Subject
	Total     int
	Attempted int
	Correct   int
}

// Analysis is the AI-generated (or canned fallback) performance review.
type Analysis struct {
	Summary     string
	Strengths   []string
	Weaknesses  []string
	Suggestions []string
}
