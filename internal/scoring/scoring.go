// Package scoring turns a finished response map into a TestResult and
// the per-subject breakdown shown on the summary screen.
//
// Marking follows the NEET convention: +1 for a correct answer, -1/3
// for a wrong one, nothing for an unattempted question. Review marks
// never affect scoring; only the selected option counts.
package scoring

import (
	"math"
	"time"

	"github.com/nikhilr/prepmock/internal/exam"
)

const (
	correctMarks = 1.0
	wrongPenalty = 1.0 / 3.0
)

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Score computes the raw exam score from correct and wrong counts.
func Score(correct, wrong int) float64 {
	return Round2(float64(correct)*correctMarks - float64(wrong)*wrongPenalty)
}

// Accuracy is the percentage of attempted questions answered correctly,
// or 0 when nothing was attempted.
func Accuracy(correct, attempted int) float64 {
	if attempted == 0 {
		return 0
	}
	return Round2(100 * float64(correct) / float64(attempted))
}

// Compute builds the immutable TestResult for a submitted session.
// Questions without a response record count as unattempted.
func Compute(cfg exam.TestConfig, questions []exam.Question, responses map[string]*exam.ResponseRecord, elapsedSeconds int) *exam.TestResult {
	var attempted, correct, wrong int
	for _, q := range questions {
		rec, ok := responses[q.ID]
		if !ok || !rec.Attempted() {
			continue
		}
		attempted++
		if rec.SelectedOption == q.AnswerIndex {
			correct++
		} else {
			wrong++
		}
	}

	// The result owns a copy of the response map so later session
	// teardown cannot mutate it.
	final := make(map[string]*exam.ResponseRecord, len(responses))
	for id, rec := range responses {
		cp := *rec
		final[id] = &cp
	}

	return &exam.TestResult{
		TotalQuestions: len(questions),
		Attempted:      attempted,
		Correct:        correct,
		Wrong:          wrong,
		Score:          Score(correct, wrong),
		Accuracy:       Accuracy(correct, attempted),
		ElapsedSeconds: elapsedSeconds,
		Responses:      final,
		CreatedAt:      time.Now().UTC(),
		Config:         cfg,
	}
}

// SubjectStats aggregates attempts per subject in canonical order.
// Subjects with no questions in the set are omitted.
func SubjectStats(questions []exam.Question, responses map[string]*exam.ResponseRecord) []exam.SubjectStat {
	bySubject := make(map[exam.Subject]*exam.SubjectStat)
	for _, q := range questions {
		st, ok := bySubject[q.Subject]
		if !ok {
			st = &exam.SubjectStat{Subject: q.Subject}
			bySubject[q.Subject] = st
		}
		st.Total++

		rec, ok := responses[q.ID]
		if !ok || !rec.Attempted() {
			continue
		}
		st.Attempted++
		if rec.SelectedOption == q.AnswerIndex {
			st.Correct++
		}
	}

	var stats []exam.SubjectStat
	for _, s := range exam.AllSubjects {
		if st, ok := bySubject[s]; ok {
			stats = append(stats, *st)
		}
	}
	return stats
}
