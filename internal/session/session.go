// Package session owns the state of one running mock exam: the growing
// question set, the per-question response records, the countdown and
// the durable snapshot that lets an interrupted attempt resume.
//
// All mutating methods are called from the single UI update loop; the
// progressive loader hands new questions over as messages, never by
// touching the session directly.
package session

import (
	"context"
	"time"

	"github.com/nikhilr/prepmock/internal/exam"
	"github.com/nikhilr/prepmock/internal/scoring"
	"github.com/nikhilr/prepmock/internal/store"
)

// SnapshotMaxAge is how old a persisted snapshot may be and still be
// offered for resume.
const SnapshotMaxAge = 24 * time.Hour

// Session is the state machine for one exam attempt.
type Session struct {
	cfg       exam.TestConfig
	questions []exam.Question
	ids       map[string]bool
	responses map[string]*exam.ResponseRecord

	current   int
	remaining int
	paused    bool

	result *exam.TestResult

	snapshots store.SnapshotRepo
}

// New starts a fresh session from the initial question batch. The
// snapshot repo may be nil, in which case nothing is persisted.
func New(cfg exam.TestConfig, initial []exam.Question, snapshots store.SnapshotRepo) *Session {
	s := &Session{
		cfg:       cfg,
		ids:       make(map[string]bool),
		responses: make(map[string]*exam.ResponseRecord),
		remaining: cfg.DurationMinutes * 60,
		snapshots: snapshots,
	}
	s.merge(initial)
	s.visit(0)
	return s
}

// Restore rebuilds a session from a persisted snapshot.
func Restore(snap *store.SessionSnapshot, snapshots store.SnapshotRepo) *Session {
	s := &Session{
		cfg:       snap.Config,
		ids:       make(map[string]bool),
		responses: snap.Responses,
		current:   snap.CurrentIndex,
		remaining: snap.RemainingSeconds,
		snapshots: snapshots,
	}
	if s.responses == nil {
		s.responses = make(map[string]*exam.ResponseRecord)
	}
	s.merge(snap.Questions)
	if s.current >= s.cfg.TotalQuestions {
		s.current = 0
	}
	s.visit(s.current)
	return s
}

// Config returns the session's read-only configuration.
func (s *Session) Config() exam.TestConfig { return s.cfg }

// Questions returns the currently loaded question set.
func (s *Session) Questions() []exam.Question { return s.questions }

// Loaded reports how many questions have been loaded so far.
func (s *Session) Loaded() int { return len(s.questions) }

// Target is the configured total question count.
func (s *Session) Target() int { return s.cfg.TotalQuestions }

// CurrentIndex is the position the candidate is looking at. It may
// point past the loaded set while questions are still arriving.
func (s *Session) CurrentIndex() int { return s.current }

// Current returns the question at the current index, or false when it
// has not been loaded yet.
func (s *Session) Current() (exam.Question, bool) {
	if s.current < 0 || s.current >= len(s.questions) {
		return exam.Question{}, false
	}
	return s.questions[s.current], true
}

// Remaining is the countdown in seconds.
func (s *Session) Remaining() int { return s.remaining }

// Paused reports whether the timer and persistence are suspended.
func (s *Session) Paused() bool { return s.paused }

// Submitted reports whether the attempt has been finalized.
func (s *Session) Submitted() bool { return s.result != nil }

// Result returns the finalized result, or nil before submission.
func (s *Session) Result() *exam.TestResult { return s.result }

// Response returns the record for a question id, or nil if the
// question has not entered the active set.
func (s *Session) Response(questionID string) *exam.ResponseRecord {
	return s.responses[questionID]
}

// Responses returns the live response map. Callers must not mutate it.
func (s *Session) Responses() map[string]*exam.ResponseRecord { return s.responses }

// AddQuestions merges a loaded batch into the active set, dropping ids
// already present and truncating at the configured total. Returns how
// many questions were actually added.
func (s *Session) AddQuestions(ctx context.Context, batch []exam.Question) int {
	added := s.merge(batch)
	if added > 0 {
		// The candidate may already be parked on an index that just
		// became loaded.
		s.visit(s.current)
		s.persist(ctx)
	}
	return added
}

func (s *Session) merge(batch []exam.Question) int {
	added := 0
	for _, q := range batch {
		if len(s.questions) >= s.cfg.TotalQuestions {
			break
		}
		if q.ID == "" || s.ids[q.ID] {
			continue
		}
		s.ids[q.ID] = true
		s.questions = append(s.questions, q)
		if _, ok := s.responses[q.ID]; !ok {
			s.responses[q.ID] = exam.NewResponseRecord(q.ID)
		}
		added++
	}
	return added
}

// visit marks the question at index as seen, creating the first
// NotVisited -> NotAnswered transition.
func (s *Session) visit(index int) {
	if index < 0 || index >= len(s.questions) {
		return
	}
	rec := s.responses[s.questions[index].ID]
	rec.Visited = true
	if rec.Status == exam.StatusNotVisited {
		rec.Status = exam.StatusNotAnswered
	}
}

func (s *Session) currentRecord() *exam.ResponseRecord {
	q, ok := s.Current()
	if !ok {
		return nil
	}
	return s.responses[q.ID]
}

// SelectOption records the candidate's choice for the current question.
// Out-of-range indexes are ignored.
func (s *Session) SelectOption(ctx context.Context, option int) {
	if s.Submitted() || option < 0 || option >= exam.OptionCount {
		return
	}
	rec := s.currentRecord()
	if rec == nil {
		return
	}
	rec.SelectedOption = option
	rec.Status = exam.StatusAnswered
	s.persist(ctx)
}

// MarkForReview flags the current question for a second look.
func (s *Session) MarkForReview(ctx context.Context) {
	if s.Submitted() {
		return
	}
	rec := s.currentRecord()
	if rec == nil {
		return
	}
	if rec.Attempted() {
		rec.Status = exam.StatusAnsweredAndMarked
	} else {
		rec.Status = exam.StatusMarkedForReview
	}
	s.persist(ctx)
}

// Skip clears the current question and moves on to the next one.
func (s *Session) Skip(ctx context.Context) {
	if s.Submitted() {
		return
	}
	rec := s.currentRecord()
	if rec == nil {
		return
	}
	rec.SelectedOption = exam.NoSelection
	rec.Status = exam.StatusNotAnswered
	if s.current+1 < s.cfg.TotalQuestions {
		s.Navigate(ctx, s.current+1)
		return
	}
	s.persist(ctx)
}

// ClearResponse drops the selection on the current question. The
// visited and bookmark flags are untouched.
func (s *Session) ClearResponse(ctx context.Context) {
	if s.Submitted() {
		return
	}
	rec := s.currentRecord()
	if rec == nil {
		return
	}
	rec.SelectedOption = exam.NoSelection
	rec.Status = exam.StatusNotAnswered
	s.persist(ctx)
}

// ToggleBookmark flips the bookmark on the current question,
// independent of answer status.
func (s *Session) ToggleBookmark(ctx context.Context) {
	rec := s.currentRecord()
	if rec == nil {
		return
	}
	rec.Bookmarked = !rec.Bookmarked
	s.persist(ctx)
}

// SetHint stores a fetched hint on the loaded question so later visits
// (and the persisted snapshot) reuse it. Returns the updated question,
// or false when the id is not in the loaded set.
func (s *Session) SetHint(questionID, hint string) (exam.Question, bool) {
	for i := range s.questions {
		if s.questions[i].ID == questionID {
			s.questions[i].Hint = hint
			return s.questions[i], true
		}
	}
	return exam.Question{}, false
}

// Navigate moves to index, clamped to the configured range. Moving to a
// not-yet-loaded index is allowed; the caller renders a placeholder.
func (s *Session) Navigate(ctx context.Context, index int) {
	if s.Submitted() {
		return
	}
	if index < 0 {
		index = 0
	}
	if max := s.cfg.TotalQuestions - 1; index > max {
		index = max
	}
	s.current = index
	s.visit(index)
	s.persist(ctx)
}

// Pause suspends the countdown and snapshot writes.
func (s *Session) Pause() {
	if !s.Submitted() {
		s.paused = true
	}
}

// Resume restarts the countdown and snapshot writes.
func (s *Session) Resume(ctx context.Context) {
	if s.Submitted() {
		return
	}
	s.paused = false
	s.persist(ctx)
}

// Tick advances the countdown by one second while running, charging the
// second to the current question. It reports whether the timer expired,
// in which case the session has been force-submitted.
func (s *Session) Tick(ctx context.Context) bool {
	if s.paused || s.Submitted() {
		return false
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if rec := s.currentRecord(); rec != nil {
		rec.TimeSpentSeconds++
	}
	if s.remaining <= 0 {
		s.Submit(ctx)
		return true
	}
	s.persist(ctx)
	return false
}

// Submit finalizes the attempt. The result is computed exactly once;
// repeated calls return the same result. The persisted snapshot is
// erased.
func (s *Session) Submit(ctx context.Context) *exam.TestResult {
	if s.result != nil {
		return s.result
	}
	elapsed := s.cfg.DurationMinutes*60 - s.remaining
	s.result = scoring.Compute(s.cfg, s.questions, s.responses, elapsed)
	if s.snapshots != nil {
		// Best effort; a failed delete only means a stale resume offer.
		_ = s.snapshots.Delete(ctx)
	}
	return s.result
}

// Abandon discards the attempt and erases the persisted snapshot.
func (s *Session) Abandon(ctx context.Context) {
	if s.snapshots != nil {
		_ = s.snapshots.Delete(ctx)
	}
}

// persist writes the snapshot unless paused or finished. Storage
// failures degrade to a missing resume offer and are not surfaced.
func (s *Session) persist(ctx context.Context) {
	if s.snapshots == nil || s.paused || s.Submitted() {
		return
	}
	_ = s.snapshots.Save(ctx, &store.SessionSnapshot{
		Config:           s.cfg,
		Questions:        s.questions,
		Responses:        s.responses,
		CurrentIndex:     s.current,
		RemainingSeconds: s.remaining,
		SavedAt:          time.Now().UTC(),
	})
}
