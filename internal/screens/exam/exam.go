package exam

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/nikhilr/prepmock/internal/contentgen"
	core "github.com/nikhilr/prepmock/internal/exam"
	"github.com/nikhilr/prepmock/internal/loader"
	"github.com/nikhilr/prepmock/internal/router"
	"github.com/nikhilr/prepmock/internal/screen"
	"github.com/nikhilr/prepmock/internal/screens/summary"
	sess "github.com/nikhilr/prepmock/internal/session"
	"github.com/nikhilr/prepmock/internal/store"
	"github.com/nikhilr/prepmock/internal/ui/layout"
)

// ExamScreen runs one timed test: it owns the session state machine and
// drives the progressive loader and the countdown.
type ExamScreen struct {
	adapter contentgen.Adapter
	st      *store.Store
	cfg     core.TestConfig
	snap    *store.SessionSnapshot

	session *sess.Session
	ldr     *loader.Loader

	cursor        int
	confirmSubmit bool
	confirmQuit   bool
	hints         map[string]string
	hintPending   bool
	fallbackAlert bool
	errMsg        string
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.StatusProvider = (*ExamScreen)(nil)

// New creates an exam screen for a fresh test.
func New(adapter contentgen.Adapter, st *store.Store, cfg core.TestConfig) *ExamScreen {
	return &ExamScreen{
		adapter: adapter,
		st:      st,
		cfg:     cfg,
		ldr:     loader.New(adapter, st.QuestionCache(), cfg),
		hints:   make(map[string]string),
	}
}

// Resume creates an exam screen continuing a persisted snapshot.
func Resume(adapter contentgen.Adapter, st *store.Store, snap *store.SessionSnapshot) *ExamScreen {
	s := New(adapter, st, snap.Config)
	s.snap = snap
	return s
}

func (s *ExamScreen) Init() tea.Cmd {
	return s.loadInitial()
}

func (s *ExamScreen) Title() string {
	return "Mock Test"
}

// HeaderStatus shows the countdown in the header.
func (s *ExamScreen) HeaderStatus() string {
	if s.session == nil {
		return ""
	}
	return "⏱ " + layout.FormatClock(s.session.Remaining())
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmSubmit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit"},
			{Key: "N", Description: "Keep going"},
		}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Discard test"},
			{Key: "N", Description: "Keep going"},
		}
	case s.session != nil && s.session.Paused():
		return []layout.KeyHint{{Key: "Space", Description: "Resume"}}
	default:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "←→", Description: "Move"},
			{Key: "m", Description: "Mark"},
			{Key: "x", Description: "Clear"},
			{Key: "h", Description: "Hint"},
			{Key: "S", Description: "Submit"},
		}
	}
}

// loadInitial produces the first batch (or replays the snapshot) off
// the UI thread.
func (s *ExamScreen) loadInitial() tea.Cmd {
	return func() tea.Msg {
		if s.snap != nil {
			return examReadyMsg{resume: true}
		}
		return examReadyMsg{batch: s.ldr.Fetch(context.Background())}
	}
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case examReadyMsg:
		return s.handleReady(msg)
	case batchLoadedMsg:
		return s.handleBatchLoaded(msg)
	case loaderTickMsg:
		return s, s.scheduleLoad()
	case timerTickMsg:
		return s.handleTimerTick()
	case hintReadyMsg:
		s.hints[msg.questionID] = msg.hint
		s.hintPending = false
		s.storeHint(msg.questionID, msg.hint)
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ExamScreen) handleReady(msg examReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.resume {
		s.session = sess.Restore(s.snap, s.st.SnapshotRepo())
		s.ldr.Seed(s.snap.Questions)
	} else {
		if len(msg.batch) == 0 {
			s.errMsg = "Could not prepare the test. Check your connection and API key, then try again."
			return s, nil
		}
		s.session = sess.New(s.cfg, msg.batch, s.st.SnapshotRepo())
		s.fallbackAlert = allFallback(msg.batch)
	}

	return s, tea.Batch(tickCmd(), s.scheduleLoad())
}

// allFallback reports whether every question came from the static set,
// which means the provider could not produce the opening batch.
func allFallback(batch []core.Question) bool {
	for _, q := range batch {
		if q.SourceTag != contentgen.SourceTagFallback {
			return false
		}
	}
	return len(batch) > 0
}

func (s *ExamScreen) handleBatchLoaded(msg batchLoadedMsg) (screen.Screen, tea.Cmd) {
	if s.session == nil || s.session.Submitted() {
		// The consumer is gone; discard the late batch.
		return s, nil
	}
	s.session.AddQuestions(context.Background(), msg.batch)
	if s.ldr.Done() {
		return s, nil
	}
	return s, tea.Tick(loader.BatchDelay, func(time.Time) tea.Msg {
		return loaderTickMsg{}
	})
}

// scheduleLoad starts a background fetch when the loader wants one.
func (s *ExamScreen) scheduleLoad() tea.Cmd {
	current := 0
	if s.session != nil {
		current = s.session.CurrentIndex()
	}
	if !s.ldr.NeedsFetch(current) {
		return nil
	}
	return func() tea.Msg {
		return batchLoadedMsg{batch: s.ldr.Fetch(context.Background())}
	}
}

func (s *ExamScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if s.session == nil || s.session.Submitted() {
		return s, nil
	}
	if expired := s.session.Tick(context.Background()); expired {
		return s.finish()
	}
	return s, tea.Batch(tickCmd(), s.scheduleLoad())
}

// finish saves the result and hands off to the summary screen.
func (s *ExamScreen) finish() (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	result := s.session.Submit(ctx)
	if s.st != nil {
		// A failed save only loses the history entry, not the summary.
		_ = s.st.ResultRepo().Save(ctx, result)
	}

	adapter := s.adapter
	questions := s.session.Questions()
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: summary.New(adapter, result, questions),
		}
	}
}

func (s *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	ctx := context.Background()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.session == nil {
		return s, nil
	}
	if s.fallbackAlert {
		s.fallbackAlert = false
		return s, nil
	}

	if s.confirmSubmit {
		switch key {
		case "y", "Y", "enter":
			s.confirmSubmit = false
			return s.finish()
		case "n", "N", "esc":
			s.confirmSubmit = false
		}
		return s, nil
	}
	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			s.session.Abandon(ctx)
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.session.Paused() {
		if key == "space" || key == " " {
			s.session.Resume(ctx)
		}
		return s, nil
	}

	switch key {
	case "1", "2", "3", "4":
		option := int(key[0] - '1')
		s.session.SelectOption(ctx, option)
		s.cursor = option
		return s, nil
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		return s, nil
	case "down", "j":
		if s.cursor < core.OptionCount-1 {
			s.cursor++
		}
		return s, nil
	case "enter":
		s.session.SelectOption(ctx, s.cursor)
		return s, nil
	case "left":
		s.navigate(ctx, s.session.CurrentIndex()-1)
		return s, nil
	case "right":
		s.navigate(ctx, s.session.CurrentIndex()+1)
		return s, s.scheduleLoad()
	case "m":
		s.session.MarkForReview(ctx)
		return s, nil
	case "x":
		s.session.ClearResponse(ctx)
		return s, nil
	case "b":
		s.session.ToggleBookmark(ctx)
		return s, nil
	case "s":
		s.session.Skip(ctx)
		s.syncCursor()
		return s, s.scheduleLoad()
	case "space", " ":
		s.session.Pause()
		return s, nil
	case "S":
		s.confirmSubmit = true
		return s, nil
	case "h":
		return s, s.requestHint()
	case "esc":
		s.confirmQuit = true
		return s, nil
	}

	return s, nil
}

func (s *ExamScreen) navigate(ctx context.Context, index int) {
	s.session.Navigate(ctx, index)
	s.syncCursor()
}

// syncCursor points the option cursor at the recorded selection of the
// question now in view.
func (s *ExamScreen) syncCursor() {
	s.cursor = 0
	q, ok := s.session.Current()
	if !ok {
		return
	}
	if rec := s.session.Response(q.ID); rec != nil && rec.Attempted() {
		s.cursor = rec.SelectedOption
	}
}

// storeHint memoizes a fetched hint on the question itself and writes
// it through to the cache, so a cached question arrives pre-hinted.
func (s *ExamScreen) storeHint(questionID, hint string) {
	if hint == "" || hint == contentgen.FallbackApology {
		// Apologies stay on screen for this run but are not remembered.
		return
	}
	q, ok := s.session.SetHint(questionID, hint)
	if !ok || s.st == nil {
		return
	}
	// A failed write only costs a refetch on the next run.
	_ = s.st.QuestionCache().Put(context.Background(), []core.Question{q})
}

// requestHint fetches a hint for the current question, memoized per id.
func (s *ExamScreen) requestHint() tea.Cmd {
	q, ok := s.session.Current()
	if !ok || s.hintPending {
		return nil
	}
	if _, done := s.hints[q.ID]; done {
		return nil
	}
	if q.Hint != "" {
		s.hints[q.ID] = q.Hint
		return nil
	}
	s.hintPending = true
	adapter := s.adapter
	return func() tea.Msg {
		return hintReadyMsg{questionID: q.ID, hint: adapter.GenerateHint(context.Background(), q)}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
