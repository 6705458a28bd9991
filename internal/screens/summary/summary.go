// Package summary shows the result of a finished test: score and
// subject breakdown, an AI performance review, question-by-question
// review with doubt answering, and revision flashcards for weak topics.
package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nikhilr/prepmock/internal/contentgen"
	core "github.com/nikhilr/prepmock/internal/exam"
	"github.com/nikhilr/prepmock/internal/router"
	"github.com/nikhilr/prepmock/internal/screen"
	"github.com/nikhilr/prepmock/internal/scoring"
	"github.com/nikhilr/prepmock/internal/ui/components"
	"github.com/nikhilr/prepmock/internal/ui/layout"
	"github.com/nikhilr/prepmock/internal/ui/theme"
)

type tab int

const (
	tabOverview tab = iota
	tabReview
	tabFlashcards
)

// SummaryScreen displays the post-test analysis dashboard.
type SummaryScreen struct {
	adapter   contentgen.Adapter
	result    *core.TestResult
	questions []core.Question
	stats     []core.SubjectStat

	tab    tab
	filter scoring.ReviewFilter

	// Review navigation over the filtered set.
	filtered  []core.Question
	reviewIdx int

	analysis        *core.Analysis
	analysisPending bool

	flashcards        []core.Flashcard
	flashcardIdx      int
	flashcardFlipped  bool
	flashcardsPending bool
	flashcardsLoaded  bool

	doubtInput  components.TextInput
	doubtActive bool
	doubtAnswer string
	doubtBusy   bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

type analysisReadyMsg struct{ analysis core.Analysis }

type flashcardsReadyMsg struct{ cards []core.Flashcard }

type doubtReadyMsg struct{ answer string }

// New creates the summary screen for a finished result.
func New(adapter contentgen.Adapter, result *core.TestResult, questions []core.Question) *SummaryScreen {
	s := &SummaryScreen{
		adapter:   adapter,
		result:    result,
		questions: questions,
		stats:     scoring.SubjectStats(questions, result.Responses),
	}
	s.applyFilter(scoring.ReviewAll)
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return s.requestAnalysis()
}

func (s *SummaryScreen) Title() string {
	return "Result"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	if s.doubtActive {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Ask"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	switch s.tab {
	case tabReview:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next view"},
			{Key: "←→", Description: "Question"},
			{Key: "a/i/s", Description: "Filter"},
			{Key: "d", Description: "Ask a doubt"},
			{Key: "Esc", Description: "Home"},
		}
	case tabFlashcards:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next view"},
			{Key: "←→", Description: "Card"},
			{Key: "Enter", Description: "Flip"},
			{Key: "Esc", Description: "Home"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next view"},
			{Key: "Esc", Description: "Home"},
		}
	}
}

func (s *SummaryScreen) requestAnalysis() tea.Cmd {
	if s.analysis != nil || s.analysisPending {
		return nil
	}
	s.analysisPending = true
	adapter, result, stats := s.adapter, s.result, s.stats
	return func() tea.Msg {
		return analysisReadyMsg{analysis: adapter.AnalyzePerformance(context.Background(), result, stats)}
	}
}

func (s *SummaryScreen) requestFlashcards() tea.Cmd {
	if s.flashcardsLoaded || s.flashcardsPending {
		return nil
	}
	topics := s.weakTopics()
	if len(topics) == 0 {
		s.flashcardsLoaded = true
		return nil
	}
	s.flashcardsPending = true
	adapter := s.adapter
	return func() tea.Msg {
		return flashcardsReadyMsg{cards: adapter.GenerateFlashcards(context.Background(), topics)}
	}
}

// weakTopics collects topics of wrongly answered questions, deduped.
func (s *SummaryScreen) weakTopics() []string {
	seen := make(map[string]bool)
	var topics []string
	for _, q := range s.questions {
		rec, ok := s.result.Responses[q.ID]
		if !ok || !rec.Attempted() || rec.SelectedOption == q.AnswerIndex {
			continue
		}
		if q.Topic == "" || seen[q.Topic] {
			continue
		}
		seen[q.Topic] = true
		topics = append(topics, q.Topic)
	}
	return topics
}

func (s *SummaryScreen) applyFilter(f scoring.ReviewFilter) {
	s.filter = f
	s.filtered = scoring.FilterQuestions(s.questions, s.result.Responses, f)
	s.reviewIdx = 0
	s.doubtAnswer = ""
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case analysisReadyMsg:
		a := msg.analysis
		s.analysis = &a
		s.analysisPending = false
		return s, nil

	case flashcardsReadyMsg:
		s.flashcards = msg.cards
		s.flashcardsPending = false
		s.flashcardsLoaded = true
		return s, nil

	case doubtReadyMsg:
		s.doubtAnswer = msg.answer
		s.doubtBusy = false
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.doubtActive {
		var cmd tea.Cmd
		s.doubtInput, cmd = s.doubtInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SummaryScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.doubtActive {
		switch key {
		case "enter":
			return s.askDoubt()
		case "esc":
			s.doubtActive = false
			return s, nil
		}
		var cmd tea.Cmd
		s.doubtInput, cmd = s.doubtInput.Update(msg)
		return s, cmd
	}

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab":
		s.tab = (s.tab + 1) % 3
		if s.tab == tabFlashcards {
			return s, s.requestFlashcards()
		}
		return s, nil
	}

	switch s.tab {
	case tabReview:
		return s.handleReviewKey(key)
	case tabFlashcards:
		return s.handleFlashcardKey(key)
	}
	return s, nil
}

func (s *SummaryScreen) handleReviewKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "left":
		if s.reviewIdx > 0 {
			s.reviewIdx--
			s.doubtAnswer = ""
		}
	case "right":
		if s.reviewIdx < len(s.filtered)-1 {
			s.reviewIdx++
			s.doubtAnswer = ""
		}
	case "a":
		s.applyFilter(scoring.ReviewAll)
	case "i":
		s.applyFilter(scoring.ReviewIncorrect)
	case "s":
		s.applyFilter(scoring.ReviewSkipped)
	case "d":
		if len(s.filtered) > 0 && !s.doubtBusy {
			s.doubtInput = components.NewTextInput("Ask about this question...", false, 120)
			s.doubtActive = true
			return s, s.doubtInput.Init()
		}
	}
	return s, nil
}

func (s *SummaryScreen) handleFlashcardKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "left":
		if s.flashcardIdx > 0 {
			s.flashcardIdx--
			s.flashcardFlipped = false
		}
	case "right":
		if s.flashcardIdx < len(s.flashcards)-1 {
			s.flashcardIdx++
			s.flashcardFlipped = false
		}
	case "enter", "space", " ":
		s.flashcardFlipped = !s.flashcardFlipped
	}
	return s, nil
}

func (s *SummaryScreen) askDoubt() (screen.Screen, tea.Cmd) {
	text := strings.TrimSpace(s.doubtInput.Value())
	s.doubtActive = false
	if text == "" || s.reviewIdx >= len(s.filtered) {
		return s, nil
	}
	s.doubtBusy = true
	q := s.filtered[s.reviewIdx]
	adapter := s.adapter
	return s, func() tea.Msg {
		return doubtReadyMsg{answer: adapter.AnswerDoubt(context.Background(), q, text)}
	}
}

func (s *SummaryScreen) View(width, height int) string {
	var body string
	switch s.tab {
	case tabReview:
		body = s.viewReview(width)
	case tabFlashcards:
		body = s.viewFlashcards(width)
	default:
		body = s.viewOverview(width)
	}

	tabs := s.viewTabs(width)
	return lipgloss.NewStyle().Padding(1, 2).Render(tabs + "\n\n" + body)
}

func (s *SummaryScreen) viewTabs(width int) string {
	labels := []string{"Overview", "Review", "Flashcards"}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if tab(i) == s.tab {
			parts[i] = theme.Selected.Render("[ " + l + " ]")
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + l + "  ")
		}
	}
	return strings.Join(parts, "  ")
}

func (s *SummaryScreen) viewOverview(width int) string {
	r := s.result
	var b strings.Builder

	b.WriteString(theme.Title.Render("Test complete!") + "\n\n")

	mins := r.ElapsedSeconds / 60
	secs := r.ElapsedSeconds % 60
	b.WriteString(fmt.Sprintf("Score: %.2f        Accuracy: %.2f%%        Time: %d:%02d\n",
		r.Score, r.Accuracy, mins, secs))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Attempted %d of %d · %d correct · %d wrong",
			r.Attempted, r.TotalQuestions, r.Correct, r.Wrong)) + "\n\n")

	// Subject bars.
	for _, st := range s.stats {
		pct := 0.0
		if st.Attempted > 0 {
			pct = float64(st.Correct) / float64(st.Attempted)
		}
		bar := components.NewProgressBar(
			fmt.Sprintf("%-10s", st.Subject.Display()), pct, true, min(width-8, 50))
		b.WriteString(bar.View() + "\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("            %d/%d attempted, %d correct",
				st.Attempted, st.Total, st.Correct)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(s.viewAnalysis(width))
	return b.String()
}

func (s *SummaryScreen) viewAnalysis(width int) string {
	if s.analysisPending {
		return theme.Hint.Render("Reviewing your performance...")
	}
	if s.analysis == nil {
		return ""
	}

	wrap := lipgloss.NewStyle().Foreground(theme.Text).Width(min(width-8, 72))
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Performance review") + "\n")
	b.WriteString(wrap.Render(s.analysis.Summary) + "\n")

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Secondary).Render(title) + "\n")
		for _, item := range items {
			b.WriteString(wrap.Render("  · "+item) + "\n")
		}
	}
	section("Strengths", s.analysis.Strengths)
	section("Weaknesses", s.analysis.Weaknesses)
	section("Suggestions", s.analysis.Suggestions)
	return b.String()
}

func (s *SummaryScreen) viewReview(width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Filter: %s (%d questions)", s.filter.Title(), len(s.filtered))) + "\n\n")

	if len(s.filtered) == 0 {
		b.WriteString(theme.Hint.Render("Nothing to review under this filter."))
		return b.String()
	}

	q := s.filtered[s.reviewIdx]
	rec := s.result.Responses[q.ID]

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(
		fmt.Sprintf("%d / %d", s.reviewIdx+1, len(s.filtered))))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("    %s · %s", q.Subject.Display(), q.Topic)) + "\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Width(min(width-4, 76)).Render(q.Prompt) + "\n\n")

	selected := core.NoSelection
	if rec != nil {
		selected = rec.SelectedOption
	}
	options := components.OptionList{
		Options:    q.Options,
		Selected:   selected,
		Review:     true,
		CorrectIdx: q.AnswerIndex,
	}
	b.WriteString(options.View() + "\n")

	if q.Explanation != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
			Width(min(width-4, 76)).Render("Explanation: "+q.Explanation) + "\n")
	}

	if s.doubtActive {
		b.WriteString("\n" + s.doubtInput.View() + "\n")
	} else if s.doubtBusy {
		b.WriteString("\n" + theme.Hint.Render("Thinking about your doubt...") + "\n")
	} else if s.doubtAnswer != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).
			Width(min(width-4, 76)).Render(s.doubtAnswer) + "\n")
	}

	return b.String()
}

func (s *SummaryScreen) viewFlashcards(width int) string {
	if s.flashcardsPending {
		return theme.Hint.Render("Preparing flashcards for your weak topics...")
	}
	if len(s.flashcards) == 0 {
		return theme.Hint.Render("No flashcards. Either nothing went wrong, or the generator is offline.")
	}

	card := s.flashcards[s.flashcardIdx]
	face := card.Front
	label := "Q"
	if s.flashcardFlipped {
		face = card.Back
		label = "A"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Card %d / %d · %s", s.flashcardIdx+1, len(s.flashcards), card.Topic)) + "\n\n")
	b.WriteString(theme.Card.Width(min(width-8, 60)).Render(
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(label+": ") +
			lipgloss.NewStyle().Foreground(theme.Text).Render(face)))
	b.WriteString("\n\n" + theme.Hint.Render("Enter to flip."))
	return b.String()
}
