package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	core "github.com/nikhilr/prepmock/internal/exam"
	"github.com/nikhilr/prepmock/internal/ui/components"
	"github.com/nikhilr/prepmock/internal/ui/theme"
)

func (s *ExamScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return centered(width, height, theme.Incorrect.Render(s.errMsg))
	case s.session == nil:
		return centered(width, height, theme.Hint.Render("Preparing your test..."))
	case s.fallbackAlert:
		return s.renderFallbackAlert(width, height)
	case s.session.Paused():
		return s.renderPaused(width, height)
	case s.confirmSubmit:
		return s.renderConfirm(width, height, "Submit the test?",
			s.attemptSummary())
	case s.confirmQuit:
		return s.renderConfirm(width, height, "Discard this test?",
			"Your answers and saved progress will be erased.")
	}
	return s.renderQuestion(width, height)
}

func (s *ExamScreen) renderFallbackAlert(width, height int) string {
	msg := strings.Join([]string{
		"The question generator is unreachable, so this test uses the",
		"built-in practice set. It is much smaller than a real paper.",
		"",
		theme.Hint.Render("Press any key to continue."),
	}, "\n")
	return centered(width, height, theme.Card.Render(
		theme.Subtitle.Render("Offline mode")+"\n\n"+
			lipgloss.NewStyle().Foreground(theme.Text).Render(msg)))
}

func (s *ExamScreen) renderPaused(width, height int) string {
	body := theme.Title.Render("Paused") + "\n\n" +
		theme.Hint.Render("The clock is stopped. Press Space to resume.")
	return centered(width, height, theme.Card.Render(body))
}

func (s *ExamScreen) renderConfirm(width, height int, question, detail string) string {
	body := theme.Title.Render(question) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render(detail) + "\n\n" +
		theme.Hint.Render("Y to confirm, N to keep going")
	return centered(width, height, theme.Card.Render(body))
}

// attemptSummary is shown on the submit confirmation.
func (s *ExamScreen) attemptSummary() string {
	answered, marked := 0, 0
	for _, rec := range s.session.Responses() {
		if rec.Attempted() {
			answered++
		}
		if rec.Status == core.StatusMarkedForReview || rec.Status == core.StatusAnsweredAndMarked {
			marked++
		}
	}
	return fmt.Sprintf("Answered %d of %d questions (%d marked for review).",
		answered, s.session.Target(), marked)
}

func (s *ExamScreen) renderQuestion(width, height int) string {
	var b strings.Builder

	idx := s.session.CurrentIndex()
	q, loaded := s.session.Current()

	// Question header line.
	pos := fmt.Sprintf("Question %d / %d", idx+1, s.session.Target())
	var tag string
	if loaded {
		tag = fmt.Sprintf("%s · %s", q.Subject.Display(), q.Topic)
	}
	header := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(pos)
	if tag != "" {
		header += lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + tag)
	}
	b.WriteString(header + "\n\n")

	if !loaded {
		b.WriteString(theme.Hint.Render("Loading this question...") + "\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%d of %d questions ready.",
			s.session.Loaded(), s.session.Target())) + "\n\n")
	} else {
		prompt := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Width(min(width-4, 76)).
			Render(q.Prompt)
		b.WriteString(prompt + "\n\n")

		rec := s.session.Response(q.ID)
		selected := core.NoSelection
		if rec != nil {
			selected = rec.SelectedOption
		}
		options := components.OptionList{
			Options:    q.Options,
			Selected:   selected,
			Cursor:     s.cursor,
			ShowCursor: true,
		}
		b.WriteString(options.View())

		if rec != nil {
			var flags []string
			switch rec.Status {
			case core.StatusMarkedForReview, core.StatusAnsweredAndMarked:
				flags = append(flags, "marked for review")
			}
			if rec.Bookmarked {
				flags = append(flags, "bookmarked")
			}
			if len(flags) > 0 {
				b.WriteString(theme.Hint.Render("  "+strings.Join(flags, " · ")) + "\n")
			}
		}

		if hint, ok := s.hints[q.ID]; ok {
			b.WriteString("\n" + lipgloss.NewStyle().
				Foreground(theme.Accent).
				Width(min(width-4, 76)).
				Render("Hint: "+hint) + "\n")
		} else if s.hintPending {
			b.WriteString("\n" + theme.Hint.Render("Fetching a hint...") + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(s.renderPalette())

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (s *ExamScreen) renderPalette() string {
	target := s.session.Target()
	questions := s.session.Questions()

	cells := make([]components.PaletteCell, target)
	for i := range cells {
		if i >= len(questions) {
			continue
		}
		cell := components.PaletteCell{Loaded: true, Status: core.StatusNotVisited}
		if rec := s.session.Response(questions[i].ID); rec != nil {
			cell.Status = rec.Status
			cell.Bookmarked = rec.Bookmarked
		}
		cells[i] = cell
	}

	palette := components.NewPalette(cells, s.session.CurrentIndex())
	out := palette.View() + "\n\n" + components.Legend()

	if !s.ldr.Done() {
		out += "\n" + theme.Hint.Render(fmt.Sprintf("Loading questions in the background (%d/%d)...",
			s.session.Loaded(), target))
	}
	return out
}

func centered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
