// Package instructions shows the exam rules before a test starts. The
// timer does not run until the candidate acknowledges them.
package instructions

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nikhilr/prepmock/internal/contentgen"
	"github.com/nikhilr/prepmock/internal/exam"
	"github.com/nikhilr/prepmock/internal/router"
	"github.com/nikhilr/prepmock/internal/screen"
	examscreen "github.com/nikhilr/prepmock/internal/screens/exam"
	"github.com/nikhilr/prepmock/internal/store"
	"github.com/nikhilr/prepmock/internal/ui/layout"
	"github.com/nikhilr/prepmock/internal/ui/theme"
)

// InstructionsScreen displays the marking scheme and controls.
type InstructionsScreen struct {
	adapter contentgen.Adapter
	st      *store.Store
	cfg     exam.TestConfig
}

var _ screen.Screen = (*InstructionsScreen)(nil)
var _ screen.KeyHintProvider = (*InstructionsScreen)(nil)

// New creates the instructions screen for one configuration.
func New(adapter contentgen.Adapter, st *store.Store, cfg exam.TestConfig) *InstructionsScreen {
	return &InstructionsScreen{adapter: adapter, st: st, cfg: cfg}
}

func (s *InstructionsScreen) Init() tea.Cmd {
	return nil
}

func (s *InstructionsScreen) Title() string {
	return "Instructions"
}

func (s *InstructionsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Begin test"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *InstructionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter":
		adapter, st, cfg := s.adapter, s.st, s.cfg
		return s, func() tea.Msg {
			// Replace so finishing the exam pops straight back home.
			return router.ReplaceScreenMsg{
				Screen: examscreen.New(adapter, st, cfg),
			}
		}
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *InstructionsScreen) View(width, height int) string {
	var subjects []string
	for _, sub := range s.cfg.Subjects {
		subjects = append(subjects, sub.Display())
	}

	heading := theme.Title.Width(width).Render("Before you begin")

	body := strings.Join([]string{
		fmt.Sprintf("Questions: %d        Duration: %d minutes", s.cfg.TotalQuestions, s.cfg.DurationMinutes),
		fmt.Sprintf("Subjects: %s", strings.Join(subjects, ", ")),
		"",
		"Marking: +1 for a correct answer, -1/3 for a wrong one.",
		"Unattempted questions score nothing.",
		"",
		"1-4        choose an option",
		"← →        previous / next question",
		"m          mark for review        x   clear response",
		"b          bookmark               h   request a hint",
		"space      pause / resume         S   submit the test",
		"",
		"Questions keep loading in the background while you work.",
		"Your progress is saved; an interrupted test can be resumed",
		"within 24 hours.",
	}, "\n")

	card := theme.Card.Render(lipgloss.NewStyle().Foreground(theme.Text).Render(body))
	content := heading + "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
