// Package setup lets the candidate shape a custom test: question count,
// duration, subject set and an optional topic filter.
package setup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nikhilr/prepmock/internal/contentgen"
	"github.com/nikhilr/prepmock/internal/exam"
	"github.com/nikhilr/prepmock/internal/router"
	"github.com/nikhilr/prepmock/internal/screen"
	"github.com/nikhilr/prepmock/internal/screens/instructions"
	"github.com/nikhilr/prepmock/internal/store"
	"github.com/nikhilr/prepmock/internal/ui/components"
	"github.com/nikhilr/prepmock/internal/ui/layout"
	"github.com/nikhilr/prepmock/internal/ui/theme"
)

// Bounds for a custom test.
const (
	minQuestions = 5
	maxQuestions = 90
	minMinutes   = 5
	maxMinutes   = 180
)

type field int

const (
	fieldCount field = iota
	fieldMinutes
	fieldTopic
	fieldSubjects
)

// SetupScreen collects a custom TestConfig.
type SetupScreen struct {
	adapter contentgen.Adapter
	st      *store.Store

	focus    field
	count    components.TextInput
	minutes  components.TextInput
	topic    components.TextInput
	selected map[exam.Subject]bool
	errMsg   string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the custom test form with sensible defaults.
func New(adapter contentgen.Adapter, st *store.Store) *SetupScreen {
	s := &SetupScreen{
		adapter:  adapter,
		st:       st,
		count:    components.NewTextInput("30", true, 3),
		minutes:  components.NewTextInput("30", true, 3),
		topic:    components.NewTextInput("any topic", false, 60),
		selected: make(map[exam.Subject]bool),
	}
	for _, sub := range exam.AllSubjects {
		s.selected[sub] = true
	}
	s.minutes.Blur()
	s.topic.Blur()
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.count.Focus()
}

func (s *SetupScreen) Title() string {
	return "Custom Test"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
	if s.focus == fieldSubjects {
		hints = append([]layout.KeyHint{{Key: "1-3", Description: "Toggle subject"}}, hints...)
	}
	return hints
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, s.updateFocused(msg)
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "shift+tab":
		return s, s.setFocus(s.focus - 1)
	case "down", "tab":
		return s, s.setFocus(s.focus + 1)
	case "enter":
		return s.begin()
	}

	if s.focus == fieldSubjects {
		switch kmsg.String() {
		case "1", "2", "3":
			sub := exam.AllSubjects[kmsg.String()[0]-'1']
			s.selected[sub] = !s.selected[sub]
		}
		return s, nil
	}
	return s, s.updateFocused(msg)
}

func (s *SetupScreen) setFocus(f field) tea.Cmd {
	if f < fieldCount {
		f = fieldSubjects
	}
	if f > fieldSubjects {
		f = fieldCount
	}
	s.focus = f
	s.count.Blur()
	s.minutes.Blur()
	s.topic.Blur()
	switch f {
	case fieldCount:
		return s.count.Focus()
	case fieldMinutes:
		return s.minutes.Focus()
	case fieldTopic:
		return s.topic.Focus()
	}
	return nil
}

func (s *SetupScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldCount:
		s.count, cmd = s.count.Update(msg)
	case fieldMinutes:
		s.minutes, cmd = s.minutes.Update(msg)
	case fieldTopic:
		s.topic, cmd = s.topic.Update(msg)
	}
	return cmd
}

// begin validates the form and replaces this screen with the
// instructions for the assembled configuration.
func (s *SetupScreen) begin() (screen.Screen, tea.Cmd) {
	cfg, err := s.buildConfig()
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.errMsg = ""
	adapter, st := s.adapter, s.st
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: instructions.New(adapter, st, cfg),
		}
	}
}

func (s *SetupScreen) buildConfig() (exam.TestConfig, error) {
	var cfg exam.TestConfig

	count, err := s.count.NumericValue()
	if err != nil || count < minQuestions || count > maxQuestions {
		return cfg, fmt.Errorf("question count must be %d-%d", minQuestions, maxQuestions)
	}
	minutes, err := s.minutes.NumericValue()
	if err != nil || minutes < minMinutes || minutes > maxMinutes {
		return cfg, fmt.Errorf("duration must be %d-%d minutes", minMinutes, maxMinutes)
	}

	var subjects []exam.Subject
	for _, sub := range exam.AllSubjects {
		if s.selected[sub] {
			subjects = append(subjects, sub)
		}
	}
	if len(subjects) == 0 {
		return cfg, fmt.Errorf("pick at least one subject")
	}

	cfg = exam.TestConfig{
		Mode:            exam.ModeCustom,
		TotalQuestions:  count,
		DurationMinutes: minutes,
		Subjects:        subjects,
	}
	if topic := strings.TrimSpace(s.topic.Value()); topic != "" {
		cfg.Mode = exam.ModeTopic
		cfg.Topic = topic
	}
	return cfg, nil
}

func (s *SetupScreen) View(width, height int) string {
	label := func(f field, text string) string {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if s.focus == f {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		return style.Render(text)
	}

	var subjects []string
	for i, sub := range exam.AllSubjects {
		mark := "[ ]"
		if s.selected[sub] {
			mark = "[x]"
		}
		subjects = append(subjects, fmt.Sprintf("%d %s %s", i+1, mark, sub.Display()))
	}

	rows := []string{
		theme.Title.Render("Custom test"),
		"",
		label(fieldCount, "Questions") + "   " + s.count.View(),
		label(fieldMinutes, "Minutes  ") + "   " + s.minutes.View(),
		label(fieldTopic, "Topic    ") + "   " + s.topic.View(),
		label(fieldSubjects, "Subjects ") + "   " + strings.Join(subjects, "    "),
	}
	if s.errMsg != "" {
		rows = append(rows, "", theme.Incorrect.Render(s.errMsg))
	}

	card := theme.Card.Render(strings.Join(rows, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
