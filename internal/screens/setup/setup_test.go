package setup

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/nikhilr/prepmock/internal/exam"
	"github.com/nikhilr/prepmock/internal/router"
)

func typeDigits(s *SetupScreen, digits string) {
	for _, r := range digits {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestSetup_BuildsCustomConfig(t *testing.T) {
	s := New(nil, nil)

	typeDigits(s, "40")
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	typeDigits(s, "45")

	cfg, err := s.buildConfig()
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.Mode != exam.ModeCustom {
		t.Errorf("Mode = %v, want custom", cfg.Mode)
	}
	if cfg.TotalQuestions != 40 || cfg.DurationMinutes != 45 {
		t.Errorf("config = %d questions / %d minutes, want 40/45", cfg.TotalQuestions, cfg.DurationMinutes)
	}
	if len(cfg.Subjects) != len(exam.AllSubjects) {
		t.Errorf("all subjects should start selected, got %v", cfg.Subjects)
	}
}

func TestSetup_TopicSwitchesMode(t *testing.T) {
	s := New(nil, nil)
	typeDigits(s, "20")
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	typeDigits(s, "20")
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	for _, r := range "Optics" {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}

	cfg, err := s.buildConfig()
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.Mode != exam.ModeTopic || cfg.Topic != "Optics" {
		t.Errorf("Mode/Topic = %v/%q, want topic/Optics", cfg.Mode, cfg.Topic)
	}
}

func TestSetup_RejectsOutOfRangeCount(t *testing.T) {
	s := New(nil, nil)
	typeDigits(s, "300")
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	typeDigits(s, "30")

	if _, err := s.buildConfig(); err == nil {
		t.Fatal("expected an error for 300 questions")
	}

	// The error shows up in the view after Enter.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(80, 24), "question count") {
		t.Error("validation message should be rendered")
	}
}

func TestSetup_RejectsEmptySubjectSet(t *testing.T) {
	s := New(nil, nil)
	typeDigits(s, "20")
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	typeDigits(s, "20")

	// Move to the subjects row and untick all three.
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	for _, r := range "123" {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}

	if _, err := s.buildConfig(); err == nil {
		t.Fatal("expected an error with no subjects selected")
	}
}

func TestSetup_SubjectToggleRoundTrip(t *testing.T) {
	s := New(nil, nil)
	s.focus = fieldSubjects

	s.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if s.selected[exam.SubjectChemistry] {
		t.Error("2 should untick chemistry")
	}
	s.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if !s.selected[exam.SubjectChemistry] {
		t.Error("2 again should tick chemistry back")
	}
}

func TestSetup_EscapePops(t *testing.T) {
	s := New(nil, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("Esc should pop back to home")
	}
}
