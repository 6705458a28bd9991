package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nikhilr/prepmock/internal/contentgen"
	"github.com/nikhilr/prepmock/internal/exam"
	"github.com/nikhilr/prepmock/internal/router"
	"github.com/nikhilr/prepmock/internal/screen"
	examscreen "github.com/nikhilr/prepmock/internal/screens/exam"
	"github.com/nikhilr/prepmock/internal/screens/instructions"
	"github.com/nikhilr/prepmock/internal/screens/setup"
	"github.com/nikhilr/prepmock/internal/session"
	"github.com/nikhilr/prepmock/internal/store"
	"github.com/nikhilr/prepmock/internal/ui/components"
	"github.com/nikhilr/prepmock/internal/ui/theme"
)

// Default test shapes. A full mock runs all three subjects; subject
// tests are shorter.
const (
	fullTestQuestions  = 30
	fullTestMinutes    = 30
	subjectQuestions   = 15
	subjectTestMinutes = 15
)

// HomeScreen is the dashboard: test selection plus past performance.
type HomeScreen struct {
	menu       components.Menu
	testsTaken int
	bestScore  float64
	hasHistory bool
	canResume  bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the dashboard. A recent snapshot adds a resume entry at
// the top of the menu.
func New(adapter contentgen.Adapter, st *store.Store) *HomeScreen {
	ctx := context.Background()

	h := &HomeScreen{}

	if st != nil {
		if results, err := st.ResultRepo().List(ctx, 50); err == nil && len(results) > 0 {
			h.hasHistory = true
			h.testsTaken = len(results)
			for _, r := range results {
				if r.Score > h.bestScore {
					h.bestScore = r.Score
				}
			}
		}
	}

	var snap *store.SessionSnapshot
	if st != nil {
		snap, _ = st.SnapshotRepo().Load(ctx, session.SnapshotMaxAge)
	}
	h.canResume = snap != nil

	var items []components.MenuItem
	if snap != nil {
		resumeSnap := snap
		items = append(items, components.MenuItem{
			Label: "RESUME LAST TEST",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: examscreen.Resume(adapter, st, resumeSnap),
					}
				}
			},
		})
	}

	items = append(items, components.MenuItem{
		Label:  "FULL MOCK TEST",
		Hint:   fmt.Sprintf("%d questions · %d min", fullTestQuestions, fullTestMinutes),
		Action: startAction(adapter, st, fullConfig()),
	})
	for _, sub := range exam.AllSubjects {
		sub := sub
		items = append(items, components.MenuItem{
			Label:  strings.ToUpper(sub.Display()) + " TEST",
			Hint:   fmt.Sprintf("%d questions · %d min", subjectQuestions, subjectTestMinutes),
			Action: startAction(adapter, st, subjectConfig(sub)),
		})
	}
	items = append(items, components.MenuItem{
		Label: "CUSTOM TEST",
		Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: setup.New(adapter, st),
				}
			}
		},
	})
	items = append(items, components.MenuItem{
		Label: "EXIT",
		Action: func() tea.Cmd {
			return tea.Quit
		},
	})

	h.menu = components.NewMenu(items)
	return h
}

func fullConfig() exam.TestConfig {
	return exam.TestConfig{
		Mode:            exam.ModeFull,
		TotalQuestions:  fullTestQuestions,
		DurationMinutes: fullTestMinutes,
		Subjects:        exam.AllSubjects,
	}
}

func subjectConfig(sub exam.Subject) exam.TestConfig {
	return exam.TestConfig{
		Mode:            exam.ModeSubject,
		TotalQuestions:  subjectQuestions,
		DurationMinutes: subjectTestMinutes,
		Subjects:        []exam.Subject{sub},
	}
}

func startAction(adapter contentgen.Adapter, st *store.Store, cfg exam.TestConfig) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{
				Screen: instructions.New(adapter, st, cfg),
			}
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := theme.Title.Width(width).Render("PREPMOCK")
	subtitle := theme.Subtitle.Width(width).Render("NEET mock exams in your terminal")
	sections = append(sections, title+"\n"+subtitle)

	if h.hasHistory {
		stats := fmt.Sprintf("Tests taken: %d        Best score: %.2f", h.testsTaken, h.bestScore)
		sections = append(sections, lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(stats))
	}
	if h.canResume {
		sections = append(sections, lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render("An unfinished test from the last 24 hours is available."))
	}

	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())
	sections = append(sections, menu)

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
