package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

type historyLoadedMsg struct {
	Entries []store.HistoryEntry
	Err     error
}

// HistoryScreen lists the learner's saved chat transcript.
type HistoryScreen struct {
	sess       screen.Session
	entries    []store.HistoryEntry
	offset     int
	loaded     bool
	confirming bool
	errMsg     string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(sess screen.Session) *HistoryScreen {
	return &HistoryScreen{sess: sess}
}

func (s *HistoryScreen) Init() tea.Cmd {
	sess := s.sess
	return func() tea.Msg {
		entries, err := sess.History.History(context.Background(), sess.LearnerID)
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *HistoryScreen) clear() tea.Cmd {
	sess := s.sess
	return func() tea.Msg {
		if err := sess.History.ClearHistory(context.Background(), sess.LearnerID); err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Entries: []store.HistoryEntry{}}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "y", Description: "Confirm clear"},
			{Key: "n", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "c", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.entries = msg.Entries
		s.offset = 0
		return s, nil

	case tea.KeyMsg:
		if s.confirming {
			s.confirming = false
			if msg.String() == "y" {
				return s, s.clear()
			}
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
			return s, nil
		case "down", "j":
			if s.offset < len(s.entries)-1 {
				s.offset++
			}
			return s, nil
		case "c":
			if len(s.entries) > 0 {
				s.confirming = true
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No messages yet. Start a chat!")
	}

	var b strings.Builder
	b.WriteString("\n")
	rows := 1

	dateStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	for _, e := range s.entries[s.offset:] {
		if rows >= height-2 {
			break
		}
		msgStyle := theme.LearnerLabel
		if strings.HasPrefix(e.Message, "Teacher: ") {
			msgStyle = theme.TutorLabel
		}
		first, _, _ := strings.Cut(e.Message, "\n")
		line := fmt.Sprintf("  %s  %s",
			dateStyle.Render(e.Timestamp.Local().Format("Jan 02 15:04")),
			msgStyle.Render(truncate(first, width-20)))
		b.WriteString(line)
		b.WriteString("\n")
		rows++
	}

	if s.confirming {
		b.WriteString("\n  ")
		b.WriteString(theme.Warning.Render("Clear the whole transcript? (y/n)"))
	}

	return b.String()
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
