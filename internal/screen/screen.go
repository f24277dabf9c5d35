package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/tutor"
	"github.com/abhisek/lingua/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatsMsg carries the learner's latest progress so the header can show it.
type StatsMsg struct {
	Stats progress.Stats
}

// Session is what every screen needs to talk to the tutor on behalf of one
// learner.
type Session struct {
	Tutor     *tutor.Orchestrator
	History   store.HistoryRepo
	LearnerID string
	Language  string
}

// Stats returns the learner's current progress.
func (s Session) Stats(ctx context.Context) progress.Stats {
	return s.Tutor.Progress().Stats(ctx, s.LearnerID)
}

// StatsCmd loads the learner's progress and reports it as a StatsMsg.
func (s Session) StatsCmd() tea.Cmd {
	return func() tea.Msg {
		return StatsMsg{Stats: s.Stats(context.Background())}
	}
}
