package progress

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	learner "github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

type statsLoadedMsg struct {
	Stats learner.Stats
	Err   error
}

// ProgressScreen shows grammar accuracy and the derived level.
type ProgressScreen struct {
	sess       screen.Session
	stats      learner.Stats
	loaded     bool
	confirming bool
	errMsg     string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a ProgressScreen.
func New(sess screen.Session) *ProgressScreen {
	return &ProgressScreen{sess: sess}
}

func (p *ProgressScreen) Init() tea.Cmd {
	return p.load()
}

func (p *ProgressScreen) Title() string {
	return "Progress"
}

func (p *ProgressScreen) KeyHints() []layout.KeyHint {
	if p.confirming {
		return []layout.KeyHint{
			{Key: "y", Description: "Confirm reset"},
			{Key: "n", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "r", Description: "Reset"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *ProgressScreen) load() tea.Cmd {
	sess := p.sess
	return func() tea.Msg {
		return statsLoadedMsg{Stats: sess.Stats(context.Background())}
	}
}

func (p *ProgressScreen) reset() tea.Cmd {
	sess := p.sess
	return func() tea.Msg {
		ctx := context.Background()
		if err := sess.Tutor.Progress().Reset(ctx, sess.LearnerID); err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Stats: sess.Stats(ctx)}
	}
}

func (p *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		p.loaded = true
		if msg.Err != nil {
			p.errMsg = msg.Err.Error()
			return p, nil
		}
		p.errMsg = ""
		p.stats = msg.Stats
		stats := msg.Stats
		return p, func() tea.Msg { return screen.StatsMsg{Stats: stats} }

	case tea.KeyMsg:
		if p.confirming {
			switch msg.String() {
			case "y":
				p.confirming = false
				return p, p.reset()
			default:
				p.confirming = false
				return p, nil
			}
		}
		switch msg.String() {
		case "r":
			p.confirming = true
			return p, nil
		case "esc":
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return p, nil
}

func (p *ProgressScreen) View(width, height int) string {
	if !p.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}

	cw := 50
	if width-8 < cw {
		cw = width - 8
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(fmt.Sprintf("Level: %s", strings.ToUpper(string(p.stats.Level)))))
	b.WriteString("\n\n")

	if p.stats.Total == 0 {
		b.WriteString(theme.Hint.Render("No grammar checks yet. Ask the tutor to check a sentence."))
	} else {
		b.WriteString(theme.Body.Render(fmt.Sprintf("Correct sentences:  %d of %d", p.stats.Correct, p.stats.Total)))
		b.WriteString("\n\n")
		th := p.sess.Tutor.Progress().Thresholds()
		b.WriteString(components.NewAccuracyMeter("Accuracy", p.stats.Accuracy, cw, th.Intermediate, th.Advanced).View())
	}

	if p.confirming {
		b.WriteString("\n\n")
		b.WriteString(theme.Warning.Render("Reset all progress? (y/n)"))
	}
	if p.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Error: " + p.errMsg))
	}

	card := theme.Card.Width(cw + 4).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
