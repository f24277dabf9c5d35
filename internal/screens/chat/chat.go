package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/tutor"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

const (
	learnerPrefix = "You: "
	tutorPrefix   = "Teacher: "

	spinnerInterval = 120 * time.Millisecond
	charLimit       = 500
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type line struct {
	role tutor.Role
	text string
}

// ChatScreen is the conversation with the tutor.
type ChatScreen struct {
	sess    screen.Session
	input   components.TextInput
	lines   []line
	waiting bool
	frame   int
	// scroll is how many rendered rows the view is lifted from the bottom.
	scroll int
	errMsg string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates a ChatScreen for the session's learner.
func New(sess screen.Session) *ChatScreen {
	return &ChatScreen{
		sess:  sess,
		input: components.NewTextInput(fmt.Sprintf("Write in %s, or ask about grammar, words, translations...", sess.Language), charLimit),
	}
}

func (c *ChatScreen) Init() tea.Cmd {
	return tea.Batch(c.input.Init(), c.loadTranscript())
}

func (c *ChatScreen) Title() string {
	return "Chat"
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *ChatScreen) loadTranscript() tea.Cmd {
	if c.sess.History == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := c.sess.History.History(context.Background(), c.sess.LearnerID)
		return transcriptLoadedMsg{Entries: entries, Err: err}
	}
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case transcriptLoadedMsg:
		if msg.Err != nil {
			c.errMsg = msg.Err.Error()
			return c, nil
		}
		restored := make([]line, 0, len(msg.Entries))
		for _, e := range msg.Entries {
			restored = append(restored, parseEntry(e.Message))
		}
		c.lines = append(restored, c.lines...)
		return c, nil

	case turnDoneMsg:
		c.waiting = false
		if msg.Err != nil {
			c.errMsg = msg.Err.Error()
			return c, nil
		}
		c.errMsg = ""
		c.lines = append(c.lines, line{role: tutor.RoleAI, text: msg.Turn.Reply})
		c.scroll = 0
		stats := msg.Stats
		return c, func() tea.Msg { return screen.StatsMsg{Stats: stats} }

	case spinnerTickMsg:
		if !c.waiting {
			return c, nil
		}
		c.frame = (c.frame + 1) % len(spinnerFrames)
		return c, spinnerTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return c, c.submit()
		case "pgup":
			c.scroll += 5
			return c, nil
		case "pgdown":
			c.scroll -= 5
			if c.scroll < 0 {
				c.scroll = 0
			}
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ChatScreen) submit() tea.Cmd {
	text := c.input.Value()
	if text == "" || c.waiting {
		return nil
	}
	c.input.Reset()
	c.lines = append(c.lines, line{role: tutor.RoleHuman, text: text})
	c.waiting = true
	c.scroll = 0
	return tea.Batch(c.runTurn(text), spinnerTick())
}

// runTurn saves both sides of the exchange the same way the HTTP API does,
// so transcripts look identical whichever front end produced them.
func (c *ChatScreen) runTurn(text string) tea.Cmd {
	sess := c.sess
	return func() tea.Msg {
		if strings.TrimSpace(text) == "" {
			return turnDoneMsg{Err: tutor.ErrEmptyMessage}
		}
		ctx := context.Background()
		if sess.History != nil {
			if err := sess.History.SaveMessage(ctx, sess.LearnerID, learnerPrefix+text); err != nil {
				return turnDoneMsg{Err: err}
			}
		}
		turn, err := sess.Tutor.ProcessTurn(ctx, sess.LearnerID, text)
		if err != nil {
			return turnDoneMsg{Err: err}
		}
		if sess.History != nil {
			if err := sess.History.SaveMessage(ctx, sess.LearnerID, tutorPrefix+turn.Reply); err != nil {
				return turnDoneMsg{Err: err}
			}
		}
		return turnDoneMsg{Turn: turn, Stats: sess.Stats(ctx)}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func parseEntry(msg string) line {
	switch {
	case strings.HasPrefix(msg, tutorPrefix):
		return line{role: tutor.RoleAI, text: strings.TrimPrefix(msg, tutorPrefix)}
	case strings.HasPrefix(msg, learnerPrefix):
		return line{role: tutor.RoleHuman, text: strings.TrimPrefix(msg, learnerPrefix)}
	default:
		return line{role: tutor.RoleHuman, text: msg}
	}
}

func (c *ChatScreen) View(width, height int) string {
	cw := width - 4
	if cw < 20 {
		cw = 20
	}
	c.input.SetWidth(cw - 4)

	var footer []string
	if c.errMsg != "" {
		footer = append(footer, lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+c.errMsg))
	}
	if c.waiting {
		footer = append(footer, lipgloss.NewStyle().Foreground(theme.Accent).
			Render(spinnerFrames[c.frame]+" thinking..."))
	}
	footer = append(footer, c.input.View())
	bottom := strings.Join(footer, "\n")

	avail := height - lipgloss.Height(bottom) - 1
	if avail < 1 {
		avail = 1
	}

	rows := c.renderTranscript(cw)
	if len(rows) == 0 {
		rows = []string{theme.Hint.Render(fmt.Sprintf("Say hello in %s to get started.", c.sess.Language))}
	}

	maxScroll := len(rows) - avail
	if maxScroll < 0 {
		maxScroll = 0
	}
	if c.scroll > maxScroll {
		c.scroll = maxScroll
	}
	end := len(rows) - c.scroll
	start := end - avail
	if start < 0 {
		start = 0
	}
	visible := rows[start:end]

	pad := avail - len(visible)
	body := strings.Repeat("\n", pad) + strings.Join(visible, "\n")

	return lipgloss.NewStyle().PaddingLeft(2).Render(body + "\n\n" + bottom)
}

func (c *ChatScreen) renderTranscript(width int) []string {
	var rows []string
	for i, l := range c.lines {
		if i > 0 {
			rows = append(rows, "")
		}
		label := theme.LearnerLabel.Render("You")
		if l.role == tutor.RoleAI {
			label = theme.TutorLabel.Render("Teacher")
		}
		rows = append(rows, label)
		wrapped := theme.Bubble.Width(width).Render(l.text)
		rows = append(rows, strings.Split(wrapped, "\n")...)
	}
	return rows
}
