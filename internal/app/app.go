package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/home"
	"github.com/abhisek/lingua/internal/screens/welcome"
	"github.com/abhisek/lingua/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	sess   screen.Session
	stats  progress.Stats
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(sess screen.Session) AppModel {
	homeFactory := func() screen.Screen { return home.New(sess) }
	return AppModel{
		router: router.New(welcome.New(sess.Language, homeFactory)),
		sess:   sess,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.sess.StatsCmd())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StatsMsg:
		// Keep the header current and let the active screen see it too.
		m.stats = msg.Stats

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.sess.Language, string(m.stats.Level), m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the interactive chat for one learner.
func Run(sess screen.Session) error {
	p := tea.NewProgram(newAppModel(sess))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
