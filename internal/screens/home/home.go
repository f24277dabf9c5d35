package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	learner "github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/chat"
	"github.com/abhisek/lingua/internal/screens/history"
	progressscreen "github.com/abhisek/lingua/internal/screens/progress"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	sess       screen.Session
	menu       components.Menu
	menuLabels []string
	stats      learner.Stats
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

// New creates a new HomeScreen.
func New(sess screen.Session) *HomeScreen {
	menuLabels := []string{"CHAT", "PROGRESS", "HISTORY", "QUIT"}

	open := func(s screen.Screen) tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Hotkey: "c", Action: func() tea.Cmd { return open(chat.New(sess)) }},
		{Label: menuLabels[1], Hotkey: "p", Action: func() tea.Cmd { return open(progressscreen.New(sess)) }},
		{Label: menuLabels[2], Hotkey: "h", Action: func() tea.Cmd { return open(history.New(sess)) }, Disabled: sess.History == nil},
		{Label: menuLabels[3], Hotkey: "q", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		sess:       sess,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.sess.StatsCmd()
}

// Refresh reloads stats when the home screen is revealed again.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.sess.StatsCmd()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if sm, ok := msg.(screen.StatsMsg); ok {
		h.stats = sm.Stats
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactWidth(width) || height < 22
	cw := contentWidth(width)

	disabled := make(map[int]bool)
	for i, item := range h.menu.Items {
		if item.Disabled {
			disabled[i] = true
		}
	}

	sections := []string{
		renderTitle(h.sess.Language, cw, compact),
		renderStatsBar(h.stats, cw),
		renderMenu(h.menuLabels, h.menu.Selected, cw, disabled, compact),
	}
	content := strings.Join(sections, "\n\n")

	return renderFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "c/p/h", Description: "Jump"},
		{Key: "q", Description: "Quit"},
	}
}
