package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/capability"
	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/tutor"
	"github.com/abhisek/lingua/internal/ui/layout"
)

func newTestApp() AppModel {
	orch := tutor.New(capability.Set{}, nil)
	return newAppModel(screen.Session{Tutor: orch, LearnerID: "tester", Language: "German"})
}

func TestStatsMsgUpdatesHeader(t *testing.T) {
	m := newTestApp()
	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model, _ = model.Update(screen.StatsMsg{Stats: progress.Stats{Level: progress.LevelIntermediate}})

	got := model.(AppModel)
	if got.stats.Level != progress.LevelIntermediate {
		t.Errorf("expected intermediate, got %q", got.stats.Level)
	}
	header := layout.RenderHeader("Home", got.sess.Language, string(got.stats.Level), got.width)
	if !strings.Contains(header, "intermediate") || !strings.Contains(header, "German") {
		t.Error("expected language and level in header")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestApp()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestEscAtRootIsNoop(t *testing.T) {
	m := newTestApp()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("expected no command at the root screen")
	}
}

func TestEscPopsPushedScreen(t *testing.T) {
	m := newTestApp()
	m.router.Push(m.router.Active())

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
