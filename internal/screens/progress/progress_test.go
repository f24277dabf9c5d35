package progress

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/capability"
	learner "github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/tutor"
)

func newTestScreen(t *testing.T) (*ProgressScreen, *learner.Registry) {
	t.Helper()
	reg := learner.NewRegistry()
	orch := tutor.New(capability.Set{}, reg)
	return New(screen.Session{Tutor: orch, LearnerID: "tester", Language: "German"}), reg
}

func TestLoadShowsStats(t *testing.T) {
	p, reg := newTestScreen(t)
	ctx := context.Background()
	reg.Record(ctx, "tester", true)
	reg.Record(ctx, "tester", true)
	reg.Record(ctx, "tester", false)

	_, cmd := p.Update(p.Init()())
	if cmd == nil {
		t.Fatal("expected StatsMsg command")
	}
	if _, ok := cmd().(screen.StatsMsg); !ok {
		t.Error("expected StatsMsg")
	}

	if p.stats.Correct != 2 || p.stats.Total != 3 {
		t.Errorf("unexpected stats %+v", p.stats)
	}
	if p.stats.Level != learner.LevelIntermediate {
		t.Errorf("expected intermediate, got %s", p.stats.Level)
	}
	view := p.View(80, 24)
	if !strings.Contains(view, "INTERMEDIATE") {
		t.Error("expected level in view")
	}
	if !strings.Contains(view, "2 of 3") {
		t.Error("expected counts in view")
	}
}

func TestResetNeedsConfirmation(t *testing.T) {
	p, reg := newTestScreen(t)
	ctx := context.Background()
	reg.Record(ctx, "tester", true)
	p.Update(p.Init()())

	if _, cmd := p.Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd != nil {
		t.Error("expected no command before confirmation")
	}
	if !p.confirming {
		t.Fatal("expected confirmation prompt")
	}

	_, cmd := p.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if cmd == nil {
		t.Fatal("expected reset command")
	}
	p.Update(cmd())

	if p.stats.Total != 0 {
		t.Errorf("expected progress reset, got %+v", p.stats)
	}
	if got := reg.Stats(ctx, "tester").Total; got != 0 {
		t.Errorf("expected registry reset, got total %d", got)
	}
}

func TestResetCancelled(t *testing.T) {
	p, reg := newTestScreen(t)
	ctx := context.Background()
	reg.Record(ctx, "tester", true)
	p.Update(p.Init()())

	p.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	p.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})

	if p.confirming {
		t.Error("expected confirmation dismissed")
	}
	if got := reg.Stats(ctx, "tester").Total; got != 1 {
		t.Errorf("expected progress kept, got total %d", got)
	}
}

func TestEscPops(t *testing.T) {
	p, _ := newTestScreen(t)

	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
