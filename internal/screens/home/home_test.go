package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingua/internal/capability"
	learner "github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/router"
	"github.com/abhisek/lingua/internal/screen"
	"github.com/abhisek/lingua/internal/screens/chat"
	"github.com/abhisek/lingua/internal/tutor"
)

func newTestHome() (*HomeScreen, *learner.Registry) {
	reg := learner.NewRegistry()
	orch := tutor.New(capability.Set{}, reg)
	return New(screen.Session{Tutor: orch, LearnerID: "tester", Language: "German"}), reg
}

func TestInitLoadsStats(t *testing.T) {
	h, reg := newTestHome()
	reg.Record(context.Background(), "tester", true)

	h.Update(h.Init()())

	if h.stats.Total != 1 || h.stats.Level != learner.LevelAdvanced {
		t.Errorf("unexpected stats %+v", h.stats)
	}
	if !strings.Contains(h.View(100, 30), "ADVANCED") {
		t.Error("expected level in view")
	}
}

func TestEnterOpensChat(t *testing.T) {
	h, _ := newTestHome()

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*chat.ChatScreen); !ok {
		t.Errorf("expected chat screen, got %T", push.Screen)
	}
}

func TestHistoryDisabledWithoutStore(t *testing.T) {
	h, _ := newTestHome()

	// Move down past PROGRESS; HISTORY is disabled so the cursor lands on QUIT.
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	if got := h.menuLabels[h.menu.Selected]; got != "QUIT" {
		t.Errorf("expected QUIT selected, got %s", got)
	}
}

func TestHotkeyOpensProgress(t *testing.T) {
	h, _ := newTestHome()

	_, cmd := h.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	if cmd == nil {
		t.Fatal("expected command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if push.Screen.Title() != "Progress" {
		t.Errorf("expected progress screen, got %q", push.Screen.Title())
	}
}
