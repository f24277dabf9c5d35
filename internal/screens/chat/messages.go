package chat

import (
	"time"

	"github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/tutor"
)

// transcriptLoadedMsg carries the learner's saved conversation.
type transcriptLoadedMsg struct {
	Entries []store.HistoryEntry
	Err     error
}

// turnDoneMsg is sent when the tutor has answered a message.
type turnDoneMsg struct {
	Turn  tutor.Turn
	Stats progress.Stats
	Err   error
}

// spinnerTickMsg animates the thinking indicator.
type spinnerTickMsg time.Time
