package progress

import "sync"

// Stats is a point-in-time view of a Tracker.
type Stats struct {
	Correct  uint64
	Total    uint64
	Accuracy float64
	Level    Level
}

// Tracker counts judged attempts for one learner. Correct never exceeds
// Total. Safe for concurrent use.
type Tracker struct {
	mu         sync.Mutex
	correct    uint64
	total      uint64
	thresholds Thresholds
}

// NewTracker returns an empty tracker using t as its level cut-offs.
func NewTracker(t Thresholds) *Tracker {
	return &Tracker{thresholds: t}
}

// restore seeds counters loaded from a repository. Records violating
// correct <= total are clamped.
func (tr *Tracker) restore(correct, total uint64) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if correct > total {
		correct = total
	}
	tr.correct, tr.total = correct, total
}

// Update records one judged attempt.
func (tr *Tracker) Update(isCorrect bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.total++
	if isCorrect {
		tr.correct++
	}
}

// Level returns the learner's current level. With no attempts recorded the
// accuracy is 0 and the level is beginner.
func (tr *Tracker) Level() Level {
	return tr.Snapshot().Level
}

// Snapshot returns the counters, accuracy and level read atomically.
func (tr *Tracker) Snapshot() Stats {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	var acc float64
	if tr.total > 0 {
		acc = float64(tr.correct) / float64(tr.total)
	}
	return Stats{
		Correct:  tr.correct,
		Total:    tr.total,
		Accuracy: acc,
		Level:    tr.thresholds.LevelFor(acc),
	}
}
