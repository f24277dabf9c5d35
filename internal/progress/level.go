package progress

import "fmt"

// Level is the difficulty band derived from a learner's grammar accuracy.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Thresholds are the accuracy cut-offs between levels. Both comparisons are
// strict: accuracy must exceed a threshold to reach its level.
type Thresholds struct {
	Advanced     float64
	Intermediate float64
}

// DefaultThresholds returns the standard cut-offs: above 0.8 is advanced,
// above 0.5 intermediate.
func DefaultThresholds() Thresholds {
	return Thresholds{Advanced: 0.8, Intermediate: 0.5}
}

// Validate checks 0 <= Intermediate <= Advanced <= 1. NaN never passes.
func (t Thresholds) Validate() error {
	if !(t.Intermediate >= 0 && t.Advanced <= 1 && t.Intermediate <= t.Advanced) {
		return fmt.Errorf("invalid level thresholds: intermediate %.2f, advanced %.2f", t.Intermediate, t.Advanced)
	}
	return nil
}

// LevelFor maps an accuracy in [0,1] to a Level.
func (t Thresholds) LevelFor(accuracy float64) Level {
	switch {
	case accuracy > t.Advanced:
		return LevelAdvanced
	case accuracy > t.Intermediate:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}
