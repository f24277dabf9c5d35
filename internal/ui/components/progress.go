package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/ui/theme"
)

// AccuracyMeter renders a learner's accuracy as a horizontal bar with tick
// marks under the level cut-offs.
type AccuracyMeter struct {
	Label    string
	Accuracy float64
	Marks    []float64
	Width    int
}

// NewAccuracyMeter creates a meter for accuracy in [0,1].
func NewAccuracyMeter(label string, accuracy float64, width int, marks ...float64) AccuracyMeter {
	return AccuracyMeter{
		Label:    label,
		Accuracy: clamp01(accuracy),
		Marks:    marks,
		Width:    width,
	}
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// cells returns the number of filled cells out of barWidth.
func (m AccuracyMeter) cells(barWidth int) int {
	return int(float64(barWidth) * m.Accuracy)
}

// View renders the bar on one line and the threshold ticks on the next.
func (m AccuracyMeter) View() string {
	label := ""
	if m.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label) + "  "
	}
	pad := lipgloss.Width(label)

	const percentWidth = 6 // "  100%"
	barWidth := max(m.Width-pad-percentWidth, 4)
	filled := m.cells(barWidth)

	bar := theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))
	percent := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d%%", int(m.Accuracy*100)))

	line := label + bar + percent
	if len(m.Marks) == 0 {
		return line
	}

	ticks := []rune(strings.Repeat(" ", barWidth))
	for _, mark := range m.Marks {
		i := int(float64(barWidth) * clamp01(mark))
		if i >= barWidth {
			i = barWidth - 1
		}
		ticks[i] = '^'
	}
	return line + "\n" + strings.Repeat(" ", pad) + theme.Hint.Render(string(ticks))
}
