package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	learner "github.com/abhisek/lingua/internal/progress"
	"github.com/abhisek/lingua/internal/ui/theme"
)

const titleFull = ` ╦  ╦╔╗╔╔═╗╦ ╦╔═╗
 ║  ║║║║║ ╦║ ║╠═╣
 ╩═╝╩╝╚╝╚═╝╚═╝╩ ╩`

const titleCompact = "L · I · N · G · U · A"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(language string, cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	sub := theme.Hint.Render(fmt.Sprintf("your %s tutor", language))

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title) + "\n" + sub)
}

// renderStatsBar shows level and grammar accuracy in a bordered box.
func renderStatsBar(stats learner.Stats, cw int) string {
	levelStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	level := levelStyle.Render("▲ " + strings.ToUpper(string(stats.Level)))
	var acc string
	if stats.Total == 0 {
		acc = dimStyle.Render("NO CHECKS YET")
	} else {
		acc = accStyle.Render(fmt.Sprintf("%.0f%% OF %d CORRECT", stats.Accuracy*100, stats.Total))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(level + "  " + acc)
}

// renderMenu draws menu items as fixed-width buttons, or plain lines when
// compact.
func renderMenu(items []string, selected, cw int, disabled map[int]bool, compact bool) string {
	border := lipgloss.RoundedBorder()
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary)
	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text)
	disabledBtn := normalBtn.Foreground(theme.TextDim)

	if !compact {
		selectedBtn = selectedBtn.Border(border).BorderForeground(theme.Primary)
		normalBtn = normalBtn.Border(border).BorderForeground(theme.Border)
		disabledBtn = disabledBtn.Border(border).BorderForeground(theme.Border)
	}

	buttons := make([]string, 0, len(items))
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderFrame wraps content in a double border centered in the area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
