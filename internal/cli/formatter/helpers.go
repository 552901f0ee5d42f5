package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RenderPointsBar renders plan point usage like [████░░░░] 6/10.
// It turns yellow above 80% and red when the budget is exhausted.
func RenderPointsBar(used, budget, width int) string {
	if width < 2 {
		width = 2
	}
	filled := 0
	if budget > 0 {
		filled = used * width / budget
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	style := StyleGreen
	switch {
	case budget > 0 && used >= budget:
		style = StyleRed
	case budget > 0 && used*5 > budget*4:
		style = StyleYellow
	}

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), used, budget)
}

// HumanDate returns "Hoy", "Ayer" or a dd/mm/yyyy date.
func HumanDate(t time.Time) string {
	return HumanDateFrom(t, time.Now())
}

// HumanDateFrom is HumanDate relative to now.
func HumanDateFrom(t, now time.Time) string {
	t = t.In(now.Location())
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Hoy"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Ayer"
	}
	return t.Format("02/01/2006")
}

// Truncate shortens s to max visible characters, ending with "…".
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
