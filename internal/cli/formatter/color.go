package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/selection"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the style of a proposal pipeline status. Unknown
// statuses are rendered plain.
func StatusStyle(status domain.ProposalStatus) lipgloss.Style {
	switch status {
	case domain.StatusWon:
		return StyleGreen
	case domain.StatusLost:
		return StyleRed
	case domain.StatusNegotiating:
		return StyleYellow
	case domain.StatusSent:
		return StyleBlue
	default:
		return StyleFg
	}
}

// IndicatorBadge renders the selection mode indicator such as "● Plan".
func IndicatorBadge(ind selection.Indicator) string {
	switch ind {
	case selection.IndicatorPackage:
		return StylePurple.Render("● " + string(ind))
	case selection.IndicatorPlan:
		return StyleBlue.Render("● " + string(ind))
	default:
		return StyleFg.Render("● " + string(ind))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
