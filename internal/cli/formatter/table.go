package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Table is an aligned text table. Columns listed in RightAlign are padded
// on the left, which suits amounts.
type Table struct {
	Headers    []string
	Rows       [][]string
	RightAlign map[int]bool
}

// RenderTable renders a left-aligned table with a header separator line.
func RenderTable(headers []string, rows [][]string) string {
	return Table{Headers: headers, Rows: rows}.Render()
}

// Render draws the table. Widths are measured on visible characters so
// styled cells line up.
func (t Table) Render() string {
	cols := len(t.Headers)
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	header := make([]string, cols)
	for i, h := range t.Headers {
		header[i] = StyleHeader.Render(h)
	}
	t.writeRow(&b, header, widths)

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range t.Rows {
		t.writeRow(&b, row, widths)
	}
	return b.String()
}

func (t Table) writeRow(b *strings.Builder, row []string, widths []int) {
	last := len(widths) - 1
	for i := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		pad := widths[i] - lipgloss.Width(cell)
		if pad < 0 {
			pad = 0
		}
		if t.RightAlign[i] {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
		} else {
			b.WriteString(cell)
			if i < last {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		if i < last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}
