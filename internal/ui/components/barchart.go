package components

import (
	"fmt"
	"strings"

	"github.com/audi70r/ghprofile/internal/stats"
)

// Bar intensity colors for tview, low to high
var barColors = []string{"gray", "blue", "green", "yellow", "red"}

// RenderBarChart draws one horizontal bar per point. Bars are scaled so the
// largest count fills width cells; any non-zero count gets at least one cell.
func RenderBarChart(series stats.Series, width int) string {
	if len(series) == 0 {
		return ""
	}
	if width < 1 {
		width = 1
	}

	labelWidth := 0
	for _, label := range series.Labels() {
		if len(label) > labelWidth {
			labelWidth = len(label)
		}
	}
	maxCount := series.Max()

	var sb strings.Builder
	for _, p := range series {
		cells := barCells(p.Count, maxCount, width)
		color := barColor(p.Count, maxCount)

		sb.WriteString(fmt.Sprintf("[yellow]%-*s[-] │", labelWidth, p.Label))
		sb.WriteString(fmt.Sprintf("[%s]%s[-]", color, strings.Repeat("█", cells)))
		sb.WriteString(fmt.Sprintf(" %d\n", p.Count))
	}
	return sb.String()
}

func barCells(count, maxCount, width int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	cells := count * width / maxCount
	if cells == 0 {
		cells = 1
	}
	return cells
}

func barColor(count, maxCount int) string {
	if count <= 0 || maxCount <= 0 {
		return barColors[0]
	}
	intensity := count * (len(barColors) - 1) / maxCount
	if intensity < 1 {
		intensity = 1
	}
	return barColors[intensity]
}
