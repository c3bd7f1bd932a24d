package components

import (
	"strings"
)

// Sparkline characters: U+2581 to U+2588
var sparkBars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline converts values to a unicode sparkline scaled from zero,
// so an all-zero series renders as a flat baseline
func RenderSparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}

	max := 0
	for _, v := range values {
		if v > max {
			max = v
		}
	}

	var sb strings.Builder
	for _, v := range values {
		idx := 0
		if max > 0 && v > 0 {
			idx = v * (len(sparkBars) - 1) / max
			if idx == 0 {
				idx = 1 // keep non-zero days visible
			}
		}
		sb.WriteRune(sparkBars[idx])
	}
	return sb.String()
}

// RenderSparklineWithWidth renders at most width bars, merging neighbouring
// values by sum when there are more values than columns
func RenderSparklineWithWidth(values []int, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) <= width {
		return RenderSparkline(values)
	}

	merged := make([]int, width)
	bucket := float64(len(values)) / float64(width)
	for i, v := range values {
		idx := int(float64(i) / bucket)
		if idx >= width {
			idx = width - 1
		}
		merged[idx] += v
	}
	return RenderSparkline(merged)
}

// RenderSparklineColored wraps a sparkline in tview color tags
func RenderSparklineColored(values []int, width int, color string) string {
	return "[" + color + "]" + RenderSparklineWithWidth(values, width) + "[-]"
}
