package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var sparkRunes = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// renderSparkline draws the most recent width values as a one line bar
// chart. A fixedMax of zero scales to the largest visible value.
func renderSparkline(values []float64, width int, color lipgloss.Color, fixedMax float64) string {
	width = max(width, 1)
	style := lipgloss.NewStyle().Foreground(color)
	if len(values) == 0 {
		return styleColor(colorDim).Italic(true).Render("Collecting data...")
	}

	if len(values) > width {
		values = values[len(values)-width:]
	}

	scale := fixedMax
	if scale <= 0 {
		for _, v := range values {
			scale = max(scale, v)
		}
	}

	var b strings.Builder
	for _, v := range values {
		var level float64
		if scale > 0 {
			level = min(max(v/scale, 0), 1)
		}
		b.WriteRune(sparkRune(level))
	}
	if pad := width - len(values); pad > 0 {
		return strings.Repeat(" ", pad) + style.Render(b.String())
	}
	return style.Render(b.String())
}

// sparkRune maps a level in [0, 1] to a bar height.
func sparkRune(level float64) rune {
	idx := int(level * float64(len(sparkRunes)-1))
	return sparkRunes[min(max(idx, 0), len(sparkRunes)-1)]
}
