package report

import (
	"fmt"
	"strings"

	"github.com/abhisek/lingoloop/internal/ui/theme"
)

// Bar renders pct (0..100) as a fixed-width bar followed by the value.
func Bar(pct float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(float64(width) * pct / 100)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return theme.BarFilled.Render(strings.Repeat("█", filled)) +
		theme.BarEmpty.Render(strings.Repeat("░", width-filled)) +
		theme.Label.Render(fmt.Sprintf(" %3.0f%%", pct))
}
