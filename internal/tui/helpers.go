package tui

import (
	"fmt"
	"strings"
)

// makeBar draws a fixed-width progress bar for a fraction in [0, 1].
func makeBar(value float64, width int) string {
	if value < 0 {
		value = 0
	}
	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// plural picks the singular or plural noun for n.
func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// changeSummary counts added and removed lines in a unified diff.
func changeSummary(diff string) string {
	var added, removed int
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return fmt.Sprintf("%d %s added, %d removed", added, plural(added, "line", "lines"), removed)
}
