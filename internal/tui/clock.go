package tui

import (
	"fmt"
	"strings"
)

// 5-row block glyphs for the running activity clock
var clockGlyphs = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// clockText is HH:MM:SS once an hour has passed, MM:SS before that
func clockText(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// renderBigClock draws elapsed seconds with block glyphs
func renderBigClock(seconds int64) string {
	var rows [5]strings.Builder

	for n, r := range []rune(clockText(seconds)) {
		glyph := clockGlyphs[r]
		for i := range rows {
			if n > 0 {
				rows[i].WriteString(" ")
			}
			rows[i].WriteString(glyph[i])
		}
	}

	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}

// bigClockWidth is the rendered width of renderBigClock for the same input
func bigClockWidth(seconds int64) int {
	return len(clockText(seconds))*6 - 1
}
