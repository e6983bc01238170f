// Package subtitle converts SRT-style subtitle text into transcript text.
package subtitle

import "strings"

// rangeSeparator marks a time-range line inside a subtitle block.
const rangeSeparator = "-->"

// Parse renders subtitle text as transcript text. When includeTimestamps is
// set, each block becomes a "[start] text" paragraph separated by blank
// lines; otherwise all text lines are joined with single spaces. Range lines
// are not validated beyond containing the separator token.
func Parse(text string, includeTimestamps bool) string {
	var out strings.Builder
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if includeTimestamps {
			out.WriteString(strings.TrimSpace(current.String()))
			out.WriteString("\n\n")
		} else {
			out.WriteString(current.String())
		}
		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isIndexLine(trimmed) {
			continue
		}

		if strings.Contains(trimmed, rangeSeparator) {
			flush()
			if includeTimestamps {
				start := strings.TrimSpace(strings.SplitN(trimmed, rangeSeparator, 2)[0])
				out.WriteString("[" + start + "] ")
			}
			continue
		}

		current.WriteString(trimmed)
		current.WriteString(" ")
	}

	flush()
	return strings.TrimSpace(out.String())
}

// isIndexLine reports whether line is a bare block sequence number.
func isIndexLine(line string) bool {
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
