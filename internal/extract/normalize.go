package extract

import "strings"

// Normalize collapses every embedded line-break marker (<br>, <br/>,
// <br />, any case) into a single space. Total over any input and
// idempotent: no marker survives one pass, and nothing else changes.
func Normalize(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		if n, ok := matchBreakMarker(s[i:]); ok {
			sb.WriteByte(' ')
			i += n
			continue
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}

// matchBreakMarker reports whether s starts with a line-break marker:
// '<' 'b' 'r' space* '/'? '>' (letters case-insensitive). Returns the
// marker length when it matches.
func matchBreakMarker(s string) (int, bool) {
	if len(s) < 4 || s[0] != '<' {
		return 0, false
	}
	if s[1] != 'b' && s[1] != 'B' {
		return 0, false
	}
	if s[2] != 'r' && s[2] != 'R' {
		return 0, false
	}
	i := 3
	for i < len(s) && s[i] == ' ' {
		i++
	}
	if i < len(s) && s[i] == '/' {
		i++
	}
	if i < len(s) && s[i] == '>' {
		return i + 1, true
	}
	return 0, false
}
