package pdftext

import (
	"bytes"
	"strings"
	"unicode"
)

// decodeStream walks PDF content-stream operators and rebuilds text.
// Text-showing operators (Tj, TJ, ') contribute characters; positioning
// operators (Td, TD, T*) become line breaks so that line-leading markers
// survive into the extracted text.
func decodeStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, lit := range stringLiterals(line) {
				sb.WriteString(decodeLiteral(lit))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, lit := range stringLiterals(line) {
				sb.WriteByte('\n')
				sb.WriteString(decodeLiteral(lit))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")),
			bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return tidy(sb.String())
}

// stringLiterals extracts the contents of (...) literals on one stream line.
func stringLiterals(line []byte) [][]byte {
	var out [][]byte
	for i := 0; i < len(line); i++ {
		if line[i] != '(' {
			continue
		}
		depth := 1
		j := i + 1
		for ; j < len(line) && depth > 0; j++ {
			switch line[j] {
			case '\\':
				j++ // skip escaped char
			case '(':
				depth++
			case ')':
				depth--
			}
		}
		if depth == 0 {
			out = append(out, line[i+1:j-1])
		}
		i = j - 1
	}
	return out
}

// decodeLiteral handles PDF string escape sequences, including octal.
func decodeLiteral(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for k := 0; k < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; k++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

// tidy collapses runs of spaces and drops non-printable runes while
// keeping newlines, then trims blank lines at either end.
func tidy(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var sb strings.Builder
	prevSpace := false
	prevNL := true
	for _, r := range text {
		switch {
		case r == '\n':
			if !prevNL {
				sb.WriteByte('\n')
				prevNL = true
				prevSpace = false
			}
		case unicode.IsSpace(r):
			if !prevSpace && !prevNL {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
			prevNL = false
		}
	}
	return strings.TrimSpace(sb.String())
}
