package pdftext

import (
	"strings"
	"unicode"
)

// Quality captures metrics about how trustworthy an extraction is.
// Scanned or CIDFont-without-ToUnicode PDFs decode to sparse or garbled
// text; callers use Suspect to warn before parsing garbage.
type Quality struct {
	PageCount      int     `json:"page_count"`
	CharsPerPage   float64 `json:"chars_per_page"`
	PrintableRatio float64 `json:"printable_ratio"`
	WordlikeRatio  float64 `json:"wordlike_ratio"`
	HasImages      bool    `json:"has_images"`
}

// Suspect reports whether the extraction likely missed or mangled text:
// image-heavy documents with almost no text, or text dominated by
// unprintable runes.
func (q Quality) Suspect() bool {
	return (q.CharsPerPage < 50 && q.HasImages) || q.PrintableRatio < 0.85
}

// printableRatio is the share of printable runes, counting private-use
// and control characters (except \n\r\t) as garbage.
func printableRatio(text string) float64 {
	if text == "" {
		return 1.0
	}
	total, printable := 0, 0
	for _, r := range text {
		total++
		if garbageRune(r) {
			continue
		}
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	return float64(printable) / float64(total)
}

func garbageRune(r rune) bool {
	if r >= 0xE000 && r <= 0xF8FF { // Private Use Area
		return true
	}
	if r == 0xFFFD {
		return true
	}
	return r < 0x0020 && r != '\n' && r != '\r' && r != '\t'
}

// wordlikeRatio is the share of whitespace-separated tokens that look
// like words (2-15 runes). Character-by-character extraction failures
// score near zero.
func wordlikeRatio(text string) float64 {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	wordlike := 0
	for _, f := range fields {
		if n := len([]rune(f)); n >= 2 && n <= 15 {
			wordlike++
		}
	}
	return float64(wordlike) / float64(len(fields))
}
