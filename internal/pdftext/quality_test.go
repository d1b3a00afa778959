package pdftext

import "testing"

func TestPrintableRatio(t *testing.T) {
	if r := printableRatio("A perfectly normal exam question."); r < 0.95 {
		t.Errorf("normal text ratio = %f, want > 0.95", r)
	}
	garbled := "abcd\x01\x02\x03"
	if r := printableRatio(garbled); r >= 0.85 {
		t.Errorf("garbled text ratio = %f, want < 0.85", r)
	}
	if r := printableRatio(""); r != 1.0 {
		t.Errorf("empty text ratio = %f, want 1.0", r)
	}
}

func TestWordlikeRatio(t *testing.T) {
	if r := wordlikeRatio("multiple choice questions with normal words"); r < 0.7 {
		t.Errorf("normal text ratio = %f, want > 0.7", r)
	}
	if r := wordlikeRatio("a b c d e f g h i j"); r >= 0.4 {
		t.Errorf("char-by-char ratio = %f, want < 0.4", r)
	}
}

func TestQualitySuspect(t *testing.T) {
	cases := []struct {
		name string
		q    Quality
		want bool
	}{
		{"clean", Quality{CharsPerPage: 1200, PrintableRatio: 0.99, WordlikeRatio: 0.9}, false},
		{"scanned", Quality{CharsPerPage: 10, HasImages: true, PrintableRatio: 0.99}, true},
		{"garbled", Quality{CharsPerPage: 900, PrintableRatio: 0.5}, true},
		{"sparse but no images", Quality{CharsPerPage: 10, PrintableRatio: 0.99}, false},
	}
	for _, c := range cases {
		if got := c.q.Suspect(); got != c.want {
			t.Errorf("%s: Suspect() = %v, want %v", c.name, got, c.want)
		}
	}
}
