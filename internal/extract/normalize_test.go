package extract

import (
	"strings"
	"testing"
)

func TestNormalize_Markers(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"a<br>b", "a b"},
		{"a<br/>b", "a b"},
		{"a<br />b", "a b"},
		{"a<BR>b", "a b"},
		{"a<Br   />b", "a b"},
		{"<br>leading", " leading"},
		{"trailing<br>", "trailing "},
		{"two<br><br>markers", "two  markers"},
		{"not a marker: < br>", "not a marker: < br>"},
		{"angle <bracket>", "angle <bracket>"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	in := "What is<br>2+2?<br/>Pick one.<br />"
	once := Normalize(in)
	if strings.Contains(strings.ToLower(once), "<br") {
		t.Fatalf("marker survived one pass: %q", once)
	}
	if twice := Normalize(once); twice != once {
		t.Errorf("second pass changed text: %q -> %q", once, twice)
	}
}

func TestNormalize_NeverGrows(t *testing.T) {
	for _, in := range []string{"a<br>b", "<br/><br/>", "x", "<br"} {
		if got := Normalize(in); len(got) > len(in) {
			t.Errorf("Normalize(%q) grew to %q", in, got)
		}
	}
}
