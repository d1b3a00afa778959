package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mind-engage/qbank/internal/bank"
	"github.com/mind-engage/qbank/internal/extract"
)

func sampleSet() bank.Set {
	return bank.Set{
		ID:    "s1",
		Title: "Sample",
		Questions: []extract.Question{
			{Number: 1, Prompt: "What is 2+2?", Choices: []string{"3", "4"}, CorrectAnswers: []string{"B"}},
			{Number: 2, Prompt: "Sky color, at noon?", Choices: []string{"Blue", "Green"}, CorrectAnswers: []string{"A"}},
		},
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"json", "csv"} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("exporter %q not registered", name)
		}
	}
	if _, ok := Lookup("xml"); ok {
		t.Error("unexpected exporter for xml")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := (JSON{}).Write(&buf, sampleSet()); err != nil {
		t.Fatal(err)
	}
	var got []extract.Question
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(got) != 2 || got[0].Number != 1 || got[1].CorrectAnswers[0] != "A" {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestJSONEmptySet(t *testing.T) {
	var buf bytes.Buffer
	if err := (JSON{}).Write(&buf, bank.Set{ID: "empty"}); err != nil {
		t.Fatal(err)
	}
	if s := strings.TrimSpace(buf.String()); s != "[]" {
		t.Errorf("empty set = %q, want []", s)
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := (CSV{}).Write(&buf, sampleSet()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows: %q", len(lines), buf.String())
	}
	if lines[0] != "number,prompt,choices,correct_answers" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "3 | 4") {
		t.Errorf("row 1 = %q, choices not joined", lines[1])
	}
	// Prompt with a comma must be quoted, not split.
	if !strings.Contains(lines[2], `"Sky color, at noon?"`) {
		t.Errorf("row 2 = %q, comma field not quoted", lines[2])
	}
}
