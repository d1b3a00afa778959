package extract

import (
	"reflect"
	"testing"
)

func TestExtract_EndToEnd(t *testing.T) {
	text := "1. What is 2+2?\nA. 3\nB. 4\nAnswer: B\n" +
		"2. What color is the sky?\nA. Blue\nB. Green\nAnswer: A"
	qs, rep := Extract(text, Policy{})
	if rep != nil {
		t.Fatalf("unexpected report: %v", rep)
	}
	want := []Question{
		{Number: 1, Prompt: "What is 2+2?", Choices: []string{"3", "4"}, CorrectAnswers: []string{"B"}},
		{Number: 2, Prompt: "What color is the sky?", Choices: []string{"Blue", "Green"}, CorrectAnswers: []string{"A"}},
	}
	if !reflect.DeepEqual(qs, want) {
		t.Errorf("records = %+v, want %+v", qs, want)
	}
}

func TestExtract_RejectsIncomplete(t *testing.T) {
	qs, rep := Extract("1. Incomplete question with no choices\nAnswer: A", Policy{})
	if len(qs) != 0 {
		t.Errorf("valid = %+v, want none", qs)
	}
	if rep == nil {
		t.Fatal("expected a report")
	}
	found := false
	for _, v := range rep.Violations {
		if v.Number == 1 && v.Check == CheckChoices {
			found = true
		}
	}
	if !found {
		t.Errorf("report %+v missing choices check for question 1", rep.Violations)
	}
}

func TestExtract_MarkupInsidePrompt(t *testing.T) {
	text := "1. What is<br>2+2?\nA. 3\nB. 4\nAnswer: B"
	qs, rep := Extract(text, Policy{})
	if rep != nil {
		t.Fatalf("unexpected report: %v", rep)
	}
	if qs[0].Prompt != "What is 2+2?" {
		t.Errorf("prompt = %q, want markup collapsed", qs[0].Prompt)
	}
}
