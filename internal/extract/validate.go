package extract

import (
	"fmt"
	"strconv"
	"strings"
)

// Check names as they appear in validation reports.
const (
	CheckNumber    = "number"
	CheckPrompt    = "prompt"
	CheckChoices   = "choices"
	CheckAnswers   = "correct_answers"
	CheckAnswerRef = "answer_ref"
	CheckUnique    = "unique_number"
	CheckAscending = "ascending_number"
)

// Policy controls the advisory number checks. Uniqueness and monotonic
// ordering of question numbers are commonly desired but not universally
// guaranteed by source documents, so both are opt-in.
type Policy struct {
	UniqueNumbers    bool
	AscendingNumbers bool
}

// Violation is one failed check on one candidate record. Index is the
// record's position in the candidate sequence and Number its parsed
// question number, so the offending question can always be located.
type Violation struct {
	Index  int    `json:"index"`
	Number int    `json:"number"`
	Check  string `json:"check"`
	Detail string `json:"detail,omitempty"`
}

// Report collects every violation across a candidate sequence. It
// implements error so callers can propagate it, but validation failure
// is a recoverable condition: the caller decides whether to abort, skip
// the invalid records, or surface them for correction.
type Report struct {
	Violations []Violation `json:"violations"`
}

func (r *Report) Error() string {
	if len(r.Violations) == 0 {
		return "validation: no violations"
	}
	parts := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		s := fmt.Sprintf("question %d: %s", v.Number, v.Check)
		if v.Detail != "" {
			s += " (" + v.Detail + ")"
		}
		parts = append(parts, s)
	}
	return fmt.Sprintf("validation: %d violation(s): %s", len(r.Violations), strings.Join(parts, "; "))
}

// Validate partitions candidates into valid question records and a
// structured report of everything that failed. All checks run on all
// records; the report is a complete picture, not a fail-fast. When
// every candidate passes, the report is nil and valid preserves source
// order; field content is never mutated.
func Validate(cands []Candidate, pol Policy) ([]Question, *Report) {
	var rep Report
	valid := make([]Question, 0, len(cands))

	seen := map[int]int{} // number -> first index
	prev := 0

	for i, c := range cands {
		bad := false
		fail := func(check, detail string) {
			rep.Violations = append(rep.Violations, Violation{
				Index:  i,
				Number: c.Number,
				Check:  check,
				Detail: detail,
			})
			bad = true
		}

		if c.Number <= 0 {
			fail(CheckNumber, fmt.Sprintf("number %d is not positive", c.Number))
		}
		if strings.TrimSpace(c.Prompt) == "" {
			fail(CheckPrompt, "empty prompt")
		}
		if n := countNonEmpty(c.Choices); n < 2 {
			fail(CheckChoices, fmt.Sprintf("%d non-empty choice(s), need at least 2", n))
		}
		if len(c.CorrectAnswers) == 0 {
			fail(CheckAnswers, "no correct answers")
		}
		for _, ref := range c.CorrectAnswers {
			if !resolves(ref, c) {
				fail(CheckAnswerRef, fmt.Sprintf("answer %q matches no choice", ref))
			}
		}

		if pol.UniqueNumbers {
			if first, dup := seen[c.Number]; dup {
				fail(CheckUnique, fmt.Sprintf("number %d already used at index %d", c.Number, first))
			} else {
				seen[c.Number] = i
			}
		}
		if pol.AscendingNumbers && c.Number <= prev {
			fail(CheckAscending, fmt.Sprintf("number %d not greater than previous %d", c.Number, prev))
		}
		prev = c.Number

		if !bad {
			valid = append(valid, c.Question)
		}
	}

	if len(rep.Violations) == 0 {
		return valid, nil
	}
	return valid, &rep
}

// resolves reports whether an answer reference identifies an existing
// choice, either by option label (case-insensitive) or by 1-based
// position.
func resolves(ref string, c Candidate) bool {
	for _, l := range c.Labels {
		if strings.EqualFold(ref, l) {
			return true
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		return n >= 1 && n <= len(c.Choices)
	}
	return false
}

func countNonEmpty(ss []string) int {
	n := 0
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}
