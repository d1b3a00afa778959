package extract

import (
	"strconv"
	"strings"
	"unicode"
)

// Parser states. A question span runs from one question-start marker to
// the next (or end of text); within a span, prompt text runs until the
// first option marker, options until the answer marker.
type state int

const (
	seekQuestion state = iota // before the first question marker
	inPrompt                  // collecting prompt text
	inChoices                 // collecting the current choice
	inAnswer                  // answer marker seen, refs collected
)

// Parse segments normalized text into candidate question records, in
// source order. It is total: malformed spans produce structurally
// incomplete candidates (empty choices, empty answers) and are never an
// error here; rejection is the validator's job.
func Parse(text string) []Candidate {
	var (
		out []Candidate
		cur *Candidate
		st  = seekQuestion
	)

	flush := func() {
		if cur == nil {
			return
		}
		cur.Prompt = strings.TrimSpace(cur.Prompt)
		for i := range cur.Choices {
			cur.Choices[i] = strings.TrimSpace(cur.Choices[i])
		}
		out = append(out, *cur)
		cur = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// A question marker starts a new span regardless of state.
		if num, rest, ok := questionStart(line); ok {
			flush()
			cur = &Candidate{Question: Question{Number: num, Prompt: rest}}
			st = inPrompt
			continue
		}
		if cur == nil {
			// Preamble before the first question (headers, page furniture).
			continue
		}

		switch st {
		case inPrompt:
			if label, rest, ok := optionStart(line); ok {
				cur.Labels = append(cur.Labels, label)
				cur.Choices = append(cur.Choices, rest)
				st = inChoices
			} else if refs, ok := answerMarker(line); ok {
				cur.CorrectAnswers = append(cur.CorrectAnswers, refs...)
				st = inAnswer
			} else {
				cur.Prompt = joinText(cur.Prompt, line)
			}
		case inChoices:
			if label, rest, ok := optionStart(line); ok {
				cur.Labels = append(cur.Labels, label)
				cur.Choices = append(cur.Choices, rest)
			} else if refs, ok := answerMarker(line); ok {
				cur.CorrectAnswers = append(cur.CorrectAnswers, refs...)
				st = inAnswer
			} else {
				// Wrapped choice text continues the current option.
				n := len(cur.Choices) - 1
				cur.Choices[n] = joinText(cur.Choices[n], line)
			}
		case inAnswer:
			if refs, ok := answerMarker(line); ok {
				cur.CorrectAnswers = append(cur.CorrectAnswers, refs...)
			}
			// Anything else after the answer line is explanation text;
			// dropped until the next question marker.
		}
	}
	flush()
	return out
}

// questionStart matches a line-leading integer followed by '.' or ')'.
// Returns the question number and the remainder of the line.
func questionStart(line string) (int, string, bool) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return 0, "", false
	}
	if line[i] != '.' && line[i] != ')' {
		return 0, "", false
	}
	num, err := strconv.Atoi(line[:i])
	if err != nil {
		return 0, "", false
	}
	return num, strings.TrimSpace(line[i+1:]), true
}

// optionStart matches a line-leading single uppercase letter followed by
// '.' or ')'. Returns the option label and the remainder of the line.
func optionStart(line string) (string, string, bool) {
	if len(line) < 2 {
		return "", "", false
	}
	if line[0] < 'A' || line[0] > 'Z' {
		return "", "", false
	}
	if line[1] != '.' && line[1] != ')' {
		return "", "", false
	}
	return line[:1], strings.TrimSpace(line[2:]), true
}

// Recognized answer markers, longest first so "correct answers:" is not
// consumed as "answer:".
var answerPrefixes = []string{"correct answers:", "correct answer:", "answers:", "answer:"}

// answerMarker matches a line-leading answer keyword and parses the
// remainder into answer references.
func answerMarker(line string) ([]string, bool) {
	lower := strings.ToLower(line)
	for _, p := range answerPrefixes {
		if strings.HasPrefix(lower, p) {
			return parseAnswerRefs(line[len(p):]), true
		}
	}
	return nil, false
}

// parseAnswerRefs splits answer text into individual references.
// Tokens separated by commas, semicolons, or whitespace; a bare run of
// letters ("BD") splits into single-letter references. Unrecognized
// tokens are kept as-is so the validator can report them.
func parseAnswerRefs(s string) []string {
	var refs []string
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	for _, tok := range tokens {
		tok = strings.TrimSuffix(tok, ".")
		if tok == "" {
			continue
		}
		if isLetterRun(tok) {
			for _, r := range tok {
				refs = append(refs, strings.ToUpper(string(r)))
			}
			continue
		}
		refs = append(refs, tok)
	}
	return refs
}

func isLetterRun(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func joinText(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}
