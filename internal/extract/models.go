// Package extract turns raw exam text into validated question records.
//
// The pipeline is three pure steps: Normalize (strip presentation markup),
// Parse (segment into candidate records), Validate (partition into valid
// records and structured diagnostics). No step fails on malformed input;
// policy decisions live in the validator alone.
package extract

// Question is one parsed and validated exam item. Choices keep their
// source order; CorrectAnswers reference choices by label (e.g. "B").
type Question struct {
	Number         int      `json:"number"`
	Prompt         string   `json:"prompt"`
	Choices        []string `json:"choices"`
	CorrectAnswers []string `json:"correct_answers"`
}

// Candidate is a Question as produced by the parser, before validation.
// It may be structurally incomplete (no choices, no answers). Labels
// holds the parsed option label for each choice, parallel to Choices,
// so that a dangling answer reference can be reported instead of being
// positionally reinterpreted.
type Candidate struct {
	Question
	Labels []string
}
