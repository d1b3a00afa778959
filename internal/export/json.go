package export

import (
	"encoding/json"
	"io"

	"github.com/mind-engage/qbank/internal/bank"
	"github.com/mind-engage/qbank/internal/extract"
)

// JSON writes the canonical persisted format: a JSON array of question
// objects with number, prompt, choices, and correct_answers.
type JSON struct{}

func (JSON) Write(w io.Writer, s bank.Set) error {
	qs := s.Questions
	if qs == nil {
		qs = []extract.Question{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(qs)
}

func (JSON) ContentType() string { return "application/json" }
func (JSON) FileExt() string     { return "json" }
