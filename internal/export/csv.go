package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/mind-engage/qbank/internal/bank"
)

// CSV writes one row per question. Choices are joined with " | " since
// they may themselves contain commas.
type CSV struct{}

func (CSV) Write(w io.Writer, s bank.Set) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"number", "prompt", "choices", "correct_answers"}); err != nil {
		return err
	}
	for _, q := range s.Questions {
		row := []string{
			strconv.Itoa(q.Number),
			q.Prompt,
			strings.Join(q.Choices, " | "),
			strings.Join(q.CorrectAnswers, ","),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (CSV) ContentType() string { return "text/csv" }
func (CSV) FileExt() string     { return "csv" }
