package bank

import (
	"github.com/mind-engage/qbank/internal/extract"
	"github.com/mind-engage/qbank/internal/pdftext"
)

// Set is one imported question bank: the validated records extracted
// from a single source document. Questions are read-only once stored;
// re-importing a source produces a new set.
type Set struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Source    string             `json:"source,omitempty"` // URL or path the PDF came from
	Questions []extract.Question `json:"questions"`
	Quality   *pdftext.Quality   `json:"quality,omitempty"` // extraction metrics, advisory
	CreatedAt int64              `json:"created_at,omitempty"`
}

// SetSummary is the list-view projection of a Set.
type SetSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Source        string `json:"source,omitempty"`
	QuestionCount int    `json:"question_count"`
	CreatedAt     int64  `json:"created_at,omitempty"`
}

type ListOpts struct {
	Q      string // substring match on title
	Limit  int
	Offset int
}
