// Package importlog keeps an append-only audit trail of extraction
// runs: what was imported, what was rejected by validation, and why.
package importlog

import (
	"context"
	"database/sql"
	"time"
)

const (
	OutcomeImported = "imported"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

type Entry struct {
	Offset        int64  `json:"offset"`
	SetID         string `json:"set_id,omitempty"`
	Source        string `json:"source,omitempty"`
	QuestionCount int    `json:"question_count"`
	Outcome       string `json:"outcome"`
	Detail        string `json:"detail,omitempty"` // validation report JSON for rejects
	CreatedAt     int64  `json:"created_at"`
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO import_log (set_id, source, question_count, outcome, detail, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		e.SetID, e.Source, e.QuestionCount, e.Outcome, e.Detail, time.Now().Unix())
	return err
}

func (r *Repo) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT "offset", set_id, source, question_count, outcome, detail, created_at
		 FROM import_log ORDER BY "offset" DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Offset, &e.SetID, &e.Source, &e.QuestionCount, &e.Outcome, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
