package bank

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/mind-engage/qbank/internal/extract"
	"github.com/mind-engage/qbank/internal/pdftext"
)

// SQLStore persists question sets in sqlite or postgres. Questions ride
// in a JSON column: sets are written once and read whole, so there is
// nothing to gain from per-question rows.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutSet(ctx context.Context, set Set) error {
	qj, err := json.Marshal(set.Questions)
	if err != nil {
		return err
	}
	var quality any
	if set.Quality != nil {
		b, err := json.Marshal(set.Quality)
		if err != nil {
			return err
		}
		quality = string(b)
	}
	created := set.CreatedAt
	if created == 0 {
		created = time.Now().Unix()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO question_sets (id,title,source,questions_json,quality_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, source=EXCLUDED.source,
			questions_json=EXCLUDED.questions_json, quality_json=EXCLUDED.quality_json`,
		set.ID, set.Title, set.Source, string(qj), quality, created)
	return err
}

func (s *SQLStore) GetSet(ctx context.Context, id string) (Set, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,title,source,questions_json,quality_json,created_at FROM question_sets WHERE id=$1`, id)
	var (
		set     Set
		qjson   string
		quality sql.NullString
	)
	if err := row.Scan(&set.ID, &set.Title, &set.Source, &qjson, &quality, &set.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Set{}, ErrNotFound
		}
		return Set{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &set.Questions); err != nil {
		return Set{}, err
	}
	if quality.Valid && quality.String != "" {
		var q pdftext.Quality
		if err := json.Unmarshal([]byte(quality.String), &q); err == nil {
			set.Quality = &q
		}
	}
	if set.Questions == nil {
		set.Questions = []extract.Question{}
	}
	return set, nil
}

func (s *SQLStore) ListSets(ctx context.Context, opts ListOpts) ([]SetSummary, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	q := "%" + opts.Q + "%"
	rows, err := s.db.QueryContext(ctx, `SELECT id,title,source,questions_json,created_at
		FROM question_sets
		WHERE title LIKE $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SetSummary{}
	for rows.Next() {
		var (
			sum   SetSummary
			qjson string
		)
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Source, &qjson, &sum.CreatedAt); err != nil {
			return nil, err
		}
		var qs []extract.Question
		if err := json.Unmarshal([]byte(qjson), &qs); err == nil {
			sum.QuestionCount = len(qs)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteSet(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM question_sets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
