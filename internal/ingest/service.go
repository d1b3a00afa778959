// Package ingest orchestrates one import run: fetch the source PDF,
// extract its text, run the question pipeline, then archive the source
// and persist the resulting set. Handlers and the CLI both go through
// here.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/mind-engage/qbank/internal/bank"
	"github.com/mind-engage/qbank/internal/extract"
	"github.com/mind-engage/qbank/internal/importlog"
	"github.com/mind-engage/qbank/internal/pdftext"
	"github.com/mind-engage/qbank/internal/source"
	"github.com/mind-engage/qbank/internal/storage"
)

// TextExtractor is what ingest needs from the PDF layer.
type TextExtractor interface {
	FromReader(rs io.ReadSeeker) (*pdftext.Result, error)
}

type Service struct {
	Store     bank.Store
	Blobs     storage.BlobStore // optional: archive source PDFs
	Extractor TextExtractor
	Log       *importlog.Repo // optional: audit trail
	Policy    extract.Policy
	Logger    *log.Logger // optional
}

// Request describes one import. Reader takes precedence over Source;
// when only Source is set the document is fetched with a resolver
// picked by scheme.
type Request struct {
	Title   string
	Source  string
	Reader  io.Reader
	Fetcher source.Fetcher // override for tests; defaults by scheme

	// AllowPartial imports the valid records even when some candidates
	// fail validation. Default is all-or-nothing: any violation rejects
	// the whole run and the report is returned untouched.
	AllowPartial bool
}

// Import runs the full chain. On validation failure it returns the
// structured report (and no set unless AllowPartial salvaged records).
// The report is data for the caller, not a hard error: err is reserved
// for I/O and extraction failures.
func (s *Service) Import(ctx context.Context, req Request) (bank.Set, *extract.Report, error) {
	data, err := s.sourceBytes(ctx, req)
	if err != nil {
		s.audit(ctx, importlog.Entry{Source: req.Source, Outcome: importlog.OutcomeFailed, Detail: err.Error()})
		return bank.Set{}, nil, err
	}

	res, err := s.Extractor.FromReader(bytes.NewReader(data))
	if err != nil {
		s.audit(ctx, importlog.Entry{Source: req.Source, Outcome: importlog.OutcomeFailed, Detail: err.Error()})
		return bank.Set{}, nil, fmt.Errorf("extract text: %w", err)
	}
	if res.Quality.Suspect() && s.Logger != nil {
		s.Logger.Printf("ingest: suspect extraction quality (chars/page=%.0f printable=%.2f), parsing anyway",
			res.Quality.CharsPerPage, res.Quality.PrintableRatio)
	}

	questions, report := extract.Extract(res.Text, s.Policy)
	if report != nil && !req.AllowPartial {
		s.audit(ctx, importlog.Entry{
			Source:  req.Source,
			Outcome: importlog.OutcomeRejected,
			Detail:  reportJSON(report),
		})
		return bank.Set{}, report, nil
	}

	// Archive only once the import is going to produce a set; a rejected
	// run must leave nothing behind.
	id := uuid.NewString()
	if s.Blobs != nil {
		if _, err := s.Blobs.Put("sets/"+id+"/source.pdf", bytes.NewReader(data)); err != nil {
			return bank.Set{}, report, fmt.Errorf("archive source: %w", err)
		}
	}

	set := bank.Set{
		ID:        id,
		Title:     titleFor(req),
		Source:    req.Source,
		Questions: questions,
		Quality:   &res.Quality,
	}
	if err := s.Store.PutSet(ctx, set); err != nil {
		return bank.Set{}, report, fmt.Errorf("store set: %w", err)
	}

	outcome := importlog.OutcomeImported
	detail := ""
	if report != nil {
		detail = reportJSON(report) // partial import: keep what was dropped
	}
	s.audit(ctx, importlog.Entry{
		SetID:         set.ID,
		Source:        req.Source,
		QuestionCount: len(questions),
		Outcome:       outcome,
		Detail:        detail,
	})
	return set, report, nil
}

func (s *Service) sourceBytes(ctx context.Context, req Request) ([]byte, error) {
	if req.Reader != nil {
		return io.ReadAll(req.Reader)
	}
	if req.Source == "" {
		return nil, fmt.Errorf("no source document")
	}
	f := req.Fetcher
	if f == nil {
		f = source.Resolve(req.Source)
	}
	rc, err := f.Fetch(ctx, req.Source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (s *Service) audit(ctx context.Context, e importlog.Entry) {
	if s.Log == nil {
		return
	}
	if err := s.Log.Append(ctx, e); err != nil && s.Logger != nil {
		s.Logger.Printf("ingest: import_log append failed: %v", err)
	}
}

func titleFor(req Request) string {
	if req.Title != "" {
		return req.Title
	}
	base := path.Base(strings.TrimSuffix(req.Source, "/"))
	if base == "." || base == "/" || base == "" {
		return "Imported question set"
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

func reportJSON(r *extract.Report) string {
	b, err := json.Marshal(r)
	if err != nil {
		return r.Error()
	}
	return string(b)
}
