package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/qbank/internal/bank"
	"github.com/mind-engage/qbank/internal/export"
	"github.com/mind-engage/qbank/internal/extract"
	"github.com/mind-engage/qbank/internal/ingest"
	"github.com/mind-engage/qbank/internal/storage"
)

// importResponse is returned for both full and partial imports; Report
// is non-nil when AllowPartial dropped records.
type importResponse struct {
	Set    bank.Set        `json:"set"`
	Report *extract.Report `json:"report,omitempty"`
}

// ImportBankHandler accepts either a multipart upload (field "file",
// optional "title" and "allow_partial") or a JSON body
// {"source": "...", "title": "...", "allow_partial": false} naming a
// URL to fetch. Server-local paths in the JSON body are refused unless
// allowLocalSources is set: the import permission must not double as
// read access to the server's filesystem.
func ImportBankHandler(svc *ingest.Service, maxBytes int64, allowLocalSources bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ingest.Request

		ct := r.Header.Get("Content-Type")
		if strings.HasPrefix(ct, "multipart/form-data") {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			f, hdr, err := r.FormFile("file")
			if err != nil {
				http.Error(w, "file required", http.StatusBadRequest)
				return
			}
			defer f.Close()
			req.Reader = f
			req.Source = hdr.Filename
			req.Title = r.FormValue("title")
			req.AllowPartial = r.FormValue("allow_partial") == "true"
		} else {
			var body struct {
				Source       string `json:"source"`
				Title        string `json:"title"`
				AllowPartial bool   `json:"allow_partial"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
			if body.Source == "" {
				http.Error(w, "source required", http.StatusBadRequest)
				return
			}
			if !allowLocalSources && !isHTTPSource(body.Source) {
				http.Error(w, "source must be an http(s) URL", http.StatusBadRequest)
				return
			}
			req.Source = body.Source
			req.Title = body.Title
			req.AllowPartial = body.AllowPartial
		}

		set, report, err := svc.Import(r.Context(), req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		if report != nil && set.ID == "" {
			// Whole import rejected: the report tells the caller which
			// question failed which check.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error":  "validation failed",
				"report": report,
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(importResponse{Set: set, Report: report})
	}
}

func ListBanksHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := bank.ListOpts{
			Q:      strings.TrimSpace(r.URL.Query().Get("q")),
			Limit:  parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset: parseIntDefault(r.URL.Query().Get("offset"), 0),
		}
		list, err := store.ListSets(r.Context(), opts)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}

func GetBankHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set, err := store.GetSet(r.Context(), chi.URLParam(r, "setID"))
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(set)
	}
}

func DeleteBankHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteSet(r.Context(), chi.URLParam(r, "setID")); err != nil {
			writeStoreErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ExportBankHandler streams a set in the requested format
// (?format=json|csv, default json) as a download.
func ExportBankHandler(store bank.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := r.URL.Query().Get("format")
		if format == "" {
			format = "json"
		}
		exp, ok := export.Lookup(format)
		if !ok {
			http.Error(w, "unknown format: "+format, http.StatusBadRequest)
			return
		}
		set, err := store.GetSet(r.Context(), chi.URLParam(r, "setID"))
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		w.Header().Set("Content-Type", exp.ContentType())
		w.Header().Set("Content-Disposition", `attachment; filename="qbank-`+set.ID+`.`+exp.FileExt()+`"`)
		if err := exp.Write(w, set); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// BankSourceHandler serves the archived original PDF for a set.
func BankSourceHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setID := chi.URLParam(r, "setID")
		rc, err := bs.Get("sets/" + setID + "/source.pdf")
		if err != nil {
			http.Error(w, "source not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = io.Copy(w, rc)
	}
}

func isHTTPSource(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

func writeStoreErr(w http.ResponseWriter, err error) {
	if errors.Is(err, bank.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
