package source

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	if _, ok := Resolve("https://example.com/exam.pdf").(*HTTPFetcher); !ok {
		t.Error("https source should resolve to HTTPFetcher")
	}
	if _, ok := Resolve("./exam.pdf").(FileFetcher); !ok {
		t.Error("path source should resolve to FileFetcher")
	}
}

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exam.pdf")
	if err := os.WriteFile(path, []byte("%PDF-fake"), 0o644); err != nil {
		t.Fatal(err)
	}

	rc, err := FileFetcher{}.Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	if string(b) != "%PDF-fake" {
		t.Errorf("content = %q", b)
	}

	if _, err := (FileFetcher{}).Fetch(context.Background(), dir); err == nil {
		t.Error("fetching a directory should fail")
	}
	if _, err := (FileFetcher{}).Fetch(context.Background(), filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("fetching a missing file should fail")
	}
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.pdf" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("%PDF-remote"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.Client())
	rc, err := f.Fetch(context.Background(), srv.URL+"/exam.pdf")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	if string(b) != "%PDF-remote" {
		t.Errorf("content = %q", b)
	}

	if _, err := f.Fetch(context.Background(), srv.URL+"/missing.pdf"); err == nil {
		t.Error("404 should surface as an error")
	}
}

func TestWithProgress(t *testing.T) {
	var last int64
	calls := 0
	r := WithProgress(strings.NewReader("0123456789"), 10, func(done, total int64) {
		last = done
		calls++
		if total != 10 {
			t.Errorf("total = %d, want 10", total)
		}
	})
	if _, err := io.ReadAll(r); err != nil {
		t.Fatal(err)
	}
	if last != 10 || calls == 0 {
		t.Errorf("last = %d calls = %d, want full progress", last, calls)
	}
}
