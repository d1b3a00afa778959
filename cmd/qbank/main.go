// Command qbank is the one-shot extractor: fetch a PDF from a URL or
// local path, pull the question records out of it, and write them as
// JSON (or CSV) without running a server.
package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"github.com/mind-engage/qbank/internal/bank"
	"github.com/mind-engage/qbank/internal/export"
	"github.com/mind-engage/qbank/internal/extract"
	"github.com/mind-engage/qbank/internal/pdftext"
	"github.com/mind-engage/qbank/internal/source"
)

func main() {
	var (
		src         = flag.String("src", "", "PDF source: http(s) URL or local path (required)")
		out         = flag.String("out", "questions.json", `output path, or "-" for stdout`)
		format      = flag.String("format", "json", "output format: json or csv")
		title       = flag.String("title", "", "set title (default: derived from source filename)")
		skipInvalid = flag.Bool("skip-invalid", false, "keep valid questions when some records fail validation")
		unique      = flag.Bool("unique-numbers", false, "reject duplicate question numbers")
		ascending   = flag.Bool("ascending-numbers", false, "reject out-of-order question numbers")
	)
	flag.Parse()

	if *src == "" {
		flag.Usage()
		os.Exit(2)
	}
	exp, ok := export.Lookup(*format)
	if !ok {
		log.Fatalf("unknown format %q", *format)
	}

	ctx := context.Background()

	log.Printf("fetching %s", *src)
	data, err := fetch(ctx, *src)
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}

	ext := pdftext.New(nil)
	ext.Progress = func(page, total int) {
		if page%5 == 0 || page == total {
			log.Printf("extracting page %d/%d", page, total)
		}
	}
	res, err := ext.FromReader(bytes.NewReader(data))
	if err != nil {
		log.Fatalf("extract text: %v", err)
	}
	if res.Quality.Suspect() {
		log.Printf("warning: extraction quality looks poor (chars/page=%.0f printable=%.2f); output may be incomplete",
			res.Quality.CharsPerPage, res.Quality.PrintableRatio)
	}

	pol := extract.Policy{UniqueNumbers: *unique, AscendingNumbers: *ascending}
	questions, report := extract.Extract(res.Text, pol)
	if report != nil {
		for _, v := range report.Violations {
			log.Printf("question %d: %s: %s", v.Number, v.Check, v.Detail)
		}
		if !*skipInvalid {
			log.Fatalf("%d record(s) failed validation; re-run with -skip-invalid to keep the %d valid ones",
				len(report.Violations), len(questions))
		}
		log.Printf("dropped invalid records, keeping %d questions", len(questions))
	}

	set := bank.Set{Title: titleFor(*title, *src), Source: *src, Questions: questions}
	if err := write(*out, exp, set); err != nil {
		log.Fatalf("write output: %v", err)
	}
	log.Printf("wrote %d questions to %s", len(questions), *out)
}

func fetch(ctx context.Context, src string) ([]byte, error) {
	rc, err := source.Resolve(src).Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var lastLogged int64
	r := source.WithProgress(rc, -1, func(done, total int64) {
		if done-lastLogged >= 1<<20 {
			lastLogged = done
			log.Printf("downloaded %d KiB", done>>10)
		}
	})
	return io.ReadAll(r)
}

func write(out string, exp export.Exporter, set bank.Set) error {
	if out == "-" {
		return exp.Write(os.Stdout, set)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := exp.Write(f, set); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func titleFor(title, src string) string {
	if title != "" {
		return title
	}
	base := path.Base(strings.TrimSuffix(src, "/"))
	if base == "." || base == "/" || base == "" {
		return "Extracted question set"
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
