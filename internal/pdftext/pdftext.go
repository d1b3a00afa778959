// Package pdftext extracts plain text from PDF files, page by page,
// using pdfcpu for cross-reference and content-stream decoding. Output
// keeps one text line per positioned line in the source stream, since
// downstream question segmentation keys on line-leading markers.
package pdftext

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Page is the extracted text of one PDF page.
type Page struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Result is the outcome of extracting a whole document.
type Result struct {
	Pages   []Page  `json:"pages"`
	Text    string  `json:"text"` // all pages joined by newlines
	Quality Quality `json:"quality"`
}

// Extractor reads PDFs and reports per-page progress.
type Extractor struct {
	logger *slog.Logger

	// Progress, when set, is called after each extracted page.
	Progress func(page, total int)
}

func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// FromFile extracts text from a PDF on disk.
func (e *Extractor) FromFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return e.FromReader(f)
}

// FromReader extracts text from a PDF read from rs.
func (e *Extractor) FromReader(rs io.ReadSeeker) (*Result, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	var (
		pages      []Page
		all        strings.Builder
		totalChars int
	)
	for nr := 1; nr <= ctx.PageCount; nr++ {
		text := pageText(ctx, nr)
		if e.Progress != nil {
			e.Progress(nr, ctx.PageCount)
		}
		if text == "" {
			continue
		}
		totalChars += len([]rune(text))
		pages = append(pages, Page{Number: nr, Text: text})
		if all.Len() > 0 {
			all.WriteByte('\n')
		}
		all.WriteString(text)
	}

	full := all.String()
	q := Quality{
		PageCount:      ctx.PageCount,
		PrintableRatio: printableRatio(full),
		WordlikeRatio:  wordlikeRatio(full),
		HasImages:      hasImageStreams(ctx),
	}
	if ctx.PageCount > 0 {
		q.CharsPerPage = float64(totalChars) / float64(ctx.PageCount)
	}

	if len(pages) == 0 {
		e.logger.Warn("pdf contains no extractable text",
			"pages", ctx.PageCount, "has_images", q.HasImages)
		return nil, fmt.Errorf("no text content found in PDF")
	}
	e.logger.Debug("pdf extracted",
		"pages", len(pages), "chars_per_page", q.CharsPerPage,
		"printable", q.PrintableRatio)

	return &Result{Pages: pages, Text: full, Quality: q}, nil
}

// pageText decodes the content stream of a single page. Errors collapse
// to an empty page; a sparse page must not abort the whole document.
func pageText(ctx *model.Context, nr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, nr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return decodeStream(data)
}

// hasImageStreams checks whether the PDF carries image XObjects, which
// together with sparse text suggests a scanned document.
func hasImageStreams(ctx *model.Context) bool {
	if ctx.Optimize != nil {
		for nr := 1; nr <= ctx.PageCount; nr++ {
			if len(pdfcpu.ImageObjNrs(ctx, nr)) > 0 {
				return true
			}
		}
	}
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}
