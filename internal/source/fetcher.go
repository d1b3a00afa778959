// Package source fetches raw exam documents. The extraction core never
// sees network or filesystem types; it consumes text handed over by the
// glue layer, which uses a Fetcher to obtain the document bytes.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Fetcher produces a document's bytes given a source identifier
// (a URL or a local path, depending on the implementation).
type Fetcher interface {
	Fetch(ctx context.Context, src string) (io.ReadCloser, error)
}

// Resolve picks a fetcher by source scheme: http(s) URLs download,
// anything else is treated as a local path.
func Resolve(src string) Fetcher {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return NewHTTPFetcher(nil)
	}
	return FileFetcher{}
}

// HTTPFetcher downloads a document over HTTP(S).
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, src string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %s", src, resp.Status)
	}
	return resp.Body, nil
}

// FileFetcher reads a document from the local filesystem.
type FileFetcher struct{}

func (FileFetcher) Fetch(ctx context.Context, src string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fi, err := os.Stat(src)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("fetch %s: is a directory", src)
	}
	return os.Open(src)
}
