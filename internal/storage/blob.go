package storage

import "io"

// BlobStore keeps the original source documents so an import can always
// be traced back to the exact PDF it was extracted from.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
