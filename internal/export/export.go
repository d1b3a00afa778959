// Package export serializes question sets for download. Exporters
// register by name so surfaces can offer formats without knowing them.
package export

import (
	"io"

	"github.com/mind-engage/qbank/internal/bank"
)

type Exporter interface {
	// Write serializes the set's records to w.
	Write(w io.Writer, s bank.Set) error
	ContentType() string
	FileExt() string
}

var registry = map[string]Exporter{}

// Register an exporter under a format name. Call from init().
func Register(name string, e Exporter) { registry[name] = e }

// Lookup returns a registered exporter.
func Lookup(name string) (Exporter, bool) { e, ok := registry[name]; return e, ok }

func init() {
	Register("json", JSON{})
	Register("csv", CSV{})
}
