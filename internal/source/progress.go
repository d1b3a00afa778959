package source

import "io"

// ProgressFunc receives byte counts during a long fetch. total is -1
// when the source does not report its size.
type ProgressFunc func(done, total int64)

// WithProgress wraps r so that fn is invoked as bytes flow through.
// Progress reporting stays in the glue layer; the extraction core only
// ever receives the finished text.
func WithProgress(r io.Reader, total int64, fn ProgressFunc) io.Reader {
	if fn == nil {
		return r
	}
	return &progressReader{r: r, total: total, fn: fn}
}

type progressReader struct {
	r     io.Reader
	done  int64
	total int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.done += int64(n)
		p.fn(p.done, p.total)
	}
	return n, err
}
