// Package uploads streams local binaries to remote blob storage, reporting
// progress events and a final download reference.
package uploads

import (
	"context"
	"errors"
	"io"
)

// ErrUploadFailed marks a terminal event caused by the byte transfer itself.
var ErrUploadFailed = errors.New("image upload failed")

// ErrResolveURL marks a terminal event where the bytes were stored but the
// download URL could not be resolved afterwards.
var ErrResolveURL = errors.New("upload succeeded but download URL could not be resolved")

// Event is one element of an upload stream. Non-terminal events carry a
// monotonically non-decreasing progress percentage in [0,100]; the terminal
// event carries exactly one of URL or Err, and nothing follows it.
type Event struct {
	Progress int
	URL      string
	Err      error
	Terminal bool
}

// Uploader streams a local binary to a path-addressed remote location. The
// returned channel is closed after the terminal event.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, size int64, remotePath string) <-chan Event
}

// progressReader counts bytes as they pass through and reports whole
// percentage steps. Reports are strictly increasing; an unknown total size
// disables them entirely.
type progressReader struct {
	r       io.Reader
	total   int64
	read    int64
	lastPct int
	report  func(pct int)
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 && p.total > 0 {
		p.read += int64(n)
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct > p.lastPct {
			p.lastPct = pct
			p.report(pct)
		}
	}
	return n, err
}
