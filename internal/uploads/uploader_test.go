package uploads

import (
	"bytes"
	"io"
	"testing"
)

func TestProgressReaderMonotonic(t *testing.T) {
	data := bytes.Repeat([]byte{'x'}, 1000)
	var reports []int
	pr := &progressReader{
		r:      bytes.NewReader(data),
		total:  int64(len(data)),
		report: func(pct int) { reports = append(reports, pct) },
	}

	buf := make([]byte, 64)
	for {
		_, err := pr.Read(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read: %v", err)
		}
	}

	if len(reports) == 0 {
		t.Fatal("expected progress reports")
	}
	last := -1
	for _, pct := range reports {
		if pct <= last {
			t.Fatalf("progress not strictly increasing: %v", reports)
		}
		if pct < 0 || pct > 100 {
			t.Fatalf("progress out of range: %d", pct)
		}
		last = pct
	}
	if reports[len(reports)-1] != 100 {
		t.Errorf("final report = %d, want 100", reports[len(reports)-1])
	}
}

func TestProgressReaderUnknownSize(t *testing.T) {
	pr := &progressReader{
		r:      bytes.NewReader([]byte("abc")),
		total:  0,
		report: func(int) { t.Error("report called with unknown size") },
	}
	if _, err := io.Copy(io.Discard, pr); err != nil {
		t.Fatalf("copy: %v", err)
	}
}

func TestProgressReaderCapsAtHundred(t *testing.T) {
	// The declared total undercounts the actual bytes.
	data := bytes.Repeat([]byte{'y'}, 300)
	var last int
	pr := &progressReader{
		r:      bytes.NewReader(data),
		total:  200,
		report: func(pct int) { last = pct },
	}
	if _, err := io.Copy(io.Discard, pr); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if last != 100 {
		t.Errorf("final report = %d, want capped 100", last)
	}
}
