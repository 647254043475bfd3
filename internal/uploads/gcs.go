package uploads

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

// GCSUploader implements Uploader against a Cloud Storage bucket.
type GCSUploader struct {
	bucket  *storage.BucketHandle
	timeout time.Duration
}

// NewGCSUploader creates an uploader writing into the given bucket. The
// timeout bounds the whole transfer, not individual chunks.
func NewGCSUploader(bucket *storage.BucketHandle, timeout time.Duration) *GCSUploader {
	return &GCSUploader{bucket: bucket, timeout: timeout}
}

// Upload streams r to remotePath and resolves its download URL. Progress
// events that nobody is ready for are dropped; the terminal event is always
// delivered before the channel closes.
func (u *GCSUploader) Upload(ctx context.Context, r io.Reader, size int64, remotePath string) <-chan Event {
	events := make(chan Event, 8)

	go func() {
		defer close(events)

		ctx, cancel := context.WithTimeout(ctx, u.timeout)
		defer cancel()

		obj := u.bucket.Object(remotePath)
		w := obj.NewWriter(ctx)
		w.ChunkSize = 256 * 1024

		pr := &progressReader{
			r:     r,
			total: size,
			report: func(pct int) {
				select {
				case events <- Event{Progress: pct}:
				default:
				}
			},
		}

		if _, err := io.Copy(w, pr); err != nil {
			w.Close()
			events <- Event{Terminal: true, Err: fmt.Errorf("%w: %v", ErrUploadFailed, err)}
			return
		}
		if err := w.Close(); err != nil {
			events <- Event{Terminal: true, Err: fmt.Errorf("%w: %v", ErrUploadFailed, err)}
			return
		}

		attrs, err := obj.Attrs(ctx)
		if err != nil {
			events <- Event{Terminal: true, Err: fmt.Errorf("%w: %v", ErrResolveURL, err)}
			return
		}
		events <- Event{Terminal: true, Progress: 100, URL: attrs.MediaLink}
	}()

	return events
}
