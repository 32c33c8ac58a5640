package emit

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/highwayhash"
	"github.com/viant/afs"
)

const (
	dirMode  = 0755
	fileMode = 0644
)

// fingerprintKey is a fixed, non-secret 32-byte key: highwayhash is used
// here only to fingerprint buffered artifact bytes against an existing
// file's content (see DESIGN.md), not as a security primitive, so a stable
// constant key keeps fingerprints reproducible across runs.
var fingerprintKey = make([]byte, 32)

// Writer buffers an Artifact Plan's files and writes them only in Flush,
// once every file's content is complete, per spec.md §5's "emit to a
// buffer, then flush" cancellation rule: cancellation is checked between
// plans, never inside Flush, so a cancelled run leaves no plan half
// written. An I/O error inside Flush stops at the failing file and leaves
// the files already written in place. Grounded in
// inspector/coder/coder.go's StoreProject, which reconstructs full file
// content before ever touching the filesystem.
type Writer struct {
	fs     afs.Service
	dryRun bool
}

// NewWriter constructs a Writer. fs performs all directory creation and
// file writes; dryRun suppresses both per spec.md §4.5.
func NewWriter(fs afs.Service, dryRun bool) *Writer {
	if fs == nil {
		fs = afs.New()
	}
	return &Writer{fs: fs, dryRun: dryRun}
}

// pendingFile is one buffered write, accumulated before Flush commits the
// whole set.
type pendingFile struct {
	url     string
	content []byte
}

// Batch accumulates the files for one Artifact Plan.
type Batch struct {
	files []pendingFile
}

// Add buffers a file for this batch; it is not written until Flush.
func (b *Batch) Add(url, content string) {
	b.files = append(b.files, pendingFile{url: url, content: []byte(content)})
}

// Flush writes every buffered file in the batch, in the order they were
// added (schema, then types, then extension, per spec.md §5). Returns the
// number of files actually written, excluding ones whose on-disk content
// fingerprint already matches. This check is separate from the Planner's
// skip-processed filter, which tests file existence only.
func (w *Writer) Flush(ctx context.Context, batch *Batch) (int, error) {
	if w.dryRun {
		return 0, nil
	}
	written := 0
	for _, f := range batch.files {
		changed, err := w.writeIfChanged(ctx, f.url, f.content)
		if err != nil {
			return written, fmt.Errorf("write %s: %w", f.url, err)
		}
		if changed {
			written++
		}
	}
	return written, nil
}

func (w *Writer) writeIfChanged(ctx context.Context, url string, content []byte) (bool, error) {
	if exists, _ := w.fs.Exists(ctx, url); exists {
		existing, err := w.fs.DownloadWithURL(ctx, url)
		if err == nil && bytes.Equal(fingerprint(existing), fingerprint(content)) {
			return false, nil
		}
	}
	dir := path.Dir(url)
	if err := w.fs.Create(ctx, dir, dirMode, true); err != nil {
		return false, err
	}
	if err := w.fs.Upload(ctx, url, fileMode, bytes.NewReader(content)); err != nil {
		return false, err
	}
	return true, nil
}

func fingerprint(content []byte) []byte {
	sum := highwayhash.Sum(content, fingerprintKey)
	return sum[:]
}
