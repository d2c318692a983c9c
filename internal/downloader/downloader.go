// Package downloader consumes a crawl stream and writes every file to a
// destination directory, verifying size and checksum against the metadata
// the backend reported, grounded on original_source/src/download.rs and
// the bounded-concurrency fan-out pattern rclone's sync package and
// bodaay-HuggingFaceModelDownloader use golang.org/x/sync/semaphore for.
package downloader

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/ropensci/datahugger-go/internal/backend"
	"github.com/ropensci/datahugger-go/internal/crawl"
	"github.com/ropensci/datahugger-go/internal/dherrors"
	"github.com/ropensci/datahugger-go/internal/entry"
	"github.com/ropensci/datahugger-go/internal/httpapi"
	"github.com/ropensci/datahugger-go/internal/logging"
	"github.com/ropensci/datahugger-go/internal/progress"
)

// Dataset pairs a resolved backend with the record it lists, everything
// DownloadWithValidation needs to start a crawl at the dataset root.
type Dataset struct {
	Backend  backend.Backend
	RecordID string
}

// unlimited is the sentinel concurrency limit meaning "no bound", matching
// spec.md §4.H's "0 means unlimited".
const unlimited = 0

// DownloadWithValidation crawls dataset's entire tree and writes every file
// under dstRoot, applying a bounded-concurrency fan-out over file downloads.
// Directory creation happens inline with the (single-producer) crawl, never
// fanned out, since crawl order already guarantees a directory is observed
// before its children. The first error aborts the whole operation.
func DownloadWithValidation(ctx context.Context, client *httpapi.Client, dataset Dataset, dstRoot string, reporter progress.Reporter, concurrencyLimit int64) error {
	if reporter == nil {
		reporter = progress.Null{}
	}

	root := entry.NewRootDir(dataset.Backend.RootURL(dataset.RecordID))

	var sem *semaphore.Weighted
	if concurrencyLimit > unlimited {
		sem = semaphore.NewWeighted(concurrencyLimit)
	}

	cancelCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, gctx := errgroup.WithContext(cancelCtx)
	stream := crawl.Stream(gctx, client, dataset.Backend, root, reporter)

	var crawlErr error
consume:
	for result := range stream {
		if result.Err != nil {
			crawlErr = result.Err
			cancel()
			break consume
		}

		switch result.Entry.Kind {
		case entry.KindDir:
			if err := mkdirAll(dstRoot, result.Entry.Dir.Path.Relative()); err != nil {
				crawlErr = err
				cancel()
				break consume
			}
		case entry.KindFile:
			file := result.Entry.File
			if sem != nil {
				if err := sem.Acquire(gctx, 1); err != nil {
					crawlErr = dherrors.NewDownloadError("acquire concurrency slot", err, dherrors.Temporary)
					cancel()
					break consume
				}
			}
			group.Go(func() error {
				if sem != nil {
					defer sem.Release(1)
				}
				return downloadOne(gctx, client, dstRoot, file, reporter)
			})
		}
	}

	waitErr := group.Wait()
	if crawlErr != nil {
		return crawlErr
	}
	return waitErr
}

// mkdirAll creates relPath (relative to root) and all missing parents,
// tolerating a directory that already exists, per spec.md §8 invariant 7.
func mkdirAll(root, relPath string) error {
	if relPath == "" {
		relPath = "."
	}
	dst := filepath.Join(root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return dherrors.NewDownloadError(fmt.Sprintf("mkdir %s", dst), err, dherrors.Permanent)
	}
	return nil
}

func downloadOne(ctx context.Context, client *httpapi.Client, dstRoot string, file entry.FileMeta, reporter progress.Reporter) error {
	label := file.Path.Relative()
	bar := reporter.Insert(0, label)
	defer bar.Done()
	if file.Size != nil {
		bar.SetTotal(int64(*file.Size))
	}

	dst := filepath.Join(dstRoot, filepath.FromSlash(label))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return dherrors.NewDownloadError(fmt.Sprintf("mkdir parent of %s", dst), err, dherrors.Permanent)
	}

	resp, err := client.Get(ctx, file.DownloadURL)
	if err != nil {
		return toDownloadError(fmt.Sprintf("GET %s", file.DownloadURL), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return dherrors.NewDownloadError(fmt.Sprintf("status %d from %s", resp.StatusCode, file.DownloadURL), nil, dherrors.Permanent)
	}

	out, err := os.Create(dst)
	if err != nil {
		return dherrors.NewDownloadError(fmt.Sprintf("create %s", dst), err, dherrors.Permanent)
	}
	defer out.Close()

	preferred, hasChecksum := entry.PreferredChecksum(file.Checksum)
	var h hash.Hash
	if hasChecksum {
		switch preferred.Kind {
		case entry.SHA256:
			h = sha256.New()
		case entry.MD5:
			h = md5.New()
		}
	}

	writer := io.Writer(out)
	if h != nil {
		writer = io.MultiWriter(out, h)
	}

	counter := &countingWriter{w: writer}
	if _, err := io.Copy(counter, &progressReader{r: resp.Body, bar: bar}); err != nil {
		return dherrors.NewDownloadError(fmt.Sprintf("stream body of %s", file.DownloadURL), err, dherrors.Temporary)
	}

	logging.WithRemote(file.DownloadURL).WithField("bytes", counter.n).Debug("download complete")

	if file.Size != nil && counter.n != int64(*file.Size) {
		return dherrors.NewDownloadError(
			fmt.Sprintf("size mismatch for %s: got %d want %d", dst, counter.n, *file.Size), nil, dherrors.Permanent)
	}
	if hasChecksum {
		got := hex.EncodeToString(h.Sum(nil))
		if got != preferred.Hex {
			return dherrors.NewDownloadError(
				fmt.Sprintf("checksum mismatch for %s: got %s want %s", dst, got, preferred.Hex), nil, dherrors.Permanent)
		}
	}
	return nil
}

// toDownloadError recovers the inner StatusError's classification, if any,
// so a transport or 5xx failure that client.Get already exhausted its
// retries on surfaces with the right status instead of defaulting Permanent.
func toDownloadError(message string, err error) error {
	if se, ok := err.(dherrors.StatusError); ok {
		return dherrors.NewDownloadError(message, err, se.Status())
	}
	return dherrors.NewDownloadError(message, err, dherrors.Temporary)
}

// countingWriter tallies bytes written, feeding the size-verification step.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// progressReader advances a Bar as bytes are read, so the caller's io.Copy
// drives both the write and the progress update from a single read loop.
type progressReader struct {
	r   io.Reader
	bar progress.Bar
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.bar.Increment(int64(n))
	}
	return n, err
}
