// Package crawl walks a dataset's logical file tree as a lazy, depth-first
// pre-order stream of entries, grounded on original_source/src/crawler.rs's
// recursive async generator. Go has no native generator/yield, so the
// stream is modeled the way rclone's fs.ListR callback-to-channel adapters
// do it (see fs/walk): a producer goroutine feeds an unbuffered channel that
// the consumer drains at its own pace, giving the same single-producer,
// lazily-paced semantics spec.md §5 requires.
package crawl

import (
	"context"
	"fmt"

	"github.com/ropensci/datahugger-go/internal/backend"
	"github.com/ropensci/datahugger-go/internal/dherrors"
	"github.com/ropensci/datahugger-go/internal/entry"
	"github.com/ropensci/datahugger-go/internal/httpapi"
	"github.com/ropensci/datahugger-go/internal/progress"
)

// Result is one item off the crawl stream: exactly one of Entry or Err is
// set. The stream terminates (the channel is closed) immediately after the
// first Err, matching crawler.rs's "emit one error and stop" behavior.
type Result struct {
	Entry entry.Entry
	Err   error
}

// Stream walks root depth-first pre-order, yielding a Dir before any entry
// from its subtree, and closes the returned channel when the subtree is
// exhausted or an error has been emitted. Cancelling ctx stops the producer
// promptly without guaranteeing every in-flight listing aborts instantly,
// matching the "propagation by drop" cancellation note in spec.md §5.
func Stream(ctx context.Context, client *httpapi.Client, b backend.Backend, root entry.DirMeta, reporter progress.Reporter) <-chan Result {
	if reporter == nil {
		reporter = progress.Null{}
	}
	out := make(chan Result)
	go func() {
		defer close(out)
		walk(ctx, client, b, root, reporter, out)
	}()
	return out
}

// walk emits root's direct children (files immediately, directories
// followed by their entire recursively-walked subtree), stopping at the
// first error. It returns false once it has emitted an error, signaling the
// caller not to keep going.
func walk(ctx context.Context, client *httpapi.Client, b backend.Backend, dir entry.DirMeta, reporter progress.Reporter, out chan<- Result) bool {
	bar := reporter.Insert(0, fmt.Sprintf("listing %s", dir.Path.String()))
	children, err := b.List(ctx, client, dir)
	bar.Done()
	if err != nil {
		return emitError(ctx, out, err)
	}

	for _, child := range children {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		switch child.Kind {
		case entry.KindFile:
			if !send(ctx, out, Result{Entry: child}) {
				return false
			}
		case entry.KindDir:
			if !send(ctx, out, Result{Entry: child}) {
				return false
			}
			if !walk(ctx, client, b, child.Dir, reporter, out) {
				return false
			}
		}
	}
	return true
}

func emitError(ctx context.Context, out chan<- Result, err error) bool {
	wrapped := &dherrors.CrawlerError{Message: "listing failed after retry", Err: err}
	send(ctx, out, Result{Err: wrapped})
	return false
}

// send delivers r on out, returning false if ctx was cancelled first.
func send(ctx context.Context, out chan<- Result, r Result) bool {
	select {
	case out <- r:
		return true
	case <-ctx.Done():
		return false
	}
}
