// Package asyncsign offloads a single CPU-bound attestation call — PBKDF2
// at 120,000 iterations dominates its latency — to a background worker so
// the calling goroutine is not blocked for the duration of the decrypt.
//
// The core signing pipeline is synchronous and stateless; this package
// adds no state of its own beyond one in-flight call per Run.
package asyncsign

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run executes work on a single background worker and waits for either
// its completion or ctx's cancellation. If ctx is canceled first, Run
// returns ctx.Err() immediately; work may still complete in the
// background, but its result is discarded and no partial state escapes
// this call.
//
// Concurrent calls to Run sharing an underlying resource (for example,
// two signing calls against the same swap-file entry) are independent:
// there are no ordering guarantees between them, and the core's own
// "last write wins" cache update is benign because every successful
// derivation yields identical bytes.
func Run(ctx context.Context, work func() (string, error)) (string, error) {
	g, _ := errgroup.WithContext(ctx)

	result := make(chan string, 1)
	g.Go(func() error {
		out, err := work()
		if err != nil {
			return err
		}
		result <- out
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-done:
		if err != nil {
			return "", err
		}
		return <-result, nil
	}
}

// Pool runs a bounded number of Run-style calls concurrently, returning
// as soon as all complete or ctx is canceled. Errors from individual
// calls are collected positionally; a nil ctx.Err() with a non-nil
// per-index error means that one call failed on its own terms.
func Pool(ctx context.Context, maxWorkers int, works []func() (string, error)) ([]string, []error) {
	results := make([]string, len(works))
	errsOut := make([]error, len(works))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for i, w := range works {
		i, w := i, w
		g.Go(func() error {
			out, err := Run(gctx, func() (string, error) { return w() })
			results[i] = out
			errsOut[i] = err
			return nil
		})
	}
	_ = g.Wait()

	return results, errsOut
}
