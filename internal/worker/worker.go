// Package worker drives the Clip Renderer loop across a segment set,
// optionally in parallel, using a bounded buffered-channel semaphore
// together with an errgroup.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/bobarin/clipper/internal/analysis"
)

// recoverableError is satisfied by pipeline.Error without this package
// importing the pipeline package: any error reporting Recoverable()
// true is absorbed per-clip instead of aborting the render loop.
type recoverableError interface {
	Recoverable() bool
}

func isRecoverable(err error) bool {
	var re recoverableError
	return errors.As(err, &re) && re.Recoverable()
}

// ClipResult is one Renderer outcome: either a successful output path
// or a per-clip failure that did not abort the request.
type ClipResult struct {
	Segment    analysis.AcceptedSegment
	Index      int
	OutputPath string
	Err        error
}

// RenderFunc renders one accepted segment to an output file.
type RenderFunc func(ctx context.Context, segment analysis.AcceptedSegment, index int) (string, error)

// Pool bounds concurrent clip renders — ffmpeg encodes are CPU/RAM
// intensive, so even a "parallel" render loop caps in-flight encodes.
type Pool struct {
	renderSem chan struct{}
}

// New builds a Pool. parallelism <= 1 serialises renders (the simple,
// default mode from §5); any higher value bounds the worker count.
func New(parallelism int) *Pool {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Pool{renderSem: make(chan struct{}, parallelism)}
}

// withSemaphore acquires a slot, runs fn, and releases the slot when
// done. Returns immediately if ctx is cancelled while waiting.
func (p *Pool) withSemaphore(ctx context.Context, label string, fn func() error) error {
	select {
	case p.renderSem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("%s: cancelled while waiting for render slot: %w", label, ctx.Err())
	}
	defer func() { <-p.renderSem }()
	return fn()
}

// RenderAll runs render across every accepted segment. A ClipRenderFailed
// error from one segment is recorded on its ClipResult and does not
// cancel the others (§4.4's failure semantics); any other error
// (notably Cancelled) aborts the remaining work via the shared errgroup
// context. Each segment gets its own child context so that manually
// cancelling one in-flight render (not currently exposed, but kept
// available for a future per-clip timeout) can't affect its siblings.
func (p *Pool) RenderAll(ctx context.Context, segments []analysis.AcceptedSegment, render RenderFunc) ([]ClipResult, error) {
	results := make([]ClipResult, len(segments))
	g, gctx := errgroup.WithContext(ctx)

	for i, segment := range segments {
		i, segment := i, segment
		g.Go(func() error {
			label := fmt.Sprintf("render:clip_%d", i)
			return p.withSemaphore(gctx, label, func() error {
				clipCtx, cancel := context.WithCancel(gctx)
				defer cancel()

				outputPath, err := render(clipCtx, segment, i)
				if err != nil {
					if isRecoverable(err) {
						log.Printf("worker: clip %d render failed, continuing: %v", i, err)
						results[i] = ClipResult{Segment: segment, Index: i, Err: err}
						return nil
					}
					return err
				}

				results[i] = ClipResult{Segment: segment, Index: i, OutputPath: outputPath}
				return nil
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
