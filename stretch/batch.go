package stretch

import (
	"context"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/xerrors"

	"stretchwarp/vmath/vec3"
)

const defaultChunkSize = 1024

type batchOptions struct {
	workers   int
	chunkSize int
}

type BatchOption func(*batchOptions)

// WithWorkers bounds the number of chunks warped at once.  Values below 1
// mean 1.
func WithWorkers(n int) BatchOption {
	return func(o *batchOptions) {
		o.workers = n
	}
}

// WithChunkSize sets how many consecutive points one worker warps per task.
func WithChunkSize(n int) BatchOption {
	return func(o *batchOptions) {
		o.chunkSize = n
	}
}

// TransformAll warps every point and returns the results in input order.
//
// The set is brought up to date once, then shared read-only between workers,
// so the caller must not touch it until TransformAll returns.  Cancelling ctx
// stops the work between chunks.
func TransformAll(ctx context.Context, s *AnchorSet, points []vec3.T, opts ...BatchOption) ([]vec3.T, error) {
	o := batchOptions{
		workers:   runtime.GOMAXPROCS(0),
		chunkSize: defaultChunkSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	if o.chunkSize < 1 {
		o.chunkSize = 1
	}

	tracer := otel.Tracer("stretchwarp/stretch")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "stretch.TransformAll")
	defer span.End()
	span.SetAttributes(
		attribute.Int("points", len(points)),
		attribute.Int("anchors", s.AnchorCount()),
		attribute.Int("workers", o.workers),
	)

	if !s.upToDate {
		s.UpdateAnchorMatrices()
	}
	origins := positions(s.anchors, RoleOrigin)

	out := make([]vec3.T, len(points))
	sem := semaphore.NewWeighted(int64(o.workers))
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(points); lo += o.chunkSize {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}

		lo, hi := lo, min(lo+o.chunkSize, len(points))
		g.Go(func() error {
			defer sem.Release(1)
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				out[i] = s.warp(points[i], origins)
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, xerrors.Errorf("while warping %d points: %w", len(points), err)
	}

	s.FlushMetrics()
	recordWarped(ctx, batchMutator, int64(len(points)))
	return out, nil
}
