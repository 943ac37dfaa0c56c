package stretch

import (
	"context"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const (
	modeSingle = "single"
	modeBatch  = "batch"
)

var (
	modeKey = tag.MustNewKey("mode")

	singleMutator = tag.Insert(modeKey, modeSingle)
	batchMutator  = tag.Insert(modeKey, modeBatch)

	recomputeCount   = stats.Int64("stretchwarp/recomputes", "Full recomputes of anchor local transforms", stats.UnitDimensionless)
	recomputeAnchors = stats.Int64("stretchwarp/recompute_anchors", "Anchors in the set at each recompute", stats.UnitDimensionless)
	warpedPoints     = stats.Int64("stretchwarp/warped_points", "Points passed through a warp", stats.UnitDimensionless)

	RecomputeCountView = &view.View{
		Name:        "stretchwarp/recomputes",
		Description: "Counter of local transform recomputes",
		Measure:     recomputeCount,
		Aggregation: view.Count(),
	}

	RecomputeAnchorsView = &view.View{
		Name:        "stretchwarp/recompute_anchors",
		Description: "Distribution of anchor counts at recompute",
		Measure:     recomputeAnchors,
		Aggregation: view.Distribution(1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024),
	}

	WarpedPointsView = &view.View{
		Name:        "stretchwarp/warped_points",
		Description: "Sum of warped points",
		TagKeys:     []tag.Key{modeKey},
		Measure:     warpedPoints,
		Aggregation: view.Sum(),
	}
)

// RegisterMetrics registers the package's views with the default exporter
// pipeline.
func RegisterMetrics() error {
	return view.Register(RecomputeCountView, RecomputeAnchorsView, WarpedPointsView)
}

// UnregisterMetrics undoes RegisterMetrics.
func UnregisterMetrics() {
	view.Unregister(RecomputeCountView, RecomputeAnchorsView, WarpedPointsView)
}

func recordRecompute(anchors int) {
	stats.Record(context.Background(), recomputeCount.M(1), recomputeAnchors.M(int64(anchors)))
}

// FlushMetrics reports Transform calls counted since the last flush.  Single
// point warps are tallied on the set and only reach the warped points
// measure here, at each recompute and when TransformAll finishes.
func (s *AnchorSet) FlushMetrics() {
	if s.unrecordedWarps == 0 {
		return
	}
	recordWarped(context.Background(), singleMutator, s.unrecordedWarps)
	s.unrecordedWarps = 0
}

func recordWarped(ctx context.Context, mode tag.Mutator, n int64) {
	stats.RecordWithOptions(
		ctx,
		stats.WithTags(mode),
		stats.WithMeasurements(warpedPoints.M(n)))
}
