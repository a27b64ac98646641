// Package timeline turns transcript timing plus cut decisions into a
// canonical cut plan, an expected final-render duration with crossfade
// join structure, and a remapping of original-timeline intervals into
// final-timeline coordinates. All three outputs derive their segment
// boundaries from the same interval model so the planner, renderer and
// captioner can never disagree.
//
// Everything in this package is a pure transform over explicit inputs:
// no I/O, no globals, safe to call concurrently across unrelated jobs.
package timeline

type SegmentType string

const (
	SegmentKeep SegmentType = "keep"
	SegmentCut  SegmentType = "cut"
)

// Region is a candidate span to remove from the original timeline,
// produced by detection and narrowed by merging and filtering.
type Region struct {
	Start  float64
	End    float64
	Reason string
}

func (r Region) Duration() float64 { return r.End - r.Start }

// Segment is one entry of the cut plan: a keep or cut span. A valid
// plan is a gapless, non-overlapping partition of [0, totalDuration).
type Segment struct {
	Type       SegmentType
	Start      float64
	End        float64
	Reason     string
	Confidence float64
}

func (s Segment) Duration() float64 { return s.End - s.Start }

// Join is the boundary between two adjacent keep segments in the final
// render. OffsetSec is the final-timeline offset at which the next keep
// begins, i.e. the cumulative emitted duration so far minus one
// transition overlap.
type Join struct {
	Index         int
	PriorKeepEnd  float64
	NextKeepStart float64
	OverlapSec    float64
	OffsetSec     float64
}

// RenderPlan describes the expected final render: per-keep trim nodes
// folded pairwise at each join. It is a pure function of the cut plan
// and the transition config and is never persisted independently.
type RenderPlan struct {
	ExpectedDurationSec float64
	Joins               []Join
	Keeps               []Segment
}

// Cue is an arbitrary original-timeline interval, typically a caption.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// MappedCue is a cue translated into final-timeline coordinates.
// Dropped cues fell entirely inside a cut region; their final times are
// zero and must be ignored by consumers.
type MappedCue struct {
	OriginalStart float64
	OriginalEnd   float64
	FinalStart    float64
	FinalEnd      float64
	Dropped       bool
	Text          string
}

func (m MappedCue) FinalDuration() float64 { return m.FinalEnd - m.FinalStart }

// TransitionConfig controls crossfade joins between keep segments.
// FPS is the target frame rate used for frame-accuracy checks and cue
// rounding; it must be positive.
type TransitionConfig struct {
	Enabled    bool
	DurationMs int
	FPS        int
}

func (c TransitionConfig) overlapSec() float64 {
	if !c.Enabled {
		return 0
	}
	return float64(c.DurationMs) / 1000.0
}

// Keeps returns the keep segments of a plan in order.
func Keeps(segs []Segment) []Segment {
	var out []Segment
	for _, s := range segs {
		if s.Type == SegmentKeep {
			out = append(out, s)
		}
	}
	return out
}
