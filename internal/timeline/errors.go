package timeline

import "fmt"

// InvalidTranscriptError reports a transcript the detector cannot work
// with, such as a missing or empty segment list.
type InvalidTranscriptError struct {
	Reason string
}

func (e *InvalidTranscriptError) Error() string {
	return "invalid transcript: " + e.Reason
}

// InvalidCutPlanError reports a cut plan that violates the partition
// contract: regions outside [0,totalDuration], overlapping segments, or
// non-monotonic ordering. The offending segment or region is attached
// for diagnosis.
type InvalidCutPlanError struct {
	Reason  string
	Segment *Segment
	Region  *Region
}

func (e *InvalidCutPlanError) Error() string {
	switch {
	case e.Segment != nil:
		return fmt.Sprintf("invalid cut plan: %s (segment %s [%.3f,%.3f])", e.Reason, e.Segment.Type, e.Segment.Start, e.Segment.End)
	case e.Region != nil:
		return fmt.Sprintf("invalid cut plan: %s (region [%.3f,%.3f] %s)", e.Reason, e.Region.Start, e.Region.End, e.Region.Reason)
	default:
		return "invalid cut plan: " + e.Reason
	}
}

// FrameAccuracyError reports a computed boundary outside the ±1 frame
// tolerance at the target frame rate.
type FrameAccuracyError struct {
	ValueSec float64
	FPS      int
	ErrorSec float64
}

func (e *FrameAccuracyError) Error() string {
	return fmt.Sprintf("frame accuracy exceeded: %.6fs is %.6fs off the frame grid at %d fps (tolerance %.6fs)",
		e.ValueSec, e.ErrorSec, e.FPS, 1.0/float64(e.FPS))
}

// DegenerateInputError reports an input that produced no usable output,
// such as a plan with zero keep segments. Callers decide whether this
// is fatal.
type DegenerateInputError struct {
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return "degenerate input: " + e.Reason
}
