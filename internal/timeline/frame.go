package timeline

import "math"

// FrameError returns the distance in seconds between a value and the
// nearest frame boundary at the given frame rate.
func FrameError(sec float64, fps int) float64 {
	return math.Abs(sec - RoundToFrame(sec, fps))
}

// RoundToFrame snaps a seconds value to the nearest frame boundary.
func RoundToFrame(sec float64, fps int) float64 {
	return math.Round(sec*float64(fps)) / float64(fps)
}

// CheckFrameAccuracy returns a FrameAccuracyError when the value sits
// more than one frame away from the frame grid, or is not a finite
// number at all. Called inline by plan compilation, render timing and
// cue remapping; never deferred.
func CheckFrameAccuracy(sec float64, fps int) error {
	if fps <= 0 {
		return &FrameAccuracyError{ValueSec: sec, FPS: fps, ErrorSec: math.Inf(1)}
	}
	if math.IsNaN(sec) || math.IsInf(sec, 0) {
		return &FrameAccuracyError{ValueSec: sec, FPS: fps, ErrorSec: math.Inf(1)}
	}
	frameErr := FrameError(sec, fps)
	if frameErr > 1.0/float64(fps) {
		return &FrameAccuracyError{ValueSec: sec, FPS: fps, ErrorSec: frameErr}
	}
	return nil
}
