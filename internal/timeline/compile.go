package timeline

// Compile converts disjoint, sorted cut regions plus the total source
// duration into an ordered, gapless sequence of keep/cut segments.
// The result partitions [0, totalDurationSec) exactly; that contract is
// validated before returning, not assumed, and every boundary is
// checked against the frame grid at fps.
func Compile(regions []Region, totalDurationSec float64, fps int) ([]Segment, error) {
	if totalDurationSec <= 0 {
		return nil, &InvalidCutPlanError{Reason: "total duration must be positive"}
	}

	segs := make([]Segment, 0, 2*len(regions)+1)
	t := 0.0
	for i := range regions {
		r := regions[i]
		if r.Start < t {
			return nil, &InvalidCutPlanError{Reason: "cut regions overlap or are unsorted", Region: &r}
		}
		if r.End > totalDurationSec {
			return nil, &InvalidCutPlanError{Reason: "cut region extends past total duration", Region: &r}
		}
		if r.Start > t {
			segs = append(segs, Segment{
				Type:       SegmentKeep,
				Start:      t,
				End:        r.Start,
				Reason:     "content",
				Confidence: 1.0,
			})
		}
		segs = append(segs, Segment{
			Type:       SegmentCut,
			Start:      r.Start,
			End:        r.End,
			Reason:     r.Reason,
			Confidence: 1.0,
		})
		t = r.End
	}
	if t < totalDurationSec {
		segs = append(segs, Segment{
			Type:       SegmentKeep,
			Start:      t,
			End:        totalDurationSec,
			Reason:     "content",
			Confidence: 1.0,
		})
	}

	if err := ValidateSegments(segs, totalDurationSec); err != nil {
		return nil, err
	}
	for i := range segs {
		if err := CheckFrameAccuracy(segs[i].End, fps); err != nil {
			return nil, err
		}
	}
	return segs, nil
}

// ValidateSegments checks the cut plan contract: segments are
// contiguous and gapless over [0, totalDurationSec], non-overlapping,
// with strictly increasing start times and no zero-length entries.
func ValidateSegments(segs []Segment, totalDurationSec float64) error {
	if len(segs) == 0 {
		return &InvalidCutPlanError{Reason: "empty segment list"}
	}
	prevEnd := 0.0
	for i := range segs {
		s := segs[i]
		if s.Type != SegmentKeep && s.Type != SegmentCut {
			return &InvalidCutPlanError{Reason: "unknown segment type", Segment: &s}
		}
		if s.Start >= s.End {
			return &InvalidCutPlanError{Reason: "segment has non-positive duration", Segment: &s}
		}
		if s.Start != prevEnd {
			return &InvalidCutPlanError{Reason: "segments are not contiguous", Segment: &s}
		}
		prevEnd = s.End
	}
	if prevEnd != totalDurationSec {
		last := segs[len(segs)-1]
		return &InvalidCutPlanError{Reason: "segments do not cover total duration", Segment: &last}
	}
	return nil
}
