package timeline

// RemapCues maps ordered original-timeline cues through the keep
// segments of a cut plan into final-timeline coordinates, using the
// same cumulative-offset routine as BuildRenderPlan so caption timing
// and render timing can never drift apart. Cues fully inside a cut
// region come back with Dropped set; cues that straddle a keep
// boundary are clipped to it. Final times are rounded to the frame
// grid and never exceed the expected render duration.
func RemapCues(cues []Cue, segs []Segment, cfg TransitionConfig) ([]MappedCue, error) {
	if err := validateOrdered(cues); err != nil {
		return nil, err
	}
	keeps := Keeps(segs)
	if len(keeps) == 0 {
		return nil, &DegenerateInputError{Reason: "cut plan has zero keep segments"}
	}
	offsets, total := keepOffsets(keeps, cfg)

	out := make([]MappedCue, 0, len(cues))
	for _, c := range cues {
		mapped := MappedCue{
			OriginalStart: c.Start,
			OriginalEnd:   c.End,
			Text:          c.Text,
			Dropped:       true,
		}

		// Keeps are ordered, so the first overlapping keep is the one
		// the cue lands in; any remainder past its end was cut.
		for i, k := range keeps {
			if k.End <= c.Start || k.Start >= c.End {
				continue
			}
			cs := max64(c.Start, k.Start)
			ce := min64(c.End, k.End)
			fs := RoundToFrame(cs-k.Start+offsets[i], cfg.FPS)
			fe := RoundToFrame(ce-k.Start+offsets[i], cfg.FPS)
			// The tail of a non-last keep is consumed by the crossfade:
			// mapped times must not pass the fold offset where the next
			// keep starts, or cues would leapfrog each other.
			if i < len(keeps)-1 {
				fold := RoundToFrame(offsets[i+1], cfg.FPS)
				if fe > fold {
					fe = fold
				}
				if fs > fold {
					fs = fold
				}
			}
			if fe > total {
				fe = total
			}
			if fs > fe {
				fs = fe
			}
			if err := CheckFrameAccuracy(fe, cfg.FPS); err != nil {
				return nil, err
			}
			mapped.FinalStart = fs
			mapped.FinalEnd = fe
			mapped.Dropped = false
			break
		}
		out = append(out, mapped)
	}
	return out, nil
}

func validateOrdered(cues []Cue) error {
	prev := 0.0
	for i, c := range cues {
		if c.End < c.Start {
			return &InvalidTranscriptError{Reason: "cue ends before it starts"}
		}
		if i > 0 && c.Start < prev {
			return &InvalidTranscriptError{Reason: "cues are not ordered by start time"}
		}
		prev = c.Start
	}
	return nil
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
