package timeline

// BuildRenderPlan computes the expected final duration and the join
// structure for the renderer from a cut plan. With fewer than two keep
// segments or transitions disabled the plan is trim-and-concatenate:
// the expected duration is the plain sum of keep durations and there
// are no joins. Otherwise every adjacent pair of keeps gets one join
// whose overlap is the uniform transition duration and whose fold
// offset comes from the shared cumulative-offset routine.
//
// Zero keep segments is reported as DegenerateInputError; whether that
// is fatal is the caller's policy.
func BuildRenderPlan(segs []Segment, cfg TransitionConfig) (RenderPlan, error) {
	keeps := Keeps(segs)
	if len(keeps) == 0 {
		return RenderPlan{}, &DegenerateInputError{Reason: "cut plan has zero keep segments"}
	}

	offsets, total := keepOffsets(keeps, cfg)
	plan := RenderPlan{
		ExpectedDurationSec: total,
		Keeps:               keeps,
	}

	if cfg.Enabled && len(keeps) >= 2 {
		overlap := cfg.overlapSec()
		plan.Joins = make([]Join, 0, len(keeps)-1)
		for i := 1; i < len(keeps); i++ {
			plan.Joins = append(plan.Joins, Join{
				Index:         i - 1,
				PriorKeepEnd:  keeps[i-1].End,
				NextKeepStart: keeps[i].Start,
				OverlapSec:    overlap,
				OffsetSec:     offsets[i],
			})
		}
	}

	if err := CheckFrameAccuracy(plan.ExpectedDurationSec, cfg.FPS); err != nil {
		return RenderPlan{}, err
	}
	return plan, nil
}
