package timeline

// keepOffsets is the single cumulative-offset routine shared by the
// render timeline builder and the timestamp remapper. For each keep
// segment it returns the final-timeline offset at which that segment
// begins, plus the total emitted duration. The offset is accumulated
// incrementally, one segment at a time, so rounding error cannot
// compound differently between the two consumers.
func keepOffsets(keeps []Segment, cfg TransitionConfig) (offsets []float64, totalSec float64) {
	overlap := 0.0
	if len(keeps) >= 2 {
		overlap = cfg.overlapSec()
	}

	offsets = make([]float64, len(keeps))
	cum := 0.0
	for i, k := range keeps {
		offsets[i] = cum
		cum += k.Duration()
		if i < len(keeps)-1 {
			cum -= overlap
		}
	}
	return offsets, cum
}
