package timeline

import "sort"

// MergeRegions folds overlapping and near-adjacent regions into
// disjoint ones. Regions whose gap is at most mergeThresholdMs are
// merged; reasons are concatenated with "+". The sort is stable so
// regions with equal starts merge in their original order.
func MergeRegions(regions []Region, mergeThresholdMs int) []Region {
	if len(regions) == 0 {
		return nil
	}

	sorted := make([]Region, len(regions))
	copy(sorted, regions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	out := make([]Region, 0, len(sorted))
	cur := sorted[0]
	for _, r := range sorted[1:] {
		gapMs := (r.Start - cur.End) * 1000
		if gapMs <= float64(mergeThresholdMs) {
			if r.End > cur.End {
				cur.End = r.End
			}
			cur.Reason = cur.Reason + "+" + r.Reason
			continue
		}
		out = append(out, cur)
		cur = r
	}
	return append(out, cur)
}

// FilterRegions drops regions shorter than minCutDurationSec,
// preserving order.
func FilterRegions(regions []Region, minCutDurationSec float64) []Region {
	var out []Region
	for _, r := range regions {
		if r.Duration() < minCutDurationSec {
			continue
		}
		out = append(out, r)
	}
	return out
}
