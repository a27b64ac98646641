package timeline

import (
	"errors"
	"testing"
)

func twoKeepPlan() []Segment {
	return []Segment{
		{Type: SegmentKeep, Start: 0, End: 5, Reason: "content", Confidence: 1.0},
		{Type: SegmentCut, Start: 5, End: 10, Reason: "silence_5000ms", Confidence: 1.0},
		{Type: SegmentKeep, Start: 10, End: 15, Reason: "content", Confidence: 1.0},
	}
}

func TestBuildRenderPlan_TransitionsEnabled(t *testing.T) {
	t.Parallel()

	rp, err := BuildRenderPlan(twoKeepPlan(), TransitionConfig{Enabled: true, DurationMs: 300, FPS: 30})
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(rp.ExpectedDurationSec, 9.7) {
		t.Fatalf("expected duration 9.7, got %v", rp.ExpectedDurationSec)
	}
	if len(rp.Joins) != 1 {
		t.Fatalf("expected 1 join, got %v", rp.Joins)
	}
	j := rp.Joins[0]
	if j.Index != 0 || j.PriorKeepEnd != 5 || j.NextKeepStart != 10 {
		t.Fatalf("unexpected join: %+v", j)
	}
	if !almostEqual(j.OverlapSec, 0.3) {
		t.Fatalf("expected overlap 0.3, got %v", j.OverlapSec)
	}
	if !almostEqual(j.OffsetSec, 4.7) {
		t.Fatalf("expected fold offset 4.7, got %v", j.OffsetSec)
	}
}

func TestBuildRenderPlan_TransitionsDisabled(t *testing.T) {
	t.Parallel()

	rp, err := BuildRenderPlan(twoKeepPlan(), TransitionConfig{Enabled: false, DurationMs: 300, FPS: 30})
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(rp.ExpectedDurationSec, 10) {
		t.Fatalf("expected plain sum 10, got %v", rp.ExpectedDurationSec)
	}
	if len(rp.Joins) != 0 {
		t.Fatalf("expected no joins, got %v", rp.Joins)
	}
}

func TestBuildRenderPlan_SingleKeepNoJoins(t *testing.T) {
	t.Parallel()

	segs := []Segment{{Type: SegmentKeep, Start: 0, End: 30, Reason: "content", Confidence: 1.0}}
	rp, err := BuildRenderPlan(segs, TransitionConfig{Enabled: true, DurationMs: 300, FPS: 30})
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(rp.ExpectedDurationSec, 30) {
		t.Fatalf("expected full duration, got %v", rp.ExpectedDurationSec)
	}
	if len(rp.Joins) != 0 {
		t.Fatalf("single keep must have no joins, got %v", rp.Joins)
	}
}

func TestBuildRenderPlan_ZeroKeeps(t *testing.T) {
	t.Parallel()

	segs := []Segment{{Type: SegmentCut, Start: 0, End: 10, Reason: "silence_10000ms", Confidence: 1.0}}
	_, err := BuildRenderPlan(segs, TransitionConfig{Enabled: true, DurationMs: 300, FPS: 30})
	var degenerate *DegenerateInputError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateInputError, got %v", err)
	}
}

func TestBuildRenderPlan_ManyJoins_IncrementalOffsets(t *testing.T) {
	t.Parallel()

	// 20 one-second keeps separated by cuts: the fold offsets must walk
	// forward one keep minus one overlap at a time.
	var segs []Segment
	for i := 0; i < 20; i++ {
		start := float64(i * 2)
		segs = append(segs, Segment{Type: SegmentKeep, Start: start, End: start + 1, Reason: "content", Confidence: 1.0})
		if i < 19 {
			segs = append(segs, Segment{Type: SegmentCut, Start: start + 1, End: start + 2, Reason: "silence_1000ms", Confidence: 1.0})
		}
	}
	cfg := TransitionConfig{Enabled: true, DurationMs: 200, FPS: 30}
	rp, err := BuildRenderPlan(segs, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(rp.Joins) != 19 {
		t.Fatalf("expected 19 joins, got %d", len(rp.Joins))
	}
	if !almostEqual(rp.ExpectedDurationSec, 20-19*0.2) {
		t.Fatalf("expected %v, got %v", 20-19*0.2, rp.ExpectedDurationSec)
	}
	prev := 0.0
	for i, j := range rp.Joins {
		if j.OffsetSec <= prev && i > 0 {
			t.Fatalf("join %d: offsets must increase, got %v after %v", i, j.OffsetSec, prev)
		}
		if !almostEqual(j.OffsetSec, float64(i+1)*1-float64(i+1)*0.2) {
			t.Fatalf("join %d: expected offset %v, got %v", i, float64(i+1)*0.8, j.OffsetSec)
		}
		prev = j.OffsetSec
	}
}

func TestCheckFrameAccuracy(t *testing.T) {
	t.Parallel()

	if err := CheckFrameAccuracy(9.7, 30); err != nil {
		t.Fatalf("9.7s at 30fps is within tolerance: %v", err)
	}
	if err := CheckFrameAccuracy(0, 30); err != nil {
		t.Fatalf("zero is frame aligned: %v", err)
	}
	var frameErr *FrameAccuracyError
	if err := CheckFrameAccuracy(1, 0); !errors.As(err, &frameErr) {
		t.Fatalf("expected FrameAccuracyError for non-positive fps, got %v", err)
	}
}

func TestRoundToFrame(t *testing.T) {
	t.Parallel()

	cases := []struct {
		sec  float64
		fps  int
		want float64
	}{
		{0.02, 30, 1.0 / 30}, // nearest frame is 1/30
		{0.01, 30, 0},
		{1.0, 30, 1.0},
	}
	for _, tc := range cases {
		got := RoundToFrame(tc.sec, tc.fps)
		if !almostEqual(got, tc.want) {
			t.Errorf("RoundToFrame(%v,%d) = %v, want %v", tc.sec, tc.fps, got, tc.want)
		}
	}
}
