package timeline

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"podtrim/internal/types"
)

func TestCompile_SingleGap(t *testing.T) {
	t.Parallel()

	segs, err := Compile([]Region{{Start: 5, End: 7, Reason: "silence_2000ms"}}, 12, 30)
	if err != nil {
		t.Fatal(err)
	}
	want := []Segment{
		{Type: SegmentKeep, Start: 0, End: 5, Reason: "content", Confidence: 1.0},
		{Type: SegmentCut, Start: 5, End: 7, Reason: "silence_2000ms", Confidence: 1.0},
		{Type: SegmentKeep, Start: 7, End: 12, Reason: "content", Confidence: 1.0},
	}
	if !reflect.DeepEqual(segs, want) {
		t.Fatalf("unexpected plan:\ngot  %v\nwant %v", segs, want)
	}
}

func TestCompile_NoRegions(t *testing.T) {
	t.Parallel()

	segs, err := Compile(nil, 30, 30)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected single keep segment, got %v", segs)
	}
	s := segs[0]
	if s.Type != SegmentKeep || s.Start != 0 || s.End != 30 {
		t.Fatalf("expected keep [0,30], got %v", s)
	}
}

func TestCompile_CutTouchingBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		regions []Region
		want    []SegmentType
	}{
		{
			name:    "cut at start",
			regions: []Region{{Start: 0, End: 2, Reason: "r"}},
			want:    []SegmentType{SegmentCut, SegmentKeep},
		},
		{
			name:    "cut at end",
			regions: []Region{{Start: 8, End: 10, Reason: "r"}},
			want:    []SegmentType{SegmentKeep, SegmentCut},
		},
		{
			name:    "cut covers everything",
			regions: []Region{{Start: 0, End: 10, Reason: "r"}},
			want:    []SegmentType{SegmentCut},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			segs, err := Compile(tc.regions, 10, 30)
			if err != nil {
				t.Fatal(err)
			}
			if len(segs) != len(tc.want) {
				t.Fatalf("expected %d segments, got %v", len(tc.want), segs)
			}
			for i, typ := range tc.want {
				if segs[i].Type != typ {
					t.Fatalf("segment %d: expected %s, got %s", i, typ, segs[i].Type)
				}
				if segs[i].Duration() <= 0 {
					t.Fatalf("segment %d has zero duration: %v", i, segs[i])
				}
			}
		})
	}
}

func TestCompile_RejectsBadRegions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		regions []Region
		total   float64
	}{
		{"region past total", []Region{{Start: 5, End: 15, Reason: "r"}}, 10},
		{"overlapping regions", []Region{{Start: 0, End: 5, Reason: "a"}, {Start: 4, End: 6, Reason: "b"}}, 10},
		{"unsorted regions", []Region{{Start: 5, End: 6, Reason: "a"}, {Start: 1, End: 2, Reason: "b"}}, 10},
		{"zero total", nil, 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Compile(tc.regions, tc.total, 30)
			var invalid *InvalidCutPlanError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidCutPlanError, got %v", err)
			}
		})
	}
}

func TestCompile_ChecksBoundaryFrameAccuracy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		total float64
		fps   int
	}{
		{"infinite total", math.Inf(1), 30},
		{"zero fps", 10, 0},
		{"negative fps", 10, -24},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Compile(nil, tc.total, tc.fps)
			var frameErr *FrameAccuracyError
			if !errors.As(err, &frameErr) {
				t.Fatalf("expected FrameAccuracyError, got %v", err)
			}
		})
	}
}

func TestValidateSegments_Violations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		segs  []Segment
		total float64
	}{
		{"empty", nil, 10},
		{
			"gap",
			[]Segment{
				{Type: SegmentKeep, Start: 0, End: 4},
				{Type: SegmentKeep, Start: 5, End: 10},
			},
			10,
		},
		{
			"overlap",
			[]Segment{
				{Type: SegmentKeep, Start: 0, End: 6},
				{Type: SegmentCut, Start: 5, End: 10},
			},
			10,
		},
		{
			"short of total",
			[]Segment{{Type: SegmentKeep, Start: 0, End: 9}},
			10,
		},
		{
			"zero length segment",
			[]Segment{
				{Type: SegmentKeep, Start: 0, End: 5},
				{Type: SegmentCut, Start: 5, End: 5},
				{Type: SegmentKeep, Start: 5, End: 10},
			},
			10,
		},
		{
			"unknown type",
			[]Segment{{Type: "weird", Start: 0, End: 10}},
			10,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateSegments(tc.segs, tc.total)
			var invalid *InvalidCutPlanError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidCutPlanError, got %v", err)
			}
		})
	}
}

// Gaplessness: detector output compiled through the full chain must
// partition [0,total) exactly for any config.
func TestPipeline_Gaplessness(t *testing.T) {
	t.Parallel()

	tr := types.Transcript{Segments: []types.Segment{
		{Start: 0, End: 3, Text: "a", Words: []types.Word{
			{Start: 0.2, End: 0.5, Word: "um"},
			{Start: 0.6, End: 1.1, Word: "hello"},
		}},
		{Start: 5.5, End: 9, Text: "b"},
		{Start: 9.2, End: 14, Text: "c", Words: []types.Word{
			{Start: 13.0, End: 13.4, Word: "uh"},
		}},
	}}
	total := 15.0

	for _, minPause := range []int{500, 1500, 3000} {
		for _, mergeMs := range []int{0, 500, 2000} {
			segs := compileChain(t, tr, minPause, mergeMs, 0.3, total)
			if err := ValidateSegments(segs, total); err != nil {
				t.Fatalf("minPause=%d merge=%d: %v", minPause, mergeMs, err)
			}
		}
	}
}

// Idempotence: the same input must yield an identical plan, ordering,
// reasons and numeric values included.
func TestPipeline_Idempotence(t *testing.T) {
	t.Parallel()

	tr := types.Transcript{Segments: []types.Segment{
		{Start: 0, End: 3, Text: "a", Words: []types.Word{
			{Start: 0.2, End: 0.5, Word: "um"},
		}},
		{Start: 6, End: 10, Text: "b"},
	}}
	first := compileChain(t, tr, 1500, 500, 0.5, 12)
	second := compileChain(t, tr, 1500, 500, 0.5, 12)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("plans differ across identical runs:\nfirst  %v\nsecond %v", first, second)
	}
}

func compileChain(t *testing.T, tr types.Transcript, minPauseMs, mergeMs int, minCutSec, total float64) []Segment {
	t.Helper()
	regions, err := DetectRegions(tr, DetectorConfig{
		MinPauseMs:       minPauseMs,
		FillerWords:      DefaultFillerWords(),
		FillerPaddingSec: 0.05,
	})
	if err != nil {
		t.Fatal(err)
	}
	segs, err := Compile(FilterRegions(MergeRegions(regions, mergeMs), minCutSec), total, 30)
	if err != nil {
		t.Fatal(err)
	}
	return segs
}
