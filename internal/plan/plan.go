// Package plan serializes the cut plan document and the render
// timeline request exchanged with downstream collaborators. Times go
// on the wire as fixed-point seconds strings so boundary values stay
// stable across tools regardless of their float formatting.
package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"podtrim/internal/timeline"
)

const SchemaVersion = 1

// Seconds is a seconds value serialized as a fixed-point string with
// millisecond precision ("7.000"). Decoding accepts both the string
// form and a bare JSON number for compatibility with older producers.
type Seconds float64

func (s Seconds) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatFloat(float64(s), 'f', 3, 64))), nil
}

func (s *Seconds) UnmarshalJSON(b []byte) error {
	str := string(b)
	if unquoted, err := strconv.Unquote(str); err == nil {
		str = unquoted
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return fmt.Errorf("parse seconds %q: %w", string(b), err)
	}
	*s = Seconds(v)
	return nil
}

// Document is the cut plan document, the single source of truth from
// which render timing and caption remapping are derived.
type Document struct {
	SchemaVersion int      `json:"schema_version"`
	Cuts          []Cut    `json:"cuts"`
	Metadata      Metadata `json:"metadata"`
}

type Cut struct {
	Start      Seconds `json:"start"`
	End        Seconds `json:"end"`
	Type       string  `json:"type"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

type Metadata struct {
	Parameters       Parameters `json:"parameters"`
	ProcessingTimeMs int64      `json:"processing_time_ms"`
}

// Parameters records the configuration the plan was computed with, so
// a plan can be audited and reproduced later.
type Parameters struct {
	MinPauseMs           int      `json:"min_pause_ms"`
	FillerWords          []string `json:"filler_words,omitempty"`
	FillerPaddingSec     float64  `json:"filler_padding_sec"`
	MergeThresholdMs     int      `json:"merge_threshold_ms"`
	MinCutDurationSec    float64  `json:"min_cut_duration_sec"`
	TransitionsEnabled   bool     `json:"transitions_enabled"`
	TransitionDurationMs int      `json:"transition_duration_ms"`
	TargetFPS            int      `json:"target_fps"`
}

// FromSegments builds a document from a validated cut plan.
func FromSegments(segs []timeline.Segment, params Parameters, processingTimeMs int64) Document {
	cuts := make([]Cut, 0, len(segs))
	for _, s := range segs {
		cuts = append(cuts, Cut{
			Start:      Seconds(s.Start),
			End:        Seconds(s.End),
			Type:       string(s.Type),
			Reason:     s.Reason,
			Confidence: s.Confidence,
		})
	}
	return Document{
		SchemaVersion: SchemaVersion,
		Cuts:          cuts,
		Metadata: Metadata{
			Parameters:       params,
			ProcessingTimeMs: processingTimeMs,
		},
	}
}

// Segments converts the document back into an engine cut plan and
// re-validates the partition contract against the last cut's end.
func (d Document) Segments() ([]timeline.Segment, error) {
	if len(d.Cuts) == 0 {
		return nil, &timeline.InvalidCutPlanError{Reason: "document has no cuts"}
	}
	segs := make([]timeline.Segment, 0, len(d.Cuts))
	for _, c := range d.Cuts {
		segs = append(segs, timeline.Segment{
			Type:       timeline.SegmentType(c.Type),
			Start:      float64(c.Start),
			End:        float64(c.End),
			Reason:     c.Reason,
			Confidence: c.Confidence,
		})
	}
	total := float64(d.Cuts[len(d.Cuts)-1].End)
	if err := timeline.ValidateSegments(segs, total); err != nil {
		return nil, err
	}
	return segs, nil
}

// TotalDuration is the end of the last cut, i.e. the original source
// duration the plan partitions.
func (d Document) TotalDuration() float64 {
	if len(d.Cuts) == 0 {
		return 0
	}
	return float64(d.Cuts[len(d.Cuts)-1].End)
}

// Encode writes the document as indented JSON.
func (d Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Decode reads a document and checks its schema version.
func Decode(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode cut plan: %w", err)
	}
	if d.SchemaVersion != SchemaVersion {
		return Document{}, fmt.Errorf("unsupported cut plan schema version %d", d.SchemaVersion)
	}
	return d, nil
}
