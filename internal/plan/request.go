package plan

import (
	"encoding/json"
	"io"

	"podtrim/internal/timeline"
)

// Span is a keep segment interval in a render timeline request.
type Span struct {
	Start Seconds `json:"start"`
	End   Seconds `json:"end"`
}

// RenderRequest is the numeric plan handed to the render-subprocess
// collaborator, which builds its own filter graph from it. The engine
// supplies only numbers, never subprocess invocation.
type RenderRequest struct {
	Keeps       []Span `json:"keeps"`
	DurationMs  int    `json:"duration_ms"`
	AudioFadeMs int    `json:"audio_fade_ms"`
	FPS         int    `json:"fps"`
}

// NewRenderRequest derives the wire request from a computed render
// plan plus the transition settings it was built with.
func NewRenderRequest(rp timeline.RenderPlan, durationMs, audioFadeMs, fps int) RenderRequest {
	keeps := make([]Span, 0, len(rp.Keeps))
	for _, k := range rp.Keeps {
		keeps = append(keeps, Span{Start: Seconds(k.Start), End: Seconds(k.End)})
	}
	if len(rp.Joins) == 0 {
		durationMs = 0
		audioFadeMs = 0
	}
	return RenderRequest{
		Keeps:       keeps,
		DurationMs:  durationMs,
		AudioFadeMs: audioFadeMs,
		FPS:         fps,
	}
}

// EncodeRequest writes the request as indented JSON.
func EncodeRequest(w io.Writer, req RenderRequest) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(req)
}
