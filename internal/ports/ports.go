package ports

import (
	"context"
	"time"

	"podtrim/internal/timeline"
	"podtrim/internal/types"
)

// RenderSettings carries the transition parameters the renderer needs
// alongside a render plan.
type RenderSettings struct {
	TransitionDurationMs int
	AudioFadeMs          int
	FPS                  int
}

type VideoTool interface {
	ExtractAudioMono16k(ctx context.Context, in, outWav string) error
	ProbeDuration(ctx context.Context, in string) (time.Duration, error)
	// RenderTimeline renders the keep segments of a computed plan into a
	// single output, crossfading at each join using the plan's fold
	// offsets. The engine only ever supplies the numbers.
	RenderTimeline(ctx context.Context, in string, rp timeline.RenderPlan, settings RenderSettings, out string) error
}

type ASR interface {
	Transcribe(ctx context.Context, wavPath, cacheDir string) (types.Transcript, error)
}
