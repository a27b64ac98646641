package usecase

import (
	"bytes"
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"podtrim/internal/plan"
	"podtrim/internal/ports"
	"podtrim/internal/subtitles"
	"podtrim/internal/timeline"
	"podtrim/internal/types"
)

type Deps struct {
	Video ports.VideoTool
	ASR   ports.ASR
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	RunID    string
	Input    string
	CacheDir string
	OutDir   string

	Detect            timeline.DetectorConfig
	MergeThresholdMs  int
	MinCutDurationSec float64
	Transition        timeline.TransitionConfig
	AudioFadeMs       int

	Logf func(format string, args ...any)
}

type Result struct {
	Manifest types.Manifest
	Segments []timeline.Segment
	Render   timeline.RenderPlan
}

// Run drives the whole job: extract audio, transcribe, compute the cut
// plan, derive render timing, render the final cut, and retime the
// captions. All derived outputs come from the one plan.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	wav := filepath.Join(in.CacheDir, "audio.wav")
	if _, err := os.Stat(wav); err != nil {
		if err := u.d.Video.ExtractAudioMono16k(ctx, in.Input, wav); err != nil {
			return Result{}, err
		}
	} else {
		logf("reusing cached audio: %s", wav)
	}

	tr, err := u.d.ASR.Transcribe(ctx, wav, in.CacheDir)
	if err != nil {
		return Result{}, err
	}
	logf("transcribed: %d segments", len(tr.Segments))

	total, err := u.d.Video.ProbeDuration(ctx, in.Input)
	if err != nil {
		return Result{}, err
	}
	totalSec := total.Seconds()

	started := time.Now()
	regions, err := timeline.DetectRegions(tr, in.Detect)
	if err != nil {
		return Result{}, err
	}
	merged := timeline.MergeRegions(regions, in.MergeThresholdMs)
	filtered := timeline.FilterRegions(merged, in.MinCutDurationSec)
	segs, err := timeline.Compile(filtered, totalSec, in.Transition.FPS)
	if err != nil {
		return Result{}, err
	}
	logf("cut plan: %d regions detected, %d after merge, %d after filter, %d plan segments",
		len(regions), len(merged), len(filtered), len(segs))

	doc := plan.FromSegments(segs, plan.Parameters{
		MinPauseMs:           in.Detect.MinPauseMs,
		FillerWords:          timeline.FillerWordList(in.Detect.FillerWords),
		FillerPaddingSec:     in.Detect.FillerPaddingSec,
		MergeThresholdMs:     in.MergeThresholdMs,
		MinCutDurationSec:    in.MinCutDurationSec,
		TransitionsEnabled:   in.Transition.Enabled,
		TransitionDurationMs: in.Transition.DurationMs,
		TargetFPS:            in.Transition.FPS,
	}, time.Since(started).Milliseconds())
	planPath := filepath.Join(in.OutDir, "plan.json")
	if err := writeDoc(planPath, func(w io.Writer) error { return doc.Encode(w) }); err != nil {
		return Result{}, err
	}

	rp, err := timeline.BuildRenderPlan(segs, in.Transition)
	if err != nil {
		return Result{}, err
	}
	logf("render plan: %d keeps, %d joins, expected %.3fs", len(rp.Keeps), len(rp.Joins), rp.ExpectedDurationSec)

	req := plan.NewRenderRequest(rp, in.Transition.DurationMs, in.AudioFadeMs, in.Transition.FPS)
	timelinePath := filepath.Join(in.OutDir, "timeline.json")
	if err := writeDoc(timelinePath, func(w io.Writer) error {
		return plan.EncodeRequest(w, req)
	}); err != nil {
		return Result{}, err
	}

	outMP4 := filepath.Join(in.OutDir, "output.mp4")
	settings := ports.RenderSettings{
		TransitionDurationMs: in.Transition.DurationMs,
		AudioFadeMs:          in.AudioFadeMs,
		FPS:                  in.Transition.FPS,
	}
	if err := u.d.Video.RenderTimeline(ctx, in.Input, rp, settings, outMP4); err != nil {
		return Result{}, err
	}

	rendered, err := u.d.Video.ProbeDuration(ctx, outMP4)
	if err != nil {
		return Result{}, err
	}
	renderedSec := rendered.Seconds()
	frame := 1.0 / float64(in.Transition.FPS)
	if drift := math.Abs(renderedSec - rp.ExpectedDurationSec); drift > frame {
		logf("warning: rendered duration %.3fs drifts %.3fs from expected %.3fs (frame=%.4fs)",
			renderedSec, drift, rp.ExpectedDurationSec, frame)
	}

	cues := subtitles.CuesFromTranscript(tr)
	mapped, err := timeline.RemapCues(cues, segs, in.Transition)
	if err != nil {
		return Result{}, err
	}
	dropped := 0
	for _, m := range mapped {
		if m.Dropped {
			dropped++
		}
	}
	captionsPath := filepath.Join(in.OutDir, "captions.srt")
	if err := writeDoc(captionsPath, func(w io.Writer) error {
		return subtitles.WriteSRT(w, mapped)
	}); err != nil {
		return Result{}, err
	}
	logf("captions: %d cues, %d dropped", len(mapped), dropped)

	keeps := timeline.Keeps(segs)
	m := types.Manifest{
		RunID:               in.RunID,
		Input:               in.Input,
		DurationSec:         totalSec,
		ExpectedDurationSec: rp.ExpectedDurationSec,
		RenderedDurationSec: renderedSec,
		KeepSegments:        len(keeps),
		CutSegments:         len(segs) - len(keeps),
		CuesTotal:           len(mapped),
		CuesDropped:         dropped,
		Plan:                "plan.json",
		Timeline:            "timeline.json",
		Captions:            "captions.srt",
		Output:              "output.mp4",
	}
	return Result{Manifest: m, Segments: segs, Render: rp}, nil
}

func writeDoc(path string, encode func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
