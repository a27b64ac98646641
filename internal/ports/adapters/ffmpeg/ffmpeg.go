package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"podtrim/internal/ports"
	"podtrim/internal/timeline"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

func (a *Adapter) ExtractAudioMono16k(ctx context.Context, in, outWav string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", in,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outWav,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}

// RenderTimeline builds one trim node per keep segment and folds them
// pairwise. With joins present each fold is an xfade/acrossfade whose
// offset is the plan's cumulative fold offset; without joins the trims
// are concatenated as-is.
func (a *Adapter) RenderTimeline(ctx context.Context, in string, rp timeline.RenderPlan, settings ports.RenderSettings, out string) error {
	if len(rp.Keeps) == 0 {
		return fmt.Errorf("ffmpeg render: no keep segments")
	}

	var graph strings.Builder
	for i, k := range rp.Keeps {
		fmt.Fprintf(&graph, "[0:v]trim=start=%s:end=%s,setpts=PTS-STARTPTS[v%d];",
			fmtSeconds(k.Start), fmtSeconds(k.End), i)
		fmt.Fprintf(&graph, "[0:a]atrim=start=%s:end=%s,asetpts=PTS-STARTPTS[a%d];",
			fmtSeconds(k.Start), fmtSeconds(k.End), i)
	}

	vOut, aOut := "[v0]", "[a0]"
	switch {
	case len(rp.Joins) > 0:
		fade := float64(settings.AudioFadeMs) / 1000.0
		for _, j := range rp.Joins {
			next := j.Index + 1
			fmt.Fprintf(&graph, "%s[v%d]xfade=transition=fade:duration=%s:offset=%s[vx%d];",
				vOut, next, fmtSeconds(j.OverlapSec), fmtSeconds(j.OffsetSec), next)
			fmt.Fprintf(&graph, "%s[a%d]acrossfade=d=%s[ax%d];",
				aOut, next, fmtSeconds(fade), next)
			vOut = fmt.Sprintf("[vx%d]", next)
			aOut = fmt.Sprintf("[ax%d]", next)
		}
	case len(rp.Keeps) > 1:
		for i := range rp.Keeps {
			fmt.Fprintf(&graph, "[v%d][a%d]", i, i)
		}
		fmt.Fprintf(&graph, "concat=n=%d:v=1:a=1[vcat][acat];", len(rp.Keeps))
		vOut, aOut = "[vcat]", "[acat]"
	}

	filter := strings.TrimSuffix(graph.String(), ";")
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", in,
		"-filter_complex", filter,
		"-map", vOut,
		"-map", aOut,
		"-r", strconv.Itoa(settings.FPS),
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		"-b:a", "192k",
		out,
	}
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg render timeline: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) ProbeDuration(ctx context.Context, in string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		in,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
