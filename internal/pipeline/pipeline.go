package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"podtrim/internal/config"
	"podtrim/internal/ports"
	"podtrim/internal/ports/adapters/ffmpeg"
	"podtrim/internal/ports/adapters/whispercpp"
	"podtrim/internal/timeline"
	"podtrim/internal/types"
	"podtrim/internal/usecase"
)

type Config struct {
	Input string
	Cfg   config.Config
	Logf  func(format string, args ...any)
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.Input); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.Cfg.Output.WhisperModel == "" {
		return errors.New("whisper model path is required")
	}
	return c.Cfg.Validate()
}

// Run wires real adapters into the usecase, lays out the workspace and
// writes the run manifest. The manifest is also returned so callers can
// surface it.
func Run(ctx context.Context, cfg Config) (types.Manifest, error) {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	video := ffmpeg.New(cfg.Cfg.Output.FFmpegPath, cfg.Cfg.Output.FFprobePath)
	asr := whispercpp.New(cfg.Cfg.Output.WhisperBin, cfg.Cfg.Output.WhisperModel)
	uc := usecase.New(usecase.Deps{Video: video, ASR: asr})

	runID := uuid.NewString()
	cacheDir := filepath.Join(cfg.Cfg.Output.CacheDir, "runs", contentKey(cfg.Input))
	logf("preparing workspace")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return types.Manifest{}, err
	}
	logf("cache: %s", cacheDir)

	runOutDir := buildRunOutDir(cfg.Cfg.Output.OutDir, cfg.Input, time.Now().UTC(), runID)
	if err := os.MkdirAll(runOutDir, 0o755); err != nil {
		return types.Manifest{}, err
	}
	logf("output run dir: %s", runOutDir)

	det := cfg.Cfg.Detect
	fillers := timeline.NormalizeFillerWords(det.FillerWords)

	res, err := uc.Run(ctx, usecase.Input{
		RunID:    runID,
		Input:    cfg.Input,
		CacheDir: cacheDir,
		OutDir:   runOutDir,
		Detect: timeline.DetectorConfig{
			MinPauseMs:       det.MinPauseMs,
			FillerWords:      fillers,
			FillerPaddingSec: det.FillerPaddingSec,
		},
		MergeThresholdMs:  det.MergeThresholdMs,
		MinCutDurationSec: det.MinCutDurationSec,
		Transition: timeline.TransitionConfig{
			Enabled:    cfg.Cfg.Transitions.Enabled,
			DurationMs: cfg.Cfg.Transitions.DurationMs,
			FPS:        cfg.Cfg.Output.TargetFPS,
		},
		AudioFadeMs: cfg.Cfg.Transitions.AudioFadeMs,
		Logf:        logf,
	})
	if err != nil {
		return types.Manifest{}, err
	}

	b, err := json.MarshalIndent(res.Manifest, "", "  ")
	if err != nil {
		return types.Manifest{}, fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(runOutDir, "manifest.json")
	if err := os.WriteFile(manifestPath, b, 0o644); err != nil {
		return types.Manifest{}, err
	}
	logf("manifest written: %s", manifestPath)
	return res.Manifest, nil
}

func buildRunOutDir(outRoot, input string, now time.Time, runID string) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name = normalizePathSegment(name)
	if name == "" {
		name = "input"
	}
	ts := now.UTC().Format("20060102-150405Z")
	suffix := strings.ReplaceAll(runID, "-", "")[:8]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// contentKey keys the transcription cache by input path so repeated
// runs on the same file reuse the extracted audio and transcript.
func contentKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.ASR = (*whispercpp.Adapter)(nil)
