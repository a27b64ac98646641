// Package config loads and validates podtrim's TOML configuration.
// The engine itself never reads configuration; everything here is
// resolved by the caller and passed into the engine explicitly.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Detect tunes cut region detection and narrowing.
type Detect struct {
	MinPauseMs        int      `toml:"min_pause_ms"`
	FillerWords       []string `toml:"filler_words"`
	FillerPaddingSec  float64  `toml:"filler_padding_sec"`
	MergeThresholdMs  int      `toml:"merge_threshold_ms"`
	MinCutDurationSec float64  `toml:"min_cut_duration_sec"`
}

// Transitions controls crossfade joins in the final render.
// AudioFadeMs of zero means "same as duration_ms".
type Transitions struct {
	Enabled     bool `toml:"enabled"`
	DurationMs  int  `toml:"duration_ms"`
	AudioFadeMs int  `toml:"audio_fade_ms"`
}

// Output holds render/output settings and external tool paths.
type Output struct {
	TargetFPS    int    `toml:"target_fps"`
	OutDir       string `toml:"out_dir"`
	CacheDir     string `toml:"cache_dir"`
	FFmpegPath   string `toml:"ffmpeg_path"`
	FFprobePath  string `toml:"ffprobe_path"`
	WhisperBin   string `toml:"whisper_bin"`
	WhisperModel string `toml:"whisper_model"`
}

type Config struct {
	Detect      Detect      `toml:"detect"`
	Transitions Transitions `toml:"transitions"`
	Output      Output      `toml:"output"`
}

// Load reads a TOML config from path, layered over defaults. A missing
// file is not an error: defaults are returned as-is so the CLI works
// with no config at all.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Transitions.AudioFadeMs == 0 {
		c.Transitions.AudioFadeMs = c.Transitions.DurationMs
	}
}

// Validate ensures the configuration is usable before a run starts.
func (c *Config) Validate() error {
	if c.Detect.MinPauseMs <= 0 {
		return fmt.Errorf("detect.min_pause_ms must be > 0, got %d", c.Detect.MinPauseMs)
	}
	if c.Detect.MergeThresholdMs < 0 {
		return fmt.Errorf("detect.merge_threshold_ms must be >= 0, got %d", c.Detect.MergeThresholdMs)
	}
	if c.Detect.MinCutDurationSec < 0 {
		return fmt.Errorf("detect.min_cut_duration_sec must be >= 0, got %g", c.Detect.MinCutDurationSec)
	}
	if c.Detect.FillerPaddingSec < 0 {
		return fmt.Errorf("detect.filler_padding_sec must be >= 0, got %g", c.Detect.FillerPaddingSec)
	}
	if c.Transitions.DurationMs < 0 {
		return fmt.Errorf("transitions.duration_ms must be >= 0, got %d", c.Transitions.DurationMs)
	}
	if c.Transitions.Enabled && c.Transitions.DurationMs == 0 {
		return errors.New("transitions.duration_ms must be > 0 when transitions are enabled")
	}
	if c.Output.TargetFPS <= 0 {
		return fmt.Errorf("output.target_fps must be > 0, got %d", c.Output.TargetFPS)
	}
	return nil
}
