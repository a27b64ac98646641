package config

const (
	defaultMinPauseMs           = 1500
	defaultFillerPaddingSec     = 0.05
	defaultMergeThresholdMs     = 500
	defaultMinCutDurationSec    = 0.5
	defaultTransitionDurationMs = 300
	defaultTargetFPS            = 30
	defaultOutDir               = "out"
	defaultCacheDir             = ".cache"
)

func defaultFillerWords() []string {
	return []string{"um", "uh", "umm", "uhh", "er", "erm", "ah", "hmm", "mhm"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Detect: Detect{
			MinPauseMs:        defaultMinPauseMs,
			FillerWords:       defaultFillerWords(),
			FillerPaddingSec:  defaultFillerPaddingSec,
			MergeThresholdMs:  defaultMergeThresholdMs,
			MinCutDurationSec: defaultMinCutDurationSec,
		},
		Transitions: Transitions{
			Enabled:     true,
			DurationMs:  defaultTransitionDurationMs,
			AudioFadeMs: defaultTransitionDurationMs,
		},
		Output: Output{
			TargetFPS:    defaultTargetFPS,
			OutDir:       defaultOutDir,
			CacheDir:     defaultCacheDir,
			FFmpegPath:   "ffmpeg",
			FFprobePath:  "ffprobe",
			WhisperBin:   ".cache/bin/whisper.cpp",
			WhisperModel: ".cache/models/ggml-base.bin",
		},
	}
}
