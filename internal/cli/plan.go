package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"podtrim/internal/plan"
	"podtrim/internal/timeline"
	"podtrim/internal/types"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <transcript.json>",
		Short: "Compute a cut plan document from a transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, args[0])
		},
	}
	cmd.Flags().Float64("duration", 0, "Total source duration in seconds (defaults to the last segment end)")
	cmd.Flags().StringP("output", "o", "", "Write the plan document to this file instead of stdout")
	return cmd
}

func runPlan(cmd *cobra.Command, transcriptPath string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	tr, err := readTranscript(transcriptPath)
	if err != nil {
		return err
	}

	total, _ := cmd.Flags().GetFloat64("duration")
	if total == 0 && len(tr.Segments) > 0 {
		total = tr.Segments[len(tr.Segments)-1].End
	}

	fillers := timeline.NormalizeFillerWords(cfg.Detect.FillerWords)

	started := time.Now()
	regions, err := timeline.DetectRegions(tr, timeline.DetectorConfig{
		MinPauseMs:       cfg.Detect.MinPauseMs,
		FillerWords:      fillers,
		FillerPaddingSec: cfg.Detect.FillerPaddingSec,
	})
	if err != nil {
		return err
	}
	merged := timeline.MergeRegions(regions, cfg.Detect.MergeThresholdMs)
	filtered := timeline.FilterRegions(merged, cfg.Detect.MinCutDurationSec)
	segs, err := timeline.Compile(filtered, total, cfg.Output.TargetFPS)
	if err != nil {
		return err
	}

	doc := plan.FromSegments(segs, plan.Parameters{
		MinPauseMs:           cfg.Detect.MinPauseMs,
		FillerWords:          timeline.FillerWordList(fillers),
		FillerPaddingSec:     cfg.Detect.FillerPaddingSec,
		MergeThresholdMs:     cfg.Detect.MergeThresholdMs,
		MinCutDurationSec:    cfg.Detect.MinCutDurationSec,
		TransitionsEnabled:   cfg.Transitions.Enabled,
		TransitionDurationMs: cfg.Transitions.DurationMs,
		TargetFPS:            cfg.Output.TargetFPS,
	}, time.Since(started).Milliseconds())

	outPath, _ := cmd.Flags().GetString("output")
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := doc.Encode(f); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "plan written: %s\n", outPath)
		if stdoutIsTerminal() {
			fmt.Fprintln(cmd.OutOrStdout(), planTable(segs))
		}
		return nil
	}

	if stdoutIsTerminal() {
		fmt.Fprintln(cmd.OutOrStdout(), planTable(segs))
		return nil
	}
	return doc.Encode(cmd.OutOrStdout())
}

func planTable(segs []timeline.Segment) string {
	rows := make([][]string, 0, len(segs))
	for _, s := range segs {
		rows = append(rows, []string{
			string(s.Type),
			fmt.Sprintf("%.3f", s.Start),
			fmt.Sprintf("%.3f", s.End),
			fmt.Sprintf("%.3f", s.Duration()),
			s.Reason,
		})
	}
	return renderTable(
		[]string{"Type", "Start", "End", "Duration", "Reason"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft},
	)
}

func readTranscript(path string) (types.Transcript, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return types.Transcript{}, fmt.Errorf("read transcript: %w", err)
	}
	var tr types.Transcript
	if err := json.Unmarshal(b, &tr); err != nil {
		return types.Transcript{}, fmt.Errorf("parse transcript: %w", err)
	}
	return tr, nil
}
