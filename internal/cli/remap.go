package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"podtrim/internal/subtitles"
	"podtrim/internal/timeline"
)

func newRemapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remap <plan.json> <captions.srt>",
		Short: "Retime SRT captions through a cut plan into final-timeline coordinates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemap(cmd, args[0], args[1])
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the retimed SRT to this file instead of stdout")
	return cmd
}

func runRemap(cmd *cobra.Command, planPath, srtPath string) error {
	doc, segs, err := readPlan(planPath)
	if err != nil {
		return err
	}

	f, err := os.Open(srtPath)
	if err != nil {
		return fmt.Errorf("open captions: %w", err)
	}
	cues, err := subtitles.ParseSRT(f)
	f.Close()
	if err != nil {
		return err
	}

	params := doc.Metadata.Parameters
	mapped, err := timeline.RemapCues(cues, segs, timeline.TransitionConfig{
		Enabled:    params.TransitionsEnabled,
		DurationMs: params.TransitionDurationMs,
		FPS:        params.TargetFPS,
	})
	if err != nil {
		return err
	}

	dropped := 0
	for _, m := range mapped {
		if m.Dropped {
			dropped++
		}
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath != "" {
		out, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer out.Close()
		if err := subtitles.WriteSRT(out, mapped); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "captions written: %s (%d cues, %d dropped)\n", outPath, len(mapped), dropped)
		return nil
	}
	return subtitles.WriteSRT(cmd.OutOrStdout(), mapped)
}
