package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"podtrim/internal/plan"
	"podtrim/internal/timeline"
)

func newTimelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline <plan.json>",
		Short: "Derive the render timeline request from a cut plan document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimeline(cmd, args[0])
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the timeline request to this file instead of stdout")
	return cmd
}

func runTimeline(cmd *cobra.Command, planPath string) error {
	doc, segs, err := readPlan(planPath)
	if err != nil {
		return err
	}

	params := doc.Metadata.Parameters
	tc := timeline.TransitionConfig{
		Enabled:    params.TransitionsEnabled,
		DurationMs: params.TransitionDurationMs,
		FPS:        params.TargetFPS,
	}
	rp, err := timeline.BuildRenderPlan(segs, tc)
	if err != nil {
		return err
	}
	req := plan.NewRenderRequest(rp, params.TransitionDurationMs, params.TransitionDurationMs, params.TargetFPS)

	outPath, _ := cmd.Flags().GetString("output")
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := plan.EncodeRequest(f, req); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "timeline request written: %s (expected duration %.3fs, %d joins)\n",
			outPath, rp.ExpectedDurationSec, len(rp.Joins))
		return nil
	}

	if stdoutIsTerminal() {
		fmt.Fprintf(cmd.OutOrStdout(), "expected duration: %.3fs\n", rp.ExpectedDurationSec)
		fmt.Fprintln(cmd.OutOrStdout(), joinTable(rp))
		return nil
	}
	return plan.EncodeRequest(cmd.OutOrStdout(), req)
}

func joinTable(rp timeline.RenderPlan) string {
	rows := make([][]string, 0, len(rp.Joins))
	for _, j := range rp.Joins {
		rows = append(rows, []string{
			fmt.Sprintf("%d", j.Index),
			fmt.Sprintf("%.3f", j.PriorKeepEnd),
			fmt.Sprintf("%.3f", j.NextKeepStart),
			fmt.Sprintf("%.3f", j.OverlapSec),
			fmt.Sprintf("%.3f", j.OffsetSec),
		})
	}
	return renderTable(
		[]string{"Join", "Prior end", "Next start", "Overlap", "Fold offset"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight},
	)
}

func readPlan(path string) (plan.Document, []timeline.Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return plan.Document{}, nil, fmt.Errorf("open plan: %w", err)
	}
	defer f.Close()
	doc, err := plan.Decode(f)
	if err != nil {
		return plan.Document{}, nil, err
	}
	segs, err := doc.Segments()
	if err != nil {
		return plan.Document{}, nil, err
	}
	return doc, segs, nil
}
