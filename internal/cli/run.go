package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"podtrim/internal/config"
	"podtrim/internal/pipeline"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <input>",
		Short: "Run the full pipeline: transcribe, plan cuts, render, retime captions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, args[0])
		},
	}
	cmd.Flags().String("out", "", "Output directory (overrides config)")
	cmd.Flags().Bool("no-transitions", false, "Disable crossfade transitions at cut joins")
	return cmd
}

func runPipeline(cmd *cobra.Command, input string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.Output.OutDir = out
	}
	if off, _ := cmd.Flags().GetBool("no-transitions"); off {
		cfg.Transitions.Enabled = false
	}

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Hour)
	defer cancel()

	pcfg := pipeline.Config{
		Input: absIn,
		Cfg:   cfg,
		Logf: func(format string, args ...any) {
			fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
		},
	}
	if err := pcfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	manifest, err := pipeline.Run(ctx, pcfg)
	if err != nil {
		return err
	}
	if !stdoutIsTerminal() {
		return writeJSON(cmd, manifest)
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
