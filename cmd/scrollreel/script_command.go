package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivlev/scrollreel/internal/director"
)

func newScriptCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "script",
		Short: "Write the default scroll tour as an editable script",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			script, err := defaultTour(cfg)
			if err != nil {
				return err
			}

			target := outputPath
			if target == "" {
				target = director.GenerateScriptPath(scriptsDir)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("create script directory: %w", err)
			}
			if err := director.WriteScript(script, target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d steps (%.1fs) to %s\n", len(script.Steps), script.Duration, target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Script path (default scripts/script_<timestamp>.yaml)")
	return cmd
}
