package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/scrollreel/internal/config"
	"github.com/ivlev/scrollreel/internal/frame"
	"github.com/ivlev/scrollreel/internal/overlay"
	"github.com/ivlev/scrollreel/internal/scroll"
	"github.com/ivlev/scrollreel/internal/source"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show how scroll progress maps to frames and overlays",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if steps < 2 {
				return fmt.Errorf("--steps must be at least 2")
			}
			fmt.Fprintln(cmd.OutOrStdout(), inspectTable(cfg, steps))
			return nil
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 11, "Number of evenly spaced progress samples")
	return cmd
}

func inspectTable(cfg *config.Config, steps int) string {
	region := scroll.NewRegion(0, cfg.Scroll.RegionHeight, float64(cfg.Viewport.Height))
	controller := overlay.NewController(overlay.SegmentsFromConfig(cfg.Overlays))

	headers := []string{"Progress", "Offset", "Frame", "Asset"}
	aligns := []columnAlignment{alignRight, alignRight, alignRight, alignLeft}
	for i := range cfg.Overlays {
		headers = append(headers, fmt.Sprintf("Block %d", i+1))
		aligns = append(aligns, alignRight)
	}

	rows := make([][]string, 0, steps)
	for i := 0; i < steps; i++ {
		p := float64(i) / float64(steps-1)
		idx := frame.Index(p, cfg.Sequence.Count)
		row := []string{
			fmt.Sprintf("%.3f", p),
			fmt.Sprintf("%.0f", region.Offset(p)),
			fmt.Sprintf("%d", idx),
			assetName(cfg.Sequence, idx),
		}
		for _, st := range controller.Evaluate(p) {
			row = append(row, fmt.Sprintf("%.2f @ %+.0fpx", st.Opacity, st.Offset))
		}
		rows = append(rows, row)
	}
	return renderTable(headers, rows, aligns)
}

func assetName(seq config.Sequence, index int) string {
	if seq.Source == "pdf" {
		return fmt.Sprintf("%s#page=%d", seq.Base, index+1)
	}
	return source.FramePath(seq.Base, seq.Ext, index)
}
