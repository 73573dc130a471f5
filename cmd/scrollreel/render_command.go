package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ivlev/scrollreel/internal/config"
	"github.com/ivlev/scrollreel/internal/director"
	"github.com/ivlev/scrollreel/internal/overlay"
	"github.com/ivlev/scrollreel/internal/source"
	"github.com/ivlev/scrollreel/internal/stage"
	"github.com/ivlev/scrollreel/internal/system"
)

type renderFlags struct {
	output   string
	format   string
	script   string
	preset   string
	width    int
	height   int
	fps      int
	duration float64
	encoder  string
	quality  int
	stats    bool
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Play a scroll script and write the result as video or PNG frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			system.InitResourceLimits(logger)

			script, err := loadScript(flags.script, cfg)
			if err != nil {
				return err
			}

			src, err := source.New(cfg.Sequence)
			if err != nil {
				return err
			}
			defer src.Close()

			player, err := stage.NewPlayer(cfg, src, logger)
			if err != nil {
				return err
			}
			defer player.Close()

			opts := []stage.SessionOption{}
			if isatty.IsTerminal(os.Stderr.Fd()) {
				opts = append(opts, stage.WithProgress(os.Stderr))
			}
			session := stage.NewSession(cfg, player, script, logger, opts...)
			logger.Info("render starting",
				"session", session.ID,
				"version", cfg.BuildVersion,
				"frames", session.Frames(),
				"size", fmt.Sprintf("%dx%d", cfg.Output.Width, cfg.Output.Height),
				"fps", cfg.Output.FPS,
				"format", cfg.Output.Format)

			stats, err := session.Run(cmd.Context())
			if err != nil {
				return err
			}
			if cfg.Output.ShowStats {
				fmt.Fprintln(cmd.ErrOrStderr(), stats.String())
			}

			out := stage.VideoPath(cfg.Output)
			if cfg.Output.Format == "png" {
				out = stage.FramesDir(cfg.Output)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d frames to %s\n", stats.Frames, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output video path (video format)")
	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: video, png")
	cmd.Flags().StringVarP(&flags.script, "script", "s", "", "Scroll script (YAML); \"latest\" picks the newest in scripts/; empty plays the default tour")
	cmd.Flags().StringVar(&flags.preset, "preset", "", "Output size preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	cmd.Flags().IntVar(&flags.width, "width", 0, "Output width")
	cmd.Flags().IntVar(&flags.height, "height", 0, "Output height")
	cmd.Flags().IntVar(&flags.fps, "fps", 0, "Output frames per second")
	cmd.Flags().Float64Var(&flags.duration, "duration", 0, "Minimum output duration in seconds")
	cmd.Flags().StringVar(&flags.encoder, "encoder", "", "H.264 encoder (default: best available)")
	cmd.Flags().IntVar(&flags.quality, "quality", 0, "Quality (0 auto; x264 CRF, NVENC CQ, VideoToolbox bitrate = Q*100kbit/s)")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "Print a resource report when done")

	return cmd
}

// apply overrides configuration with flags the user set.
func (f renderFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	o := &cfg.Output
	switch f.preset {
	case "":
	case "16:9":
		o.Width, o.Height = 1280, 720
	case "9:16":
		o.Width, o.Height = 720, 1280
	case "4:5":
		o.Width, o.Height = 1080, 1350
	default:
		return fmt.Errorf("unknown preset %q", f.preset)
	}

	changed := cmd.Flags().Changed
	if changed("output") {
		o.Video = f.output
	}
	if changed("format") {
		o.Format = f.format
	}
	if changed("width") {
		o.Width = f.width
	}
	if changed("height") {
		o.Height = f.height
	}
	if changed("fps") {
		o.FPS = f.fps
	}
	if changed("duration") {
		o.Duration = f.duration
	}
	if changed("encoder") {
		o.Encoder = f.encoder
	}
	if changed("quality") {
		o.Quality = f.quality
	}
	if changed("stats") {
		o.ShowStats = f.stats
	}
	if o.Width%2 != 0 {
		o.Width++
	}
	if o.Height%2 != 0 {
		o.Height++
	}
	return cfg.Validate()
}

// loadScript resolves the script flag, falling back to the configured
// script and then to the default tour.
func loadScript(flag string, cfg *config.Config) (*director.Script, error) {
	path := flag
	if path == "" {
		path = cfg.Output.Script
	}
	switch path {
	case "":
		return defaultTour(cfg)
	case "latest":
		latest, err := director.FindLatestScript(scriptsDir)
		if err != nil {
			return nil, err
		}
		path = latest
	}
	return director.ReadScript(path)
}

const scriptsDir = "scripts"

func defaultTour(cfg *config.Config) (*director.Script, error) {
	segments := overlay.SegmentsFromConfig(cfg.Overlays)
	holds := make([]float64, 0, len(segments))
	for _, s := range segments {
		holds = append(holds, s.Hold())
	}
	if len(holds) == 0 {
		holds = []float64{0.5}
	}
	return director.NewDirector(cfg.Output.Width, cfg.Output.Height).GenerateScript(holds, cfg.Output.Duration)
}
