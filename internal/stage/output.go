package stage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ivlev/scrollreel/internal/config"
	"github.com/ivlev/scrollreel/internal/system"
	"github.com/ivlev/scrollreel/internal/video"
)

// VideoPath is where the encoded video goes.
func VideoPath(o config.Output) string {
	if o.Video != "" {
		return o.Video
	}
	return filepath.Join(o.Dir, "scrollreel.mp4")
}

// FramesDir is where PNG frames go.
func FramesDir(o config.Output) string {
	return filepath.Join(o.Dir, "frames")
}

// OpenSink creates the sink for the configured output format.
func OpenSink(ctx context.Context, o config.Output, logger *slog.Logger) (video.Sink, error) {
	switch o.Format {
	case "png":
		return video.NewPNGSink(FramesDir(o))
	case "video", "":
		path := VideoPath(o)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
		encoder := o.Encoder
		if encoder == "" {
			encoder = system.GetBestH264Encoder(ctx)
			logger.Info("encoder selected", "encoder", encoder)
		}
		return video.NewFFmpegSink(ctx, path, video.EncoderParams{
			Width:   o.Width,
			Height:  o.Height,
			FPS:     o.FPS,
			Encoder: encoder,
			Quality: o.Quality,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown output format %q", o.Format)
	}
}
