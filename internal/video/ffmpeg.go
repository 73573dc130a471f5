package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/scrollreel/internal/system"
)

// EncoderParams describes the encoded stream.
type EncoderParams struct {
	Width   int
	Height  int
	FPS     int
	Encoder string
	Quality int // 0 picks the encoder default
}

// FFmpegSink streams raw RGBA frames into a single ffmpeg process.
// Frames of a different size are letterboxed into the stream size.
type FFmpegSink struct {
	params EncoderParams
	path   string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	frames int
	logger *slog.Logger
}

func NewFFmpegSink(ctx context.Context, path string, params EncoderParams, logger *slog.Logger) (*FFmpegSink, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if params.Encoder == "" {
		params.Encoder = "libx264"
	}
	s := &FFmpegSink{params: params, path: path, logger: logger}

	args := buildFFmpegArgs(params, path)
	s.cmd = exec.CommandContext(ctx, "ffmpeg", args...)
	s.cmd.Stderr = &s.stderr

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	s.stdin = stdin

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	logger.Debug("ffmpeg started", "args", strings.Join(args, " "))
	return s, nil
}

func buildFFmpegArgs(p EncoderParams, videoPath string) []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-framerate", fmt.Sprintf("%d", p.FPS),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", p.Encoder,
	}

	// Quality depends on the encoder
	switch p.Encoder {
	case "h264_videotoolbox":
		q := p.Quality
		if q == 0 {
			q = 75
		}
		args = append(args, "-b:v", fmt.Sprintf("%dk", q*100))
	case "h264_nvenc":
		q := p.Quality
		if q == 0 {
			q = 23
		}
		args = append(args, "-cq", fmt.Sprintf("%d", q))
	default: // libx264
		q := p.Quality
		if q == 0 {
			q = 20
		}
		args = append(args, "-crf", fmt.Sprintf("%d", q), "-preset", "medium")
	}

	args = append(args, "-movflags", "+faststart", videoPath)
	return args
}

// WriteFrame writes one frame to the encoder.
func (s *FFmpegSink) WriteFrame(img image.Image) error {
	b := img.Bounds()
	if b.Dx() == s.params.Width && b.Dy() == s.params.Height {
		if err := writeRawRGBA(s.stdin, img); err != nil {
			return s.fail(err)
		}
		s.frames++
		return nil
	}

	dst := system.GetImage(image.Rect(0, 0, s.params.Width, s.params.Height))
	defer system.PutImage(dst)
	letterbox(dst, img)
	if err := writeRawRGBA(s.stdin, dst); err != nil {
		return s.fail(err)
	}
	s.frames++
	return nil
}

func (s *FFmpegSink) fail(err error) error {
	if msg := strings.TrimSpace(s.stderr.String()); msg != "" {
		return fmt.Errorf("write raw error: %w, ffmpeg: %s", err, msg)
	}
	return fmt.Errorf("write raw error: %w", err)
}

// Close flushes the stream and waits for ffmpeg to finish the file.
func (s *FFmpegSink) Close() error {
	if err := s.stdin.Close(); err != nil {
		s.logger.Warn("failed to close ffmpeg stdin", "error", err)
	}
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %v, output: %s", err, strings.TrimSpace(s.stderr.String()))
	}
	s.logger.Info("video written", "path", s.path, "frames", s.frames)
	return nil
}

// Path is the output file.
func (s *FFmpegSink) Path() string { return s.path }

// letterbox scales src to fit inside dst, centred on black.
func letterbox(dst *image.RGBA, src image.Image) {
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)

	sb := src.Bounds()
	if sb.Empty() {
		return
	}
	db := dst.Bounds()
	scale := min(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	w := int(float64(sb.Dx())*scale + 0.5)
	h := int(float64(sb.Dy())*scale + 0.5)
	x := db.Min.X + (db.Dx()-w)/2
	y := db.Min.Y + (db.Dy()-h)/2
	xdraw.CatmullRom.Scale(dst, image.Rect(x, y, x+w, y+h), src, sb, draw.Src, nil)
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix[:bounds.Dx()*bounds.Dy()*4])
	return err
}
