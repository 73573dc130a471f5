package stage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/ivlev/scrollreel/internal/config"
	"github.com/ivlev/scrollreel/internal/director"
	"github.com/ivlev/scrollreel/internal/system"
	"github.com/ivlev/scrollreel/internal/video"
)

var ErrOutputLocked = errors.New("output directory is in use by another render")

const lockName = ".scrollreel.lock"

// SinkOpener creates the sink once the output directory is locked.
type SinkOpener func(ctx context.Context) (video.Sink, error)

// Session plays a script through a player and writes every composed frame
// to a sink, one frame per output tick.
type Session struct {
	ID string

	cfg      *config.Config
	player   *Player
	script   *director.Script
	open     SinkOpener
	logger   *slog.Logger
	progress io.Writer
}

type SessionOption func(*Session)

// WithSinkOpener replaces the sink chosen from the output config.
func WithSinkOpener(open SinkOpener) SessionOption {
	return func(s *Session) { s.open = open }
}

// WithProgress draws a progress bar to w.
func WithProgress(w io.Writer) SessionOption {
	return func(s *Session) { s.progress = w }
}

func NewSession(cfg *config.Config, player *Player, script *director.Script, logger *slog.Logger, opts ...SessionOption) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	s := &Session{
		ID:     id,
		cfg:    cfg,
		player: player,
		script: script,
		logger: logger.With("session", id[:8]),
	}
	s.open = func(ctx context.Context) (video.Sink, error) {
		return OpenSink(ctx, cfg.Output, s.logger)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Frames is the number of output frames the script produces.
func (s *Session) Frames() int {
	end := s.script.End()
	if s.cfg.Output.Duration > end {
		end = s.cfg.Output.Duration
	}
	return int(math.Ceil(end*float64(s.cfg.Output.FPS))) + 1
}

// Run locks the output directory, waits for the initial content, and
// renders the script.
func (s *Session) Run(ctx context.Context) (system.Stats, error) {
	if err := os.MkdirAll(s.cfg.Output.Dir, 0755); err != nil {
		return system.Stats{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	lock := flock.New(filepath.Join(s.cfg.Output.Dir, lockName))
	ok, err := lock.TryLock()
	if err != nil {
		return system.Stats{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return system.Stats{}, ErrOutputLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release output lock", "error", err)
		}
	}()

	sink, err := s.open(ctx)
	if err != nil {
		return system.Stats{}, err
	}

	if err := s.player.Mount(s.cfg.Output.Width, s.cfg.Output.Height); err != nil {
		sink.Close()
		return system.Stats{}, err
	}
	s.player.Start(ctx)

	waitStart := time.Now()
	select {
	case <-s.player.Ready():
	case <-ctx.Done():
		sink.Close()
		return system.Stats{}, ctx.Err()
	}
	s.logger.Info("initial content ready",
		"loaded", s.player.Snapshot().Loaded(),
		"waited", time.Since(waitStart).Round(time.Millisecond))

	start := time.Now()
	written, err := s.play(ctx, sink)
	if cerr := sink.Close(); err == nil {
		err = cerr
	}
	stats := system.ReadStats(start, written)
	if err != nil {
		return stats, err
	}
	s.logger.Info("render finished", "frames", written, "fps", fmt.Sprintf("%.1f", stats.FPS()))
	return stats, nil
}

func (s *Session) play(ctx context.Context, sink video.Sink) (int, error) {
	fps := float64(s.cfg.Output.FPS)
	dt := 1 / fps
	total := s.Frames()

	var bar *progressbar.ProgressBar
	if s.progress != nil {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(s.progress),
			progressbar.OptionSetDescription("rendering"),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	from := -1.0
	for n := 0; n < total; n++ {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		t := float64(n) * dt
		for _, st := range s.script.Due(from, t) {
			if err := s.player.Input(st); err != nil {
				return n, fmt.Errorf("step at %.2fs (%s): %w", st.Time, st.Action, err)
			}
			s.logger.Debug("step", "time", st.Time, "action", st.Action, "note", st.Note)
		}
		from = t

		step := dt
		if n == 0 {
			step = 0
		}
		s.player.Tick(step)

		img, err := s.player.Compose()
		if err != nil {
			return n, err
		}
		if err := sink.WriteFrame(img); err != nil {
			return n, fmt.Errorf("frame %d: %w", n, err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return total, nil
}
