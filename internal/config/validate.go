package config

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownFormat = errors.New("unknown config format")
	ErrInvalid       = errors.New("invalid config")
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSequence(); err != nil {
		return err
	}
	if err := c.validateViewport(); err != nil {
		return err
	}
	if err := c.validateScroll(); err != nil {
		return err
	}
	if err := c.validateOverlays(); err != nil {
		return err
	}
	return c.validateOutput()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func (c *Config) validateSequence() error {
	s := c.Sequence
	switch s.Source {
	case "file", "http", "pdf":
	default:
		return invalid("sequence.source must be file, http or pdf, got %q", s.Source)
	}
	if s.Base == "" {
		return invalid("sequence.base must be set")
	}
	if s.Source != "pdf" && s.Ext == "" {
		return invalid("sequence.ext must be set")
	}
	if s.Count <= 0 {
		return invalid("sequence.count must be positive")
	}
	if s.BatchSize <= 0 {
		return invalid("sequence.batch_size must be positive")
	}
	if s.SettleDelay < 0 {
		return invalid("sequence.settle_delay must not be negative")
	}
	return nil
}

func (c *Config) validateViewport() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return invalid("viewport must have positive width and height")
	}
	return nil
}

func (c *Config) validateScroll() error {
	s := c.Scroll
	if s.RegionHeight <= 1 {
		return invalid("scroll.region_height must exceed one viewport height")
	}
	if s.Duration < 0 {
		return invalid("scroll.duration must not be negative")
	}
	switch s.Orientation {
	case "vertical", "horizontal":
	default:
		return invalid("scroll.orientation must be vertical or horizontal, got %q", s.Orientation)
	}
	if s.WheelMultiplier <= 0 || s.TouchMultiplier <= 0 {
		return invalid("scroll multipliers must be positive")
	}
	if s.Spring.Enabled && (s.Spring.Frequency <= 0 || s.Spring.Damping <= 0) {
		return invalid("scroll.spring needs positive frequency and damping")
	}
	return nil
}

func (c *Config) validateOverlays() error {
	for i, o := range c.Overlays {
		if len(o.Breakpoints) != 4 {
			return invalid("overlays[%d].breakpoints needs 4 values (fade-in, hold start, hold end, fade-out)", i)
		}
		for j := 1; j < len(o.Breakpoints); j++ {
			if o.Breakpoints[j] < o.Breakpoints[j-1] {
				return invalid("overlays[%d].breakpoints must be ascending", i)
			}
		}
		if o.Breakpoints[0] < 0 || o.Breakpoints[3] > 1 {
			return invalid("overlays[%d].breakpoints must lie within [0,1]", i)
		}
		switch o.Theme {
		case "", "auto", "light", "dark":
		default:
			return invalid("overlays[%d].theme must be auto, light or dark, got %q", i, o.Theme)
		}
	}
	return nil
}

func (c *Config) validateOutput() error {
	o := c.Output
	switch o.Format {
	case "video", "png":
	default:
		return invalid("output.format must be video or png, got %q", o.Format)
	}
	if o.FPS <= 0 {
		return invalid("output.fps must be positive")
	}
	if o.Width <= 0 || o.Height <= 0 {
		return invalid("output size must be positive")
	}
	if o.Duration < 0 {
		return invalid("output.duration must not be negative")
	}
	return nil
}
