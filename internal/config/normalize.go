package config

import (
	"strings"
)

func (c *Config) normalize() {
	c.Sequence.Source = strings.ToLower(strings.TrimSpace(c.Sequence.Source))
	if c.Sequence.Source == "" {
		c.Sequence.Source = "file"
	}
	c.Sequence.Ext = strings.TrimPrefix(strings.TrimSpace(c.Sequence.Ext), ".")
	if c.Sequence.Source != "http" {
		c.Sequence.Base = strings.TrimRight(c.Sequence.Base, "/")
	}

	c.Scroll.Easing = strings.ToLower(strings.TrimSpace(c.Scroll.Easing))
	c.Scroll.Orientation = strings.ToLower(strings.TrimSpace(c.Scroll.Orientation))
	if c.Scroll.Orientation == "" {
		c.Scroll.Orientation = "vertical"
	}

	for i := range c.Overlays {
		c.Overlays[i].Theme = strings.ToLower(strings.TrimSpace(c.Overlays[i].Theme))
	}

	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Width == 0 {
		c.Output.Width = c.Viewport.Width
	}
	if c.Output.Height == 0 {
		c.Output.Height = c.Viewport.Height
	}
	// yuv420p needs even dimensions
	if c.Output.Width%2 != 0 {
		c.Output.Width++
	}
	if c.Output.Height%2 != 0 {
		c.Output.Height++
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
}
