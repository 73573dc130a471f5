package config

const (
	DefaultFrameCount  = 144
	DefaultBatchSize   = 5
	DefaultSettleDelay = 0.8
)

// Default returns the stock landing-page configuration.
func Default() Config {
	return Config{
		Sequence: Sequence{
			Source:      "file",
			Base:        "public/sequence",
			Ext:         "png",
			Count:       DefaultFrameCount,
			BatchSize:   DefaultBatchSize,
			SettleDelay: DefaultSettleDelay,
			Timeout:     15,
			DPI:         150,
		},
		Viewport: Viewport{Width: 1280, Height: 720},
		Scroll: Scroll{
			RegionHeight:    4,
			Duration:        1.2,
			Easing:          "expo-out",
			Orientation:     "vertical",
			WheelMultiplier: 1,
			TouchMultiplier: 2,
			Spring: Spring{
				Enabled:   true,
				Frequency: 12,
				Damping:   1,
			},
		},
		Overlays: DefaultOverlays(),
		Output: Output{
			Dir:      "output",
			Format:   "video",
			Width:    1280,
			Height:   720,
			FPS:      30,
			Duration: 12,
			Encoder:  "",
			Quality:  0,
		},
		Logging: Logging{Level: "info"},
	}
}

// DefaultOverlays returns the three stock text blocks. Their windows
// partition [0,1] as [0,0.35], [0.35,0.7], [0.7,1].
func DefaultOverlays() []Overlay {
	return []Overlay{
		{
			Title:       "Sound, reimagined.",
			Subtitle:    "Every frame engineered for silence.",
			Breakpoints: []float64{0, 0.1, 0.25, 0.35},
			Offset:      50,
		},
		{
			Title:       "Precision in every layer.",
			Subtitle:    "Forty components. One seamless form.",
			Breakpoints: []float64{0.35, 0.45, 0.6, 0.7},
			Offset:      50,
		},
		{
			Title:       "Made to disappear.",
			Subtitle:    "Available now.",
			Breakpoints: []float64{0.7, 0.8, 0.9, 1},
			Offset:      50,
		},
	}
}
