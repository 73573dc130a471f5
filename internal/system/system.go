// Package system wraps host concerns: file limits, encoder discovery,
// pooled buffers and resource stats.
package system

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"syscall"
)

// InitResourceLimits raises the open file limit. Frame fetches and the
// encoder pipe each hold descriptors.
func InitResourceLimits(logger *slog.Logger) {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		logger.Warn("failed to read open file limit", "error", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		logger.Warn("failed to raise open file limit", "error", err)
	} else {
		logger.Debug("open file limit raised", "limit", rLimit.Cur)
	}
}

// h264Encoders in order of preference; libx264 is the fallback.
var h264Encoders = []string{
	"h264_videotoolbox", // macOS
	"h264_nvenc",        // NVIDIA
}

// GetBestH264Encoder asks ffmpeg for its encoder list and returns the first
// hardware H.264 encoder available, or libx264.
func GetBestH264Encoder(ctx context.Context) string {
	out, err := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	return pickEncoder(string(out))
}

func pickEncoder(list string) string {
	for _, enc := range h264Encoders {
		if strings.Contains(list, enc) {
			return enc
		}
	}
	return "libx264"
}
