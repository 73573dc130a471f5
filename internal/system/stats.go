package system

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats is a point-in-time resource reading for the current process.
type Stats struct {
	RSS         uint64
	SystemUsed  float64 // percent
	SystemTotal uint64
	CPU         float64 // percent since process start
	Elapsed     time.Duration
	Frames      int
}

// ReadStats samples process and host memory. Fields that cannot be read
// are left zero.
func ReadStats(start time.Time, frames int) Stats {
	s := Stats{Elapsed: time.Since(start), Frames: frames}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.SystemUsed = vm.UsedPercent
		s.SystemTotal = vm.Total
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := p.MemoryInfo(); err == nil {
			s.RSS = mi.RSS
		}
		if cpu, err := p.CPUPercent(); err == nil {
			s.CPU = cpu
		}
	}
	return s
}

// FPS is the average frames written per second.
func (s Stats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

func (s Stats) String() string {
	return fmt.Sprintf("%s frames in %s (%.1f fps), rss %s, cpu %.0f%%, host memory %.0f%% of %s",
		humanize.Comma(int64(s.Frames)),
		s.Elapsed.Round(time.Millisecond),
		s.FPS(),
		humanize.Bytes(s.RSS),
		s.CPU,
		s.SystemUsed,
		humanize.Bytes(s.SystemTotal),
	)
}
