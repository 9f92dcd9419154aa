package system

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats is a point-in-time resource report of the current process
type Stats struct {
	Taken      time.Time
	CPUModel   string
	LogicalCPU int
	// Process
	RSS        uint64
	CPUPercent float64
	Goroutines int
	HeapAlloc  uint64
	// Host
	TotalMemory uint64
	UsedPercent float64
}

// Snapshot collects process and host statistics.
// Fields that cannot be read on this platform stay zero.
func Snapshot() (Stats, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	st := Stats{
		Taken:      time.Now(),
		LogicalCPU: runtime.NumCPU(),
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
	}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		st.CPUModel = infos[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		st.TotalMemory = vm.Total
		st.UsedPercent = vm.UsedPercent
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return st, fmt.Errorf("failed to inspect process: %w", err)
	}
	if mi, err := proc.MemoryInfo(); err == nil {
		st.RSS = mi.RSS
	}
	if pct, err := proc.CPUPercent(); err == nil {
		st.CPUPercent = pct
	}
	return st, nil
}

// FormatBytes renders a byte count with a binary unit
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
