package cmd

import (
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// hostThreads returns the number of logical cores, or fallback when it cannot be read
func hostThreads(fallback int) int {
	count, err := cpu.Counts(true)
	if err != nil || count <= 0 {
		logger.Warningf("could not count logical cores, using %d threads: %v", fallback, err)
		return fallback
	}
	return count
}

// logHost logs the CPU and memory the render runs on and warns about oversubscription
func logHost(threads int) {
	cores := hostThreads(threads)

	model := "unknown cpu"
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		model = info[0].ModelName
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		logger.Infof("host: %s, %d logical cores, %.1f GiB memory available",
			model, cores, float64(vm.Available)/(1<<30))
	} else {
		logger.Infof("host: %s, %d logical cores", model, cores)
	}

	if threads > cores {
		logger.Warningf("%d threads requested on %d logical cores", threads, cores)
	}
}
