package container

// ApiStats is the subset of GET /containers/{id}/stats. With one-shot
// requests the engine fills PreCPUStats from its own previous sample, so a
// single response is enough for a usage delta.
type ApiStats struct {
	CPUStats    CPUStats    `json:"cpu_stats"`
	PreCPUStats CPUStats    `json:"precpu_stats"`
	MemoryStats MemoryStats `json:"memory_stats"`
}

type CPUStats struct {
	CPUUsage struct {
		TotalUsage uint64 `json:"total_usage"`
	} `json:"cpu_usage"`
	SystemUsage uint64 `json:"system_cpu_usage"`
	OnlineCPUs  uint32 `json:"online_cpus"`
}

type MemoryStats struct {
	Usage uint64 `json:"usage"`
	Limit uint64 `json:"limit"`
	Stats struct {
		Cache        uint64 `json:"cache"`
		InactiveFile uint64 `json:"inactive_file"`
	} `json:"stats"`
}

// CpuPercent computes CPU usage the way the docker CLI does: the container
// delta over the system delta, scaled by the number of online CPUs.
func (s *ApiStats) CpuPercent() float64 {
	cpuDelta := float64(s.CPUStats.CPUUsage.TotalUsage) - float64(s.PreCPUStats.CPUUsage.TotalUsage)
	systemDelta := float64(s.CPUStats.SystemUsage) - float64(s.PreCPUStats.SystemUsage)
	if cpuDelta <= 0 || systemDelta <= 0 {
		return 0
	}
	cpus := float64(s.CPUStats.OnlineCPUs)
	if cpus == 0 {
		cpus = 1
	}
	return cpuDelta / systemDelta * cpus * 100
}

// MemPercent computes memory usage against the cgroup limit, excluding the
// page cache the way docker stats does.
func (s *ApiStats) MemPercent() float64 {
	if s.MemoryStats.Limit == 0 {
		return 0
	}
	cache := s.MemoryStats.Stats.InactiveFile
	if cache == 0 {
		cache = s.MemoryStats.Stats.Cache
	}
	used := s.MemoryStats.Usage
	if cache < used {
		used -= cache
	}
	return float64(used) / float64(s.MemoryStats.Limit) * 100
}
