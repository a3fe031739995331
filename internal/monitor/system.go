package monitor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"aiopsmon/internal/entities/snapshot"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	psutilNet "github.com/shirou/gopsutil/v4/net"
)

// cpuSampleInterval is the window for the CPU utilization sample.
const cpuSampleInterval = 200 * time.Millisecond

// pseudo filesystems and mounts that carry no capacity signal
var skipFsTypes = map[string]struct{}{
	"squashfs": {}, "overlay": {}, "tmpfs": {}, "devtmpfs": {},
	"devfs": {}, "iso9660": {}, "ramfs": {}, "aufs": {},
}

// systemCollector samples host-level resource usage via gopsutil.
type systemCollector struct{}

func newSystemCollector() *systemCollector { return &systemCollector{} }

func (s *systemCollector) Name() string { return "system" }

// Collect populates snap.ResourceUsage. Each sub-sample fails independently:
// a missing disk or network reading is logged and the rest of the sample is
// still collected.
func (s *systemCollector) Collect(ctx context.Context, snap *snapshot.Snapshot) error {
	usage := snapshot.ResourceUsage{
		Disks:   []snapshot.DiskUsage{},
		Network: []snapshot.NetCounters{},
	}

	if percents, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false); err == nil && len(percents) > 0 {
		usage.CpuPercent = twoDecimals(percents[0])
	} else if err != nil {
		slog.Warn("CPU sample failed", "err", err)
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		usage.Memory = snapshot.MemoryUsage{
			Total:   vm.Total,
			Used:    vm.Used,
			Free:    vm.Available,
			Percent: twoDecimals(vm.UsedPercent),
		}
	} else {
		slog.Warn("Memory sample failed", "err", err)
	}

	if partitions, err := disk.PartitionsWithContext(ctx, false); err == nil {
		for _, part := range partitions {
			if _, skip := skipFsTypes[part.Fstype]; skip {
				continue
			}
			du, err := disk.UsageWithContext(ctx, part.Mountpoint)
			if err != nil || du.Total == 0 {
				continue
			}
			usage.Disks = append(usage.Disks, snapshot.DiskUsage{
				Mount:   part.Mountpoint,
				Total:   du.Total,
				Used:    du.Used,
				Percent: twoDecimals(du.UsedPercent),
			})
		}
	} else {
		slog.Warn("Disk sample failed", "err", err)
	}

	if counters, err := psutilNet.IOCountersWithContext(ctx, true); err == nil {
		for _, nic := range counters {
			if !isValidNic(nic.Name) {
				continue
			}
			usage.Network = append(usage.Network, snapshot.NetCounters{
				Name:      nic.Name,
				BytesSent: nic.BytesSent,
				BytesRecv: nic.BytesRecv,
			})
		}
	} else {
		slog.Warn("Network sample failed", "err", err)
	}

	snap.ResourceUsage = usage
	return nil
}

// isValidNic filters out loopback and container-side virtual interfaces.
func isValidNic(name string) bool {
	if name == "lo" || name == "lo0" {
		return false
	}
	for _, prefix := range []string{"veth", "br-", "docker", "flannel", "cni"} {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}

func twoDecimals(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
