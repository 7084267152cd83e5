package collector

import (
	"context"
	"errors"
	"time"

	"hostreport/models"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// cpuWindow is the blocking sample window. Without it the first reading in a
// fresh process is always 0%.
const cpuWindow = time.Second

var (
	cpuPercent    = cpu.PercentWithContext
	virtualMemory = mem.VirtualMemoryWithContext
	diskUsage     = disk.UsageWithContext
)

// CollectPerformance gathers CPU, memory and disk usage for diskPath.
func CollectPerformance(ctx context.Context, diskPath string) (models.MetricSample, error) {
	var sample models.MetricSample

	percent, err := cpuPercent(ctx, cpuWindow, false)
	if err != nil {
		return sample, &CollectionError{Source: "cpu", Err: err}
	}
	if len(percent) == 0 {
		return sample, &CollectionError{Source: "cpu", Err: errors.New("no cpu reading")}
	}
	sample.CPUPercent = percent[0]

	memInfo, err := virtualMemory(ctx)
	if err != nil {
		return sample, &CollectionError{Source: "memory", Err: err}
	}
	sample.MemoryPercent = memoryPercent(memInfo)
	sample.MemoryAvailable = memInfo.Available

	usage, err := diskUsage(ctx, diskPath)
	if err != nil {
		return sample, &CollectionError{Source: "disk", Err: err}
	}
	sample.DiskPercent = usage.UsedPercent
	sample.DiskFree = usage.Free

	return sample, nil
}

// memoryPercent is (total-available)/total, consistent with the Available
// figure printed beside it. gopsutil's UsedPercent leaves out buffers and cache.
func memoryPercent(m *mem.VirtualMemoryStat) float64 {
	if m.Total == 0 || m.Available > m.Total {
		return 0
	}
	return float64(m.Total-m.Available) / float64(m.Total) * 100
}
