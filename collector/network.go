package collector

import (
	"context"
	"errors"
	"runtime"
	"time"

	"hostreport/models"

	probing "github.com/prometheus-community/pro-bing"
	gopsnet "github.com/shirou/gopsutil/v3/net"
	"go.uber.org/zap"
)

var ioCounters = gopsnet.IOCountersWithContext

// CollectNetwork returns cumulative byte counters summed over all interfaces.
func CollectNetwork(ctx context.Context) (models.NetworkCounters, error) {
	netIO, err := ioCounters(ctx, false)
	if err != nil {
		return models.NetworkCounters{}, &CollectionError{Source: "network", Err: err}
	}
	if len(netIO) == 0 {
		return models.NetworkCounters{}, &CollectionError{Source: "network", Err: errors.New("no interface counters")}
	}
	return models.NetworkCounters{
		BytesSent: netIO[0].BytesSent,
		BytesRecv: netIO[0].BytesRecv,
	}, nil
}

// pinger is the part of *probing.Pinger the latency probe drives.
type pinger interface {
	RunWithContext(ctx context.Context) error
	Statistics() *probing.Statistics
}

var newPinger = func(target string, count int) (pinger, error) {
	p, err := probing.NewPinger(target)
	if err != nil {
		return nil, err
	}
	p.Count = count
	p.Interval = 200 * time.Millisecond
	p.Timeout = time.Duration(count)*time.Second + time.Second
	// Windows has no unprivileged ICMP; Linux uses UDP ping sockets.
	p.SetPrivileged(runtime.GOOS == "windows")
	return p, nil
}

// CollectLatency pings each target. Unreachable or unresolvable targets are
// reported as such, never as an error.
func CollectLatency(ctx context.Context, targets []string, count int, log *zap.Logger) []models.LatencyInfo {
	if len(targets) == 0 {
		return nil
	}
	if count < 1 {
		count = 1
	}

	results := make([]models.LatencyInfo, 0, len(targets))
	for _, target := range targets {
		info := models.LatencyInfo{Target: target, PacketLoss: 100}

		p, err := newPinger(target, count)
		if err != nil {
			log.Debug("ping setup failed", zap.String("target", target), zap.Error(err))
			results = append(results, info)
			continue
		}

		if err := p.RunWithContext(ctx); err != nil {
			log.Debug("ping failed", zap.String("target", target), zap.Error(err))
			results = append(results, info)
			continue
		}

		stats := p.Statistics()
		info.PacketLoss = stats.PacketLoss
		info.AvgRTT = stats.AvgRtt
		info.Reachable = stats.PacketsRecv > 0
		results = append(results, info)
	}

	return results
}
