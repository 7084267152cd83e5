package collector

import (
	"context"

	"hostreport/config"
	"hostreport/models"

	"github.com/docker/docker/client"
	"go.uber.org/zap"
)

// CollectionError marks a failed query for an essential reading
// (performance, network, process table). It aborts the run.
type CollectionError struct {
	Source string
	Err    error
}

func (e *CollectionError) Error() string {
	return e.Source + " collection failed: " + e.Err.Error()
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}

// Host collects a Snapshot of the local machine.
type Host struct {
	cfg *config.Config
	log *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Host {
	return &Host{cfg: cfg, log: log}
}

// Collect runs every collector once, in report order. The first essential
// failure is returned and nothing else is collected after it.
func (h *Host) Collect(ctx context.Context) (*models.Snapshot, error) {
	caps := DetectCapabilities(h.log)

	snap := &models.Snapshot{
		Device: DescribeDevice(ctx, h.cfg.ServerName, h.log),
	}

	sys, err := CollectPerformance(ctx, h.cfg.DiskPath)
	if err != nil {
		return nil, err
	}
	snap.System = sys

	netIO, err := CollectNetwork(ctx)
	if err != nil {
		return nil, err
	}
	snap.Network = netIO

	procs, err := CollectProcesses(ctx, h.cfg.ProcessFilter, h.log)
	if err != nil {
		return nil, err
	}
	snap.Processes = procs

	if h.cfg.ReportContainers {
		if dockerReachable(caps) {
			snap.Containers = CollectContainers(ctx, h.log)
		} else {
			h.log.Warn("container reporting enabled but no docker daemon configured",
				zap.String("socket", dockerSocket),
				zap.String("env", client.EnvOverrideHost),
			)
		}
	}

	if len(h.cfg.PingTargets) > 0 {
		snap.Latency = CollectLatency(ctx, h.cfg.PingTargets, h.cfg.PingCount, h.log)
	}

	h.log.Debug("collection finished",
		zap.Int("processes", len(snap.Processes.Entries)),
		zap.Int("containers", len(snap.Containers)),
		zap.Int("latency_targets", len(snap.Latency)),
	)
	return snap, nil
}
