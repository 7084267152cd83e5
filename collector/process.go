package collector

import (
	"context"
	"errors"
	"slices"
	"strings"

	"hostreport/models"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"
)

var errZombie = errors.New("zombie process")

// procReader is one entry of the process table. Any method may fail when the
// process exits or denies access mid-read.
type procReader interface {
	PID() int32
	Name(ctx context.Context) (string, error)
	Zombie(ctx context.Context) bool
	CPUPercent(ctx context.Context) (float64, error)
	RSS(ctx context.Context) (uint64, error)
}

type gopsProcess struct {
	p *process.Process
}

func (g gopsProcess) PID() int32 { return g.p.Pid }

func (g gopsProcess) Name(ctx context.Context) (string, error) {
	return g.p.NameWithContext(ctx)
}

// Zombie treats an unreadable status as alive; the reads that follow fail
// on their own if the process is gone.
func (g gopsProcess) Zombie(ctx context.Context) bool {
	status, err := g.p.StatusWithContext(ctx)
	return err == nil && slices.Contains(status, process.Zombie)
}

// CPUPercent is not primed with an earlier sample, so a first read may be 0.
func (g gopsProcess) CPUPercent(ctx context.Context) (float64, error) {
	return g.p.CPUPercentWithContext(ctx)
}

func (g gopsProcess) RSS(ctx context.Context) (uint64, error) {
	memInfo, err := g.p.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return memInfo.RSS, nil
}

var listProcesses = func(ctx context.Context) ([]procReader, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	readers := make([]procReader, 0, len(procs))
	for _, p := range procs {
		readers = append(readers, gopsProcess{p: p})
	}
	return readers, nil
}

// CollectProcesses returns every process whose name contains filter,
// case-insensitively, in the order the OS lists them. Unreadable processes
// are skipped.
func CollectProcesses(ctx context.Context, filter string, log *zap.Logger) (models.ProcessSnapshot, error) {
	snap := models.ProcessSnapshot{Filter: filter}
	log.Info("filtering processes", zap.String("filter", filter))

	procs, err := listProcesses(ctx)
	if err != nil {
		return snap, &CollectionError{Source: "process", Err: err}
	}

	needle := strings.ToLower(filter)
	skipped := 0

	for _, p := range procs {
		entry, ok, err := readProcess(ctx, p, needle)
		if err != nil {
			skipped++
			log.Debug("skipping process", zap.Int32("pid", p.PID()), zap.Error(err))
			continue
		}
		if ok {
			snap.Entries = append(snap.Entries, entry)
		}
	}

	snap.NoMatches = len(snap.Entries) == 0
	log.Debug("process scan done",
		zap.Int("total", len(procs)),
		zap.Int("matched", len(snap.Entries)),
		zap.Int("skipped", skipped),
	)
	return snap, nil
}

func readProcess(ctx context.Context, p procReader, needle string) (models.ProcessEntry, bool, error) {
	name, err := p.Name(ctx)
	if err != nil {
		return models.ProcessEntry{}, false, err
	}
	if !strings.Contains(strings.ToLower(name), needle) {
		return models.ProcessEntry{}, false, nil
	}
	if p.Zombie(ctx) {
		return models.ProcessEntry{}, false, errZombie
	}

	cpuPct, err := p.CPUPercent(ctx)
	if err != nil {
		return models.ProcessEntry{}, false, err
	}
	rss, err := p.RSS(ctx)
	if err != nil {
		return models.ProcessEntry{}, false, err
	}

	return models.ProcessEntry{
		PID:        p.PID(),
		Name:       name,
		CPUPercent: cpuPct,
		MemoryRSS:  rss,
	}, true, nil
}
