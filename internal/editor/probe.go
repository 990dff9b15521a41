package editor

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// WarmUp is how long a freshly started editor needs before its remote
// server accepts commands. There is no readiness signal to wait on instead.
const WarmUp = 2000 * time.Millisecond

// ProbeState records what is known about a running editor instance
type ProbeState int

const (
	// NeverChecked means the process table has not been inspected yet
	NeverChecked ProbeState = iota
	// InstanceFound means a ready editor instance is running
	InstanceFound
	// InstanceNotFound means no editor instance was running when last checked
	InstanceNotFound
)

func (s ProbeState) String() string {
	switch s {
	case NeverChecked:
		return "never-checked"
	case InstanceFound:
		return "found"
	case InstanceNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Prober looks for a running editor instance and waits for it to warm up
type Prober struct {
	table  ProcessTable
	names  []string
	warmUp time.Duration
	logger *log.Logger

	// now and sleep are replaced in tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// NewProber creates a prober for the given editor executable
func NewProber(table ProcessTable, editor string, logger *log.Logger) *Prober {
	return &Prober{
		table:  table,
		names:  ExecutableNames(editor),
		warmUp: WarmUp,
		logger: logger,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// Probe inspects the process table.
// If a matching process started less than the warm-up interval ago, Probe
// blocks for the rest of that interval before reporting InstanceFound.
func (p *Prober) Probe(ctx context.Context) (ProbeState, error) {
	proc, found, err := p.Find(ctx)
	if err != nil {
		return NeverChecked, err
	}
	if !found {
		p.logger.Debug("no editor instance running", "names", p.names)
		return InstanceNotFound, nil
	}

	if wait := p.remainingWarmUp(proc); wait > 0 {
		p.logger.Debug("waiting for editor to warm up", "pid", proc.PID, "wait", wait)
		p.sleep(ctx, wait)
	}
	p.logger.Debug("editor instance found", "pid", proc.PID, "name", proc.Name)
	return InstanceFound, nil
}

// Find looks up the editor process without waiting for it
func (p *Prober) Find(ctx context.Context) (Process, bool, error) {
	return p.table.Find(ctx, p.names...)
}

// remainingWarmUp returns how long proc still needs before it is ready
func (p *Prober) remainingWarmUp(proc Process) time.Duration {
	if proc.StartedAt.IsZero() {
		return 0
	}
	elapsed := p.now().Sub(proc.StartedAt)
	if elapsed >= p.warmUp {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return p.warmUp - elapsed
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
