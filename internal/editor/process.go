// Package editor finds a running editor instance and hands files to it
package editor

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// Process describes a running process found in the process table
type Process struct {
	PID       int32
	Name      string
	StartedAt time.Time // zero if unknown
}

// ProcessTable looks up running processes by executable name
type ProcessTable interface {
	// Find returns the first process whose name is one of names.
	// found is false when no process matches.
	Find(ctx context.Context, names ...string) (p Process, found bool, err error)
}

// SystemProcessTable reads the operating system's process table
type SystemProcessTable struct{}

// Find implements ProcessTable.
// Processes whose name cannot be read are skipped. A match whose start time
// cannot be read is returned with a zero StartedAt.
func (SystemProcessTable) Find(ctx context.Context, names ...string) (Process, bool, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return Process{}, false, fmt.Errorf("failed to list processes: %w", err)
	}

	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || !slices.Contains(names, name) {
			continue
		}
		found := Process{PID: p.Pid, Name: name}
		if created, err := p.CreateTimeWithContext(ctx); err == nil {
			found.StartedAt = time.UnixMilli(created)
		}
		return found, true, nil
	}

	return Process{}, false, nil
}

// ExecutableNames returns the process names an editor binary can show up as
func ExecutableNames(editor string) []string {
	return []string{editor, editor + ".exe"}
}
