package launcher

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bastio-ai/gvl/internal/editor"
	"github.com/bastio-ai/gvl/internal/files"
)

// Plan describes what a run would do without starting any process
type Plan struct {
	Editor     string        `yaml:"editor"`
	ServerName string        `yaml:"server_name"`
	Instance   string        `yaml:"instance"` // "found" or "not-found"
	TotalBytes int64         `yaml:"total_bytes"`
	Files      []PlannedFile `yaml:"files"`
}

// PlannedFile is one editor invocation of a plan
type PlannedFile struct {
	Path string   `yaml:"path"`
	Args []string `yaml:"args"`
}

// Plan resolves paths like Run and reports the editor invocations it would make.
// It looks for a running instance once without waiting for it to warm up.
// When none is running, the first file starts one and the rest are sent to it.
func (l *Launcher) Plan(ctx context.Context, paths []string) (*Plan, error) {
	batch, err := l.resolve(paths)
	if err != nil {
		return nil, err
	}

	_, found, err := l.newProber().Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look for a running %s: %w", l.opts.Editor, err)
	}
	state := editor.InstanceNotFound
	if found {
		state = editor.InstanceFound
	}

	plan := &Plan{
		Editor:     l.opts.Editor,
		ServerName: l.opts.ServerName,
		Instance:   state.String(),
		TotalBytes: files.TotalSize(l.opts.Fs, batch),
		Files:      make([]PlannedFile, 0, len(batch)),
	}
	for i, f := range batch {
		fileState := state
		if i > 0 {
			fileState = editor.InstanceFound
		}
		plan.Files = append(plan.Files, PlannedFile{
			Path: f,
			Args: editor.ArgsFor(fileState, l.opts.ServerName, f),
		})
	}
	return plan, nil
}

// YAML renders the plan
func (p *Plan) YAML() (string, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan: %w", err)
	}
	return string(data), nil
}
