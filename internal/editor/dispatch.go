package editor

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Dispatcher opens files in the editor, reusing a running instance when there is one
type Dispatcher struct {
	fs         afero.Fs
	spawner    Spawner
	prober     *Prober
	editor     string
	serverName string
	logger     *log.Logger

	state    ProbeState
	launched int
}

// DispatcherConfig holds the collaborators of a Dispatcher
type DispatcherConfig struct {
	Fs         afero.Fs
	Spawner    Spawner
	Prober     *Prober
	Editor     string
	ServerName string
	Logger     *log.Logger
}

// NewDispatcher creates a dispatcher that has not probed for an instance yet.
// cfg.ServerName must not be empty.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	return &Dispatcher{
		fs:         cfg.Fs,
		spawner:    cfg.Spawner,
		prober:     cfg.Prober,
		editor:     cfg.Editor,
		serverName: cfg.ServerName,
		logger:     cfg.Logger,
		state:      NeverChecked,
	}
}

// State returns the last probe result
func (d *Dispatcher) State() ProbeState {
	return d.state
}

// Launched returns how many files were handed to the editor
func (d *Dispatcher) Launched() int {
	return d.launched
}

// Open hands a single file to the editor.
// It returns *ItemPathNotExistError or *CommandSpawnError for problems with
// this file; any other error means the process table could not be read.
func (d *Dispatcher) Open(ctx context.Context, path string) error {
	if _, err := d.fs.Stat(path); err != nil {
		return &ItemPathNotExistError{Path: path}
	}

	// A found instance is trusted for the rest of the run. Otherwise an
	// instance started by an earlier Open may be up by now.
	switch d.state {
	case NeverChecked, InstanceNotFound:
		state, err := d.prober.Probe(ctx)
		if err != nil {
			return fmt.Errorf("failed to look for a running %s: %w", d.editor, err)
		}
		d.state = state
	case InstanceFound:
	}

	args := d.Args(path)
	d.logger.Debug("opening file", "path", path, "instance", d.state, "args", args)
	if err := d.spawner.Spawn(d.editor, args...); err != nil {
		return &CommandSpawnError{Path: path, Err: err}
	}
	d.launched++
	return nil
}

// Args returns the editor arguments that open path given the current probe state
func (d *Dispatcher) Args(path string) []string {
	return ArgsFor(d.state, d.serverName, path)
}

// ArgsFor returns the editor arguments that open path.
// A running instance receives the file as a new tab through its remote server.
func ArgsFor(state ProbeState, serverName, path string) []string {
	if state == InstanceFound {
		return []string{"--servername", serverName, "--remote-tab", path}
	}
	return []string{path}
}
