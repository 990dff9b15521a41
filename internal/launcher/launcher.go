// Package launcher opens a batch of paths in one shared editor instance
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/bastio-ai/gvl/internal/editor"
	"github.com/bastio-ai/gvl/internal/files"
	"github.com/bastio-ai/gvl/internal/ui"
)

var (
	// ErrEditorNotFound is returned when the editor executable is not on the search path
	ErrEditorNotFound = errors.New("editor executable not found")

	// ErrNoPaths is returned when there is nothing to open
	ErrNoPaths = errors.New("no paths given")

	// ErrTooManyArgs is returned when more than files.MaxArgs paths are given
	ErrTooManyArgs = errors.New("too many paths given")

	// ErrTooLarge is returned when the files together exceed files.MaxTotalFileBytes
	ErrTooLarge = errors.New("files are too large to open")
)

// Options holds the collaborators of a Launcher
type Options struct {
	Fs           afero.Fs
	Spawner      editor.Spawner
	ProcessTable editor.ProcessTable
	Editor       string
	ServerName   string
	Logger       *log.Logger
	Stderr       io.Writer // receives per-file error messages
}

// Launcher runs one launch request: expand, size-check, then open every file
type Launcher struct {
	opts Options
}

// New creates a launcher
func New(opts Options) *Launcher {
	return &Launcher{opts: opts}
}

// Result summarizes a run
type Result struct {
	Files    []string // Files resolved from the arguments, in open order
	Launched int      // Files handed to the editor
	Failed   int      // Files reported and skipped
}

// Run opens the files named by paths.
// Problems with a single file are written to Stderr and do not stop the run.
// Any returned error means the request as a whole was rejected.
func (l *Launcher) Run(ctx context.Context, paths []string) (*Result, error) {
	batch, err := l.resolve(paths)
	if err != nil {
		return nil, err
	}

	d := l.newDispatcher()
	result := &Result{Files: batch}
	for _, f := range batch {
		err := d.Open(ctx, f)
		if err == nil {
			continue
		}

		var notExist *editor.ItemPathNotExistError
		var spawnFailure *editor.CommandSpawnError
		switch {
		case errors.As(err, &notExist):
			ui.Errorf(l.opts.Stderr, "Path: %q doesn't exist.", notExist.Path)
		case errors.As(err, &spawnFailure):
			ui.Errorf(l.opts.Stderr, "%v", spawnFailure)
		default:
			return nil, err
		}
		l.opts.Logger.Debug("skipped file", "path", f, "err", err)
		result.Failed++
	}

	result.Launched = d.Launched()
	l.opts.Logger.Info("run finished", "files", len(batch), "launched", result.Launched, "failed", result.Failed)
	return result, nil
}

// resolve checks the request and turns paths into the batch of files to open
func (l *Launcher) resolve(paths []string) ([]string, error) {
	if _, err := l.opts.Spawner.LookPath(l.opts.Editor); err != nil {
		return nil, fmt.Errorf("%w: %s is not installed or not on PATH", ErrEditorNotFound, l.opts.Editor)
	}
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}
	if len(paths) > files.MaxArgs {
		return nil, fmt.Errorf("%w: %d paths, at most %d allowed", ErrTooManyArgs, len(paths), files.MaxArgs)
	}

	batch, err := files.NewExpander(l.opts.Fs).ExpandAll(paths)
	if err != nil {
		return nil, err
	}
	l.opts.Logger.Debug("expanded paths", "args", len(paths), "files", len(batch))

	if files.ExceedsLimit(l.opts.Fs, batch, files.MaxTotalFileBytes) {
		return nil, fmt.Errorf("%w: more than %d bytes in total", ErrTooLarge, files.MaxTotalFileBytes)
	}
	return batch, nil
}

func (l *Launcher) newProber() *editor.Prober {
	return editor.NewProber(l.opts.ProcessTable, l.opts.Editor, l.opts.Logger)
}

func (l *Launcher) newDispatcher() *editor.Dispatcher {
	return editor.NewDispatcher(editor.DispatcherConfig{
		Fs:         l.opts.Fs,
		Spawner:    l.opts.Spawner,
		Prober:     l.newProber(),
		Editor:     l.opts.Editor,
		ServerName: l.opts.ServerName,
		Logger:     l.opts.Logger,
	})
}
