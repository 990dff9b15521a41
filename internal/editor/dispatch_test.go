package editor

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// spawnCall is one recorded Spawn invocation
type spawnCall struct {
	name string
	args []string
}

// fakeSpawner records spawns instead of starting processes
type fakeSpawner struct {
	calls []spawnCall
	err   error

	// onSpawn runs after a successful spawn, e.g. to add the editor to a fakeTable
	onSpawn func()
}

func (f *fakeSpawner) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func (f *fakeSpawner) Spawn(name string, args ...string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, spawnCall{name: name, args: args})
	if f.onSpawn != nil {
		f.onSpawn()
	}
	return nil
}

// newTestDispatcher builds a dispatcher over an in-memory filesystem holding paths
func newTestDispatcher(t *testing.T, table *fakeTable, spawner *fakeSpawner, paths ...string) *Dispatcher {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, p := range paths {
		if err := afero.WriteFile(fs, p, []byte("text"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	logger := log.New(io.Discard)
	prober := NewProber(table, "gvim", logger)
	prober.sleep = func(context.Context, time.Duration) {}
	return NewDispatcher(DispatcherConfig{
		Fs:         fs,
		Spawner:    spawner,
		Prober:     prober,
		Editor:     "gvim",
		ServerName: "GVIM",
		Logger:     logger,
	})
}

func TestDispatcher_OpenFreshInstance(t *testing.T) {
	table := &fakeTable{}
	spawner := &fakeSpawner{}
	d := newTestDispatcher(t, table, spawner, "/notes.txt")

	if err := d.Open(context.Background(), "/notes.txt"); err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	want := []spawnCall{{name: "gvim", args: []string{"/notes.txt"}}}
	if !reflect.DeepEqual(spawner.calls, want) {
		t.Errorf("spawned %v, want %v", spawner.calls, want)
	}
	if d.Launched() != 1 {
		t.Errorf("Launched() = %d, want 1", d.Launched())
	}
	if d.State() != InstanceNotFound {
		t.Errorf("State() = %v, want %v", d.State(), InstanceNotFound)
	}
}

func TestDispatcher_OpenRemote(t *testing.T) {
	table := &fakeTable{procs: []Process{{PID: 10, Name: "gvim"}}}
	spawner := &fakeSpawner{}
	d := newTestDispatcher(t, table, spawner, "/a.txt", "/b.txt", "/c.txt")

	for _, p := range []string{"/a.txt", "/b.txt", "/c.txt"} {
		if err := d.Open(context.Background(), p); err != nil {
			t.Fatalf("Open(%q) error: %v", p, err)
		}
	}

	if table.calls != 1 {
		t.Errorf("process table queried %d times, want 1", table.calls)
	}
	if d.Launched() != 3 {
		t.Errorf("Launched() = %d, want 3", d.Launched())
	}
	wantArgs := []string{"--servername", "GVIM", "--remote-tab", "/b.txt"}
	if !reflect.DeepEqual(spawner.calls[1].args, wantArgs) {
		t.Errorf("second spawn args = %v, want %v", spawner.calls[1].args, wantArgs)
	}
}

func TestDispatcher_ReprobesUntilFound(t *testing.T) {
	table := &fakeTable{}
	spawner := &fakeSpawner{}
	spawner.onSpawn = func() {
		table.procs = []Process{{PID: 20, Name: "gvim"}}
	}
	d := newTestDispatcher(t, table, spawner, "/1", "/2", "/3")

	for _, p := range []string{"/1", "/2", "/3"} {
		if err := d.Open(context.Background(), p); err != nil {
			t.Fatalf("Open(%q) error: %v", p, err)
		}
	}

	// First open probes and spawns fresh, second probes and finds it, third trusts it
	if table.calls != 2 {
		t.Errorf("process table queried %d times, want 2", table.calls)
	}
	want := []spawnCall{
		{name: "gvim", args: []string{"/1"}},
		{name: "gvim", args: []string{"--servername", "GVIM", "--remote-tab", "/2"}},
		{name: "gvim", args: []string{"--servername", "GVIM", "--remote-tab", "/3"}},
	}
	if !reflect.DeepEqual(spawner.calls, want) {
		t.Errorf("spawned %v, want %v", spawner.calls, want)
	}
}

func TestDispatcher_MissingPath(t *testing.T) {
	table := &fakeTable{}
	spawner := &fakeSpawner{}
	d := newTestDispatcher(t, table, spawner)

	err := d.Open(context.Background(), "/gone.txt")
	var notExist *ItemPathNotExistError
	if !errors.As(err, &notExist) {
		t.Fatalf("Open() error = %v, want *ItemPathNotExistError", err)
	}
	if notExist.Path != "/gone.txt" {
		t.Errorf("error path = %q, want /gone.txt", notExist.Path)
	}
	if len(spawner.calls) != 0 {
		t.Errorf("spawned %v for a missing path", spawner.calls)
	}
	if table.calls != 0 {
		t.Errorf("probed %d times for a missing path", table.calls)
	}
	if d.State() != NeverChecked {
		t.Errorf("State() = %v, want %v", d.State(), NeverChecked)
	}
}

func TestDispatcher_SpawnError(t *testing.T) {
	spawnErr := errors.New("exec format error")
	d := newTestDispatcher(t, &fakeTable{}, &fakeSpawner{err: spawnErr}, "/x")

	err := d.Open(context.Background(), "/x")
	var spawnFailure *CommandSpawnError
	if !errors.As(err, &spawnFailure) {
		t.Fatalf("Open() error = %v, want *CommandSpawnError", err)
	}
	if !errors.Is(err, spawnErr) {
		t.Errorf("Open() error does not wrap %v", spawnErr)
	}
	if d.Launched() != 0 {
		t.Errorf("Launched() = %d after a failed spawn, want 0", d.Launched())
	}
}

func TestDispatcher_ProbeError(t *testing.T) {
	tableErr := errors.New("no /proc")
	d := newTestDispatcher(t, &fakeTable{err: tableErr}, &fakeSpawner{}, "/x")

	err := d.Open(context.Background(), "/x")
	if !errors.Is(err, tableErr) {
		t.Fatalf("Open() error = %v, want %v", err, tableErr)
	}
	var notExist *ItemPathNotExistError
	var spawnFailure *CommandSpawnError
	if errors.As(err, &notExist) || errors.As(err, &spawnFailure) {
		t.Errorf("probe failure reported as a per-file error: %v", err)
	}
}

func TestArgsFor(t *testing.T) {
	tests := []struct {
		name  string
		state ProbeState
		want  []string
	}{
		{"never checked", NeverChecked, []string{"/f"}},
		{"not found", InstanceNotFound, []string{"/f"}},
		{"found", InstanceFound, []string{"--servername", "EDIT", "--remote-tab", "/f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ArgsFor(tt.state, "EDIT", "/f")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ArgsFor() = %v, want %v", got, tt.want)
			}
		})
	}
}
