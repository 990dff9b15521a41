package editor

import "os/exec"

// Spawner starts processes without waiting for them
type Spawner interface {
	// LookPath reports where the named executable is on the search path
	LookPath(name string) (string, error)

	// Spawn starts name with args and returns once the process is running
	Spawn(name string, args ...string) error
}

// ExecSpawner starts real processes with os/exec
type ExecSpawner struct{}

// LookPath implements Spawner
func (ExecSpawner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Spawn implements Spawner.
// The child is released immediately; its exit status is never collected.
func (ExecSpawner) Spawn(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	_ = cmd.Process.Release()
	return nil
}
