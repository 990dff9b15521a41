package editor

import "fmt"

// ItemPathNotExistError is returned when a file vanished before it could be opened
type ItemPathNotExistError struct {
	Path string
}

func (e *ItemPathNotExistError) Error() string {
	return fmt.Sprintf("path %q doesn't exist", e.Path)
}

// CommandSpawnError is returned when the editor process could not be started
type CommandSpawnError struct {
	Path string
	Err  error
}

func (e *CommandSpawnError) Error() string {
	return fmt.Sprintf("failed to start editor for %q: %v", e.Path, e.Err)
}

func (e *CommandSpawnError) Unwrap() error {
	return e.Err
}
