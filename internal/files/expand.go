package files

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrTooManyEntries is returned when an expansion visits more entries than its budget allows
var ErrTooManyEntries = errors.New("directory structure is too large to expand")

// Budget counts the entries visited during one expansion.
// A single Budget is shared by every recursive call of that expansion.
type Budget struct {
	visited int
	limit   int
}

// NewBudget creates a budget that fails once more than limit entries are visited
func NewBudget(limit int) *Budget {
	return &Budget{limit: limit}
}

// Visit charges one entry against the budget
func (b *Budget) Visit() error {
	b.visited++
	if b.visited > b.limit {
		return fmt.Errorf("%w: visited more than %d entries", ErrTooManyEntries, b.limit)
	}
	return nil
}

// Visited returns the number of entries charged so far
func (b *Budget) Visited() int {
	return b.visited
}

// Expander resolves user-supplied paths into a flat list of regular files
type Expander struct {
	fs afero.Fs
}

// NewExpander creates an expander reading from fs
func NewExpander(fs afero.Fs) *Expander {
	return &Expander{fs: fs}
}

// ExpandAll expands the top-level paths in order with one shared budget.
// At most MaxEntriesPerDir top-level paths are considered.
func (e *Expander) ExpandAll(paths []string) ([]string, error) {
	if len(paths) > MaxEntriesPerDir {
		paths = paths[:MaxEntriesPerDir]
	}

	budget := NewBudget(MaxVisitedEntries)
	var result []string
	for _, p := range paths {
		expanded, err := e.Expand(p, budget)
		if err != nil {
			return nil, err
		}
		result = append(result, expanded...)
	}
	return result, nil
}

// Expand resolves a single path.
// A regular file (symlinks followed) resolves to itself. A path that cannot be
// listed as a directory resolves to nothing. A directory resolves to the
// expansion of its first MaxEntriesPerDir entries in name order.
func (e *Expander) Expand(path string, budget *Budget) ([]string, error) {
	if info, err := e.fs.Stat(path); err == nil && info.Mode().IsRegular() {
		if err := budget.Visit(); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	entries, err := afero.ReadDir(e.fs, path)
	if err != nil {
		// Missing, unreadable or not a directory: skipped
		return nil, nil
	}
	if len(entries) > MaxEntriesPerDir {
		entries = entries[:MaxEntriesPerDir]
	}

	var result []string
	for _, entry := range entries {
		if err := budget.Visit(); err != nil {
			return nil, err
		}
		expanded, err := e.Expand(filepath.Join(path, entry.Name()), budget)
		if err != nil {
			return nil, err
		}
		result = append(result, expanded...)
	}
	return result, nil
}
