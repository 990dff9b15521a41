package files

const (
	// MaxArgs is the maximum number of path arguments accepted per invocation
	MaxArgs = 20

	// MaxEntriesPerDir is the maximum number of entries considered per level,
	// applied to the top-level arguments and to every directory listing
	MaxEntriesPerDir = 30

	// MaxVisitedEntries is the maximum number of entries visited across one expansion
	MaxVisitedEntries = 100

	// MaxTotalFileBytes is the maximum total size of the files opened in one run (300KB)
	MaxTotalFileBytes = 300 * 1024
)
