package files

import "github.com/spf13/afero"

// TotalSize sums the sizes of the given files.
// Files whose metadata cannot be read count as zero bytes.
func TotalSize(fs afero.Fs, paths []string) int64 {
	var sum int64
	for _, p := range paths {
		info, err := fs.Stat(p)
		if err != nil {
			continue
		}
		sum += info.Size()
	}
	return sum
}

// ExceedsLimit reports whether the files together are larger than maxBytes
func ExceedsLimit(fs afero.Fs, paths []string, maxBytes int64) bool {
	return TotalSize(fs, paths) > maxBytes
}
