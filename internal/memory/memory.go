package memory

import (
	"context"
	"sort"
)

// DefaultPath is the kernel memory counters pseudo-file on Linux
const DefaultPath = "/proc/meminfo"

// Info maps a counter name to its value in mebibytes.
// Derived keys (MemUsed, Memsza) live in the same map once ComputeDerived has run.
type Info map[string]int64

// Keys returns the counter names in sorted order
func (i Info) Keys() []string {
	keys := make([]string, 0, len(i))
	for k := range i {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reader interface for memory counter sources
type Reader interface {
	// ReadCounters returns raw text in /proc/meminfo format
	ReadCounters(ctx context.Context) ([]byte, error)
}

// NewReader creates a counter source for the current platform.
// A non-empty path always selects the file reader.
func NewReader(path string) Reader {
	if path != "" {
		return &FileReader{Path: path}
	}
	return newPlatformReader()
}
