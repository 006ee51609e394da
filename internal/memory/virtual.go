package memory

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/mem"
)

// VirtualMemoryReader builds meminfo-format text from gopsutil statistics,
// for platforms without a kernel counters file
type VirtualMemoryReader struct{}

// ReadCounters returns synthesized counters
func (r *VirtualMemoryReader) ReadCounters(ctx context.Context) ([]byte, error) {
	memInfo, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "virtual memory")
	}

	return SynthesizeMeminfo(memInfo), nil
}

// SynthesizeMeminfo renders the subset of counters gopsutil exposes in the
// /proc/meminfo layout. Values are converted from bytes to kB.
func SynthesizeMeminfo(v *mem.VirtualMemoryStat) []byte {
	fields := []struct {
		name  string
		bytes uint64
	}{
		{"MemTotal", v.Total},
		{"MemFree", v.Free},
		{"MemAvailable", v.Available},
		{"Buffers", v.Buffers},
		{"Cached", v.Cached},
		{"SwapTotal", v.SwapTotal},
		{"SwapFree", v.SwapFree},
		{"Dirty", v.Dirty},
		{"Shmem", v.Shared},
		{"Slab", v.Slab},
		{"SReclaimable", v.Sreclaimable},
	}

	var buf bytes.Buffer
	for _, f := range fields {
		fmt.Fprintf(&buf, "%-16s%12d kB\n", f.name+":", f.bytes/1024)
	}
	return buf.Bytes()
}
