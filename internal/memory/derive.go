package memory

import "github.com/pkg/errors"

// Derived counter names
const (
	KeyMemUsed = "MemUsed"
	KeyMemsza  = "Memsza"
)

// ComputeDerived adds MemUsed and Memsza:
//
//	MemUsed = MemTotal + Shmem - MemFree - Buffers - Cached - SReclaimable
//	Memsza  = floor(100 * MemUsed / MemTotal)
//
// Memsza is not clamped; inconsistent counters can push it outside 0..100.
func (i Info) ComputeDerived() error {
	get := func(key string) (int64, error) {
		v, ok := i[key]
		if !ok {
			return 0, errors.Wrapf(ErrMissingField, "%s", key)
		}
		return v, nil
	}

	var vals [6]int64
	for n, key := range []string{"MemTotal", "Shmem", "MemFree", "Buffers", "Cached", "SReclaimable"} {
		v, err := get(key)
		if err != nil {
			return err
		}
		vals[n] = v
	}
	total, shmem, free, buffers, cached, sreclaimable := vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]

	used := total + shmem - free - buffers - cached - sreclaimable
	if total == 0 {
		return errors.Wrap(ErrDivision, "MemTotal is zero")
	}

	i[KeyMemUsed] = used
	i[KeyMemsza] = floorDiv(100*used, total)
	return nil
}
