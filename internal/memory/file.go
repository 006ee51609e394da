package memory

import (
	"context"
	"os"

	"github.com/pkg/errors"
)

// FileReader reads counters from a meminfo-format file
type FileReader struct {
	Path string
}

// ReadCounters returns the file contents
func (r *FileReader) ReadCounters(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", r.Path)
	}
	return data, nil
}
