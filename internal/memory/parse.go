package memory

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const kibPerMib = 1024

// ParseCounters parses meminfo-format text. Each line is "Key: <value> [kB]";
// values are taken as kibibytes and stored as mebibytes (floor division).
// Any line without a colon, blank ones included, is a format error.
func ParseCounters(data []byte) (Info, error) {
	info := make(Info)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		key, tail, ok := strings.Cut(line, ":")
		if !ok {
			return nil, errors.Wrapf(ErrSourceFormat, "line %d: no colon in %q", lineNo, line)
		}
		key = strings.TrimSpace(key)

		fields := strings.Fields(tail)
		if len(fields) == 0 {
			return nil, errors.Wrapf(ErrSourceFormat, "line %d: no value for %s", lineNo, key)
		}

		kib, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrSourceFormat, "line %d: %s: %v", lineNo, key, err)
		}

		info[key] = floorDiv(kib, kibPerMib)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(ErrSourceFormat, "line %d: %v", lineNo+1, err)
	}

	return info, nil
}

// floorDiv rounds toward negative infinity, unlike Go's / operator
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
