package memory

import "github.com/pkg/errors"

// Error kinds returned by the poll pipeline. Match them with errors.Is.
var (
	ErrSourceFormat = errors.New("malformed memory counters")
	ErrMissingField = errors.New("missing memory counter")
	ErrDivision     = errors.New("division by zero")
	ErrTemplate     = errors.New("invalid format template")
)
