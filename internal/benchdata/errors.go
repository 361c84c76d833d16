package benchdata

import "errors"

var (
	ErrInputMissing   = errors.New("benchmark input not found")
	ErrInputMalformed = errors.New("benchmark input malformed")
	ErrEmptyTable     = emptyTableError{}
)

// emptyTableError matches both itself and ErrInputMalformed.
type emptyTableError struct{}

func (emptyTableError) Error() string {
	return "benchmark table has no rows"
}

func (emptyTableError) Is(target error) bool {
	return target == ErrInputMalformed
}
