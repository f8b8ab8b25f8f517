package blockdef

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSchema = errors.New("invalid block definition")
	ErrDuplicateID   = errors.New("duplicate block id")
	ErrUnknownKind   = errors.New("unknown block kind")
	ErrInvalidConfig = errors.New("invalid block config")
	ErrCycleDetected = errors.New("cycle detected")
	ErrUnknownBlock  = errors.New("unknown block")
)

// ValidationError reports the first offending item of a definition list.
// Index is 1-based; zero means the list itself is malformed.
type ValidationError struct {
	Index int
	Field string
	Msg   string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Index == 0 {
		return e.Msg
	}
	return fmt.Sprintf("block %d: %s", e.Index, e.Msg)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidSchema, e.Err}
	}
	return []error{ErrInvalidSchema}
}
