package patrol

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for maps without exactly one guard marker,
	// with ragged rows, or with unknown characters.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNonTerminatingBaseline is returned by the obstruction search when
	// the guard never leaves the unmodified map.
	ErrNonTerminatingBaseline = errors.New("baseline walk never exits")

	// ErrStepLimit is returned when a walk exceeds its step ceiling.
	ErrStepLimit = errors.New("step limit reached")
)

// Input error codes.
const (
	CodeEmptyGrid      = "EMPTY_GRID"
	CodeNoGuard        = "NO_GUARD"
	CodeMultipleGuards = "MULTIPLE_GUARDS"
	CodeRaggedRows     = "RAGGED_ROWS"
	CodeBadCell        = "BAD_CELL"
)

// InputError describes why a map could not be parsed.
// Line and Col are 1-based; zero means not applicable.
type InputError struct {
	Code    string
	Line    int
	Col     int
	Message string
}

func (e *InputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d col %d: %s", e.Code, e.Line, e.Col, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
