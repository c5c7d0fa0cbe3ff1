package vecdb

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched (via errors.Is) by every record-not-found error.
	ErrNotFound = errors.New("vector not found")

	// ErrInvalidK is returned when k is negative.
	ErrInvalidK = errors.New("k must not be negative")
)

// ErrRecordNotFound indicates that no record exists under ID.
type ErrRecordNotFound struct {
	ID string
}

func (e *ErrRecordNotFound) Error() string {
	return fmt.Sprintf("vector not found: %s", e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *ErrRecordNotFound) Is(target error) bool { return target == ErrNotFound }

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension indicates an invalid configured dimension.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ErrDatabase indicates an unexpected internal failure.
//
// It is fatal to the operation that returned it but leaves the store usable.
// The underlying cause (if any) is available via errors.Unwrap.
type ErrDatabase struct {
	Op    string
	cause error
}

func (e *ErrDatabase) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("database error: %s", e.Op)
	}
	return fmt.Sprintf("database error: %s: %v", e.Op, e.cause)
}

func (e *ErrDatabase) Unwrap() error { return e.cause }

func newNotFound(id string) error {
	return &ErrRecordNotFound{ID: id}
}

func checkDimension(expected, actual int) error {
	if expected != actual {
		return &ErrDimensionMismatch{Expected: expected, Actual: actual}
	}
	return nil
}
