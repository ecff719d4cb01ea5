package xlcell

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCoercion reports that a cell's content cannot satisfy the
	// requested accessor.
	ErrInvalidCoercion = errors.New("invalid coercion")

	// ErrUnsupportedKind reports a combination the accessors do not handle
	// yet: a date-formatted number requested as text.
	ErrUnsupportedKind = errors.New("unsupported kind")

	// ErrUnsupportedValue is returned when assigning a Go value that has no
	// cell representation.
	ErrUnsupportedValue = errors.New("unsupported cell value")

	// ErrSheetNotFound is returned by sheet lookups.
	ErrSheetNotFound = errors.New("sheet not found")
)

// CoercionError describes a failed accessor call. It unwraps to
// ErrInvalidCoercion or ErrUnsupportedKind.
type CoercionError struct {
	Ref    CellRef
	Kind   Kind   // effective kind of the cell
	Target string // requested type: "text", "int", "float", "bool", "time"
	Reason string // optional detail, e.g. the parse failure
	Err    error
}

func (e *CoercionError) Error() string {
	msg := fmt.Sprintf("cell %s: cannot convert %s to %s", e.Ref, e.Kind, e.Target)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg + " (" + e.Err.Error() + ")"
}

func (e *CoercionError) Unwrap() error { return e.Err }
