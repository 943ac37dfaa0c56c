package stretch

import (
	"fmt"

	"golang.org/x/xerrors"
)

var (
	// ErrIndexOutOfRange is wrapped by every *IndexError.
	ErrIndexOutOfRange = xerrors.New("anchor index out of range")

	// ErrInvalidAnchorReference is returned when a Handle names no anchor in
	// the set.
	ErrInvalidAnchorReference = xerrors.New("handle does not refer to an anchor in this set")
)

// IndexError reports an anchor index outside [0, Count).  When it comes from
// a removal it also matches ErrInvalidAnchorReference.
type IndexError struct {
	Index int
	Count int

	removal bool
	frame   xerrors.Frame
}

func newIndexError(index, count int) *IndexError {
	return &IndexError{
		Index: index,
		Count: count,
		frame: xerrors.Caller(1),
	}
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("anchor index %d out of range [0, %d)", e.Index, e.Count)
}

func (e *IndexError) Format(f fmt.State, c rune) { // implements fmt.Formatter
	xerrors.FormatError(e, f, c)
}

func (e *IndexError) FormatError(p xerrors.Printer) error { // implements xerrors.Formatter
	p.Print(e.Error())
	if p.Detail() {
		e.frame.Format(p)
	}
	return ErrIndexOutOfRange
}

func (e *IndexError) Is(target error) bool {
	return e.removal && target == ErrInvalidAnchorReference
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
