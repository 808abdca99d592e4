package ggcomp

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggcomp/compositor"
)

var (
	// ErrGraphicsOperationFailed matches every *GraphicsError with errors.Is.
	ErrGraphicsOperationFailed = errors.New("ggcomp: graphics operation failed")

	// ErrNilHost is returned by NewCanvas for a nil Host.
	ErrNilHost = errors.New("ggcomp: nil host")

	// ErrInvalidWindowSize is returned for a non-positive logical window size.
	ErrInvalidWindowSize = errors.New("ggcomp: invalid window size")

	// ErrInvalidDPI is returned when the platform reports a non-positive DPI.
	ErrInvalidDPI = errors.New("ggcomp: invalid DPI")
)

// GraphicsError reports a failing call into the compositor capability set.
type GraphicsError struct {
	// Op names the failing call, e.g. "Commit".
	Op string
	// Status is the platform status code the driver returned.
	Status compositor.Status
	Err    error
}

func (e *GraphicsError) Error() string {
	return fmt.Sprintf("ggcomp: %s: %v", e.Op, e.Err)
}

func (e *GraphicsError) Unwrap() error { return e.Err }

// Is reports whether target is ErrGraphicsOperationFailed.
func (e *GraphicsError) Is(target error) bool {
	return target == ErrGraphicsOperationFailed
}

// hr converts a failing compositor result into a *GraphicsError.
func hr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &GraphicsError{Op: op, Status: compositor.StatusOf(err), Err: err}
}

// StatusOf returns the status code carried by err, or compositor.StatusOK
// for nil.
func StatusOf(err error) compositor.Status {
	var ge *GraphicsError
	if errors.As(err, &ge) {
		return ge.Status
	}
	return compositor.StatusOf(err)
}
