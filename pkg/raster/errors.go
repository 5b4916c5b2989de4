package raster

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is matched by every *OutOfBoundsError.
	ErrOutOfBounds = errors.New("pixel out of bounds")
	// ErrStale is returned by a View whose frame was released by its owner.
	ErrStale = errors.New("frame is no longer valid")
	// ErrNoBuffer is returned when a View is built without memory or lease.
	ErrNoBuffer = errors.New("no frame buffer")
)

type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("pixel (%d, %d) out of bounds of %dx%d image", e.X, e.Y, e.Width, e.Height)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
