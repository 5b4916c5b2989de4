package frame

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidDescriptor = errors.New("invalid frame descriptor")
	ErrShortBuffer       = errors.New("frame buffer shorter than descriptor")
)

// Descriptor describes the geometry of a FormatBGR0 buffer. Stride is the
// distance in bytes between the starts of two consecutive rows and may exceed
// Width*BytesPerPixel when the platform pads rows.
type Descriptor struct {
	Width  int
	Height int
	Stride int
}

// Tight returns the descriptor of an unpadded buffer.
func Tight(width, height int) Descriptor {
	return Descriptor{Width: width, Height: height, Stride: width * BytesPerPixel}
}

// RowBytes is the number of meaningful bytes in one row.
func (d Descriptor) RowBytes() int {
	return d.Width * BytesPerPixel
}

// Size is the number of bytes covered by the descriptor.
func (d Descriptor) Size() int {
	return d.Stride * d.Height
}

// Packed reports whether rows follow each other without padding.
func (d Descriptor) Packed() bool {
	return d.Stride == d.RowBytes()
}

// Validate checks d against a buffer of n bytes.
func (d Descriptor) Validate(n int) error {
	switch {
	case d.Width < 0 || d.Height < 0:
		return &DescriptorError{Descriptor: d, Len: n, Err: ErrInvalidDescriptor}
	// RowBytes and Size must not wrap.
	case d.Width > math.MaxInt/BytesPerPixel:
		return &DescriptorError{Descriptor: d, Len: n, Err: ErrInvalidDescriptor}
	case d.Height > 0 && d.Stride > math.MaxInt/d.Height:
		return &DescriptorError{Descriptor: d, Len: n, Err: ErrInvalidDescriptor}
	case d.Stride < d.RowBytes():
		return &DescriptorError{Descriptor: d, Len: n, Err: ErrInvalidDescriptor}
	case n < d.Size():
		return &DescriptorError{Descriptor: d, Len: n, Err: ErrShortBuffer}
	}
	return nil
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%dx%d stride %d", d.Width, d.Height, d.Stride)
}

// DescriptorError reports a descriptor that does not fit its buffer.
type DescriptorError struct {
	Descriptor Descriptor
	Len        int
	Err        error
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("%v: %s, buffer length %d", e.Err, e.Descriptor, e.Len)
}

func (e *DescriptorError) Unwrap() error {
	return e.Err
}
