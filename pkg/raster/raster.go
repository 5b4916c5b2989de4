// Package raster exposes captured FormatBGR0 frames behind one interface,
// whether the pixels live in memory owned by a capture backend (View) or in a
// heap copy owned by the caller (Buffer).
package raster

import (
	"image"

	"github.com/pion/screencapture/pkg/frame"
)

// Pixel is a colour read from a FormatBGR0 buffer, reordered for callers.
type Pixel struct {
	R, G, B uint8
}

// Image is a FormatBGR0 pixel buffer.
type Image interface {
	image.Image

	Width() int
	Height() int
	// Stride is the distance in bytes between two rows.
	Stride() int
	Descriptor() frame.Descriptor

	// PixelAt returns the pixel at (x, y) or an *OutOfBoundsError.
	PixelAt(x, y int) (Pixel, error)
	// Bytes returns the Stride*Height bytes backing the image without copying.
	// For a View the slice must not be used past the lease of the frame.
	Bytes() ([]byte, error)
	// Clone copies the image into a Buffer with the same descriptor.
	Clone() (*Buffer, error)
	// ToRGBA converts the image into a new tightly packed *image.RGBA.
	ToRGBA() (*image.RGBA, error)
}

// pixelAt reads (x, y) from pix without validation.
func pixelAt(pix []byte, d frame.Descriptor, x, y int) Pixel {
	i := y*d.Stride + x*frame.BytesPerPixel
	s := pix[i : i+4 : i+4]
	return Pixel{
		R: s[frame.OffsetRed],
		G: s[frame.OffsetGreen],
		B: s[frame.OffsetBlue],
	}
}

func inBounds(d frame.Descriptor, x, y int) bool {
	return x >= 0 && y >= 0 && x < d.Width && y < d.Height
}

func bounds(d frame.Descriptor) image.Rectangle {
	return image.Rect(0, 0, d.Width, d.Height)
}

var (
	_ Image = (*View)(nil)
	_ Image = (*Buffer)(nil)
)
