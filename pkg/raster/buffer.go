package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/pion/screencapture/pkg/frame"
)

// Buffer is a FormatBGR0 frame owned by the caller. It never aliases memory
// of a capture session.
type Buffer struct {
	pix []byte
	d   frame.Descriptor
}

// NewBuffer allocates a zeroed, tightly packed buffer.
func NewBuffer(width, height int) *Buffer {
	d := frame.Tight(width, height)
	return &Buffer{
		pix: make([]byte, d.Size()),
		d:   d,
	}
}

// NewBufferFrom takes ownership of pix.
func NewBufferFrom(pix []byte, d frame.Descriptor) (*Buffer, error) {
	if err := d.Validate(len(pix)); err != nil {
		return nil, err
	}
	size := d.Size()
	return &Buffer{pix: pix[:size:size], d: d}, nil
}

// Copy duplicates any Image into a Buffer, keeping its stride.
func Copy(img Image) (*Buffer, error) {
	return img.Clone()
}

// Filled returns a buffer of the given size painted with c.
func Filled(width, height int, c Pixel) *Buffer {
	b := NewBuffer(width, height)
	b.FillRect(b.Bounds(), c)
	return b
}

// FromRows builds a buffer from rows of pixels. All rows must have the
// length of the first one.
func FromRows(rows [][]Pixel) (*Buffer, error) {
	if len(rows) == 0 {
		return NewBuffer(0, 0), nil
	}
	b := NewBuffer(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != b.d.Width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", frame.ErrInvalidDescriptor, y, len(row), b.d.Width)
		}
		for x, c := range row {
			b.set(x, y, c)
		}
	}
	return b, nil
}

func (b *Buffer) Width() int                   { return b.d.Width }
func (b *Buffer) Height() int                  { return b.d.Height }
func (b *Buffer) Stride() int                  { return b.d.Stride }
func (b *Buffer) Descriptor() frame.Descriptor { return b.d }

func (b *Buffer) PixelAt(x, y int) (Pixel, error) {
	if !inBounds(b.d, x, y) {
		return Pixel{}, &OutOfBoundsError{X: x, Y: y, Width: b.d.Width, Height: b.d.Height}
	}
	return pixelAt(b.pix, b.d, x, y), nil
}

// Bytes never fails for a Buffer.
func (b *Buffer) Bytes() ([]byte, error) {
	return b.pix, nil
}

func (b *Buffer) Clone() (*Buffer, error) {
	pix := make([]byte, len(b.pix))
	copy(pix, b.pix)
	return &Buffer{pix: pix, d: b.d}, nil
}

func (b *Buffer) ToRGBA() (*image.RGBA, error) {
	return frame.ToRGBA(nil, b.pix, b.d)
}

// SetPixel writes c at (x, y). The padding byte is cleared.
func (b *Buffer) SetPixel(x, y int, c Pixel) error {
	if !inBounds(b.d, x, y) {
		return &OutOfBoundsError{X: x, Y: y, Width: b.d.Width, Height: b.d.Height}
	}
	b.set(x, y, c)
	return nil
}

// FillRect paints the part of r inside the buffer.
func (b *Buffer) FillRect(r image.Rectangle, c Pixel) {
	r = r.Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.set(x, y, c)
		}
	}
}

// SetGradient paints r with red rising from left to right, green rising from
// top to bottom and blue falling as red rises. Only the part of r inside the
// buffer is written.
func (b *Buffer) SetGradient(r image.Rectangle) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	rStep := 255 / float64(r.Dx())
	gStep := 255 / float64(r.Dy())
	clip := r.Intersect(b.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		g := uint8(uint32(float64(y-r.Min.Y)*gStep) % 256)
		for x := clip.Min.X; x < clip.Max.X; x++ {
			red := uint8(uint32(float64(x-r.Min.X)*rStep) % 256)
			b.set(x, y, Pixel{R: red, G: g, B: 255 - red})
		}
	}
}

// Scale multiplies every channel by f, saturating at 0 and 255.
func (b *Buffer) Scale(f float32) {
	for y := 0; y < b.d.Height; y++ {
		for x := 0; x < b.d.Width; x++ {
			p := pixelAt(b.pix, b.d, x, y)
			b.set(x, y, Pixel{R: scale(p.R, f), G: scale(p.G, f), B: scale(p.B, f)})
		}
	}
}

func scale(v uint8, f float32) uint8 {
	s := float32(v) * f
	switch {
	case !(s > 0):
		// Also catches NaN.
		return 0
	case s >= 255:
		return 255
	}
	return uint8(s)
}

func (b *Buffer) set(x, y int, c Pixel) {
	i := y*b.d.Stride + x*frame.BytesPerPixel
	s := b.pix[i : i+4 : i+4]
	s[frame.OffsetBlue] = c.B
	s[frame.OffsetGreen] = c.G
	s[frame.OffsetRed] = c.R
	s[frame.OffsetPad] = 0
}

func (b *Buffer) ColorModel() color.Model {
	return color.RGBAModel
}

func (b *Buffer) Bounds() image.Rectangle {
	return bounds(b.d)
}

func (b *Buffer) At(x, y int) color.Color {
	return b.RGBAAt(x, y)
}

func (b *Buffer) RGBAAt(x, y int) color.RGBA {
	if !inBounds(b.d, x, y) {
		return color.RGBA{}
	}
	p := pixelAt(b.pix, b.d, x, y)
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: frame.Opaque}
}
