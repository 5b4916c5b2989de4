package raster

import (
	"image"
	"image/color"

	"github.com/pion/screencapture/pkg/frame"
)

// View is a read only window on a frame owned by someone else, typically the
// shared memory of a capture session. It never copies on construction.
// Every fallible method checks the lease first and returns ErrStale after the
// owner revoked it. Reads racing with the owner rewriting the memory are not
// detected beyond that check.
type View struct {
	pix   []byte
	d     frame.Descriptor
	lease *Lease
}

// NewView wraps pix. The lease is held by the owner of pix.
func NewView(pix []byte, d frame.Descriptor, lease *Lease) (*View, error) {
	if pix == nil || lease == nil {
		return nil, ErrNoBuffer
	}
	if err := d.Validate(len(pix)); err != nil {
		return nil, err
	}
	size := d.Size()
	return &View{
		pix:   pix[:size:size],
		d:     d,
		lease: lease,
	}, nil
}

func (v *View) Width() int                   { return v.d.Width }
func (v *View) Height() int                  { return v.d.Height }
func (v *View) Stride() int                  { return v.d.Stride }
func (v *View) Descriptor() frame.Descriptor { return v.d }

// Valid reports whether the owner still guarantees the memory.
func (v *View) Valid() bool {
	return v.lease.Valid()
}

func (v *View) PixelAt(x, y int) (Pixel, error) {
	if err := v.lease.Err(); err != nil {
		return Pixel{}, err
	}
	if !inBounds(v.d, x, y) {
		return Pixel{}, &OutOfBoundsError{X: x, Y: y, Width: v.d.Width, Height: v.d.Height}
	}
	return pixelAt(v.pix, v.d, x, y), nil
}

func (v *View) Bytes() ([]byte, error) {
	if err := v.lease.Err(); err != nil {
		return nil, err
	}
	return v.pix, nil
}

// Clone copies the frame. The copy is discarded if the lease was revoked
// while copying.
func (v *View) Clone() (*Buffer, error) {
	if err := v.lease.Err(); err != nil {
		return nil, err
	}
	pix := make([]byte, len(v.pix))
	copy(pix, v.pix)
	if err := v.lease.Err(); err != nil {
		return nil, err
	}
	return &Buffer{pix: pix, d: v.d}, nil
}

func (v *View) ToRGBA() (*image.RGBA, error) {
	if err := v.lease.Err(); err != nil {
		return nil, err
	}
	img, err := frame.ToRGBA(nil, v.pix, v.d)
	if err != nil {
		return nil, err
	}
	if err := v.lease.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

func (v *View) ColorModel() color.Model {
	return color.RGBAModel
}

func (v *View) Bounds() image.Rectangle {
	return bounds(v.d)
}

func (v *View) At(x, y int) color.Color {
	return v.RGBAAt(x, y)
}

// RGBAAt returns the opaque colour at (x, y), or the zero colour when out of
// bounds or stale.
func (v *View) RGBAAt(x, y int) color.RGBA {
	p, err := v.PixelAt(x, y)
	if err != nil {
		return color.RGBA{}
	}
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: frame.Opaque}
}
