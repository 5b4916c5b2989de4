// Package screentest provides a synthetic screen driver for testing. It
// behaves like a shared memory backend: every frame is rendered into the same
// padded buffer and handed out as a borrowed view, and the previous view is
// invalidated on each acquisition.
package screentest

import (
	"context"
	"fmt"
	"sync"

	"github.com/pion/screencapture/pkg/driver"
	"github.com/pion/screencapture/pkg/driver/availability"
	"github.com/pion/screencapture/pkg/frame"
	"github.com/pion/screencapture/pkg/prop"
	"github.com/pion/screencapture/pkg/raster"
)

const (
	// Label is the driver label the synthetic screen registers with.
	Label = "ScreenTest"
	// PaddingValue fills the bytes between rows.
	PaddingValue = 0xAA
)

func init() {
	driver.GetManager().Register(
		New(prop.Resolution{Width: 640, Height: 480}, 64),
		driver.Info{Label: Label, DeviceType: driver.Screen, Priority: driver.PriorityLow},
	)
}

// Screen is a fake display of a fixed resolution.
type Screen struct {
	mu       sync.Mutex
	res      prop.Resolution
	padding  int
	opened   bool
	prepared prop.Resolution
	region   prop.Region
	pix      []byte
	d        frame.Descriptor
	lease    *raster.Lease
	frames   int
	failNext error
}

// New creates a screen whose rows are padded with padding extra bytes.
func New(res prop.Resolution, padding int) *Screen {
	return &Screen{res: res, padding: padding}
}

// Pattern is the colour of display pixel (x, y) in frame n, n counting from 1.
func Pattern(n, x, y int) raster.Pixel {
	return raster.Pixel{
		R: uint8(x + n),
		G: uint8(y),
		B: uint8(x ^ y),
	}
}

func (s *Screen) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = true
	return nil
}

func (s *Screen) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoke()
	s.opened = false
	s.pix = nil
	return nil
}

func (s *Screen) Resolution() (prop.Resolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return prop.Resolution{}, availability.ErrSessionUnavailable
	}
	return s.res, nil
}

// SetResolution simulates the display being reconfigured.
func (s *Screen) SetResolution(res prop.Resolution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.res = res
}

// FailNext makes the next Acquire return err.
func (s *Screen) FailNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}

// Frames returns the number of frames rendered so far.
func (s *Screen) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Region returns the region last prepared.
func (s *Screen) Region() prop.Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.region
}

func (s *Screen) Prepare(region prop.Region) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return availability.ErrSessionUnavailable
	}
	s.revoke()

	region = region.Clamp(s.res)
	if region.Empty() {
		return fmt.Errorf("screentest: empty region %v", region)
	}
	s.region = region
	s.prepared = s.res
	s.d = frame.Descriptor{
		Width:  region.Width,
		Height: region.Height,
		Stride: region.Width*frame.BytesPerPixel + s.padding,
	}
	s.pix = make([]byte, s.d.Size())
	return nil
}

func (s *Screen) Acquire(ctx context.Context) (raster.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoke()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", availability.ErrTimeout, err)
	}
	if err := s.failNext; err != nil {
		s.failNext = nil
		return nil, err
	}
	if s.pix == nil {
		return nil, availability.ErrSessionUnavailable
	}
	if s.res != s.prepared {
		return nil, availability.ErrLost
	}

	s.frames++
	s.render()
	s.lease = raster.NewLease()
	v, err := raster.NewView(s.pix, s.d, s.lease)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Screen) revoke() {
	if s.lease != nil {
		s.lease.Revoke()
		s.lease = nil
	}
}

func (s *Screen) render() {
	for y := 0; y < s.d.Height; y++ {
		row := s.pix[y*s.d.Stride : (y+1)*s.d.Stride]
		for x := 0; x < s.d.Width; x++ {
			c := Pattern(s.frames, s.region.X+x, s.region.Y+y)
			p := row[x*frame.BytesPerPixel : (x+1)*frame.BytesPerPixel]
			p[frame.OffsetBlue] = c.B
			p[frame.OffsetGreen] = c.G
			p[frame.OffsetRed] = c.R
			p[frame.OffsetPad] = uint8(s.frames)
		}
		for i := s.d.RowBytes(); i < len(row); i++ {
			row[i] = PaddingValue
		}
	}
}
