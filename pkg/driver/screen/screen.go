//go:build !linux

package screen

import (
	"context"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
	"github.com/pion/screencapture/pkg/driver"
	"github.com/pion/screencapture/pkg/driver/availability"
	"github.com/pion/screencapture/pkg/frame"
	"github.com/pion/screencapture/pkg/prop"
	"github.com/pion/screencapture/pkg/raster"
)

type screen struct {
	displayIndex int
	opened       bool
	res          prop.Resolution
	region       prop.Region
}

func init() {
	activeDisplays := screenshot.NumActiveDisplays()
	for i := 0; i < activeDisplays; i++ {
		priority := driver.PriorityNormal
		if i == 0 {
			priority = driver.PriorityHigh
		}

		s := newScreen(i)
		driver.GetManager().Register(s, driver.Info{
			Label:      fmt.Sprint(i),
			DeviceType: driver.Screen,
			Priority:   priority,
		})
	}
}

func newScreen(displayIndex int) *screen {
	s := screen{
		displayIndex: displayIndex,
	}
	return &s
}

func (s *screen) Open() error {
	if s.displayIndex >= screenshot.NumActiveDisplays() {
		return availability.ErrNoDevice
	}
	s.opened = true
	return nil
}

func (s *screen) Close() error {
	s.opened = false
	return nil
}

func (s *screen) Resolution() (prop.Resolution, error) {
	if !s.opened {
		return prop.Resolution{}, availability.ErrSessionUnavailable
	}
	bounds := screenshot.GetDisplayBounds(s.displayIndex)
	return prop.Resolution{Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

func (s *screen) Prepare(region prop.Region) error {
	res, err := s.Resolution()
	if err != nil {
		return err
	}
	region = region.Clamp(res)
	if region.Empty() {
		return fmt.Errorf("screen: empty region %v on %v", region, res)
	}
	s.res, s.region = res, region
	return nil
}

// Acquire copies the display into an owned buffer, so the result stays valid
// after later captures.
func (s *screen) Acquire(ctx context.Context) (raster.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", availability.ErrTimeout, err)
	}

	bounds := screenshot.GetDisplayBounds(s.displayIndex)
	if bounds.Dx() != s.res.Width || bounds.Dy() != s.res.Height {
		return nil, fmt.Errorf("%w: resolution changed from %v to %dx%d",
			availability.ErrLost, s.res, bounds.Dx(), bounds.Dy())
	}

	rect := image.Rect(0, 0, s.region.Width, s.region.Height).
		Add(bounds.Min).
		Add(image.Pt(s.region.X, s.region.Y))
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", availability.ErrSessionUnavailable, err)
	}
	b, err := toBuffer(img)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func toBuffer(img *image.RGBA) (*raster.Buffer, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	d := frame.Tight(w, h)
	pix := make([]byte, d.Size())
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		dst := pix[y*d.Stride : y*d.Stride+w*frame.BytesPerPixel]
		for i := 0; i < len(src); i += 4 {
			dst[i+frame.OffsetBlue] = src[i+2]
			dst[i+frame.OffsetGreen] = src[i+1]
			dst[i+frame.OffsetRed] = src[i]
		}
	}
	return raster.NewBufferFrom(pix, d)
}
