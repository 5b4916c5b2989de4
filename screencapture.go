// Package screencapture takes snapshots of the screen.
//
// Screens are provided by drivers registered with the driver manager. Import
// github.com/pion/screencapture/pkg/driver/screen to register the drivers of
// the current platform:
//
//	import _ "github.com/pion/screencapture/pkg/driver/screen"
//
//	img, err := screencapture.Grab(ctx)
package screencapture

import (
	"context"
	"fmt"

	"github.com/pion/screencapture/pkg/capture"
	"github.com/pion/screencapture/pkg/driver"
	"github.com/pion/screencapture/pkg/driver/availability"
	"github.com/pion/screencapture/pkg/raster"
)

// ScreenInfo describes a screen available for capture.
type ScreenInfo struct {
	DeviceID string
	Label    string
	Priority driver.Priority
}

// EnumerateScreens lists the registered screens, highest priority first.
func EnumerateScreens() []ScreenInfo {
	var infos []ScreenInfo
	for _, s := range driver.GetManager().QueryScreens() {
		infos = append(infos, ScreenInfo{
			DeviceID: s.ID(),
			Label:    s.Info().Label,
			Priority: s.Info().Priority,
		})
	}
	return infos
}

// FindScreen returns the display'th screen among those labelled label, or
// among all screens when label is empty, highest priority first.
func FindScreen(label string, display int) (driver.ScreenDriver, error) {
	filter := driver.FilterDeviceType(driver.Screen)
	if label != "" {
		filter = driver.FilterAnd(filter, driver.FilterLabel(label))
	}

	var screens []driver.ScreenDriver
	for _, d := range driver.GetManager().Query(filter) {
		if s, ok := d.(driver.ScreenDriver); ok {
			screens = append(screens, s)
		}
	}
	if display < 0 || display >= len(screens) {
		return nil, fmt.Errorf("%w: display %d requested, %d available", availability.ErrNoDevice, display, len(screens))
	}
	return screens[display], nil
}

type options struct {
	label   string
	display int
	config  capture.Config
}

// Option is a functional option of Grab.
type Option func(*options)

// WithLabel restricts Grab to the drivers with the given label.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithDisplay selects the n-th matching screen.
func WithDisplay(n int) Option {
	return func(o *options) {
		o.display = n
	}
}

// WithConfig sets the capture specifications deciding the region grabbed.
func WithConfig(config capture.Config) Option {
	return func(o *options) {
		o.config = config
	}
}

// Grab captures a single frame and returns a copy the caller owns. The
// driver is closed again before Grab returns.
func Grab(ctx context.Context, opts ...Option) (*raster.Buffer, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	d, err := FindScreen(o.label, o.display)
	if err != nil {
		return nil, err
	}
	c := capture.NewCapturer(d, o.config, capture.WithDisplay(o.display))
	defer c.Close()

	img, err := c.Capture(ctx)
	if err != nil {
		return nil, err
	}
	return img.Clone()
}
