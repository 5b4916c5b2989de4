package driver

import (
	"context"

	"github.com/pion/screencapture/pkg/prop"
	"github.com/pion/screencapture/pkg/raster"
)

type OpenCloser interface {
	Open() error
	Close() error
}

// Info describes a registered device.
type Info struct {
	Label      string
	DeviceType DeviceType
	Priority   Priority
}

// ScreenCapturer is the contract every capture backend honours.
//
// Acquire returns the current frame. The image may be a *raster.View over
// memory owned by the backend; it stays readable until the next Acquire,
// Prepare or Close, after which its methods return raster.ErrStale. Failures
// are reported with the errors of package availability.
type ScreenCapturer interface {
	// Resolution returns the current size of the whole display.
	Resolution() (prop.Resolution, error)
	// Prepare sets up capture of region, clamped to the display.
	Prepare(region prop.Region) error
	Acquire(ctx context.Context) (raster.Image, error)
}

type Adapter interface {
	OpenCloser
}

type ScreenAdapter interface {
	Adapter
	ScreenCapturer
}

type Driver interface {
	Adapter
	ID() string
	Info() Info
	Status() State
}

type ScreenDriver interface {
	Driver
	ScreenCapturer
}
