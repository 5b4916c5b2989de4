// Package capture grabs screen frames through a driver according to a
// Config, following resolution changes, either on demand with Capturer or
// periodically with Threaded.
package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pion/logging"
	internallog "github.com/pion/screencapture/internal/logging"
	"github.com/pion/screencapture/pkg/driver"
	"github.com/pion/screencapture/pkg/driver/availability"
	"github.com/pion/screencapture/pkg/prop"
	"github.com/pion/screencapture/pkg/raster"
)

// Option customizes a Capturer.
type Option func(*Capturer)

// WithDisplay sets the display index the driver captures. Only
// specifications for that display are considered.
func WithDisplay(display int) Option {
	return func(c *Capturer) {
		c.display = display
	}
}

// Capturer grabs frames from a screen driver, preparing the driver again
// whenever the resolution or the configuration changes.
type Capturer struct {
	mu      sync.Mutex
	d       driver.ScreenDriver
	display int
	config  Config
	cached  *prop.Resolution
	spec    prop.Specification
	log     logging.LeveledLogger
}

func NewCapturer(d driver.ScreenDriver, config Config, opts ...Option) *Capturer {
	c := &Capturer{
		d:      d,
		config: config.clone(),
		log:    internallog.NewLogger("capture"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Driver returns the driver frames are captured from.
func (c *Capturer) Driver() driver.ScreenDriver {
	return c.d
}

// UpdateResolution opens the driver if needed and prepares it for the
// specification matching the current resolution. It reports whether the
// driver was prepared again.
func (c *Capturer) UpdateResolution() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updateResolution()
}

func (c *Capturer) updateResolution() (bool, error) {
	if c.d.Status() == driver.StateClosed {
		if err := c.d.Open(); err != nil {
			return false, err
		}
	}

	res, err := c.d.Resolution()
	if err != nil {
		return false, err
	}
	if c.cached != nil && *c.cached == res {
		return false, nil
	}

	spec := prop.Select(res, c.specs())
	region := prop.Region{X: spec.X, Y: spec.Y, Width: spec.Width, Height: spec.Height}
	if err := c.d.Prepare(region); err != nil {
		return false, fmt.Errorf("capture: failed to prepare %v on %v: %w", region, res, err)
	}
	c.log.Debugf("resolution %v, capturing %v", res, region)

	c.cached = &res
	c.spec = spec
	return true, nil
}

func (c *Capturer) specs() []prop.Specification {
	specs := make([]prop.Specification, 0, len(c.config.Capture))
	for _, s := range c.config.Capture {
		if s.Display == c.display {
			specs = append(specs, s)
		}
	}
	return specs
}

// SetConfig replaces the configuration. The driver is prepared again on the
// next capture.
func (c *Capturer) SetConfig(config Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = config.clone()
	c.cached = nil
}

func (c *Capturer) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.clone()
}

// Specification returns the specification in use, sizes filled in. It is
// the zero value until the driver was prepared.
func (c *Capturer) Specification() prop.Specification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spec
}

// Capture updates the resolution and grabs a frame. The returned image may
// borrow driver memory, it becomes stale on the next Capture.
func (c *Capturer) Capture(ctx context.Context) (raster.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.updateResolution(); err != nil {
		return nil, err
	}
	img, err := c.d.Acquire(ctx)
	if errors.Is(err, availability.ErrLost) {
		c.log.Debugf("capture lost, preparing again: %v", err)
		c.cached = nil
	}
	return img, err
}

// Close closes the driver.
func (c *Capturer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
	return c.d.Close()
}
