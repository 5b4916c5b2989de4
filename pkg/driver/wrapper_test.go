package driver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/pion/screencapture/pkg/prop"
	"github.com/pion/screencapture/pkg/raster"
)

var (
	prepareErr = fmt.Errorf("failed to prepare capture")
)

type adapterMock struct{}

func (a *adapterMock) Open() error  { return nil }
func (a *adapterMock) Close() error { return nil }

type screenAdapterMock struct {
	adapterMock
	region prop.Region
}

func (a *screenAdapterMock) Resolution() (prop.Resolution, error) {
	return prop.Resolution{Width: 4, Height: 2}, nil
}

func (a *screenAdapterMock) Prepare(region prop.Region) error {
	a.region = region
	return nil
}

func (a *screenAdapterMock) Acquire(ctx context.Context) (raster.Image, error) {
	return raster.NewBuffer(a.region.Width, a.region.Height), nil
}

type screenAdapterBrokenMock struct{ screenAdapterMock }

func (a *screenAdapterBrokenMock) Prepare(region prop.Region) error {
	return prepareErr
}

func TestScreenWrapperState(t *testing.T) {
	var a screenAdapterMock
	d := wrapAdapter(&a, Info{})
	s := d.(ScreenDriver)

	if d.Status() != StateClosed {
		t.Errorf("expected %s, got %s", StateClosed, d.Status())
	}
	if _, err := s.Resolution(); err == nil {
		t.Errorf("expected to get an invalid state")
	}
	if _, err := s.Acquire(context.Background()); err == nil {
		t.Errorf("expected to get an invalid state")
	}

	if err := d.Open(); err != nil {
		t.Errorf("expected to successfully open, but got %v", err)
	}
	if err := d.Open(); err == nil {
		t.Errorf("expected to fail opening twice")
	}

	res, err := s.Resolution()
	if err != nil {
		t.Fatalf("expected to get the resolution, but got %v", err)
	}
	if _, err := s.Acquire(context.Background()); err == nil {
		t.Errorf("expected acquire before prepare to fail")
	}

	if err := s.Prepare(prop.Full(res)); err != nil {
		t.Fatalf("expected to successfully prepare, but got %v", err)
	}
	if d.Status() != StateRunning {
		t.Errorf("expected %s, got %s", StateRunning, d.Status())
	}

	img, err := s.Acquire(context.Background())
	if err != nil {
		t.Fatalf("expected to successfully acquire, but got %v", err)
	}
	if img.Width() != 4 || img.Height() != 2 {
		t.Errorf("expected a 4x2 image, got %dx%d", img.Width(), img.Height())
	}

	if err := d.Close(); err != nil {
		t.Errorf("expected to successfully close, but got %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("expected closing twice to be harmless, but got %v", err)
	}
	if _, err := s.Acquire(context.Background()); err == nil {
		t.Errorf("expected acquire after close to fail")
	}
}

func TestScreenWrapperWithBrokenPrepare(t *testing.T) {
	var a screenAdapterBrokenMock
	d := wrapAdapter(&a, Info{})
	s := d.(ScreenDriver)

	if err := d.Open(); err != nil {
		t.Errorf("expected to open successfully")
	}

	err := s.Prepare(prop.Region{})
	if !errors.Is(err, prepareErr) {
		t.Errorf("expected to get %v, got %v", prepareErr, err)
	}
	if d.Status() != StateOpened {
		t.Errorf("expected state to be %s, but got %s", StateOpened, d.Status())
	}
}

func TestWrapperIDs(t *testing.T) {
	a := wrapAdapter(&screenAdapterMock{}, Info{})
	b := wrapAdapter(&screenAdapterMock{}, Info{})
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("expected unique non empty IDs, got %q and %q", a.ID(), b.ID())
	}
}
