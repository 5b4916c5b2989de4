package screencapture

import (
	"context"
	"errors"
	"testing"

	"github.com/pion/screencapture/pkg/capture"
	"github.com/pion/screencapture/pkg/driver"
	"github.com/pion/screencapture/pkg/driver/availability"
	"github.com/pion/screencapture/pkg/driver/screen/screentest"
	"github.com/pion/screencapture/pkg/prop"
)

func TestEnumerateScreens(t *testing.T) {
	var found bool
	for _, info := range EnumerateScreens() {
		if info.Label == screentest.Label {
			found = true
			if info.DeviceID == "" {
				t.Error("expected a device ID")
			}
		}
	}
	if !found {
		t.Fatalf("expected %s to be enumerated", screentest.Label)
	}
}

func TestFindScreen(t *testing.T) {
	s, err := FindScreen(screentest.Label, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Info().Label != screentest.Label {
		t.Errorf("expected %s, got %s", screentest.Label, s.Info().Label)
	}

	if _, err := FindScreen(screentest.Label, 1); !errors.Is(err, availability.ErrNoDevice) {
		t.Errorf("expected ErrNoDevice, got %v", err)
	}
	if _, err := FindScreen("missing", 0); !errors.Is(err, availability.ErrNoDevice) {
		t.Errorf("expected ErrNoDevice, got %v", err)
	}
}

func TestGrab(t *testing.T) {
	config := capture.Config{
		Capture: []prop.Specification{{X: 600, Y: 470, Width: 100, Height: 100}},
	}
	img, err := Grab(context.Background(), WithLabel(screentest.Label), WithConfig(config))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Width() != 40 || img.Height() != 10 {
		t.Fatalf("expected the region to be clamped to 40x10, got %dx%d", img.Width(), img.Height())
	}

	p, err := img.PixelAt(39, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x, y := 639, 479
	if p.G != uint8(y) || p.B != uint8(x^y) {
		t.Errorf("unexpected pixel %v", p)
	}

	s, _ := FindScreen(screentest.Label, 0)
	if s.Status() != driver.StateClosed {
		t.Errorf("expected the driver to be closed, got %s", s.Status())
	}
	if _, err := img.Bytes(); err != nil {
		t.Errorf("expected the copy to outlive the driver, got %v", err)
	}
}
