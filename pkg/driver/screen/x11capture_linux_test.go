package screen

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jezek/xgb/xproto"
	"github.com/pion/screencapture/pkg/driver/availability"
)

func TestScanlineStride(t *testing.T) {
	cases := []struct {
		width, bpp, pad int
		expected        int
	}{
		{width: 1920, bpp: 32, pad: 32, expected: 7680},
		{width: 3, bpp: 32, pad: 32, expected: 12},
		{width: 3, bpp: 32, pad: 64, expected: 16},
		{width: 5, bpp: 32, pad: 128, expected: 32},
		{width: 0, bpp: 32, pad: 32, expected: 0},
	}
	for _, c := range cases {
		if ret := scanlineStride(c.width, c.bpp, c.pad); ret != c.expected {
			t.Errorf("Wrong stride for %+v, expected %d, got %d", c, c.expected, ret)
		}
	}
}

func TestPixmapLayout(t *testing.T) {
	setup := &xproto.SetupInfo{
		PixmapFormats: []xproto.Format{
			{Depth: 1, BitsPerPixel: 1, ScanlinePad: 32},
			{Depth: 16, BitsPerPixel: 16, ScanlinePad: 32},
			{Depth: 24, BitsPerPixel: 32, ScanlinePad: 32},
		},
	}

	bpp, pad, err := pixmapLayout(setup, 24)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if bpp != 32 || pad != 32 {
		t.Errorf("Expected 32/32, got %d/%d", bpp, pad)
	}

	if _, _, err := pixmapLayout(setup, 16); !errors.Is(err, availability.ErrUnimplemented) {
		t.Errorf("Expected ErrUnimplemented for 16 bits per pixel, got %v", err)
	}
	if _, _, err := pixmapLayout(setup, 30); !errors.Is(err, availability.ErrUnimplemented) {
		t.Errorf("Expected ErrUnimplemented for a missing depth, got %v", err)
	}
}

func TestMapError(t *testing.T) {
	cases := []struct {
		err      error
		expected error
	}{
		{err: xproto.AccessError{NiceName: "Access"}, expected: availability.ErrPermissionDenied},
		{err: xproto.MatchError{NiceName: "Match"}, expected: availability.ErrLost},
		{err: fmt.Errorf("connection reset"), expected: availability.ErrSessionUnavailable},
	}
	for _, c := range cases {
		if err := mapError(c.err); !errors.Is(err, c.expected) {
			t.Errorf("Expected %v to map to %v, got %v", c.err, c.expected, err)
		}
	}
}

func TestFetch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	release := make(chan struct{})
	finished := make(chan struct{})
	data, err := fetch(ctx, func() ([]byte, error) {
		defer close(finished)
		<-release
		return []byte{1, 2, 3, 4}, nil
	})
	if !errors.Is(err, availability.ErrTimeout) {
		t.Errorf("Expected ErrTimeout, got %v", err)
	}
	if data != nil {
		t.Errorf("Expected no data after a timeout, got %v", data)
	}
	close(release)
	<-finished

	data, err = fetch(context.Background(), func() ([]byte, error) {
		return []byte{5, 6, 7, 8}, nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(data) != 4 || data[0] != 5 {
		t.Errorf("Unexpected data: %v", data)
	}

	_, err = fetch(context.Background(), func() ([]byte, error) {
		return []byte{1}, xproto.AccessError{NiceName: "Access"}
	})
	if !errors.Is(err, availability.ErrPermissionDenied) {
		t.Errorf("Expected ErrPermissionDenied, got %v", err)
	}
}
