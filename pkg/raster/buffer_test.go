package raster

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/pion/screencapture/pkg/frame"
)

func TestBufferEndToEnd(t *testing.T) {
	pix := []byte{
		10, 20, 30, 99, 40, 50, 60, 0,
		70, 80, 90, 255, 100, 110, 120, 1,
	}
	b, err := NewBufferFrom(pix, frame.Tight(2, 2))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	img, err := b.ToRGBA()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := []byte{
		30, 20, 10, 255, 60, 50, 40, 255,
		90, 80, 70, 255, 120, 110, 100, 255,
	}
	if !bytes.Equal(img.Pix, expected) {
		t.Errorf("Expected %v, got %v", expected, img.Pix)
	}
	if &img.Pix[0] == &pix[0] {
		t.Error("Converted image aliases the buffer")
	}
}

func TestBufferPixels(t *testing.T) {
	b := Filled(4, 3, Pixel{R: 1, G: 2, B: 3})
	if err := b.SetPixel(3, 2, Pixel{R: 9, G: 8, B: 7}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := b.SetPixel(4, 0, Pixel{}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}

	if p, err := b.PixelAt(0, 0); err != nil || p != (Pixel{R: 1, G: 2, B: 3}) {
		t.Errorf("Unexpected pixel %v, %v", p, err)
	}
	if p, err := b.PixelAt(3, 2); err != nil || p != (Pixel{R: 9, G: 8, B: 7}) {
		t.Errorf("Unexpected pixel %v, %v", p, err)
	}
	if _, err := b.PixelAt(0, 3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}

	raw, _ := b.Bytes()
	if raw[(2*4+3)*4] != 7 || raw[(2*4+3)*4+2] != 9 {
		t.Error("Pixel not stored in blue, green, red order")
	}
}

func TestBufferFillRect(t *testing.T) {
	b := NewBuffer(4, 4)
	red := Pixel{R: 255}
	b.FillRect(image.Rect(2, 2, 10, 10), red)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			p, _ := b.PixelAt(x, y)
			inside := x >= 2 && y >= 2
			if inside != (p == red) {
				t.Errorf("Unexpected pixel %v at (%d, %d)", p, x, y)
			}
		}
	}
}

func TestFromRows(t *testing.T) {
	b, err := FromRows([][]Pixel{
		{{R: 1}, {G: 2}, {B: 3}},
		{{R: 4}, {G: 5}, {B: 6}},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if b.Width() != 3 || b.Height() != 2 || b.Stride() != 12 {
		t.Fatalf("Unexpected geometry %v", b.Descriptor())
	}
	if p, _ := b.PixelAt(1, 1); p != (Pixel{G: 5}) {
		t.Errorf("Unexpected pixel %v", p)
	}

	_, err = FromRows([][]Pixel{{{}, {}}, {{}}})
	if !errors.Is(err, frame.ErrInvalidDescriptor) {
		t.Errorf("Expected ErrInvalidDescriptor for ragged rows, got %v", err)
	}
	if errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Ragged rows reported as a pixel query error: %v", err)
	}
}

func TestSetGradient(t *testing.T) {
	b := Filled(5, 3, Pixel{R: 9, G: 9, B: 9})
	b.SetGradient(image.Rect(0, 0, 4, 2))

	cases := []struct {
		x, y     int
		expected Pixel
	}{
		{0, 0, Pixel{R: 0, G: 0, B: 255}},
		{1, 0, Pixel{R: 63, G: 0, B: 192}},
		{3, 0, Pixel{R: 191, G: 0, B: 64}},
		{2, 1, Pixel{R: 127, G: 127, B: 128}},
		// Outside the gradient.
		{4, 0, Pixel{R: 9, G: 9, B: 9}},
		{0, 2, Pixel{R: 9, G: 9, B: 9}},
	}
	for _, c := range cases {
		if p, _ := b.PixelAt(c.x, c.y); p != c.expected {
			t.Errorf("Expected %v at (%d, %d), got %v", c.expected, c.x, c.y, p)
		}
	}

	// A rectangle reaching past the buffer keeps its steps.
	b = NewBuffer(2, 1)
	b.SetGradient(image.Rect(-2, 0, 2, 1))
	if p, _ := b.PixelAt(0, 0); p != (Pixel{R: 127, B: 128}) {
		t.Errorf("Unexpected clipped gradient pixel %v", p)
	}

	b = Filled(2, 2, Pixel{R: 1})
	b.SetGradient(image.Rect(1, 1, 1, 2))
	if p, _ := b.PixelAt(1, 1); p != (Pixel{R: 1}) {
		t.Errorf("Empty gradient changed the buffer: %v", p)
	}
}

func TestScale(t *testing.T) {
	cases := map[string]struct {
		f        float32
		expected Pixel
	}{
		"Half":     {0.5, Pixel{R: 50, G: 100, B: 1}},
		"Double":   {2, Pixel{R: 200, G: 255, B: 6}},
		"Negative": {-1, Pixel{}},
		"Identity": {1, Pixel{R: 100, G: 200, B: 3}},
	}
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			b := Filled(2, 2, Pixel{R: 100, G: 200, B: 3})
			b.Scale(c.f)
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					if p, _ := b.PixelAt(x, y); p != c.expected {
						t.Errorf("Expected %v at (%d, %d), got %v", c.expected, x, y, p)
					}
				}
			}
		})
	}
}

func TestCopyIsIndependent(t *testing.T) {
	b := Filled(3, 3, Pixel{R: 5})
	c, err := Copy(b)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	_ = b.SetPixel(0, 0, Pixel{})
	if p, _ := c.PixelAt(0, 0); p != (Pixel{R: 5}) {
		t.Errorf("Copy changed with its source: %v", p)
	}
}
