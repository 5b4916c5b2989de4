package raster

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func gradient(width, height int) *Buffer {
	b := NewBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8(x * 255 / width)
			_ = b.SetPixel(x, y, Pixel{R: r, G: uint8(y * 255 / height), B: 255 - r})
		}
	}
	return b
}

func TestPPMRoundTrip(t *testing.T) {
	src := gradient(7, 5)
	var buf bytes.Buffer
	if err := WritePPM(&buf, src); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "P3\n7 5\n255\n") {
		t.Fatalf("Unexpected header %q", buf.String()[:12])
	}

	dst, err := ReadPPM(&buf)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			a, _ := src.PixelAt(x, y)
			b, _ := dst.PixelAt(x, y)
			if a != b {
				t.Fatalf("Pixel (%d, %d) changed from %v to %v", x, y, a, b)
			}
		}
	}
}

func TestPPMFromPaddedView(t *testing.T) {
	pix, d := paddedFrame()
	v, _ := NewView(pix, d, NewLease())
	var buf bytes.Buffer
	if err := WritePPM(&buf, v); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := "P3\n2 2\n255\n30 20 10 60 50 40 \n90 80 70 120 110 100 \n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestReadPPMErrors(t *testing.T) {
	cases := map[string]string{
		"Magic":   "P6\n1 1\n255\n0 0 0\n",
		"MaxVal":  "P3\n1 1\n65535\n0 0 0\n",
		"Sample":  "P3\n1 1\n255\n0 256 0\n",
		"Width":   "P3\nx 1\n255\n",
		"Missing": "P3\n2 1\n255\n0 0 0\n",
		"Huge":    "P3\n4611686018427387904 1\n255\n1 2 3\n",
		"Large":   "P3\n65536 65536\n255\n1 2 3\n",
	}
	for name, in := range cases {
		in := in
		t.Run(name, func(t *testing.T) {
			if _, err := ReadPPM(strings.NewReader(in)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
	for _, in := range []string{cases["Huge"], cases["Large"]} {
		if _, err := ReadPPM(strings.NewReader(in)); !errors.Is(err, ErrPPMFormat) {
			t.Errorf("Expected ErrPPMFormat for oversized header, got %v", err)
		}
	}
	if _, err := ReadPPM(strings.NewReader("P5 1 1 255")); !errors.Is(err, ErrPPMFormat) {
		t.Errorf("Expected ErrPPMFormat, got %v", err)
	}
}

func TestWriteBMPAndPNG(t *testing.T) {
	src := gradient(9, 4)

	var buf bytes.Buffer
	if err := WriteBMP(&buf, src); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	img, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	assertSamePixels(t, src, img.At)

	buf.Reset()
	if err := WritePNG(&buf, src); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	img, err = png.Decode(&buf)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	assertSamePixels(t, src, img.At)
}

func assertSamePixels(t *testing.T, src *Buffer, at func(x, y int) color.Color) {
	t.Helper()
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			p, _ := src.PixelAt(x, y)
			r, g, b, a := at(x, y).RGBA()
			if uint8(r>>8) != p.R || uint8(g>>8) != p.G || uint8(b>>8) != p.B || a != 0xFFFF {
				t.Fatalf("Pixel (%d, %d): expected %v, got %d %d %d %d", x, y, p, r>>8, g>>8, b>>8, a>>8)
			}
		}
	}
}
