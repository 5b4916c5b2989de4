package raster

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"strconv"

	"github.com/pion/screencapture/pkg/frame"
	"golang.org/x/image/bmp"
)

// ErrPPMFormat is returned for PPM input ReadPPM does not understand.
var ErrPPMFormat = errors.New("unsupported ppm")

// maxPPMPixels bounds the image size ReadPPM allocates for.
const maxPPMPixels = 1 << 28

// WritePPM writes img as an ASCII (P3) portable pixmap, one image row per
// line.
func WritePPM(w io.Writer, img Image) error {
	pix, err := img.Bytes()
	if err != nil {
		return err
	}
	rgb, err := frame.ToRGB24(pix, img.Descriptor())
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width(), img.Height()); err != nil {
		return err
	}
	line := make([]byte, 0, rgb.Stride*4)
	for y := 0; y < img.Height(); y++ {
		line = line[:0]
		for _, v := range rgb.Pix[y*rgb.Stride : (y+1)*rgb.Stride] {
			line = strconv.AppendUint(line, uint64(v), 10)
			line = append(line, ' ')
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadPPM reads an ASCII (P3) portable pixmap with a maximum value of 255, as
// written by WritePPM.
func ReadPPM(r io.Reader) (*Buffer, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	next := func() (string, error) {
		for sc.Scan() {
			tok := sc.Text()
			if tok[0] == '#' {
				// Only single word comments are supported.
				continue
			}
			return tok, nil
		}
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	nextInt := func(what string) (int, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: bad %s %q", ErrPPMFormat, what, tok)
		}
		return v, nil
	}

	magic, err := next()
	if err != nil {
		return nil, err
	}
	if magic != "P3" {
		return nil, fmt.Errorf("%w: magic %q", ErrPPMFormat, magic)
	}
	width, err := nextInt("width")
	if err != nil {
		return nil, err
	}
	height, err := nextInt("height")
	if err != nil {
		return nil, err
	}
	maxVal, err := nextInt("maximum value")
	if err != nil {
		return nil, err
	}
	if maxVal != 255 {
		return nil, fmt.Errorf("%w: maximum value %d", ErrPPMFormat, maxVal)
	}
	if height > 0 && width > maxPPMPixels/height {
		return nil, fmt.Errorf("%w: image %dx%d too large", ErrPPMFormat, width, height)
	}
	if d := frame.Tight(width, height); d.Validate(d.Size()) != nil {
		return nil, fmt.Errorf("%w: image %dx%d", ErrPPMFormat, width, height)
	}

	b := NewBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c [3]uint8
			for i := range c {
				v, err := nextInt("sample")
				if err != nil {
					return nil, err
				}
				if v > 255 {
					return nil, fmt.Errorf("%w: sample %d", ErrPPMFormat, v)
				}
				c[i] = uint8(v)
			}
			b.set(x, y, Pixel{R: c[0], G: c[1], B: c[2]})
		}
	}
	return b, nil
}

// WriteBMP writes img as a Windows bitmap.
func WriteBMP(w io.Writer, img Image) error {
	rgba, err := img.ToRGBA()
	if err != nil {
		return err
	}
	return bmp.Encode(w, rgba)
}

// WritePNG writes img as PNG.
func WritePNG(w io.Writer, img Image) error {
	rgba, err := img.ToRGBA()
	if err != nil {
		return err
	}
	return png.Encode(w, rgba)
}
