package frame

import (
	"image"
	"image/color"
)

type RGB24Img struct {
	// Pix holds the image's pixels, in R, G, B order. The pixel at
	// (x, y) starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix    []uint8
	Rect   image.Rectangle
	Stride int
}

// ToRGB24 drops the padding byte and converts src into packed RGB.
func ToRGB24(src []byte, d Descriptor) (*RGB24Img, error) {
	if err := d.Validate(len(src)); err != nil {
		return nil, err
	}
	img := &RGB24Img{
		Pix:    make([]uint8, d.Width*d.Height*3),
		Rect:   image.Rect(0, 0, d.Width, d.Height),
		Stride: d.Width * 3,
	}
	for y := 0; y < d.Height; y++ {
		row := src[y*d.Stride : y*d.Stride+d.RowBytes()]
		out := img.Pix[y*img.Stride : (y+1)*img.Stride]
		for x := 0; x < d.Width; x++ {
			s := row[x*4 : x*4+4 : x*4+4]
			o := out[x*3 : x*3+3 : x*3+3]
			o[0] = s[OffsetRed]
			o[1] = s[OffsetGreen]
			o[2] = s[OffsetBlue]
		}
	}
	return img, nil
}

func (p *RGB24Img) ColorModel() color.Model {
	return color.RGBAModel
}
func (p *RGB24Img) Bounds() image.Rectangle {
	return p.Rect
}

func (p *RGB24Img) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}
func (p *RGB24Img) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3] // Small capacity improves performance, see https://golang.org/issue/27857
	return color.RGBA{s[0], s[1], s[2], Opaque}
}
