package frame

import (
	"image"
)

// Converter converts the FormatBGR0 rows described by d from src into dst,
// which is tightly packed RGBA of d.Width*d.Height*4 bytes. Converters trust
// their input, use Converter.ToRGBA to get it validated.
type Converter func(dst, src []byte, d Descriptor)

// ToRGBA validates d against src and converts it into dst. dst is reused when
// its Pix is large enough, a new image is allocated when dst is nil.
func (c Converter) ToRGBA(dst *image.RGBA, src []byte, d Descriptor) (*image.RGBA, error) {
	if err := d.Validate(len(src)); err != nil {
		return nil, err
	}
	if dst == nil {
		dst = &image.RGBA{}
	}
	dst.Rect = image.Rect(0, 0, d.Width, d.Height)
	dst.Stride = d.RowBytes()
	l := d.RowBytes() * d.Height
	if cap(dst.Pix) < l {
		dst.Pix = make([]uint8, l)
	}
	dst.Pix = dst.Pix[:l]
	if l > 0 {
		c(dst.Pix, src, d)
	}
	return dst, nil
}

// ScalarConverter returns the portable pixel by pixel converter. Its output is
// the reference every other converter has to match.
func ScalarConverter() Converter {
	return convertScalar
}

func convertScalar(dst, src []byte, d Descriptor) {
	if d.Packed() {
		convertRow(dst, src[:len(dst)])
		return
	}
	rowBytes := d.RowBytes()
	for y := 0; y < d.Height; y++ {
		s := y * d.Stride
		o := y * rowBytes
		convertRow(dst[o:o+rowBytes], src[s:s+rowBytes])
	}
}

// convertRow converts len(src)/4 pixels. dst and src must have the same length.
func convertRow(dst, src []byte) {
	for i := 0; i+BytesPerPixel <= len(src); i += BytesPerPixel {
		s := src[i : i+4 : i+4] // Small capacity improves performance, see https://golang.org/issue/27857
		o := dst[i : i+4 : i+4]
		o[0] = s[OffsetRed]
		o[1] = s[OffsetGreen]
		o[2] = s[OffsetBlue]
		o[3] = Opaque
	}
}

// ToRGBA converts src with DefaultConverter.
func ToRGBA(dst *image.RGBA, src []byte, d Descriptor) (*image.RGBA, error) {
	return DefaultConverter().ToRGBA(dst, src, d)
}
