package frame

import (
	"fmt"
	"image"
)

// NewDecoder returns a Decoder turning tightly packed frames of format f into
// images.
func NewDecoder(f Format) (Decoder, error) {
	var buildDecoder func() decoderFunc

	switch f {
	case FormatBGR0:
		buildDecoder = decodeBGR0
	case FormatRGBA:
		buildDecoder = decodeRGBA
	default:
		return nil, fmt.Errorf("%s is not supported", f)
	}

	return buildDecoder(), nil
}

func decodeBGR0() decoderFunc {
	return func(frame []byte, width, height int) (image.Image, func(), error) {
		img, err := ToRGBA(nil, frame, Tight(width, height))
		if err != nil {
			return nil, func() {}, err
		}
		return img, func() {}, nil
	}
}

// decodeRGBA aliases frame, the returned image is only valid as long as frame is.
func decodeRGBA() decoderFunc {
	return func(frame []byte, width, height int) (image.Image, func(), error) {
		d := Tight(width, height)
		if err := d.Validate(len(frame)); err != nil {
			return nil, func() {}, err
		}
		size := d.Size()
		return &image.RGBA{
			Pix:    frame[:size:size],
			Stride: d.Stride,
			Rect:   image.Rect(0, 0, width, height),
		}, func() {}, nil
	}
}
