package capture

import (
	"context"
	"image"

	"github.com/pion/screencapture/pkg/frame"
	"github.com/pion/screencapture/pkg/io/video"
	"github.com/pion/screencapture/pkg/raster"
)

// Reader returns the frames of c converted to RGBA. The same image is
// rewritten by every Read.
func (c *Capturer) Reader(ctx context.Context) video.Reader {
	var dst *image.RGBA
	return video.ReaderFunc(func() (image.Image, func(), error) {
		img, err := c.Capture(ctx)
		if err != nil {
			return nil, func() {}, err
		}

		pix, err := img.Bytes()
		if err != nil {
			return nil, func() {}, err
		}
		dst, err = frame.ToRGBA(dst, pix, img.Descriptor())
		if err != nil {
			return nil, func() {}, err
		}
		if v, ok := img.(*raster.View); ok && !v.Valid() {
			return nil, func() {}, raster.ErrStale
		}
		return dst, func() {}, nil
	})
}
