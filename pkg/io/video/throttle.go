package video

import (
	"image"
	"time"
)

// Throttle returns video throttling transform.
// This transform drops some of the incoming frames to achieve given framerate in fps.
// A rate <= 0 leaves the stream untouched.
func Throttle(rate float64) TransformFunc {
	if rate <= 0 {
		return nil
	}
	return func(r Reader) Reader {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / rate))
		return ReaderFunc(func() (image.Image, func(), error) {
			for {
				img, release, err := r.Read()
				if err != nil {
					ticker.Stop()
					return nil, func() {}, err
				}
				select {
				case <-ticker.C:
					return img, release, nil
				default:
					if release != nil {
						release()
					}
				}
			}
		})
	}
}
