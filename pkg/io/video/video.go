// Package video chains frame readers. A capture pipeline is a Reader wrapped
// by any number of TransformFuncs.
package video

import (
	"image"
	"io"
)

// Reader yields frames. release must be called once the caller is done with
// img; the frame may be overwritten afterwards.
type Reader interface {
	Read() (img image.Image, release func(), err error)
}

type ReaderFunc func() (img image.Image, release func(), err error)

func (rf ReaderFunc) Read() (img image.Image, release func(), err error) {
	img, release, err = rf()
	return
}

// TransformFunc produces a new Reader that will produces a transformed video
type TransformFunc func(r Reader) Reader

// Merge merges transforms and produces a new TransformFunc that will execute
// transforms in order
func Merge(transforms ...TransformFunc) TransformFunc {
	return func(r Reader) Reader {
		for _, transform := range transforms {
			if transform == nil {
				continue
			}

			r = transform(r)
		}

		return r
	}
}

// Limit ends the stream with io.EOF after n frames. n <= 0 means no limit.
func Limit(n int) TransformFunc {
	if n <= 0 {
		return nil
	}
	return func(r Reader) Reader {
		var count int
		return ReaderFunc(func() (image.Image, func(), error) {
			if count >= n {
				return nil, func() {}, io.EOF
			}
			img, release, err := r.Read()
			if err == nil {
				count++
			}
			return img, release, err
		})
	}
}
