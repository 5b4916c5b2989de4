package screen

import (
	"context"
	"errors"
	"fmt"

	"github.com/gen2brain/shm"
	"github.com/jezek/xgb"
	mshm "github.com/jezek/xgb/shm"
	"github.com/jezek/xgb/xproto"
	"github.com/pion/screencapture/pkg/driver/availability"
)

const allPlanes = 0xffffffff

// pixmapLayout returns the bits per pixel and scanline pad the server uses
// for ZPixmap images of the given depth.
func pixmapLayout(setup *xproto.SetupInfo, depth byte) (bpp, pad int, err error) {
	for _, f := range setup.PixmapFormats {
		if f.Depth != depth {
			continue
		}
		if f.BitsPerPixel != 32 {
			return 0, 0, fmt.Errorf("%w: %d bits per pixel", availability.ErrUnimplemented, f.BitsPerPixel)
		}
		return int(f.BitsPerPixel), int(f.ScanlinePad), nil
	}
	return 0, 0, fmt.Errorf("%w: no pixmap format for depth %d", availability.ErrUnimplemented, depth)
}

// scanlineStride is the length in bytes of one image row, rounded up to the
// scanline pad given in bits.
func scanlineStride(width, bpp, pad int) int {
	if pad <= 0 {
		pad = 8
	}
	bits := width * bpp
	return (bits + pad - 1) / pad * pad / 8
}

// segment is a SysV shared memory block attached to the X server.
type segment struct {
	conn *xgb.Conn
	seg  mshm.Seg
	data []byte
}

func newSegment(c *xgb.Conn, size int) (*segment, error) {
	id, err := shm.Get(shm.IPC_PRIVATE, size, shm.IPC_CREAT|0600)
	if err != nil {
		return nil, fmt.Errorf("shmget: %w", err)
	}
	// The segment is freed once both sides detached.
	defer shm.Rm(id)

	data, err := shm.At(id, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("shmat: %w", err)
	}

	seg, err := mshm.NewSegId(c)
	if err != nil {
		shm.Dt(data)
		return nil, err
	}
	if err := mshm.AttachChecked(c, seg, uint32(id), false).Check(); err != nil {
		shm.Dt(data)
		return nil, err
	}

	return &segment{conn: c, seg: seg, data: data[:size]}, nil
}

func (s *segment) release() {
	mshm.Detach(s.conn, s.seg)
	shm.Dt(s.data)
}

// mapError turns an X protocol error into an availability error.
func mapError(err error) error {
	var (
		access xproto.AccessError
		match  xproto.MatchError
	)
	switch {
	case errors.As(err, &access):
		return fmt.Errorf("%w: %v", availability.ErrPermissionDenied, err)
	case errors.As(err, &match):
		return fmt.Errorf("%w: %v", availability.ErrLost, err)
	}
	return fmt.Errorf("%w: %v", availability.ErrSessionUnavailable, err)
}

// fetch runs f and gives up when ctx is done first. The bytes f returns are
// handed back only when it finished in time and without error.
func fetch(ctx context.Context, f func() ([]byte, error)) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := f()
		done <- result{data, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", availability.ErrTimeout, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, mapError(r.err)
		}
		return r.data, nil
	}
}
