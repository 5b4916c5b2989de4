package screen

import (
	"context"
	"fmt"

	"github.com/jezek/xgb"
	mshm "github.com/jezek/xgb/shm"
	"github.com/jezek/xgb/xproto"
	"github.com/pion/logging"
	internallog "github.com/pion/screencapture/internal/logging"
	"github.com/pion/screencapture/pkg/driver"
	"github.com/pion/screencapture/pkg/driver/availability"
	"github.com/pion/screencapture/pkg/frame"
	"github.com/pion/screencapture/pkg/prop"
	"github.com/pion/screencapture/pkg/raster"
)

type screen struct {
	num int
	log logging.LeveledLogger

	conn   *xgb.Conn
	root   xproto.Window
	bpp    int
	pad    int
	hasShm bool

	res    prop.Resolution
	region prop.Region
	d      frame.Descriptor
	seg    *segment
	lease  *raster.Lease
}

func deviceID(num int) string {
	return fmt.Sprintf("X11Screen%d", num)
}

func init() {
	c, err := xgb.NewConn()
	if err != nil {
		// No x11 display available.
		return
	}
	defer c.Close()
	for i := range xproto.Setup(c).Roots {
		driver.GetManager().Register(
			newScreen(i),
			driver.Info{
				Label:      deviceID(i),
				DeviceType: driver.Screen,
			},
		)
	}
}

func newScreen(num int) *screen {
	return &screen{
		num: num,
		log: internallog.NewLogger(deviceID(num)),
	}
}

func (s *screen) Open() error {
	c, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("%w: %v", availability.ErrSessionUnavailable, err)
	}

	setup := xproto.Setup(c)
	if s.num >= len(setup.Roots) {
		c.Close()
		return availability.ErrNoDevice
	}
	if setup.ImageByteOrder != xproto.ImageOrderLSBFirst {
		c.Close()
		return fmt.Errorf("%w: MSB first image byte order", availability.ErrUnimplemented)
	}
	root := setup.Roots[s.num]
	bpp, pad, err := pixmapLayout(setup, root.RootDepth)
	if err != nil {
		c.Close()
		return err
	}

	s.conn = c
	s.root = root.Root
	s.bpp, s.pad = bpp, pad
	s.hasShm = true
	if err := mshm.Init(c); err != nil {
		s.log.Warnf("MIT-SHM unavailable, copying frames over the socket: %v", err)
		s.hasShm = false
	}
	return nil
}

func (s *screen) Close() error {
	s.revoke()
	s.releaseSegment()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	return nil
}

func (s *screen) Resolution() (prop.Resolution, error) {
	g, err := xproto.GetGeometry(s.conn, xproto.Drawable(s.root)).Reply()
	if err != nil {
		return prop.Resolution{}, mapError(err)
	}
	return prop.Resolution{Width: int(g.Width), Height: int(g.Height)}, nil
}

func (s *screen) Prepare(region prop.Region) error {
	s.revoke()
	s.releaseSegment()

	res, err := s.Resolution()
	if err != nil {
		return err
	}
	region = region.Clamp(res)
	if region.Empty() {
		return fmt.Errorf("screen: empty region %v on %v", region, res)
	}

	d := frame.Descriptor{
		Width:  region.Width,
		Height: region.Height,
		Stride: scanlineStride(region.Width, s.bpp, s.pad),
	}
	if s.hasShm {
		seg, err := newSegment(s.conn, d.Size())
		if err != nil {
			s.log.Warnf("failed to attach shared memory, copying frames over the socket: %v", err)
			s.hasShm = false
		} else {
			s.seg = seg
		}
	}

	s.res, s.region, s.d = res, region, d
	s.log.Debugf("prepared %v of %v, stride %d", region, res, d.Stride)
	return nil
}

func (s *screen) Acquire(ctx context.Context) (raster.Image, error) {
	s.revoke()

	res, err := s.Resolution()
	if err != nil {
		return nil, err
	}
	if res != s.res {
		return nil, fmt.Errorf("%w: resolution changed from %v to %v", availability.ErrLost, s.res, res)
	}

	var (
		drawable = xproto.Drawable(s.root)
		x, y     = int16(s.region.X), int16(s.region.Y)
		w, h     = uint16(s.region.Width), uint16(s.region.Height)
	)
	var fetchImage func() ([]byte, error)
	if s.seg != nil {
		fetchImage = func() ([]byte, error) {
			_, err := mshm.GetImage(s.conn, drawable, x, y, w, h, allPlanes,
				byte(xproto.ImageFormatZPixmap), s.seg.seg, 0).Reply()
			if err != nil {
				return nil, err
			}
			return s.seg.data, nil
		}
	} else {
		fetchImage = func() ([]byte, error) {
			reply, err := xproto.GetImage(s.conn, byte(xproto.ImageFormatZPixmap), drawable,
				x, y, w, h, allPlanes).Reply()
			if err != nil {
				return nil, err
			}
			return reply.Data, nil
		}
	}
	pix, err := fetch(ctx, fetchImage)
	if err != nil {
		return nil, err
	}

	s.lease = raster.NewLease()
	v, err := raster.NewView(pix, s.d, s.lease)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *screen) revoke() {
	if s.lease != nil {
		s.lease.Revoke()
		s.lease = nil
	}
}

func (s *screen) releaseSegment() {
	if s.seg != nil {
		s.seg.release()
		s.seg = nil
	}
}
