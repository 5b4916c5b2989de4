package driver

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pion/screencapture/pkg/prop"
	"github.com/pion/screencapture/pkg/raster"
)

func wrapAdapter(a Adapter, info Info) Driver {
	var d Driver
	id := uuid.NewString()

	switch v := a.(type) {
	case ScreenAdapter:
		d = &screenAdapterWrapper{
			ScreenAdapter: v,
			id:            id,
			info:          info,
			state:         StateClosed,
		}
	}

	return d
}

// screenAdapterWrapper serializes calls to the adapter and enforces the
// closed, opened, running life cycle.
type screenAdapterWrapper struct {
	ScreenAdapter
	id    string
	info  Info
	mu    sync.Mutex
	state State
}

func (w *screenAdapterWrapper) ID() string {
	return w.id
}

func (w *screenAdapterWrapper) Info() Info {
	return w.info
}

func (w *screenAdapterWrapper) Status() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *screenAdapterWrapper) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Update(StateOpened, w.ScreenAdapter.Open)
}

func (w *screenAdapterWrapper) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateClosed {
		return nil
	}
	return w.state.Update(StateClosed, w.ScreenAdapter.Close)
}

func (w *screenAdapterWrapper) Resolution() (prop.Resolution, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateClosed {
		return prop.Resolution{}, fmt.Errorf("invalid state: driver hasn't been opened")
	}
	return w.ScreenAdapter.Resolution()
}

func (w *screenAdapterWrapper) Prepare(region prop.Region) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Update(StateRunning, func() error {
		return w.ScreenAdapter.Prepare(region)
	})
}

func (w *screenAdapterWrapper) Acquire(ctx context.Context) (raster.Image, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateRunning {
		return nil, fmt.Errorf("invalid state: capture hasn't been prepared")
	}
	return w.ScreenAdapter.Acquire(ctx)
}
