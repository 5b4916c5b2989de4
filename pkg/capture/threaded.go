package capture

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/pion/logging"
	internallog "github.com/pion/screencapture/internal/logging"
)

// pollInterval bounds every sleep of the capture loop so that it notices
// configuration changes and Close quickly.
const pollInterval = 100 * time.Millisecond

// ErrNotCaptured is the error of Latest before the first capture finished.
var ErrNotCaptured = errors.New("capture: nothing captured yet")

// Info describes one capture of a Threaded capturer.
type Info struct {
	// Counter numbers captures from 1.
	Counter int
	// Time is when the capture started.
	Time time.Time
	// Duration covers capturing and converting the frame.
	Duration time.Duration
	// Image is owned by the receiver.
	Image *image.RGBA
	Err   error
}

// PreCallback is called with the counter before each capture.
type PreCallback func(counter int)

// PostCallback is called after each capture on the capture goroutine, it
// delays the next capture until it returns.
type PostCallback func(info Info)

// Threaded captures at the configured rate on its own goroutine.
type Threaded struct {
	c      *Capturer
	log    logging.LeveledLogger
	wake   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	latest Info
	pre    PreCallback
	post   PostCallback
}

// NewThreaded starts capturing with c. c must not be used directly
// afterwards, Close closes it.
func NewThreaded(c *Capturer) *Threaded {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Threaded{
		c:      c,
		log:    internallog.NewLogger("capture"),
		wake:   make(chan struct{}, 1),
		cancel: cancel,
		done:   make(chan struct{}),
		latest: Info{Err: ErrNotCaptured},
	}
	go t.run(ctx)
	return t
}

// SetConfig replaces the configuration, the driver is prepared again before
// the next capture.
func (t *Threaded) SetConfig(config Config) {
	t.c.SetConfig(config)
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

func (t *Threaded) Config() Config {
	return t.c.Config()
}

func (t *Threaded) SetPreCallback(f PreCallback) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pre = f
}

func (t *Threaded) SetPostCallback(f PostCallback) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.post = f
}

// Latest returns the most recent capture.
func (t *Threaded) Latest() Info {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest
}

// Close stops the capture goroutine and closes the Capturer.
func (t *Threaded) Close() error {
	t.cancel()
	<-t.done
	return t.c.Close()
}

func (t *Threaded) run(ctx context.Context) {
	defer close(t.done)

	var (
		counter      int
		lastEnd      = time.Now()
		lastDuration time.Duration
	)
	for ctx.Err() == nil {
		rate := t.c.Config().Rate
		if rate <= 0 {
			t.sleep(ctx, pollInterval)
			continue
		}

		interval := time.Duration(float64(time.Second) / rate)
		start := lastEnd.Add(interval - lastDuration)
		if wait := time.Until(start); wait > 0 {
			if wait > pollInterval {
				wait = pollInterval
			}
			t.sleep(ctx, wait)
			if time.Now().Before(start) {
				continue
			}
		}

		counter++
		t.mu.Lock()
		pre, post := t.pre, t.post
		t.mu.Unlock()
		if pre != nil {
			pre(counter)
		}

		info := t.capture(ctx, counter)
		if ctx.Err() != nil {
			return
		}
		if info.Err != nil {
			t.log.Errorf("capture %d failed: %v", counter, info.Err)
		}

		t.mu.Lock()
		t.latest = info
		t.mu.Unlock()
		if post != nil {
			post(info)
		}

		lastDuration = info.Duration
		lastEnd = info.Time.Add(info.Duration)
	}
}

func (t *Threaded) capture(ctx context.Context, counter int) Info {
	info := Info{Counter: counter, Time: time.Now()}
	img, err := t.c.Capture(ctx)
	if err == nil {
		info.Image, err = img.ToRGBA()
	}
	info.Err = err
	info.Duration = time.Since(info.Time)
	return info
}

// sleep waits for d, a configuration change or cancellation of ctx.
func (t *Threaded) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-t.wake:
	case <-timer.C:
	}
}
