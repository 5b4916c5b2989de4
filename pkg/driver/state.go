package driver

import "fmt"

// State represents driver's state
type State string

const (
	// StateClosed means that the driver has not been opened. In this state,
	// all information related to the display is still unknown.
	StateClosed State = "closed"
	// StateOpened means that the driver is opened and the display resolution
	// may be queried.
	StateOpened State = "opened"
	// StateRunning means that a capture region has been prepared and frames
	// may be acquired.
	StateRunning State = "running"
)

// Update updates current state, s, to next. If f fails to execute,
// s will stay unchanged. Otherwise, s will be updated to next
func (s *State) Update(next State, f func() error) error {
	type checkFunc func() error
	m := map[State]checkFunc{
		StateOpened:  s.toOpened,
		StateClosed:  s.toClosed,
		StateRunning: s.toRunning,
	}

	check, ok := m[next]
	if !ok {
		return fmt.Errorf("invalid state: unknown state %q", next)
	}
	if err := check(); err != nil {
		return err
	}

	err := f()
	if err == nil {
		*s = next
	}
	return err
}

func (s *State) toOpened() error {
	if *s != StateClosed {
		return fmt.Errorf("invalid state: driver is already opened")
	}
	return nil
}

func (s *State) toClosed() error {
	return nil
}

// toRunning allows running again so that a running driver can be prepared
// for a new region after the resolution changed.
func (s *State) toRunning() error {
	if *s == StateClosed {
		return fmt.Errorf("invalid state: driver is closed")
	}
	return nil
}
