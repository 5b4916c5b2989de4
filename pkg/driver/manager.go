package driver

import (
	"fmt"
	"sort"
	"sync"
)

// FilterFn is being used to decide if a driver should be included in the
// query result.
type FilterFn func(Driver) bool

// FilterDeviceType returns a filter function to match the specified device type.
func FilterDeviceType(t DeviceType) FilterFn {
	return func(d Driver) bool {
		return d.Info().DeviceType == t
	}
}

// FilterID returns a filter function to match the specified driver ID.
func FilterID(id string) FilterFn {
	return func(d Driver) bool {
		return d.ID() == id
	}
}

// FilterLabel returns a filter function to match the specified label.
func FilterLabel(label string) FilterFn {
	return func(d Driver) bool {
		return d.Info().Label == label
	}
}

// FilterNot returns a filter function to negate provided filter.
func FilterNot(filter FilterFn) FilterFn {
	return func(d Driver) bool {
		return !filter(d)
	}
}

// FilterAnd returns a filter function to take logical conjunction of given filters.
func FilterAnd(filters ...FilterFn) FilterFn {
	return func(d Driver) bool {
		for _, f := range filters {
			if !f(d) {
				return false
			}
		}
		return true
	}
}

// Manager is a singleton to manage multiple drivers and their states
type Manager struct {
	mu      sync.RWMutex
	drivers map[string]Driver
}

var manager = NewManager()

// GetManager gets manager singleton instance.
func GetManager() *Manager {
	return manager
}

// NewManager creates an empty manager. Most callers want GetManager.
func NewManager() *Manager {
	return &Manager{drivers: make(map[string]Driver)}
}

// Register wraps a and makes it available to Query.
func (m *Manager) Register(a Adapter, info Info) error {
	d := wrapAdapter(a, info)
	if d == nil {
		return fmt.Errorf("adapter has to be a ScreenAdapter")
	}

	m.mu.Lock()
	m.drivers[d.ID()] = d
	m.mu.Unlock()
	return nil
}

// Query returns the drivers accepted by f, highest priority first.
func (m *Manager) Query(f FilterFn) []Driver {
	m.mu.RLock()
	results := make([]Driver, 0)
	for _, d := range m.drivers {
		if f(d) {
			results = append(results, d)
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Info(), results[j].Info()
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.Label < b.Label
	})
	return results
}

// QueryScreens returns the registered screens, highest priority first.
func (m *Manager) QueryScreens() []ScreenDriver {
	var screens []ScreenDriver
	for _, d := range m.Query(FilterDeviceType(Screen)) {
		if s, ok := d.(ScreenDriver); ok {
			screens = append(screens, s)
		}
	}
	return screens
}
