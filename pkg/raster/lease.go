package raster

import "sync/atomic"

// Lease tracks the window during which memory handed out by a capture
// backend may be read. The backend revokes it before it reuses or frees the
// memory. Revoking is permanent.
type Lease struct {
	revoked atomic.Bool
}

func NewLease() *Lease {
	return &Lease{}
}

// Revoke ends the lease. It is safe to call more than once and from any
// goroutine.
func (l *Lease) Revoke() {
	l.revoked.Store(true)
}

func (l *Lease) Valid() bool {
	return !l.revoked.Load()
}

// Err returns ErrStale once the lease is revoked.
func (l *Lease) Err() error {
	if l.revoked.Load() {
		return ErrStale
	}
	return nil
}
