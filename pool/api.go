// Package pool implements an object pool whose capacity limit is
// continuously re-derived from observed concurrent demand instead of
// being tuned by hand. A per-pool controller goroutine periodically
// samples how many objects are checked out, snaps the idle capacity to
// that sample and destroys the excess oldest idle objects.
//
// Checked-out objects are tracked weakly: a caller that drops an object
// without returning it never pins the in-use count, because the
// runtime's reclamation of the object removes it from the registry.
//
// Only pointer types can be pooled; pointer identity is what the in-use
// registry keys on.
package pool

// Pooler is the public surface of an adaptive pool.
// Type parameter T must be a pointer type.
type Pooler[T any] interface {
	// Get checks an object out of the pool, reusing the oldest idle one
	// when available. Returns a *CreationError if a new object could not
	// be manufactured.
	Get() (T, error)
	// Put checks an object back in. Objects above the capacity limit,
	// and every object after Close, are destroyed instead of queued.
	Put(T)
	// InUse reports how many checked-out objects are currently tracked.
	InUse() int
	// MaxSize reports the current capacity limit of the idle queue.
	MaxSize() int
	// SetMaxSize overrides the capacity limit until the next controller
	// tick, destroying any excess idle objects immediately.
	SetMaxSize(int)
	// Stats returns a snapshot of the pool's counters.
	Stats() PoolStatsSnapshot
	// Close stops the controller and drains the idle queue. Idempotent.
	Close() error
}

var _ Pooler[*struct{}] = (*Pool[*struct{}])(nil)
