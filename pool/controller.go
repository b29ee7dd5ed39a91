package pool

import "time"

// ResizeStrategy maps the sampled number of in-use objects to the
// capacity limit applied on a controller tick.
type ResizeStrategy func(inUse int) int

// TrackDemand snaps the capacity limit to the most recent demand
// sample. This is the default: a proportional, zero-history rule that
// trades idle memory for creation churn under oscillating load.
func TrackDemand(inUse int) int { return inUse }

// WithHeadroom keeps n spare idle slots above observed demand, damping
// the churn of TrackDemand at the cost of n retained objects.
func WithHeadroom(n int) ResizeStrategy {
	return func(inUse int) int { return inUse + n }
}

// controlLoop is the per-pool background feedback loop. Each tick
// samples current demand, derives a new capacity limit and evicts
// excess idle objects. It exits when the pool's context is cancelled.
func (s *poolState[T]) controlLoop() {
	defer close(s.loopDone)

	ticker := time.NewTicker(s.config.controlPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			inUse := s.inUse.size()
			target := s.config.resizeStrategy(inUse)
			s.setMaxSize(target)
			s.stats.controllerTicks.Add(1)
			s.logTick(inUse, target)
		}
	}
}

// setMaxSize applies a new capacity limit and pops the oldest idle
// objects above it, atomically with the limit change. Evicted objects
// are destroyed after the lock is released.
func (s *poolState[T]) setMaxSize(newMax int) {
	if newMax < 0 {
		newMax = 0
	}

	var evicted []T
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.maxSize = newMax
	for s.queue.len() > newMax {
		obj, ok := s.queue.popOldest()
		if !ok {
			break
		}
		evicted = append(evicted, obj)
	}
	s.mu.Unlock()

	s.stats.notePeakMaxSize(int64(newMax))

	for _, obj := range evicted {
		s.destroyObject(obj)
	}
	if n := len(evicted); n > 0 {
		s.stats.trimmedObjects.Add(uint64(n))
	}
}
