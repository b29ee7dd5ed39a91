package pool

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// poolStats tracks pool activity with atomic counters.
type poolStats struct {
	objectsCreated   atomic.Uint64
	objectsDestroyed atomic.Uint64
	totalGets        atomic.Uint64
	totalPuts        atomic.Uint64
	reuseHits        atomic.Uint64
	trimmedObjects   atomic.Uint64
	controllerTicks  atomic.Uint64
	peakInUse        atomic.Int64
	peakMaxSize      atomic.Int64
}

// PoolStatsSnapshot is a point-in-time view of the pool's counters.
type PoolStatsSnapshot struct {
	ObjectsCreated   uint64
	ObjectsDestroyed uint64
	TotalGets        uint64
	TotalPuts        uint64
	ReuseHits        uint64
	TrimmedObjects   uint64
	ControllerTicks  uint64
	PeakInUse        int64
	PeakMaxSize      int64

	InUse       int
	IdleObjects int
	MaxSize     int
}

func (st *poolStats) recordGet(inUse int64) {
	st.totalGets.Add(1)
	notePeak(&st.peakInUse, inUse)
}

func (st *poolStats) notePeakMaxSize(maxSize int64) {
	notePeak(&st.peakMaxSize, maxSize)
}

func notePeak(peak *atomic.Int64, observed int64) {
	for {
		current := peak.Load()
		if observed <= current || peak.CompareAndSwap(current, observed) {
			return
		}
	}
}

func (s *poolState[T]) snapshot() PoolStatsSnapshot {
	s.mu.Lock()
	idle := s.queue.len()
	maxSize := s.maxSize
	s.mu.Unlock()

	return PoolStatsSnapshot{
		ObjectsCreated:   s.stats.objectsCreated.Load(),
		ObjectsDestroyed: s.stats.objectsDestroyed.Load(),
		TotalGets:        s.stats.totalGets.Load(),
		TotalPuts:        s.stats.totalPuts.Load(),
		ReuseHits:        s.stats.reuseHits.Load(),
		TrimmedObjects:   s.stats.trimmedObjects.Load(),
		ControllerTicks:  s.stats.controllerTicks.Load(),
		PeakInUse:        s.stats.peakInUse.Load(),
		PeakMaxSize:      s.stats.peakMaxSize.Load(),
		InUse:            s.inUse.size(),
		IdleObjects:      idle,
		MaxSize:          maxSize,
	}
}

func (s *poolState[T]) logTick(inUse, target int) {
	if !s.config.verbose {
		return
	}
	s.logger.Debug("controller tick",
		zap.Int("in_use", inUse),
		zap.Int("new_max_size", target),
		zap.Uint64("trimmed_total", s.stats.trimmedObjects.Load()),
	)
}
