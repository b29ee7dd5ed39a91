package pool

import (
	"context"
	"runtime"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// NewPool creates a pool with the given config and lifecycle. A nil
// config uses the defaults (500ms control period, capacity limit 0
// until the first tick observes demand). The controller goroutine is
// started immediately and owned by this pool alone.
func NewPool[T any](config *PoolConfig, lifecycle Lifecycle[T]) (*Pool[T], error) {
	if config == nil {
		config = createDefaultConfig()
	}
	config.applyDefaults()

	if err := validateLifecycle(lifecycle); err != nil {
		return nil, err
	}

	state := &poolState[T]{
		lifecycle: lifecycle,
		config:    config,
		queue:     newRingBuffer[T](defaultQueueCapacity),
		maxSize:   config.initialIdle,
		inUse:     newInUseRegistry(),
		stats:     &poolStats{},
		logger:    config.logger.With(zap.String("component", "adaptive_pool")),
		loopDone:  make(chan struct{}),
	}
	state.ctx, state.cancel = context.WithCancel(context.Background())

	if err := state.prewarm(config.initialIdle); err != nil {
		state.cancel()
		return nil, err
	}

	go state.controlLoop()

	p := &Pool[T]{state: state}

	// Abandoning the pool without calling Close still shuts it down:
	// only the facade is finalizable, the goroutine holds the state.
	runtime.SetFinalizer(p, func(p *Pool[T]) {
		_ = p.state.close()
	})
	return p, nil
}

// Get checks an object out of the pool, reusing the oldest idle object
// or manufacturing a new one through the lifecycle Create hook.
func (p *Pool[T]) Get() (T, error) {
	return p.state.get()
}

// Put checks an object back into the pool. If the idle queue is at its
// capacity limit, or the pool is closed, the object is destroyed. The
// in-use registry entry is cleared on both paths.
func (p *Pool[T]) Put(obj T) {
	p.state.put(obj)
}

// InUse reports how many objects obtained via Get have neither been
// returned nor reclaimed.
func (p *Pool[T]) InUse() int {
	return p.state.inUse.size()
}

// MaxSize reports the current capacity limit of the idle queue.
func (p *Pool[T]) MaxSize() int {
	s := p.state
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxSize
}

// SetMaxSize overrides the capacity limit, destroying any excess idle
// objects immediately. The next controller tick re-derives the limit
// from demand; negative values clamp to zero.
func (p *Pool[T]) SetMaxSize(n int) {
	p.state.setMaxSize(n)
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool[T]) Stats() PoolStatsSnapshot {
	return p.state.snapshot()
}

// Close stops the controller, waits for any in-flight tick, then drains
// the idle queue and destroys each drained object. Objects still
// checked out are not touched; they are destroyed individually when
// returned or reclaimed. Close is idempotent and returns the combined
// destroy failures from draining, if any.
func (p *Pool[T]) Close() error {
	runtime.SetFinalizer(p, nil)
	return p.state.close()
}

func (s *poolState[T]) get() (T, error) {
	s.mu.Lock()
	obj, reused := s.queue.popOldest()
	s.mu.Unlock()

	if reused {
		s.stats.reuseHits.Add(1)
		s.invokeDequeueHook(obj)
	} else {
		created, err := s.lifecycle.Create()
		if err != nil {
			var zero T
			return zero, &CreationError{Err: err}
		}
		obj = created
		s.trackNew(obj)
		s.stats.objectsCreated.Add(1)
	}

	s.inUse.add(objKey(obj))
	s.stats.recordGet(int64(s.inUse.size()))
	return obj, nil
}

func (s *poolState[T]) put(obj T) {
	// Mandatory on both branches; skipping it when the object is
	// requeued corrupts the in-use count. Must precede the enqueue:
	// once queued, a concurrent Get may re-register the object, and a
	// late removal would erase that checkout.
	s.inUse.remove(objKey(obj))
	s.stats.totalPuts.Add(1)

	kept := false
	s.mu.Lock()
	if !s.closed && s.queue.len() < s.maxSize {
		s.queue.push(obj)
		kept = true
	}
	s.mu.Unlock()

	if kept {
		s.dispatchEnqueueHook(obj)
		return
	}
	s.destroyObject(obj)
}

// prewarm fills the queue with count freshly created objects. A Create
// failure rolls back by destroying what was already made.
func (s *poolState[T]) prewarm(count int) error {
	for i := 0; i < count; i++ {
		obj, err := s.lifecycle.Create()
		if err != nil {
			s.mu.Lock()
			made := s.queue.drain()
			s.mu.Unlock()
			for _, o := range made {
				s.destroyObject(o)
			}
			return &CreationError{Err: err}
		}

		s.trackNew(obj)
		s.stats.objectsCreated.Add(1)

		s.mu.Lock()
		s.queue.push(obj)
		s.mu.Unlock()
	}
	return nil
}

func (s *poolState[T]) close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.loopDone

		s.mu.Lock()
		s.closed = true
		s.maxSize = 0
		drained := s.queue.drain()
		s.mu.Unlock()

		var errs error
		for _, obj := range drained {
			if err := s.destroyObject(obj); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
		s.closeErr = errs
	})
	return s.closeErr
}
