package pool

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultControlPeriod = 500 * time.Millisecond
	defaultInitialIdle   = 0
	defaultQueueCapacity = 8
)

// Pool hands out reusable objects whose idle capacity tracks observed
// demand. It is a thin facade over poolState: the controller goroutine
// and the object finalizers reference only the state, so an abandoned
// Pool can itself be finalized, which shuts the pool down.
//
// Type parameter T must be a pointer type. Non-pointer types are
// rejected at construction.
type Pool[T any] struct {
	state *poolState[T]
}

type poolState[T any] struct {
	lifecycle Lifecycle[T]
	config    *PoolConfig

	// mu guards queue and maxSize together; trimming the queue must be
	// atomic with the limit change.
	mu      sync.Mutex
	queue   *ringBuffer[T]
	maxSize int
	closed  bool

	// inUse has its own lock and is never acquired while mu is held,
	// nor the other way around.
	inUse *inUseRegistry

	stats  *poolStats
	logger *zap.Logger

	// ctx and cancel bound the controller goroutine; loopDone closes
	// when it has fully exited.
	ctx      context.Context
	cancel   context.CancelFunc
	loopDone chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// PoolConfig holds the tuning parameters for a pool. Build one with
// NewPoolConfigBuilder; the zero value is not usable.
type PoolConfig struct {
	// controlPeriod is the fixed interval between controller ticks.
	controlPeriod time.Duration

	// initialIdle pre-warms the pool with this many objects and sets
	// the starting capacity limit. The first controller tick re-derives
	// the limit from live demand.
	initialIdle int

	// resizeStrategy maps each demand sample to the next capacity limit.
	resizeStrategy ResizeStrategy

	verbose bool
	logger  *zap.Logger
}

func (c *PoolConfig) GetControlPeriod() time.Duration { return c.controlPeriod }

func (c *PoolConfig) GetInitialIdle() int { return c.initialIdle }

func (c *PoolConfig) IsVerbose() bool { return c.verbose }
