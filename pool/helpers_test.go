package pool_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"adaptivepool/pool"

	"github.com/stretchr/testify/require"
)

// conn is the pooled object used across the tests.
type conn struct {
	id  int
	buf [64]byte
}

// connLifecycle hands out sequentially numbered objects and counts
// lifecycle activity.
type connLifecycle struct {
	nextID    atomic.Int64
	created   atomic.Int64
	destroyed atomic.Int64

	mu           sync.Mutex
	destroyedIDs []int

	createErr  error
	destroyErr error

	onDequeue func(*conn)
	onEnqueue func(*conn)
}

func (l *connLifecycle) lifecycle() pool.Lifecycle[*conn] {
	return pool.Lifecycle[*conn]{
		Create: func() (*conn, error) {
			if l.createErr != nil {
				return nil, l.createErr
			}
			l.created.Add(1)
			return &conn{id: int(l.nextID.Add(1))}, nil
		},
		Destroy: func(c *conn) error {
			l.destroyed.Add(1)
			l.mu.Lock()
			l.destroyedIDs = append(l.destroyedIDs, c.id)
			l.mu.Unlock()
			return l.destroyErr
		},
		OnDequeue: l.onDequeue,
		OnEnqueue: l.onEnqueue,
	}
}

func (l *connLifecycle) destroyedSnapshot() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int(nil), l.destroyedIDs...)
}

func newTestPool(t *testing.T, config *pool.PoolConfig) (*pool.Pool[*conn], *connLifecycle) {
	t.Helper()

	lc := &connLifecycle{}
	p, err := pool.NewPool(config, lc.lifecycle())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p, lc
}

// slowTickConfig keeps the controller out of the way so tests can
// arrange queue state deterministically.
func slowTickConfig(t *testing.T) *pool.PoolConfig {
	t.Helper()

	config, err := pool.NewPoolConfigBuilder().
		SetControlPeriod(time.Hour).
		Build()
	require.NoError(t, err)
	return config
}

func fastTickConfig(t *testing.T, period time.Duration) *pool.PoolConfig {
	t.Helper()

	config, err := pool.NewPoolConfigBuilder().
		SetControlPeriod(period).
		Build()
	require.NoError(t, err)
	return config
}
