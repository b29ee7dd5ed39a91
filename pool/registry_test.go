package pool_test

import (
	"runtime"
	"testing"
	"time"

	"adaptivepool/pool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:noinline
func leakOne(t *testing.T, p *pool.Pool[*conn]) {
	t.Helper()

	obj, err := p.Get()
	require.NoError(t, err)
	require.NotNil(t, obj)
	// The reference is dropped on return; nothing gives it back.
}

func TestLeakedObjectSelfHeals(t *testing.T) {
	p, _ := newTestPool(t, slowTickConfig(t))

	leakOne(t, p)
	require.Equal(t, 1, p.InUse())

	require.Eventually(t, func() bool {
		runtime.GC()
		return p.InUse() == 0
	}, 10*time.Second, 50*time.Millisecond,
		"reclaimed object must leave the in-use registry without a Put")
}

func TestPutClearsRegistryWithoutGC(t *testing.T) {
	p, _ := newTestPool(t, slowTickConfig(t))
	p.SetMaxSize(1)

	obj, err := p.Get()
	require.NoError(t, err)
	require.Equal(t, 1, p.InUse())

	p.Put(obj)
	assert.Equal(t, 0, p.InUse())
	assert.Equal(t, 1, p.Stats().IdleObjects)
}

func TestIdleObjectsNotCountedInUse(t *testing.T) {
	p, _ := newTestPool(t, slowTickConfig(t))
	p.SetMaxSize(2)

	a, err := p.Get()
	require.NoError(t, err)
	b, err := p.Get()
	require.NoError(t, err)
	require.Equal(t, 2, p.InUse())

	p.Put(a)
	require.Equal(t, 1, p.InUse())
	p.Put(b)
	require.Equal(t, 0, p.InUse())

	// Queued objects are strongly held by the queue, never by the
	// registry; a GC cycle must not disturb either count.
	runtime.GC()
	assert.Equal(t, 0, p.InUse())
	assert.Equal(t, 2, p.Stats().IdleObjects)
}
