package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBufferFIFOAcrossWrap(t *testing.T) {
	rb := newRingBuffer[*int](2)

	vals := make([]*int, 5)
	for i := range vals {
		v := i
		vals[i] = &v
	}

	rb.push(vals[0])
	rb.push(vals[1])

	got, ok := rb.popOldest()
	require.True(t, ok)
	assert.Same(t, vals[0], got)

	rb.push(vals[2]) // wraps the write cursor
	rb.push(vals[3]) // forces growth
	rb.push(vals[4])
	assert.Equal(t, 4, rb.len())

	for i := 1; i < 5; i++ {
		got, ok = rb.popOldest()
		require.True(t, ok)
		assert.Same(t, vals[i], got)
	}

	_, ok = rb.popOldest()
	assert.False(t, ok)
	assert.Equal(t, 0, rb.len())
}

func TestRingBufferGrowPreservesOrder(t *testing.T) {
	rb := newRingBuffer[*int](1)

	vals := make([]*int, 9)
	for i := range vals {
		v := i
		vals[i] = &v
		rb.push(vals[i])
	}
	assert.Equal(t, 9, rb.len())

	for i := range vals {
		got, ok := rb.popOldest()
		require.True(t, ok)
		assert.Same(t, vals[i], got)
	}
}

func TestRingBufferDrain(t *testing.T) {
	rb := newRingBuffer[*int](4)
	assert.Nil(t, rb.drain())

	a, b, c := 1, 2, 3
	rb.push(&a)
	rb.push(&b)
	rb.push(&c)

	items := rb.drain()
	require.Len(t, items, 3)
	assert.Same(t, &a, items[0])
	assert.Same(t, &b, items[1])
	assert.Same(t, &c, items[2])
	assert.Equal(t, 0, rb.len())

	// Reusable after a drain.
	rb.push(&a)
	assert.Equal(t, 1, rb.len())
}

func TestRingBufferPopClearsSlot(t *testing.T) {
	rb := newRingBuffer[*int](2)
	v := 7
	rb.push(&v)

	_, ok := rb.popOldest()
	require.True(t, ok)

	// The vacated slot must not pin the object.
	assert.Nil(t, rb.buf[0])
}
