package pool

// ringBuffer is a growable FIFO queue over a circular slice. It is not
// synchronized: poolState.mu guards it together with maxSize so that
// trimming stays atomic with capacity changes.
type ringBuffer[T any] struct {
	buf    []T
	size   int
	r      int // next position to read
	w      int // next position to write
	isFull bool
}

func newRingBuffer[T any](size int) *ringBuffer[T] {
	if size <= 0 {
		size = 1
	}
	return &ringBuffer[T]{
		buf:  make([]T, size),
		size: size,
	}
}

func (b *ringBuffer[T]) len() int {
	if b.isFull {
		return b.size
	}
	if b.w >= b.r {
		return b.w - b.r
	}
	return b.size - b.r + b.w
}

// push appends item at the write cursor, doubling the underlying slice
// when full. Growth preserves FIFO order.
func (b *ringBuffer[T]) push(item T) {
	if b.isFull {
		b.grow(b.size * 2)
	}

	b.buf[b.w] = item
	b.w = (b.w + 1) % b.size
	if b.w == b.r {
		b.isFull = true
	}
}

// popOldest removes and returns the item at the read cursor.
func (b *ringBuffer[T]) popOldest() (T, bool) {
	var zero T
	if b.len() == 0 {
		return zero, false
	}

	item := b.buf[b.r]
	b.buf[b.r] = zero
	b.r = (b.r + 1) % b.size
	b.isFull = false
	return item, true
}

// drain removes every queued item in FIFO order, oldest first.
func (b *ringBuffer[T]) drain() []T {
	n := b.len()
	if n == 0 {
		return nil
	}

	items := make([]T, 0, n)
	for {
		item, ok := b.popOldest()
		if !ok {
			return items
		}
		items = append(items, item)
	}
}

func (b *ringBuffer[T]) grow(newSize int) {
	if newSize <= b.size {
		return
	}

	items := b.drain()
	b.buf = make([]T, newSize)
	b.size = newSize
	b.r, b.w, b.isFull = 0, 0, false
	copy(b.buf, items)
	b.w = len(items)
}
