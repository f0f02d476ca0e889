package importer

import "context"

// FlushFunc submits one batch. The batch succeeds or fails as a whole.
type FlushFunc[T any] func(ctx context.Context, batch []T) error

// Batcher buffers items and flushes them Size at a time.
type Batcher[T any] struct {
	size  int
	flush FlushFunc[T]
	buf   []T

	// OnFlush, if set, observes every flush result.
	OnFlush func(n int, err error)
}

func NewBatcher[T any](size int, flush FlushFunc[T]) *Batcher[T] {
	if size < 1 {
		size = 1
	}
	return &Batcher[T]{size: size, flush: flush, buf: make([]T, 0, size)}
}

// Add buffers item and flushes when the buffer is full.
func (b *Batcher[T]) Add(ctx context.Context, item T) {
	b.buf = append(b.buf, item)
	if len(b.buf) >= b.size {
		b.Flush(ctx)
	}
}

// Flush submits whatever is buffered, if anything.
func (b *Batcher[T]) Flush(ctx context.Context) {
	if len(b.buf) == 0 {
		return
	}
	batch := b.buf
	b.buf = make([]T, 0, b.size)

	err := b.flush(ctx, batch)
	if b.OnFlush != nil {
		b.OnFlush(len(batch), err)
	}
}

func (b *Batcher[T]) Pending() int {
	return len(b.buf)
}
