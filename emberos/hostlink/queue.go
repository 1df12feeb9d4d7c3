package hostlink

import "sync"

// BlockingQueue is a fixed-capacity FIFO shared between the runtime thread
// (producers) and the host polling thread (consumer).
//
// Push never blocks; Pop is the single suspension point. The capacity is
// fixed at construction and the queue is never resized.
type BlockingQueue[T any] struct {
	mu    sync.Mutex
	ready *sync.Cond
	slots []T
	head  int
	count int
}

// NewBlockingQueue creates a queue holding at most capacity items.
func NewBlockingQueue[T any](capacity int) *BlockingQueue[T] {
	if capacity <= 0 {
		capacity = 1
	}
	q := &BlockingQueue[T]{slots: make([]T, capacity)}
	q.ready = sync.NewCond(&q.mu)
	return q
}

// Push enqueues an item, returning false immediately when the queue is full.
// A failed push has no side effects; retry is the producer's call.
func (q *BlockingQueue[T]) Push(item T) bool {
	q.mu.Lock()
	if q.count == len(q.slots) {
		q.mu.Unlock()
		return false
	}
	q.slots[(q.head+q.count)%len(q.slots)] = item
	q.count++
	q.mu.Unlock()
	q.ready.Signal()
	return true
}

// Pop blocks until an item is available and returns it in FIFO order.
func (q *BlockingQueue[T]) Pop() T {
	q.mu.Lock()
	for q.count == 0 {
		q.ready.Wait()
	}
	var zero T
	item := q.slots[q.head]
	q.slots[q.head] = zero
	q.head = (q.head + 1) % len(q.slots)
	q.count--
	q.mu.Unlock()
	return item
}

// Empty reports whether the queue currently holds no items.
//
// This is a snapshot for best-effort draining checks only; by the time the
// caller acts on it the consumer may not yet have dequeued what was observed.
func (q *BlockingQueue[T]) Empty() bool {
	return q.Len() == 0
}

// Len returns the current occupancy.
func (q *BlockingQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the fixed capacity.
func (q *BlockingQueue[T]) Cap() int {
	return len(q.slots)
}
