package hostlink

import (
	"sync"
	"testing"
	"time"
)

func TestQueueCapacityAndFIFO(t *testing.T) {
	q := NewBlockingQueue[int](2)
	if q.Cap() != 2 {
		t.Fatalf("expected capacity 2, got %d", q.Cap())
	}

	if !q.Push(1) || !q.Push(2) {
		t.Fatal("expected pushes within capacity to succeed")
	}
	if q.Push(3) {
		t.Fatal("expected push on full queue to fail")
	}
	if q.Len() != 2 {
		t.Fatalf("expected occupancy 2, got %d", q.Len())
	}

	if got := q.Pop(); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if !q.Push(3) {
		t.Fatal("expected push after pop to succeed")
	}
	if got := q.Pop(); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := q.Pop(); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if !q.Empty() {
		t.Fatal("expected empty queue")
	}
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	q := NewBlockingQueue[string](4)

	got := make(chan string, 1)
	go func() {
		got <- q.Pop()
	}()

	select {
	case v := <-got:
		t.Fatalf("pop returned %q before any push", v)
	case <-time.After(10 * time.Millisecond):
	}

	if !q.Push("wake") {
		t.Fatal("expected push to succeed")
	}
	select {
	case v := <-got:
		if v != "wake" {
			t.Fatalf("expected %q, got %q", "wake", v)
		}
	case <-time.After(time.Second):
		t.Fatal("pop did not wake after push")
	}
}

func TestQueueMinimumCapacity(t *testing.T) {
	q := NewBlockingQueue[int](0)
	if q.Cap() != 1 {
		t.Fatalf("expected capacity clamped to 1, got %d", q.Cap())
	}
	if !q.Push(7) {
		t.Fatal("expected push into empty queue to succeed")
	}
	if q.Push(8) {
		t.Fatal("expected second push to fail")
	}
}

func TestQueueConcurrentProducersKeepOrderPerProducer(t *testing.T) {
	const (
		producers = 4
		perProd   = 200
	)
	q := NewBlockingQueue[[2]int](8)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProd; i++ {
				for !q.Push([2]int{p, i}) {
					time.Sleep(time.Microsecond)
				}
			}
		}(p)
	}

	last := make([]int, producers)
	for i := range last {
		last[i] = -1
	}
	for n := 0; n < producers*perProd; n++ {
		item := q.Pop()
		p, seq := item[0], item[1]
		if seq != last[p]+1 {
			t.Fatalf("producer %d: expected sequence %d, got %d", p, last[p]+1, seq)
		}
		last[p] = seq
		if l := q.Len(); l < 0 || l > q.Cap() {
			t.Fatalf("occupancy %d outside [0, %d]", l, q.Cap())
		}
	}
	wg.Wait()

	if !q.Empty() {
		t.Fatalf("expected drained queue, occupancy %d", q.Len())
	}
}
