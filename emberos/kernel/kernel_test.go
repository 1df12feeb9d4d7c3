package kernel

import (
	"testing"
	"time"
)

func TestMessagePayloadClampsLen(t *testing.T) {
	var msg Message
	msg.Len = MaxMessageBytes + 10
	if got := len(msg.Payload()); got != MaxMessageBytes {
		t.Fatalf("expected payload length %d, got %d", MaxMessageBytes, got)
	}
}

func TestCapabilityRestrict(t *testing.T) {
	k := New()
	full := k.NewEndpoint(RightSend | RightRecv)
	if !full.Valid() {
		t.Fatal("expected valid capability")
	}

	sendOnly := full.Restrict(RightSend)
	if !sendOnly.Valid() || !sendOnly.canSend() || sendOnly.canRecv() {
		t.Fatal("expected send-only capability")
	}
	if none := full.Restrict(0); none.Valid() {
		t.Fatal("expected empty restriction to invalidate")
	}
}

func TestSendFailsOnFullMailbox(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := k.NewContext()
	to := ep.Restrict(RightSend)

	for i := 0; i < mailboxSlots; i++ {
		if res := ctx.SendToCapResult(to, 1, []byte("x"), Capability{}); res != SendOK {
			t.Fatalf("expected SendOK filling queue, got %s", res)
		}
	}
	if res := ctx.SendToCapResult(to, 1, []byte("y"), Capability{}); res != SendErrQueueFull {
		t.Fatalf("expected SendErrQueueFull, got %s", res)
	}
}

func TestSendToRetryZeroLimitDoesNotBlock(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := k.NewContext()
	to := ep.Restrict(RightSend)

	for i := 0; i < mailboxSlots; i++ {
		if res := ctx.SendToCapResult(to, 1, []byte("x"), Capability{}); res != SendOK {
			t.Fatalf("expected SendOK filling queue, got %s", res)
		}
	}
	if res := ctx.SendToRetry(to, 1, []byte("y"), 0); res != SendErrQueueFull {
		t.Fatalf("expected SendErrQueueFull, got %s", res)
	}
}

func TestSendToRetrySucceedsAfterDrain(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := k.NewContext()
	to := ep.Restrict(RightSend)

	for i := 0; i < mailboxSlots; i++ {
		if res := ctx.SendToCapResult(to, 1, []byte("x"), Capability{}); res != SendOK {
			t.Fatalf("expected SendOK filling queue, got %s", res)
		}
	}

	resultCh := make(chan SendResult, 1)
	go func() {
		resultCh <- ctx.SendToRetry(to, 1, []byte("y"), 50)
	}()

	// Drain one slot, then tick so the retrying sender wakes.
	if _, ok := ctx.TryRecv(ep.Restrict(RightRecv)); !ok {
		t.Fatal("expected a message to drain")
	}
	deadline := time.After(time.Second)
	for {
		k.Tick()
		select {
		case res := <-resultCh:
			if res != SendOK {
				t.Fatalf("expected SendOK after drain, got %s", res)
			}
			return
		case <-deadline:
			t.Fatal("retrying sender never completed")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestRecvDeliversInOrderWithCap(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	reply := k.NewEndpoint(RightSend | RightRecv)
	ctx := k.NewContext()

	if !ctx.SendToCap(ep.Restrict(RightSend), 2, []byte("first"), reply.Restrict(RightSend)) {
		t.Fatal("send first")
	}
	if !ctx.SendTo(ep.Restrict(RightSend), 3, []byte("second")) {
		t.Fatal("send second")
	}

	msg, ok := ctx.Recv(ep.Restrict(RightRecv))
	if !ok || msg.Kind != 2 || string(msg.Payload()) != "first" {
		t.Fatalf("unexpected first message %+v", msg)
	}
	if !msg.Cap.Valid() {
		t.Fatal("expected transferred capability")
	}
	msg, ok = ctx.Recv(ep.Restrict(RightRecv))
	if !ok || msg.Kind != 3 || string(msg.Payload()) != "second" {
		t.Fatalf("unexpected second message %+v", msg)
	}
}

func TestContextRecvClosed(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	if !cap.Valid() {
		t.Fatal("expected valid capability")
	}

	ctx := k.NewContext()
	ch, ok := ctx.RecvChan(cap.Restrict(RightRecv))
	if !ok || ch == nil {
		t.Fatal("expected recv channel")
	}

	close(k.endpoints[cap.ep].ch)

	if _, ok := ctx.Recv(cap.Restrict(RightRecv)); ok {
		t.Fatal("expected Recv to fail after channel close")
	}
	if _, ok := ctx.TryRecv(cap.Restrict(RightRecv)); ok {
		t.Fatal("expected TryRecv to fail after channel close")
	}
}

func TestContextSendClosed(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	ctx := k.NewContext()
	close(k.endpoints[cap.ep].ch)

	res := ctx.SendToCapResult(cap.Restrict(RightSend), 1, []byte("x"), Capability{})
	if res != SendErrNoEndpoint {
		t.Fatalf("expected SendErrNoEndpoint, got %s", res)
	}
}

func TestWaitTickAdvances(t *testing.T) {
	k := New()
	ctx := k.NewContext()

	start := ctx.NowTick()
	got := make(chan uint64, 1)
	go func() {
		got <- ctx.WaitTick(start)
	}()

	k.Tick()
	select {
	case now := <-got:
		if now <= start {
			t.Fatalf("expected tick past %d, got %d", start, now)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitTick never returned")
	}
}
