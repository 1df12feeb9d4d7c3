package apps

import (
	"testing"

	"ember/emberos/kernel"
	"ember/emberos/proto"
	"ember/hal"
)

func TestRegistryLoadUnload(t *testing.T) {
	k := kernel.New()
	r := NewRegistry(k.NewContext())

	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	id := r.Load("cellmon", ep.Restrict(kernel.RightSend))
	if id == 0 {
		t.Fatal("expected nonzero instance ID")
	}
	if !r.Loaded(id) {
		t.Fatal("expected app loaded")
	}
	app, ok := r.Lookup(id)
	if !ok || app.Name != "cellmon" {
		t.Fatalf("unexpected lookup result %+v", app)
	}

	if !r.Unload(id) {
		t.Fatal("expected unload to succeed")
	}
	if r.Loaded(id) {
		t.Fatal("expected app gone after unload")
	}
	if r.Unload(id) {
		t.Fatal("expected second unload to fail")
	}
}

func TestDeliverResultEventReachesEndpoint(t *testing.T) {
	k := kernel.New()
	ctx := k.NewContext()
	r := NewRegistry(ctx)

	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	id := r.Load("cellmon", ep.Restrict(kernel.RightSend))

	result := hal.CellInfoResult{
		Cells: []hal.CellInfo{{Type: hal.CellTypeLTE, Registered: true, SignalDbm: -70}},
	}
	if !r.DeliverResultEvent(id, 55, result) {
		t.Fatal("expected delivery to succeed")
	}

	msg, ok := ctx.TryRecv(ep.Restrict(kernel.RightRecv))
	if !ok {
		t.Fatal("expected an event message")
	}
	if proto.Kind(msg.Kind) != proto.MsgCellInfoResp {
		t.Fatalf("unexpected kind %s", proto.Kind(msg.Kind))
	}
	cookie, errCode, cells, ok := proto.DecodeCellInfoRespPayload(msg.Payload())
	if !ok || cookie != 55 || errCode != 0 {
		t.Fatalf("unexpected payload cookie=%d err=%d ok=%v", cookie, errCode, ok)
	}
	if len(cells) != 1 || cells[0].SignalDbm != -70 || !cells[0].Registered {
		t.Fatalf("unexpected cells %+v", cells)
	}
}

func TestDeliverResultEventSuppressedAfterUnload(t *testing.T) {
	k := kernel.New()
	ctx := k.NewContext()
	r := NewRegistry(ctx)

	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	id := r.Load("cellmon", ep.Restrict(kernel.RightSend))
	r.Unload(id)

	if r.DeliverResultEvent(id, 1, hal.CellInfoResult{}) {
		t.Fatal("expected suppressed delivery for unloaded app")
	}
	if _, ok := ctx.TryRecv(ep.Restrict(kernel.RightRecv)); ok {
		t.Fatal("expected no event on the endpoint")
	}
}
