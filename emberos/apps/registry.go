// Package apps tracks loaded nanoapp instances and delivers asynchronous
// result events to them over kernel IPC.
package apps

import (
	"sync"

	"ember/emberos/kernel"
	"ember/emberos/proto"
	"ember/hal"
)

// App is a loaded nanoapp instance.
type App struct {
	InstanceID uint32
	Name       string
	// Events is the endpoint the runtime delivers result events to.
	Events kernel.Capability
}

// Registry maps nanoapp instance IDs to their event endpoints.
type Registry struct {
	ctx *kernel.Context

	mu     sync.Mutex
	apps   map[uint32]App
	nextID uint32
}

// NewRegistry creates a registry delivering events through ctx.
func NewRegistry(ctx *kernel.Context) *Registry {
	return &Registry{ctx: ctx, apps: make(map[uint32]App), nextID: 1}
}

// Load registers a nanoapp and returns its instance ID.
func (r *Registry) Load(name string, events kernel.Capability) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.apps[id] = App{InstanceID: id, Name: name, Events: events}
	return id
}

// Unload removes a nanoapp. Events addressed to it are suppressed from then
// on.
func (r *Registry) Unload(id uint32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[id]; !ok {
		return false
	}
	delete(r.apps, id)
	return true
}

// Loaded reports whether the instance is still registered.
func (r *Registry) Loaded(id uint32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.apps[id]
	return ok
}

// Lookup returns the app record for an instance ID.
func (r *Registry) Lookup(id uint32) (App, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	return app, ok
}

// DeliverResultEvent sends a cell info result event to the requesting
// nanoapp's endpoint. Delivery is suppressed when the instance has been
// unloaded since it made the request.
func (r *Registry) DeliverResultEvent(appID uint32, cookie uint32, result hal.CellInfoResult) bool {
	app, ok := r.Lookup(appID)
	if !ok {
		return false
	}
	payload := proto.CellInfoRespPayload(cookie, uint8(result.Error), cellRecords(result.Cells))
	return r.ctx.SendTo(app.Events, uint16(proto.MsgCellInfoResp), payload)
}

func cellRecords(cells []hal.CellInfo) []proto.CellRecord {
	out := make([]proto.CellRecord, len(cells))
	for i, c := range cells {
		out[i] = proto.CellRecord{
			Type:       uint8(c.Type),
			Registered: c.Registered,
			SignalDbm:  c.SignalDbm,
		}
	}
	return out
}
