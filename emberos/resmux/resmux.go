// Package resmux mediates nanoapp access to a platform resource that can
// serve one request at a time.
//
// The slot holds at most one (app, cookie) pair. A request made while the
// slot is occupied is rejected, not queued; the rejected caller gets false
// synchronously and must not wait for an event.
package resmux

import "sync"

// Driver is the platform resource the multiplexer issues requests to.
// Completion arrives asynchronously through Mux.HandleResult.
type Driver interface {
	Capabilities() uint32
	Issue() bool
}

// Dispatcher delivers an asynchronous result back to the requesting nanoapp.
// A false return means the requester is gone and delivery was suppressed.
type Dispatcher[R any] interface {
	DeliverResultEvent(appID uint32, cookie uint32, result R) bool
}

type pending struct {
	appID  uint32
	cookie uint32
}

// Mux tracks at most one in-flight request against a Driver.
type Mux[R any] struct {
	driver   Driver
	dispatch Dispatcher[R]

	mu         sync.Mutex
	inFlight   *pending
	caps       uint32
	capsLoaded bool
}

// New creates a multiplexer over driver, delivering results via dispatch.
func New[R any](driver Driver, dispatch Dispatcher[R]) *Mux[R] {
	return &Mux[R]{driver: driver, dispatch: dispatch}
}

// Capabilities returns the driver capability bitmask, queried once and
// cached.
func (m *Mux[R]) Capabilities() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.capsLoaded {
		m.caps = m.driver.Capabilities()
		m.capsLoaded = true
	}
	return m.caps
}

// Busy reports whether a request is currently in flight.
func (m *Mux[R]) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight != nil
}

// Request claims the slot for (appID, cookie) and issues the underlying
// request.
//
// False means the request did not start: either the slot was occupied (the
// stored request is untouched) or the driver declined (the slot is released
// before returning). True means the slot stays claimed until the driver's
// completion reaches HandleResult.
func (m *Mux[R]) Request(appID uint32, cookie uint32) bool {
	m.mu.Lock()
	if m.inFlight != nil {
		m.mu.Unlock()
		return false
	}
	m.inFlight = &pending{appID: appID, cookie: cookie}
	m.mu.Unlock()

	// Issue outside the lock: a driver may complete synchronously on the
	// calling goroutine.
	if !m.driver.Issue() {
		m.mu.Lock()
		if m.inFlight != nil && m.inFlight.appID == appID && m.inFlight.cookie == cookie {
			m.inFlight = nil
		}
		m.mu.Unlock()
		return false
	}
	return true
}

// HandleResult is invoked by the platform driver when the in-flight request
// completes. It forwards the result to the stored requester and idles the
// slot; a completion with no request in flight is dropped.
func (m *Mux[R]) HandleResult(result R) {
	m.mu.Lock()
	p := m.inFlight
	m.inFlight = nil
	m.mu.Unlock()
	if p == nil {
		return
	}
	_ = m.dispatch.DeliverResultEvent(p.appID, p.cookie, result)
}
