// Package wwan handles nanoapp requests for cellular data.
//
// Only one nanoapp can have a cell info request pending at a time; a second
// request is rejected until the first completes. Queueing overlapping
// requests is a known extension that is deliberately not implemented.
package wwan

import (
	"ember/emberos/resmux"
	"ember/hal"
)

// Capability bits reported by Manager.Capabilities.
const (
	CapCellInfo       = hal.ModemCapCellInfo
	CapSignalStrength = hal.ModemCapSignalStrength
	CapNeighborInfo   = hal.ModemCapNeighborInfo
)

// Manager multiplexes cell info requests onto the platform modem.
type Manager struct {
	mux *resmux.Mux[hal.CellInfoResult]
}

// NewManager wires the modem's asynchronous completion into the multiplexer.
func NewManager(modem hal.Modem, dispatch resmux.Dispatcher[hal.CellInfoResult]) *Manager {
	m := &Manager{mux: resmux.New(modemDriver{modem: modem}, dispatch)}
	modem.SetResultHandler(m.mux.HandleResult)
	return m
}

// Capabilities returns the modem capability bitmask.
func (m *Manager) Capabilities() uint32 {
	return m.mux.Capabilities()
}

// RequestCellInfo performs a cell environment scan for the given nanoapp.
//
// The cookie is echoed back unchanged in the asynchronous result event. A
// false return means the request did not start and no event will follow.
func (m *Manager) RequestCellInfo(appID uint32, cookie uint32) bool {
	return m.mux.Request(appID, cookie)
}

// Busy reports whether a scan is currently in flight.
func (m *Manager) Busy() bool {
	return m.mux.Busy()
}

// modemDriver adapts hal.Modem to the multiplexer driver boundary.
type modemDriver struct {
	modem hal.Modem
}

func (d modemDriver) Capabilities() uint32 { return d.modem.Capabilities() }
func (d modemDriver) Issue() bool          { return d.modem.RequestCellInfo() }
