//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

// SimModemConfig tunes the simulated modem.
type SimModemConfig struct {
	// Latency between an accepted request and its asynchronous result.
	// Defaults to 2ms.
	Latency time.Duration
	// Script is the sequence of results returned for successive scans,
	// cycled when exhausted. When empty a single plausible LTE environment
	// is used.
	Script []CellInfoResult
}

// simModem fakes the platform cellular interface for host builds.
//
// At most one scan is in flight at a time; the result is delivered on a
// separate goroutine after the configured latency, mirroring how a real
// modem driver completes out of the caller's context.
type simModem struct {
	mu      sync.Mutex
	handler func(CellInfoResult)
	script  []CellInfoResult
	next    int
	busy    bool
	latency time.Duration
}

func newSimModem(cfg SimModemConfig) *simModem {
	if cfg.Latency <= 0 {
		cfg.Latency = 2 * time.Millisecond
	}
	script := cfg.Script
	if len(script) == 0 {
		script = []CellInfoResult{{
			Cells: []CellInfo{
				{Type: CellTypeLTE, Registered: true, SignalDbm: -84},
				{Type: CellTypeLTE, SignalDbm: -97},
				{Type: CellTypeGSM, SignalDbm: -90},
			},
		}}
	}
	return &simModem{script: script, latency: cfg.Latency}
}

func (m *simModem) Capabilities() uint32 {
	return ModemCapCellInfo | ModemCapSignalStrength
}

func (m *simModem) SetResultHandler(handler func(CellInfoResult)) {
	m.mu.Lock()
	m.handler = handler
	m.mu.Unlock()
}

func (m *simModem) RequestCellInfo() bool {
	m.mu.Lock()
	if m.busy || m.handler == nil {
		m.mu.Unlock()
		return false
	}
	m.busy = true
	res := m.script[m.next]
	m.next = (m.next + 1) % len(m.script)
	m.mu.Unlock()

	go func() {
		time.Sleep(m.latency)
		m.mu.Lock()
		m.busy = false
		handler := m.handler
		m.mu.Unlock()
		handler(res)
	}()
	return true
}
