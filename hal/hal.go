package hal

import "errors"

// Logger writes newline-delimited log lines.
//
// Implementations write directly to a local sink (UART, stderr). This is the
// only logging facility safe to use from host-link internals and during
// shutdown: every other log path may itself produce a message to the host.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// Time provides a base tick stream.
//
// The tick duration is platform-defined; higher-level timers live in userland.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the runtime and the outside
// world.
type HAL interface {
	Logger() Logger
	LED() LED
	Time() Time
	Modem() Modem
}

// NopLogger discards all lines.
type NopLogger struct{}

func (NopLogger) WriteLineString(string) {}
func (NopLogger) WriteLineBytes([]byte)  {}
