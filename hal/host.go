//go:build !tinygo

package hal

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	t      *hostTime
	modem  *simModem
}

// HostConfig tunes the host (simulation) HAL.
type HostConfig struct {
	// TickInterval is the base tick duration. Defaults to 1ms to match the
	// device tick rate.
	TickInterval time.Duration
	Modem        SimModemConfig
}

// New returns a host HAL implementation with default settings.
func New() HAL {
	return NewWithConfig(HostConfig{})
}

// NewWithConfig returns a host HAL implementation.
func NewWithConfig(cfg HostConfig) HAL {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Millisecond
	}
	logger := newHostLogger()
	return &hostHAL{
		logger: logger,
		led:    &hostLED{logger: logger},
		t:      newHostTime(cfg.TickInterval),
		modem:  newSimModem(cfg.Modem),
	}
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) LED() LED       { return h.led }
func (h *hostHAL) Time() Time     { return h.t }
func (h *hostHAL) Modem() Modem   { return h.modem }

type hostLogger struct {
	log zerolog.Logger
}

func newHostLogger() *hostLogger {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}
	return &hostLogger{log: zerolog.New(w).With().Timestamp().Logger()}
}

func (l *hostLogger) WriteLineString(s string) {
	l.log.Info().Msg(s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.log.Info().Msg(string(b))
}

type hostLED struct {
	logger *hostLogger
}

func (l *hostLED) High() { l.logger.WriteLineString("led: on") }
func (l *hostLED) Low()  { l.logger.WriteLineString("led: off") }

type hostTime struct {
	ch chan uint64
}

func newHostTime(d time.Duration) *hostTime {
	t := &hostTime{ch: make(chan uint64, 1)}
	go func() {
		tick := uint64(0)
		for range time.Tick(d) {
			tick++
			select {
			case t.ch <- tick:
			default:
			}
		}
	}()
	return t
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }
