// Package hostlink buffers outbound messages for the host processor and
// implements the polling RPC entry points the host drains them through.
//
// Two threads of control meet here: the runtime thread enqueues via
// SendMessage and never blocks; the host polling thread sits in GetMessage,
// which blocks until a message (or the shutdown sentinel) arrives.
package hostlink

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"

	"ember/emberos/proto"
	"ember/hal"
)

// DefaultQueueCapacity matches the outbound buffering the runtime was sized
// for on the reference target.
const DefaultQueueCapacity = 32

const (
	defaultRetryCount    = 5
	defaultRetryInterval = 5 * time.Millisecond
	defaultDrainCount    = 5
	defaultDrainInterval = 5 * time.Millisecond
)

// Config assembles a host link.
type Config struct {
	// QueueCapacity is the fixed outbound queue size. Defaults to
	// DefaultQueueCapacity.
	QueueCapacity int

	// Complete is notified exactly once per message the link has finished
	// with. Optional.
	Complete CompletionHandler

	// Diag is the restricted log sink. It must write directly to a local
	// sink and never route through this link: the failures it reports are
	// exactly the ones that would recurse. Defaults to hal.NopLogger.
	Diag hal.Logger

	// Shutdown handshake tuning. Zero values take the 5 x 5ms defaults the
	// shutdown contract was written against; tests shrink them.
	RetryCount    int
	RetryInterval time.Duration
	DrainCount    int
	DrainInterval time.Duration
}

// Stats is a snapshot of link counters.
type Stats struct {
	Enqueued      uint32
	Dropped       uint32
	Completed     uint32
	ReceivedBytes uint32
}

// HostLink owns the outbound queue and the shutdown handshake.
//
// Construct one per runtime session; there is no package-level instance.
type HostLink struct {
	cfg   Config
	queue *BlockingQueue[*MessageToHost]

	// shuttingDown latches once the sentinel has been popped so repeated
	// host polls return StatusShuttingDown instead of blocking forever.
	shuttingDown atomic.Bool

	enqueued      atomic.Uint32
	dropped       atomic.Uint32
	completed     atomic.Uint32
	receivedBytes atomic.Uint32

	shutdownMu   sync.Mutex
	shutdownDone bool
	shutdownRes  ShutdownResult
}

// New creates a host link.
func New(cfg Config) *HostLink {
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = DefaultQueueCapacity
	}
	if cfg.Diag == nil {
		cfg.Diag = hal.NopLogger{}
	}
	if cfg.RetryCount <= 0 {
		cfg.RetryCount = defaultRetryCount
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultRetryInterval
	}
	if cfg.DrainCount <= 0 {
		cfg.DrainCount = defaultDrainCount
	}
	if cfg.DrainInterval <= 0 {
		cfg.DrainInterval = defaultDrainInterval
	}
	return &HostLink{
		cfg:   cfg,
		queue: NewBlockingQueue[*MessageToHost](cfg.QueueCapacity),
	}
}

// SendMessage hands a message to the outbound queue.
//
// Returns the push result unchanged: false means the queue was full (or the
// message invalid) and the caller still owns the message. On true, ownership
// has passed to the queue; the producer hears back through the completion
// handler.
func (l *HostLink) SendMessage(msg *MessageToHost) bool {
	if msg == nil || len(msg.Payload) > proto.MaxHostMessageBytes {
		return false
	}
	if !msg.enqueued.CompareAndSwap(false, true) {
		// Already queued; enqueueing twice would double-complete it.
		return false
	}
	if msg.wire == nil {
		if err := msg.encode(); err != nil {
			l.cfg.Diag.WriteLineString(fmt.Sprintf("hostlink: %v", err))
			msg.enqueued.Store(false)
			return false
		}
	}
	if !l.queue.Push(msg) {
		msg.enqueued.Store(false)
		l.dropped.Inc()
		return false
	}
	l.enqueued.Inc()
	return true
}

// GetMessage is the RPC entry point the host polling thread blocks on.
//
// It pops one message, copies its encoded bytes into buf and returns the
// copied length. A StatusShuttingDown return carries no data and tells the
// polling thread to exit; once shutdown has been observed every further call
// returns StatusShuttingDown without blocking.
func (l *HostLink) GetMessage(buf []byte) (int, Status) {
	if l.shuttingDown.Load() {
		return 0, StatusShuttingDown
	}

	msg := l.queue.Pop()
	if msg == nil {
		// The nil sentinel is only pushed by Shutdown.
		l.shuttingDown.Store(true)
		return 0, StatusShuttingDown
	}

	n := 0
	status := StatusSuccess
	if len(buf) < len(msg.wire) {
		// Only the diag sink is safe here: the normal log path produces
		// host messages and would feed the very queue that just failed.
		l.cfg.Diag.WriteLineString(fmt.Sprintf(
			"hostlink: buffer of %d bytes cannot hold message of %d bytes",
			len(buf), len(msg.wire)))
		status = StatusError
	} else {
		n = copy(buf, msg.wire)
	}

	l.complete(msg)
	return n, status
}

// DeliverMessage is the RPC entry point for host-to-runtime messages.
//
// Inbound dispatch is not wired up yet; the message is accepted and counted
// so the host side does not treat delivery as an error.
func (l *HostLink) DeliverMessage(buf []byte) Status {
	l.receivedBytes.Add(uint32(len(buf)))
	return StatusSuccess
}

// Shutdown drives the cooperative shutdown handshake with the host polling
// thread and reports how far it got. It is synchronous and bounded: a wedged
// host costs at most the retry and drain budgets, never an indefinite block.
//
// No producer may call SendMessage once Shutdown has started.
func (l *HostLink) Shutdown() ShutdownResult {
	l.shutdownMu.Lock()
	defer l.shutdownMu.Unlock()
	if l.shutdownDone {
		return l.shutdownRes
	}
	l.shutdownDone = true
	l.shutdownRes = l.shutdown()
	return l.shutdownRes
}

func (l *HostLink) shutdown() ShutdownResult {
	l.cfg.Diag.WriteLineString("hostlink: shutting down")

	// Hand off the nil sentinel so the blocking call in GetMessage returns
	// and the host thread can exit. A full queue here means the host has
	// stopped draining; retry briefly rather than getting stuck.
	pushed := false
	for attempt := 0; attempt < l.cfg.RetryCount; attempt++ {
		if l.queue.Push(nil) {
			pushed = true
			break
		}
		time.Sleep(l.cfg.RetryInterval)
	}
	if !pushed {
		l.cfg.Diag.WriteLineString(
			"hostlink: no room in outbound queue for shutdown message and host not draining queue")
		return ShutdownAbandoned
	}

	l.cfg.Diag.WriteLineString("hostlink: draining message queue")
	for wait := 0; wait < l.cfg.DrainCount; wait++ {
		if l.queue.Empty() {
			l.cfg.Diag.WriteLineString("hostlink: finished draining queue")
			return ShutdownClean
		}
		time.Sleep(l.cfg.DrainInterval)
	}

	l.cfg.Diag.WriteLineString(
		"hostlink: host took too long to drain outbound queue; proceeding")
	return ShutdownDegraded
}

// QueueLen returns the current outbound queue occupancy.
func (l *HostLink) QueueLen() int {
	return l.queue.Len()
}

// Stats returns a snapshot of the link counters.
func (l *HostLink) Stats() Stats {
	return Stats{
		Enqueued:      l.enqueued.Load(),
		Dropped:       l.dropped.Load(),
		Completed:     l.completed.Load(),
		ReceivedBytes: l.receivedBytes.Load(),
	}
}

func (l *HostLink) complete(msg *MessageToHost) {
	msg.wire = nil
	msg.enqueued.Store(false)
	l.completed.Inc()
	if l.cfg.Complete != nil {
		l.cfg.Complete.OnMessageToHostComplete(msg)
	}
}
