package hostlink

// Status is the result of a host RPC entry point.
type Status uint8

const (
	StatusSuccess Status = iota
	StatusError
	StatusShuttingDown
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusShuttingDown:
		return "shutting_down"
	default:
		return "unknown"
	}
}

// ShutdownResult classifies how far the shutdown handshake got.
type ShutdownResult uint8

const (
	// ShutdownClean: sentinel handed off and the queue was observed drained.
	ShutdownClean ShutdownResult = iota
	// ShutdownDegraded: sentinel handed off but the host never drained the
	// queue within the wait budget; teardown proceeds anyway.
	ShutdownDegraded
	// ShutdownAbandoned: the sentinel could not be enqueued; the host may
	// stay blocked in its poll.
	ShutdownAbandoned
)

func (r ShutdownResult) String() string {
	switch r {
	case ShutdownClean:
		return "clean"
	case ShutdownDegraded:
		return "degraded"
	case ShutdownAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}
