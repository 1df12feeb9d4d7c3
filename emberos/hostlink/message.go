package hostlink

import (
	"go.uber.org/atomic"

	"ember/emberos/proto"
)

// MessageToHost is an outbound message bound for the host processor.
//
// The producing subsystem owns the message until SendMessage accepts it;
// from then on the queue owns it until the completion handler fires, after
// which the producer may reclaim or reuse it. A message is never enqueued
// twice and never released before its completion handler has run.
type MessageToHost struct {
	AppID        uint32
	HostEndpoint uint16
	MessageType  uint32
	Payload      []byte

	// wire holds the encoded envelope while the message is queued.
	wire     []byte
	enqueued atomic.Bool
}

// WireSize returns the encoded size of the message, or 0 before it has been
// accepted by the link.
func (m *MessageToHost) WireSize() int {
	return len(m.wire)
}

func (m *MessageToHost) encode() error {
	env := proto.Envelope{
		AppID:    m.AppID,
		Endpoint: m.HostEndpoint,
		Type:     m.MessageType,
		Payload:  m.Payload,
	}
	b, err := env.Encode()
	if err != nil {
		return err
	}
	m.wire = b
	return nil
}

// CompletionHandler is notified exactly once per message the host link has
// finished with, so the producing subsystem can release it.
type CompletionHandler interface {
	OnMessageToHostComplete(msg *MessageToHost)
}

// CompletionFunc adapts a function to the CompletionHandler interface.
type CompletionFunc func(msg *MessageToHost)

func (f CompletionFunc) OnMessageToHostComplete(msg *MessageToHost) { f(msg) }
