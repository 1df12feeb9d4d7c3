// Package logger forwards nanoapp log lines to the host processor.
//
// This is the normal log path. It produces host messages, so nothing inside
// the host link may use it; link internals log through the hal.Logger diag
// sink instead.
package logger

import (
	"ember/emberos/hostlink"
	"ember/emberos/kernel"
	"ember/emberos/proto"
)

// Service receives MsgLogLine messages and ships them to the host.
type Service struct {
	link *hostlink.HostLink
	ep   kernel.Capability
}

// New creates a logger service reading from ep.
func New(link *hostlink.HostLink, ep kernel.Capability) *Service {
	return &Service{link: link, ep: ep}
}

// Run drains the log endpoint. Lines are dropped when the outbound queue is
// full; log traffic never blocks the runtime.
func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	for msg := range ch {
		if proto.Kind(msg.Kind) != proto.MsgLogLine {
			continue
		}
		line := msg.Payload()
		out := &hostlink.MessageToHost{
			HostEndpoint: proto.HostEndpointBroadcast,
			MessageType:  proto.HostMsgLog,
			Payload:      append([]byte(nil), line...),
		}
		_ = s.link.SendMessage(out)
	}
}

// LogLine submits one line to the log endpoint on behalf of a nanoapp.
func LogLine(ctx *kernel.Context, logCap kernel.Capability, line string) bool {
	b := []byte(line)
	if len(b) > kernel.MaxMessageBytes {
		b = b[:kernel.MaxMessageBytes]
	}
	return ctx.SendTo(logCap, uint16(proto.MsgLogLine), b)
}
