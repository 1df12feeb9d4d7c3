package proto

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Envelope frames a message crossing the host RPC boundary.
//
// The payload bytes are opaque to the link; Type tells the host-side client
// which decoder to apply.
type Envelope struct {
	AppID    uint32 `cbor:"app_id"`
	Endpoint uint16 `cbor:"endpoint"`
	Type     uint32 `cbor:"type"`
	Payload  []byte `cbor:"payload,omitempty"`
}

// Encode serializes the envelope for transmission to the host.
func (e *Envelope) Encode() ([]byte, error) {
	b, err := cbor.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode host envelope: %w", err)
	}
	return b, nil
}

// DecodeEnvelope parses an envelope received over the RPC boundary.
func DecodeEnvelope(b []byte) (Envelope, error) {
	var e Envelope
	if err := cbor.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode host envelope: %w", err)
	}
	return e, nil
}
