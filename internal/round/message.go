package round

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/luxfi/threshold-bls/pkg/party"
)

// Message is a single piece of protocol traffic in flight between two
// parties (or one party and everybody else, for a broadcast message). It is
// the wire-level counterpart of Content: RoundNumber is duplicated onto the
// envelope so the driver can route a message without first decoding its
// body.
type Message struct {
	// From identifies the sender.
	From party.ID
	// To is the intended recipient. It is the zero value for a broadcast
	// message, which every party must receive identically.
	To party.ID
	// Broadcast marks this as a broadcast message; when true, To is empty.
	Broadcast bool
	// RoundNumber is the round this message belongs to.
	RoundNumber Number
	// Content is the decoded payload once unmarshalled; Payload is the
	// wire-format bytes.
	Content Content
	// Payload carries the CBOR encoding of Content. Exactly one of
	// Content/Payload is populated on the sending and receiving sides
	// respectively.
	Payload []byte
}

// IsFor reports whether this message should be delivered to id: true for
// every recipient of a broadcast message, or for the named recipient of a
// point-to-point message.
func (m *Message) IsFor(id party.ID) bool {
	if m.Broadcast {
		return m.From != id
	}
	return m.To == id
}

// Marshal encodes Content into Payload using CBOR, the same encoding the
// round messages use throughout this module for compactness and
// deterministic map ordering.
func (m *Message) Marshal() error {
	if m.Content == nil {
		return fmt.Errorf("round: message has no content to marshal")
	}
	data, err := cbor.Marshal(m.Content)
	if err != nil {
		return fmt.Errorf("round: failed to marshal message content: %w", err)
	}
	m.Payload = data
	return nil
}

// UnmarshalContent decodes payload into the given empty content value
// (typically obtained from Round.BroadcastContent or Round.MessageContent)
// and returns it.
func UnmarshalContent(payload []byte, into Content) (Content, error) {
	if err := cbor.Unmarshal(payload, into); err != nil {
		return nil, fmt.Errorf("round: failed to unmarshal message content: %w", err)
	}
	return into, nil
}
