package mediator

import (
	"encoding/json"
	"fmt"

	"github.com/luxfi/threshold-bls/internal/round"
	"github.com/luxfi/threshold-bls/pkg/party"
)

// envelope is the wire form of a round.Message sent through the relay. The
// message's own Payload field is already CBOR-encoded by round.Message.Marshal;
// the envelope only adds the routing fields the relay's own participants
// (not the relay itself, which never looks inside) need to redeliver it.
type envelope struct {
	From        party.ID    `json:"from"`
	To          party.ID    `json:"to"`
	Broadcast   bool        `json:"broadcast"`
	RoundNumber round.Number `json:"round_number"`
	Payload     []byte      `json:"payload"`
}

// EncodeMessage serializes a round.Message for transport through a room.
func EncodeMessage(msg *round.Message) ([]byte, error) {
	data, err := json.Marshal(envelope{
		From:        msg.From,
		To:          msg.To,
		Broadcast:   msg.Broadcast,
		RoundNumber: msg.RoundNumber,
		Payload:     msg.Payload,
	})
	if err != nil {
		return nil, fmt.Errorf("mediator: failed to encode message envelope: %w", err)
	}
	return data, nil
}

// DecodeMessage reverses EncodeMessage.
func DecodeMessage(data []byte) (round.Message, error) {
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return round.Message{}, fmt.Errorf("mediator: failed to decode message envelope: %w", err)
	}
	return round.Message{
		From:        e.From,
		To:          e.To,
		Broadcast:   e.Broadcast,
		RoundNumber: e.RoundNumber,
		Payload:     e.Payload,
	}, nil
}
