package keygen

import (
	"fmt"

	"github.com/luxfi/threshold-bls/internal/round"
	"github.com/luxfi/threshold-bls/pkg/commitment"
	"github.com/luxfi/threshold-bls/pkg/party"
)

// round1 collects every party's round-0 commitment and, once all n have
// arrived, broadcasts this party's own decommitment.
type round1 struct {
	*round0
	comms map[party.ID]commitment.Commitment
}

func (r *round1) Number() round.Number { return 1 }
func (r *round1) IsExpensive() bool    { return false }
func (r *round1) Done() bool           { return len(r.comms) == r.N() }

func (r *round1) BroadcastContent() round.BroadcastContent { return &commitMessage{} }
func (r *round1) MessageContent() round.Content            { return nil }

func (r *round1) VerifyMessage(round.Message) error { return nil }

func (r *round1) StoreBroadcastMessage(msg round.Message) error {
	body, ok := msg.Content.(*commitMessage)
	if !ok {
		return round.ErrInvalidContent
	}
	if _, dup := r.comms[msg.From]; dup {
		return fmt.Errorf("keygen: duplicate round-1 commitment from %s", msg.From)
	}
	r.comms[msg.From] = body.Comm
	return nil
}

func (r *round1) StoreMessage(round.Message) error { return nil }

func (r *round1) Finalize(out chan<- *round.Message) (round.Session, error) {
	y, err := encodePoint(r.keys.Y)
	if err != nil {
		return nil, err
	}
	msg := &decommitMessage{Y: y, Blind: r.decom.Blind}
	if err := r.BroadcastMessage(out, msg); err != nil {
		return nil, err
	}

	return &round2{
		round1: r,
		decoms: make(map[party.ID]decomEntry, r.N()),
	}, nil
}
