package keygen

import (
	"fmt"

	"github.com/luxfi/threshold-bls/internal/round"
	"github.com/luxfi/threshold-bls/pkg/commitment"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/math/polynomial"
	"github.com/luxfi/threshold-bls/pkg/party"
)

// decomEntry is a verified round-1 decommitment: the revealed public key
// share and the blind that opened its commitment.
type decomEntry struct {
	Y     curve.Point
	Blind [commitment.BlindLength]byte
}

// round2 collects every party's decommitment, checking each against the
// commitment gathered in round 1, then distributes this party's Feldman
// VSS shares.
type round2 struct {
	*round1
	decoms map[party.ID]decomEntry
}

func (r *round2) Number() round.Number { return 2 }
func (r *round2) IsExpensive() bool    { return true }
func (r *round2) Done() bool           { return len(r.decoms) == r.N() }

func (r *round2) BroadcastContent() round.BroadcastContent { return &decommitMessage{} }
func (r *round2) MessageContent() round.Content            { return nil }

func (r *round2) VerifyMessage(round.Message) error { return nil }

func (r *round2) StoreBroadcastMessage(msg round.Message) error {
	body, ok := msg.Content.(*decommitMessage)
	if !ok {
		return round.ErrInvalidContent
	}
	if _, dup := r.decoms[msg.From]; dup {
		return fmt.Errorf("keygen: duplicate round-2 decommitment from %s", msg.From)
	}

	y, err := decodePoint(r.Group(), body.Y)
	if err != nil {
		return fmt.Errorf("%w: from %s: %v", ErrBadCommitment, msg.From, err)
	}
	com, ok := r.comms[msg.From]
	if !ok {
		return fmt.Errorf("keygen: decommitment from %s with no prior commitment", msg.From)
	}
	ok2, err := commitment.Verify(msg.From, y, body.Blind, com)
	if err != nil {
		return err
	}
	if !ok2 {
		return fmt.Errorf("%w: from %s", ErrBadCommitment, msg.From)
	}

	r.decoms[msg.From] = decomEntry{Y: y, Blind: body.Blind}
	return nil
}

func (r *round2) StoreMessage(round.Message) error { return nil }

func (r *round2) Finalize(out chan<- *round.Message) (round.Session, error) {
	poly := polynomial.NewPolynomial(r.Group(), r.Threshold(), r.keys.U)
	commitments := poly.Commitments()

	encodedCommitments := make([][]byte, len(commitments))
	for i, c := range commitments {
		encoded, err := encodePoint(c)
		if err != nil {
			return nil, err
		}
		encodedCommitments[i] = encoded
	}

	for _, id := range r.OtherPartyIDs() {
		share := poly.Evaluate(id.Scalar(r.Group()))
		encodedShare, err := encodeScalar(share)
		if err != nil {
			return nil, err
		}
		msg := &shareMessage{Share: encodedShare, Commitments: encodedCommitments}
		if err := r.SendMessage(out, msg, id); err != nil {
			return nil, err
		}
	}

	ownShare := poly.Evaluate(r.SelfID().Scalar(r.Group()))

	commitmentsByParty := make(map[party.ID][]curve.Point, r.N())
	commitmentsByParty[r.SelfID()] = commitments
	sharesByParty := make(map[party.ID]curve.Scalar, r.N())
	sharesByParty[r.SelfID()] = ownShare

	return &round3{
		round2:      r,
		shares:      sharesByParty,
		commitments: commitmentsByParty,
	}, nil
}
