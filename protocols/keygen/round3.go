package keygen

import (
	"fmt"

	"github.com/luxfi/threshold-bls/internal/round"
	"github.com/luxfi/threshold-bls/pkg/dlogproof"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/party"
	"github.com/luxfi/threshold-bls/pkg/tbls"
)

// round3 collects every other party's VSS share (P2P) together with their
// polynomial commitments. VerifyMessage checks the cheap shape/commitment
// invariants as each share arrives; the expensive Feldman check over all n
// shares is batched, in parallel across the pool, inside ConstructSharedKeys
// at Finalize. Once every share has arrived, it combines them into this
// party's final signing key and proves knowledge of the combined secret.
type round3 struct {
	*round2
	shares      map[party.ID]curve.Scalar
	commitments map[party.ID][]curve.Point
}

func (r *round3) Number() round.Number { return 3 }
func (r *round3) IsExpensive() bool    { return true }
func (r *round3) Done() bool           { return len(r.shares) == r.N() }

func (r *round3) BroadcastContent() round.BroadcastContent { return nil }
func (r *round3) MessageContent() round.Content            { return &shareMessage{} }

func (r *round3) VerifyMessage(msg round.Message) error {
	body, ok := msg.Content.(*shareMessage)
	if !ok {
		return round.ErrInvalidContent
	}

	if _, err := decodeScalar(r.Group(), body.Share); err != nil {
		return fmt.Errorf("%w: share from %s: %v", ErrInvalidShare, msg.From, err)
	}
	commitments := make([]curve.Point, len(body.Commitments))
	for i, encoded := range body.Commitments {
		p, err := decodePoint(r.Group(), encoded)
		if err != nil {
			return fmt.Errorf("%w: commitment from %s: %v", ErrInvalidShare, msg.From, err)
		}
		commitments[i] = p
	}
	if len(commitments) != r.Threshold()+1 {
		return fmt.Errorf("%w: wrong commitment count from %s", ErrInvalidShare, msg.From)
	}

	decom, ok := r.decoms[msg.From]
	if !ok {
		return fmt.Errorf("keygen: share from %s with no round-2 decommitment", msg.From)
	}
	if !commitments[0].Equal(decom.Y) {
		return fmt.Errorf("%w: %s's VSS commitment does not match its published key share", ErrInvalidShare, msg.From)
	}

	return nil
}

func (r *round3) StoreMessage(msg round.Message) error {
	body := msg.Content.(*shareMessage)
	share, err := decodeScalar(r.Group(), body.Share)
	if err != nil {
		return err
	}
	commitments := make([]curve.Point, len(body.Commitments))
	for i, encoded := range body.Commitments {
		p, err := decodePoint(r.Group(), encoded)
		if err != nil {
			return err
		}
		commitments[i] = p
	}

	r.shares[msg.From] = share
	r.commitments[msg.From] = commitments
	return nil
}

func (r *round3) Finalize(out chan<- *round.Message) (round.Session, error) {
	sk, err := tbls.ConstructSharedKeys(r.SelfID(), r.Threshold(), r.shares, r.commitments, r.Pool())
	if err != nil {
		return nil, err
	}

	proof := dlogproof.Prove(sk.SKShare)

	pk, err := encodePoint(proof.PK)
	if err != nil {
		return nil, err
	}
	com, err := encodePoint(proof.Commitment)
	if err != nil {
		return nil, err
	}
	resp, err := encodeScalar(proof.Response)
	if err != nil {
		return nil, err
	}
	msg := &dlogMessage{PK: pk, Commitment: com, Response: resp}
	if err := r.BroadcastMessage(out, msg); err != nil {
		return nil, err
	}

	proofs := make(map[party.ID]dlogproof.Proof, r.N())
	proofs[r.SelfID()] = proof

	return &round4{
		round3: r,
		sk:     sk,
		proofs: proofs,
	}, nil
}
