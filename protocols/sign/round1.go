package sign

import (
	"fmt"

	"github.com/luxfi/threshold-bls/internal/round"
	"github.com/luxfi/threshold-bls/pkg/ecddh"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/party"
	"github.com/luxfi/threshold-bls/pkg/tbls"
)

// round1 collects every signer's partial signature. VerifyMessage only
// checks the cheap shape/index invariants as each one arrives; the
// expensive ECDDH proof behind every partial signature is checked once, in
// parallel across the pool, inside Combine at Finalize -- checking it twice
// (once per message, again at combination) would only double the proof
// verification work without rejecting anything sooner, since Done only reports true once
// the full signer set has reported in anyway.
type round1 struct {
	*round0
	partials map[party.ID]tbls.PartialSignature
}

func (r *round1) Number() round.Number { return 1 }
func (r *round1) IsExpensive() bool    { return true }
func (r *round1) Done() bool           { return len(r.partials) == r.N() }

func (r *round1) BroadcastContent() round.BroadcastContent { return &partialSigMessage{} }
func (r *round1) MessageContent() round.Content            { return nil }

// decodePartial turns a partialSigMessage into a tbls.PartialSignature,
// checking that the keygen index it claims is both in range and consistent
// with the wire sender: the signing session addresses signers by the same
// party.ID they held at key generation, so a signer claiming any index
// other than its own is an immediate, unambiguous protocol violation.
func (r *round1) decodePartial(from party.ID, body *partialSigMessage) (tbls.PartialSignature, error) {
	if body.KeygenIndex <= 0 || body.KeygenIndex > len(r.key.VKVec) {
		return tbls.PartialSignature{}, fmt.Errorf("%w: %s claimed index %d", ErrOutOfRangeIndex, from, body.KeygenIndex)
	}
	if party.IndexToPartyID(body.KeygenIndex) != from {
		return tbls.PartialSignature{}, fmt.Errorf("%w: %s claimed index %d belonging to another party", ErrOutOfRangeIndex, from, body.KeygenIndex)
	}

	sigma, err := decodePoint(curve.G1(), body.Sigma)
	if err != nil {
		return tbls.PartialSignature{}, fmt.Errorf("%w: from %s: %v", ErrBadPartialSig, from, err)
	}
	a1, err := decodePoint(curve.G1(), body.ProofA1)
	if err != nil {
		return tbls.PartialSignature{}, fmt.Errorf("%w: from %s: %v", ErrBadPartialSig, from, err)
	}
	a2, err := decodePoint(curve.G2(), body.ProofA2)
	if err != nil {
		return tbls.PartialSignature{}, fmt.Errorf("%w: from %s: %v", ErrBadPartialSig, from, err)
	}
	z, err := decodeScalar(curve.G1(), body.ProofZ)
	if err != nil {
		return tbls.PartialSignature{}, fmt.Errorf("%w: from %s: %v", ErrBadPartialSig, from, err)
	}

	return tbls.PartialSignature{
		Index: body.KeygenIndex,
		Sigma: sigma,
		Proof: ecddh.Proof{A1: a1, A2: a2, Z: z},
	}, nil
}

func (r *round1) VerifyMessage(msg round.Message) error {
	body, ok := msg.Content.(*partialSigMessage)
	if !ok {
		return round.ErrInvalidContent
	}
	if _, err := r.decodePartial(msg.From, body); err != nil {
		return err
	}
	if _, ok := r.key.VKVec[msg.From]; !ok {
		return fmt.Errorf("%w: no verification-key share for %s", ErrOutOfRangeIndex, msg.From)
	}
	return nil
}

func (r *round1) StoreMessage(round.Message) error { return nil }

func (r *round1) StoreBroadcastMessage(msg round.Message) error {
	body := msg.Content.(*partialSigMessage)
	if _, dup := r.partials[msg.From]; dup {
		return fmt.Errorf("sign: duplicate partial signature from %s", msg.From)
	}
	ps, err := r.decodePartial(msg.From, body)
	if err != nil {
		return err
	}
	r.partials[msg.From] = ps
	return nil
}

func (r *round1) Finalize(_ chan<- *round.Message) (round.Session, error) {
	sig, err := tbls.Combine(r.partials, r.key.VKVec, r.hx, r.Threshold(), r.Pool())
	if err != nil {
		return nil, err
	}
	return r.ResultRound(sig), nil
}
