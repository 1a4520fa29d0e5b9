package keygen

import (
	"fmt"

	"github.com/luxfi/threshold-bls/internal/round"
	"github.com/luxfi/threshold-bls/pkg/dlogproof"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/party"
	"github.com/luxfi/threshold-bls/pkg/tbls"
)

// round4 collects every party's proof of knowledge of its combined secret
// share. Each proof is only decoded as it arrives; the n Schnorr
// verifications are batched, in parallel across the pool, at Finalize, once
// all n have arrived, before the final LocalKey is emitted.
type round4 struct {
	*round3
	sk     tbls.SharedKeys
	proofs map[party.ID]dlogproof.Proof
}

func (r *round4) Number() round.Number { return 4 }
func (r *round4) IsExpensive() bool    { return true }
func (r *round4) Done() bool           { return len(r.proofs) == r.N() }

func (r *round4) BroadcastContent() round.BroadcastContent { return &dlogMessage{} }
func (r *round4) MessageContent() round.Content            { return nil }

func (r *round4) VerifyMessage(round.Message) error { return nil }

func (r *round4) StoreBroadcastMessage(msg round.Message) error {
	body, ok := msg.Content.(*dlogMessage)
	if !ok {
		return round.ErrInvalidContent
	}

	pk, err := decodePoint(r.Group(), body.PK)
	if err != nil {
		return fmt.Errorf("%w: from %s: %v", ErrDLogProof, msg.From, err)
	}
	commitment, err := decodePoint(r.Group(), body.Commitment)
	if err != nil {
		return fmt.Errorf("%w: from %s: %v", ErrDLogProof, msg.From, err)
	}
	response, err := decodeScalar(r.Group(), body.Response)
	if err != nil {
		return fmt.Errorf("%w: from %s: %v", ErrDLogProof, msg.From, err)
	}
	proof := dlogproof.Proof{PK: pk, Commitment: commitment, Response: response}

	if _, dup := r.proofs[msg.From]; dup {
		return fmt.Errorf("keygen: duplicate round-4 proof from %s", msg.From)
	}
	r.proofs[msg.From] = proof
	return nil
}

func (r *round4) StoreMessage(round.Message) error { return nil }

func (r *round4) Finalize(_ chan<- *round.Message) (round.Session, error) {
	if err := tbls.VerifyDLogProofs(r.Pool(), r.proofs); err != nil {
		return nil, err
	}

	ids := r.PartyIDs().Sort()

	vkVec := make(map[party.ID]curve.Point, len(ids))
	for _, id := range ids {
		vkVec[id] = r.proofs[id].PK
	}

	key := &LocalKey{
		ID:        r.SelfID(),
		Threshold: r.Threshold(),
		PartyIDs:  ids.Copy(),
		VK:        r.sk.VK,
		SKShare:   r.sk.SKShare,
		VKVec:     vkVec,
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}

	return r.ResultRound(key), nil
}
