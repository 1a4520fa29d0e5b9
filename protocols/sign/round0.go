// Package sign implements the two-round threshold signing protocol: every
// signer computes and broadcasts a partial signature over the message
// (round 0), then collects and Lagrange-combines the other signers'
// partial signatures into a standard BLS signature (round 1).
package sign

import (
	"fmt"

	"github.com/luxfi/threshold-bls/internal/round"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/party"
	"github.com/luxfi/threshold-bls/pkg/pool"
	"github.com/luxfi/threshold-bls/pkg/protocol"
	"github.com/luxfi/threshold-bls/pkg/tbls"
)

// Key is the subset of keygen.LocalKey the signing protocol depends on.
// Declaring it locally, rather than importing the keygen package directly,
// keeps the signing protocol usable against any key material satisfying
// this shape (e.g. a key reloaded from disk without pulling in the DKG
// round machinery).
type Key struct {
	ID      party.ID
	VK      curve.Point
	SKShare curve.Scalar
	VKVec   map[party.ID]curve.Point
}

// Start begins a signing run over message, with info describing the
// signer set (a subset of the key's original party set, of size at least
// t+1). info.Threshold must equal the key's original threshold.
func Start(info round.Info, pl *pool.Pool, key Key, message []byte) protocol.StartFunc {
	return func(sessionID []byte) (round.Session, error) {
		helper, err := round.NewSession(info, sessionID, pl)
		if err != nil {
			return nil, err
		}
		if len(key.VKVec) < helper.N() {
			return nil, fmt.Errorf("%w: key has %d verification-key shares, signer set has %d", ErrTooManyParties, len(key.VKVec), helper.N())
		}
		vkShare, ok := key.VKVec[helper.SelfID()]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrOutOfRangeIndex, helper.SelfID())
		}

		sk := tbls.SharedKeys{
			Index:     party.PartyIDToIndex(helper.SelfID()),
			Threshold: helper.Threshold(),
			VK:        key.VK,
			SKShare:   key.SKShare,
			VKShare:   vkShare,
		}
		partial, hx := sk.PartialSign(message)

		return &round0{
			Helper:  helper,
			key:     key,
			hx:      hx,
			partial: partial,
		}, nil
	}
}

// round0 holds this signer's partial signature, computed eagerly at
// construction. It has no incoming messages: Done is always true.
type round0 struct {
	*round.Helper
	key     Key
	hx      curve.Point
	partial tbls.PartialSignature
}

func (r *round0) Number() round.Number                     { return 0 }
func (r *round0) IsExpensive() bool                         { return true }
func (r *round0) Done() bool                                { return true }
func (r *round0) BroadcastContent() round.BroadcastContent  { return nil }
func (r *round0) MessageContent() round.Content             { return nil }
func (r *round0) VerifyMessage(round.Message) error         { return nil }
func (r *round0) StoreBroadcastMessage(round.Message) error { return nil }
func (r *round0) StoreMessage(round.Message) error          { return nil }

func (r *round0) Finalize(out chan<- *round.Message) (round.Session, error) {
	sigma, err := encodePoint(r.partial.Sigma)
	if err != nil {
		return nil, err
	}
	a1, err := encodePoint(r.partial.Proof.A1)
	if err != nil {
		return nil, err
	}
	a2, err := encodePoint(r.partial.Proof.A2)
	if err != nil {
		return nil, err
	}
	z, err := encodeScalar(r.partial.Proof.Z)
	if err != nil {
		return nil, err
	}

	msg := &partialSigMessage{
		KeygenIndex: r.partial.Index,
		Sigma:       sigma,
		ProofA1:     a1,
		ProofA2:     a2,
		ProofZ:      z,
	}
	if err := r.BroadcastMessage(out, msg); err != nil {
		return nil, err
	}

	partials := make(map[party.ID]tbls.PartialSignature, r.N())
	partials[r.SelfID()] = r.partial

	return &round1{
		round0:   r,
		partials: partials,
	}, nil
}
