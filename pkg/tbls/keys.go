// Package tbls holds the per-party cryptographic primitives behind
// threshold BLS signing: key pair generation, the commit-then-reveal
// exchange used in key generation, and the partial-sign/combine steps of
// the actual signing protocol. The distributed coordination of these
// primitives across rounds lives in protocols/keygen and protocols/sign;
// this package is pure, stateless cryptography.
package tbls

import (
	"crypto/rand"
	"fmt"

	"github.com/luxfi/threshold-bls/pkg/commitment"
	"github.com/luxfi/threshold-bls/pkg/dlogproof"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/math/sample"
	"github.com/luxfi/threshold-bls/pkg/party"
	"github.com/luxfi/threshold-bls/pkg/pool"
)

// Keys is a single party's ephemeral key-generation material: its share of
// the (not yet combined) group secret, and the corresponding public point.
// Verification keys live in G2; signatures and hashed messages live in G1.
type Keys struct {
	U          curve.Scalar // secret
	Y          curve.Point  // public, g2^U
	PartyIndex int
}

// NewKeys samples a fresh random key pair for the given 1-based party
// index.
func NewKeys(index int) Keys {
	u := sample.Scalar(rand.Reader, curve.G2())
	return Keys{U: u, Y: u.ActOnBase(), PartyIndex: index}
}

// Decommitment reveals the value and blinding factor behind a previously
// published Commit.
type Decommitment struct {
	Y     curve.Point
	Blind [commitment.BlindLength]byte
}

// Commit produces the commitment to publish in round 1 of key generation
// and the decommitment to reveal in round 2. The commitment is bound to
// self's party index so that one party's commitment can never be replayed
// in another's place.
func (k Keys) Commit(self party.ID) (commitment.Commitment, Decommitment, error) {
	com, blind, err := commitment.Commit(self, k.Y)
	if err != nil {
		return commitment.Commitment{}, Decommitment{}, err
	}
	return com, Decommitment{Y: k.Y, Blind: blind}, nil
}

// VerifyDLogProofs checks every party's proof of knowledge of the discrete
// log behind its published verification-key share, across pl's workers --
// each proof is independent of the others, and there are n of them to check
// at the end of a keygen run.
func VerifyDLogProofs(pl *pool.Pool, proofs map[party.ID]dlogproof.Proof) error {
	if pl == nil {
		pl = pool.NewPool(0)
	}
	ids := make(party.IDSlice, 0, len(proofs))
	for id := range proofs {
		ids = append(ids, id)
	}
	return pl.Parallelize(len(ids), func(i int) error {
		id := ids[i]
		if !proofs[id].Verify() {
			return fmt.Errorf("%w: invalid DLog proof from %s", ErrDLogProof, id)
		}
		return nil
	})
}
