package tbls

import (
	"fmt"

	"github.com/luxfi/threshold-bls/pkg/ecddh"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/math/polynomial"
	"github.com/luxfi/threshold-bls/pkg/party"
	"github.com/luxfi/threshold-bls/pkg/pool"
)

// SharedKeys is the output of a successful key-generation run, from a
// single party's point of view: its final signing share and the group
// verification key that combined signatures will verify against.
type SharedKeys struct {
	Index     int
	Threshold int
	VK        curve.Point // group verification key
	SKShare   curve.Scalar
	VKShare   curve.Point // g2^SKShare, published for other parties to verify this party's partial signatures
}

// ConstructSharedKeys verifies every received VSS share against its
// sender's published polynomial commitments, then combines the shares and
// the senders' secret commitments into this party's final key material. The
// n Feldman checks are independent of one another, so they run across pl's
// workers instead of serially; only the cheap scalar/point accumulation
// that follows runs on the caller's goroutine. shares and commitments must
// be keyed by the same set of party IDs, including self (every party
// VSS-shares to itself too).
func ConstructSharedKeys(self party.ID, threshold int, shares map[party.ID]curve.Scalar, commitments map[party.ID][]curve.Point, pl *pool.Pool) (SharedKeys, error) {
	if pl == nil {
		pl = pool.NewPool(0)
	}
	x := self.Scalar(curve.G2())

	ids := make(party.IDSlice, 0, len(shares))
	for id := range shares {
		ids = append(ids, id)
	}
	ids = ids.Sort()

	err := pl.Parallelize(len(ids), func(i int) error {
		id := ids[i]
		coms, ok := commitments[id]
		if !ok {
			return fmt.Errorf("%w: no commitments from %s", ErrMisMatchedVectors, id)
		}
		if !polynomial.VerifyShare(curve.G2(), coms, x, shares[id]) {
			return fmt.Errorf("%w: share from %s", ErrBadShare, id)
		}
		return nil
	})
	if err != nil {
		return SharedKeys{}, err
	}

	skShare := curve.G2().NewScalar()
	vk := curve.G2().NewPoint()
	for _, id := range ids {
		skShare = skShare.Add(shares[id])
		vk = vk.Add(commitments[id][0])
	}

	return SharedKeys{
		Index:     party.PartyIDToIndex(self),
		Threshold: threshold,
		VK:        vk,
		SKShare:   skShare,
		VKShare:   skShare.ActOnBase(),
	}, nil
}

// PartialSignature is one party's contribution to a threshold signature,
// together with a proof that it was computed honestly from the party's
// own verification-key share.
type PartialSignature struct {
	Index int
	Sigma curve.Point // G1
	Proof ecddh.Proof
}

// PartialSign produces sk's partial signature over message, along with the
// hashed message point (callers combining several partial signatures need
// it again and should not recompute it per signer).
func (sk SharedKeys) PartialSign(message []byte) (PartialSignature, curve.Point) {
	hx := curve.G1().HashToPoint(message)
	sigma := sk.SKShare.Act(hx)

	stmt := ecddh.Statement{
		G1: hx, H1: sigma,
		G2: curve.G2().NewBasePoint(), H2: sk.VKShare,
	}
	proof := ecddh.Prove(ecddh.Witness{X: sk.SKShare}, stmt)

	return PartialSignature{Index: sk.Index, Sigma: sigma, Proof: proof}, hx
}

// VerifyPartialSignature checks a partial signature's ECDDH proof against
// the signer's published verification-key share.
func VerifyPartialSignature(ps PartialSignature, hx curve.Point, vkShare curve.Point) bool {
	stmt := ecddh.Statement{
		G1: hx, H1: ps.Sigma,
		G2: curve.G2().NewBasePoint(), H2: vkShare,
	}
	return ps.Proof.Verify(stmt)
}

// Signature is a combined threshold BLS signature.
type Signature struct {
	Sigma curve.Point
}

// Combine verifies and Lagrange-combines partial signatures into a full
// signature. partials and vkShares must be keyed by the same party IDs
// used at key-generation time: keying by party.ID directly, rather than by
// a raw slice position, is what carries each signer's own keygen-time
// verification-key share through to the combiner without any index
// renumbering. The ECDDH proof behind every partial signature is checked,
// across pl's workers, before any of them are combined -- a tampered extra
// share beyond the threshold must still be caught.
func Combine(partials map[party.ID]PartialSignature, vkShares map[party.ID]curve.Point, hx curve.Point, threshold int, pl *pool.Pool) (Signature, error) {
	if len(partials) < threshold+1 {
		return Signature{}, ErrNotEnoughShares
	}
	if pl == nil {
		pl = pool.NewPool(0)
	}

	ids := make(party.IDSlice, 0, len(partials))
	for id := range partials {
		ids = append(ids, id)
	}
	ids = ids.Sort()

	err := pl.Parallelize(len(ids), func(i int) error {
		id := ids[i]
		vkShare, ok := vkShares[id]
		if !ok {
			return fmt.Errorf("%w: no verification key share for %s", ErrMisMatchedVectors, id)
		}
		if !VerifyPartialSignature(partials[id], hx, vkShare) {
			return fmt.Errorf("%w: from %s", ErrBadPartialSig, id)
		}
		return nil
	})
	if err != nil {
		return Signature{}, err
	}

	// Only the first threshold+1 signers (in ascending index order) are
	// actually combined; any further shares were still verified above
	// (a tampered extra share must still be caught) but contribute nothing
	// beyond what's needed for interpolation at x=0.
	ids = ids[:threshold+1]

	coefficients := polynomial.Lagrange(curve.G2(), ids)
	sigma := curve.G1().NewPoint()
	for _, id := range ids {
		sigma = sigma.Add(coefficients[id].Act(partials[id].Sigma))
	}

	return Signature{Sigma: sigma}, nil
}

// Verify checks a combined signature against the group verification key vk
// using the BLS pairing equation e(sigma, g2) = e(H(m), vk).
func (sig Signature) Verify(vk curve.Point, message []byte) bool {
	hx := curve.G1().HashToPoint(message)
	lhs := curve.Pairing(sig.Sigma, curve.G2().NewBasePoint())
	rhs := curve.Pairing(hx, vk)
	return lhs.Equal(rhs)
}
