// Package aggbls implements BDN18 aggregated BLS multi-signatures: a
// scheme where each signer keeps an ordinary, independently-generated BLS
// key pair (see pkg/tbls.KeyPair) rather than participating in a
// distributed key generation, and signatures over the SAME message from
// different signers are combined into one short aggregate signature and
// one short aggregate public key.
//
// The scheme exists because naive BLS aggregation (APK = sum(pk_i), SIG =
// sum(sig_i)) is vulnerable to rogue-key attacks: an attacker who
// contributes its public key last can pick it to cancel out everyone
// else's contribution. BDN18 closes this by weighting each signer's
// contribution to both the aggregate key and the aggregate signature by a
// coefficient derived from hashing that signer's own public key together
// with the full set of participating public keys, so no signer can choose
// its weight to its advantage after seeing the others.
package aggbls

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/zeebo/blake3"
)

// coefficient computes a_j = H(pk_j, pk_vec), the BDN18 per-signer
// aggregation weight, reduced to a scalar of the shared BLS12-381 scalar
// field. pkVec must be in the same canonical order every caller uses, since
// the coefficient depends on the full set, not just pk_j.
func coefficient(pkJ curve.Point, pkVec []curve.Point) (curve.Scalar, error) {
	h := blake3.New()
	encoded, err := pkJ.MarshalBinary()
	if err != nil {
		return curve.Scalar{}, fmt.Errorf("aggbls: failed to encode signer key: %w", err)
	}
	h.Write(encoded)
	for _, pk := range pkVec {
		encoded, err := pk.MarshalBinary()
		if err != nil {
			return curve.Scalar{}, fmt.Errorf("aggbls: failed to encode key vector: %w", err)
		}
		h.Write(encoded)
	}
	digest := h.Sum(nil)
	nat := new(saferith.Nat).SetBytes(digest)
	return curve.G2().NewScalar().SetNat(nat), nil
}
