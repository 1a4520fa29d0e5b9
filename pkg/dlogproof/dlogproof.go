// Package dlogproof implements a Fiat-Shamir Schnorr proof of knowledge of a
// discrete logarithm over G2, used in the final round of key generation so
// that every party proves it actually knows the secret share behind the
// verification key it published, rather than having derived that key some
// other way (e.g. by summing other parties' public keys).
package dlogproof

import (
	"crypto/sha256"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/math/sample"
)

// Proof is a non-interactive proof of knowledge of the discrete log x of
// PK = g2^x.
type Proof struct {
	PK         curve.Point
	Commitment curve.Point
	Response   curve.Scalar
}

// Prove constructs a proof that the prover knows x, where pk = g2^x.
func Prove(x curve.Scalar) Proof {
	group := curve.G2()
	pk := x.ActOnBase()

	k := sample.Scalar(nil, group)
	commitment := k.ActOnBase()

	e := challenge(group, pk, commitment)
	response := k.Add(e.Mul(x))

	return Proof{PK: pk, Commitment: commitment, Response: response}
}

// Verify checks that p proves knowledge of the discrete log of p.PK.
func (p Proof) Verify() bool {
	group := curve.G2()
	e := challenge(group, p.PK, p.Commitment)
	lhs := p.Response.ActOnBase()
	rhs := p.Commitment.Add(e.Act(p.PK))
	return lhs.Equal(rhs)
}

// challenge computes the Fiat-Shamir challenge e = H(g2, pk, commitment),
// reduced into a scalar.
func challenge(group curve.Curve, points ...curve.Point) curve.Scalar {
	h := sha256.New()
	g := group.NewBasePoint()
	for _, p := range append([]curve.Point{g}, points...) {
		encoded, err := p.MarshalBinary()
		if err != nil {
			panic(fmt.Sprintf("dlogproof: failed to encode point for challenge: %v", err))
		}
		h.Write(encoded)
	}
	digest := h.Sum(nil)
	nat := new(saferith.Nat).SetBytes(digest)
	return group.NewScalar().SetNat(nat)
}
