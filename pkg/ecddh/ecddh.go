// Package ecddh implements the cross-group Diffie-Hellman NIZK each party
// attaches to its partial signature: a proof that (g1, h1, g2, h2) is a DDH
// tuple, i.e. that h1 = g1^x and h2 = g2^x for the same exponent x, without
// revealing x.
//
// This is only sound because BLS12-381's G1 and G2 subgroups share the same
// prime order r: a single scalar x can act on a point in either group, so
// "the same exponent" is a meaningful statement to make across groups at
// all. Using this proof in place of the stronger GLOW-BLS combiner check
// trades strong unforgeability for standard unforgeability, which is the
// deliberate choice this module makes for threshold signing.
package ecddh

import (
	"crypto/sha256"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/math/sample"
)

// Statement is the public DDH tuple being proven: h1 = g1^x (in G1) and
// h2 = g2^x (in G2) for the same x.
type Statement struct {
	G1, H1 curve.Point
	G2, H2 curve.Point
}

// Witness is the shared discrete logarithm x.
type Witness struct {
	X curve.Scalar
}

// Proof is a non-interactive Schnorr-style proof that a Statement holds.
type Proof struct {
	A1 curve.Point
	A2 curve.Point
	Z  curve.Scalar
}

// Prove constructs a proof that delta is a valid DDH tuple for witness w.
func Prove(w Witness, delta Statement) Proof {
	s := sample.Scalar(nil, curve.G1())

	a1 := s.Act(delta.G1)
	a2 := s.Act(delta.G2)

	e := challenge(delta, a1, a2)
	z := s.Add(e.Mul(w.X))

	return Proof{A1: a1, A2: a2, Z: z}
}

// Verify checks that p proves delta.
func (p Proof) Verify(delta Statement) bool {
	e := challenge(delta, p.A1, p.A2)

	zG1 := p.Z.Act(delta.G1)
	zG2 := p.Z.Act(delta.G2)

	rhs1 := p.A1.Add(e.Act(delta.H1))
	rhs2 := p.A2.Add(e.Act(delta.H2))

	return zG1.Equal(rhs1) && zG2.Equal(rhs2)
}

// challenge computes e = H(g1, h1, g2, h2, a1, a2) as a field element usable
// against points in either group.
func challenge(delta Statement, a1, a2 curve.Point) curve.Scalar {
	h := sha256.New()
	for _, p := range []curve.Point{delta.G1, delta.H1, delta.G2, delta.H2, a1, a2} {
		encoded, err := p.MarshalBinary()
		if err != nil {
			panic(fmt.Sprintf("ecddh: failed to encode point for challenge: %v", err))
		}
		h.Write(encoded)
	}
	digest := h.Sum(nil)
	nat := new(saferith.Nat).SetBytes(digest)
	return curve.G1().NewScalar().SetNat(nat)
}
