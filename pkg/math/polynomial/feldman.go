package polynomial

import (
	"github.com/cronokirby/saferith"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
)

// VerifyShare checks a Feldman VSS share: that share = p(x) for the
// polynomial whose coefficients committed to commitments, without knowing
// the polynomial itself. It recomputes sum_k commitments[k]^(x^k) and
// compares it against g^share.
func VerifyShare(group curve.Curve, commitments []curve.Point, x curve.Scalar, share curve.Scalar) bool {
	lhs := share.ActOnBase()

	one := new(saferith.Nat).SetUint64(1)
	xPow := group.NewScalar().SetNat(one)
	rhs := group.NewPoint()
	for _, commit := range commitments {
		rhs = rhs.Add(xPow.Act(commit))
		xPow = xPow.Mul(x)
	}

	return lhs.Equal(rhs)
}
