package polynomial

import (
	"github.com/cronokirby/saferith"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/party"
)

// Lagrange computes, for every id in ids, the Lagrange basis coefficient
// lambda_id(0) = prod_{j in ids, j != id} j / (j - id), i.e. the weight
// applied to party id's share (or partial signature) when interpolating the
// polynomial at x=0. The returned coefficients always sum to one.
func Lagrange(group curve.Curve, ids party.IDSlice) map[party.ID]curve.Scalar {
	one := new(saferith.Nat).SetUint64(1)
	xs := make(map[party.ID]curve.Scalar, len(ids))
	for _, id := range ids {
		xs[id] = id.Scalar(group)
	}

	coefficients := make(map[party.ID]curve.Scalar, len(ids))
	for _, id := range ids {
		xi := xs[id]
		num := group.NewScalar().SetNat(one)
		den := group.NewScalar().SetNat(one)
		for _, other := range ids {
			if other == id {
				continue
			}
			xj := xs[other]
			num = num.Mul(xj)
			den = den.Mul(xj.Sub(xi))
		}
		coefficients[id] = num.Mul(den.Inv())
	}
	return coefficients
}
