package polynomial_test

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/math/polynomial"
	"github.com/luxfi/threshold-bls/pkg/party"
)

func TestLagrange(t *testing.T) {
	group := curve.G2()

	N := 10
	allIDs := party.NewIDSlice(N)
	coefsEven := polynomial.Lagrange(group, allIDs)
	coefsOdd := polynomial.Lagrange(group, allIDs[:N-1])
	one := group.NewScalar().SetNat(new(saferith.Nat).SetUint64(1))

	sumEven := group.NewScalar()
	for _, c := range coefsEven {
		sumEven = sumEven.Add(c)
	}
	sumOdd := group.NewScalar()
	for _, c := range coefsOdd {
		sumOdd = sumOdd.Add(c)
	}

	assert.True(t, sumEven.Equal(one))
	assert.True(t, sumOdd.Equal(one))
}
