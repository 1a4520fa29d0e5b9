// Package curve adapts github.com/drand/kyber and its BLS12-381
// implementation (github.com/drand/kyber-bls12381) into the small,
// protocol-facing Scalar/Point/Curve vocabulary the rest of this module is
// written against. It never implements curve or pairing arithmetic itself:
// every group operation is delegated to kyber, which is the external
// primitive the DKG, signing and aggregation packages are built on top of.
package curve

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/drand/kyber"
	bls "github.com/drand/kyber-bls12381"
)

// Curve names one of the two prime-order groups of the BLS12-381 pairing,
// G1 or G2. Both share the same scalar field, so a Scalar produced against
// one Curve can freely act on points of the other (this identity underpins
// the ECDDH proof in pkg/ecddh).
type Curve interface {
	// Name identifies the group for logging and error messages.
	Name() string
	// NewScalar returns the additive identity of the scalar field.
	NewScalar() Scalar
	// NewPoint returns the identity element of the group.
	NewPoint() Point
	// NewBasePoint returns the standard generator of the group.
	NewBasePoint() Point
	// OrderNat returns the shared prime order r of G1 and G2 as a Nat,
	// for constant-time modular arithmetic outside the scalar field
	// itself (e.g. reducing a hash digest before use as a scalar).
	OrderNat() *saferith.Nat
	// HashToPoint hashes msg directly onto the group, implementing the
	// H: {0,1}* -> G used for message hashing in signing. (The BDN18
	// aggregation coefficients in pkg/aggbls are scalars hashed with
	// BLAKE3, not points from this method.)
	HashToPoint(msg []byte) Point
	// PointLen and ScalarLen report the fixed-size binary encoding
	// lengths used for marshalling.
	PointLen() int
	ScalarLen() int
}

var suite = bls.NewBLS12381Suite()

// G1 is the curve used for signatures and hashed messages.
func G1() Curve { return g1Curve{} }

// G2 is the curve used for (verification) public keys.
func G2() Curve { return g2Curve{} }

type g1Curve struct{}

func (g1Curve) Name() string { return "bls12381.G1" }
func (g1Curve) NewScalar() Scalar {
	return Scalar{v: suite.G1().Scalar(), base: suite.G1().Point().Base()}
}
func (g1Curve) NewPoint() Point {
	return Point{v: suite.G1().Point().Null()}
}
func (g1Curve) NewBasePoint() Point {
	return Point{v: suite.G1().Point().Base()}
}
func (g1Curve) OrderNat() *saferith.Nat { return groupOrderNat() }
func (g1Curve) HashToPoint(msg []byte) Point {
	hp, ok := suite.G1().Point().(kyber.HashablePoint)
	if !ok {
		panic("curve: G1 point type does not support hash-to-curve")
	}
	return Point{v: hp.Hash(msg)}
}
func (g1Curve) PointLen() int  { return suite.G1().PointLen() }
func (g1Curve) ScalarLen() int { return suite.G1().ScalarLen() }

type g2Curve struct{}

func (g2Curve) Name() string { return "bls12381.G2" }
func (g2Curve) NewScalar() Scalar {
	return Scalar{v: suite.G2().Scalar(), base: suite.G2().Point().Base()}
}
func (g2Curve) NewPoint() Point {
	return Point{v: suite.G2().Point().Null()}
}
func (g2Curve) NewBasePoint() Point {
	return Point{v: suite.G2().Point().Base()}
}
func (g2Curve) OrderNat() *saferith.Nat { return groupOrderNat() }
func (g2Curve) HashToPoint(msg []byte) Point {
	hp, ok := suite.G2().Point().(kyber.HashablePoint)
	if !ok {
		panic("curve: G2 point type does not support hash-to-curve")
	}
	return Point{v: hp.Hash(msg)}
}
func (g2Curve) PointLen() int  { return suite.G2().PointLen() }
func (g2Curve) ScalarLen() int { return suite.G2().ScalarLen() }

// Pairing computes e(p1, p2) in GT, where p1 must belong to G1 and p2 to G2.
// This is the single point at which the module invokes the bilinear map,
// used by basic_bls verification and by the BDN18 aggregate-verify batch
// pairing check.
func Pairing(p1, p2 Point) GTElement {
	return GTElement{v: suite.Pair(p1.v, p2.v)}
}

// GTElement is an element of the target group of the pairing. Besides
// equality (for single-pairing verification equations), it supports
// addition, so that batch/aggregate verification can accumulate several
// pairings into a single comparison: e(a,b) * e(c,d) = e(e,f) is checked as
// pairing(a,b).Add(pairing(c,d)).Equal(pairing(e,f)).
type GTElement struct{ v kyber.Point }

func (g GTElement) Equal(other GTElement) bool { return g.v.Equal(other.v) }

// Add combines two target-group elements, corresponding to multiplying the
// two pairing values together.
func (g GTElement) Add(other GTElement) GTElement {
	return GTElement{v: g.v.Clone().Add(g.v, other.v)}
}

// GTIdentity returns the identity element of the target group, the empty
// product for accumulating pairings with Add.
func GTIdentity() GTElement {
	return GTElement{v: suite.GT().Point().Null()}
}

func groupOrderNat() *saferith.Nat {
	// The scalar field order is identical for G1 and G2 on BLS12-381
	// (both prime-order subgroups have order r); ScalarLen()-sized
	// encoding of (0 - 1) recovers r - 1, from which r follows. kyber
	// does not expose the modulus directly, so we derive it once via the
	// canonical r used by every BLS12-381 implementation (kyber-bls12381
	// included) and cache it as a Nat for constant-time arithmetic
	// elsewhere in the module.
	return blsOrder
}

// blsOrder is the order r of the two prime-order subgroups G1 and G2 of
// BLS12-381, i.e. the scalar field modulus shared by both groups. This is a
// publicly known constant of the curve, not a secret, and is reproduced here
// because kyber's Group interface has no accessor for it.
var blsOrder = mustOrderNat("52435875175126190479447740508185965837690552500527637822603658699938581184513")

func mustOrderNat(decimal string) *saferith.Nat {
	big, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		panic("curve: failed to parse BLS12-381 group order")
	}
	return new(saferith.Nat).SetBytes(big.Bytes())
}

// RandomScalar draws a uniformly random scalar from the field shared by the
// two curves, reading entropy from r (rand.Reader if r is nil).
func RandomScalar(r io.Reader, c Curve) Scalar {
	if r == nil {
		r = rand.Reader
	}
	s := c.NewScalar()
	s.v.Pick(randStream{r: r})
	return s
}

type randStream struct{ r io.Reader }

func (s randStream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("curve: XORKeyStream destination too small")
	}
	if _, err := io.ReadFull(s.r, dst[:len(src)]); err != nil {
		panic(fmt.Sprintf("curve: failed to read randomness: %v", err))
	}
}
