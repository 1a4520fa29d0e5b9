package curve

import (
	"github.com/cronokirby/saferith"
	"github.com/drand/kyber"
)

// Scalar is an element of the BLS12-381 scalar field, shared by G1 and G2.
// Alongside the field element itself it carries the generator of whichever
// curve (G1 or G2) constructed it, so that ActOnBase can compute g^s
// without the caller having to separately track which group g belongs to.
type Scalar struct {
	v    kyber.Scalar
	base kyber.Point
}

// IsZero reports whether the scalar is the additive identity.
func (s Scalar) IsZero() bool {
	return s.v.Equal(s.v.Clone().Zero())
}

// Set copies other's field element into s (the base is kept) and returns s.
func (s Scalar) Set(other Scalar) Scalar {
	s.v.Set(other.v)
	return s
}

// SetNat sets s to n mod r, where r is the BLS12-381 scalar field order.
// Party indices, Lagrange evaluation points, and hashed challenge values all
// flow through this path.
func (s Scalar) SetNat(n *saferith.Nat) Scalar {
	s.v.SetBytes(reverse(n.Bytes()))
	return s
}

// Add returns s + other.
func (s Scalar) Add(other Scalar) Scalar {
	return Scalar{v: s.v.Clone().Add(s.v, other.v), base: s.base}
}

// Sub returns s - other.
func (s Scalar) Sub(other Scalar) Scalar {
	return Scalar{v: s.v.Clone().Sub(s.v, other.v), base: s.base}
}

// Mul returns s * other.
func (s Scalar) Mul(other Scalar) Scalar {
	return Scalar{v: s.v.Clone().Mul(s.v, other.v), base: s.base}
}

// Neg returns -s.
func (s Scalar) Neg() Scalar {
	return Scalar{v: s.v.Clone().Neg(s.v), base: s.base}
}

// Inv returns the multiplicative inverse of s. s must be nonzero.
func (s Scalar) Inv() Scalar {
	return Scalar{v: s.v.Clone().Inv(s.v), base: s.base}
}

// ActOnBase returns g^s, where g is the generator of the curve that
// produced s (see Curve.NewScalar).
func (s Scalar) ActOnBase() Point {
	if s.base == nil {
		panic("curve: scalar was not created via Curve.NewScalar, has no base point")
	}
	return Point{v: s.base.Clone().Mul(s.v, s.base)}
}

// Act returns p^s: the point p acted on by the scalar s.
func (s Scalar) Act(p Point) Point {
	return Point{v: p.v.Clone().Mul(s.v, p.v)}
}

// MarshalBinary encodes the scalar in the canonical kyber encoding.
func (s Scalar) MarshalBinary() ([]byte, error) {
	return s.v.MarshalBinary()
}

// UnmarshalBinary decodes a scalar previously produced by MarshalBinary.
// The receiver must already be bound to a concrete field element (obtained
// from Curve.NewScalar) so the correct kyber type and base point are used.
func (s Scalar) UnmarshalBinary(data []byte) error {
	return s.v.UnmarshalBinary(data)
}

// Equal reports whether two scalars represent the same field element.
func (s Scalar) Equal(other Scalar) bool {
	return s.v.Equal(other.v)
}

// reverse returns a copy of b with its byte order reversed.
// saferith.Nat.Bytes reports its value big-endian already; kyber scalars
// expect little-endian encodings for SetBytes on most backends, so the
// bytes are reversed before handing them to kyber.
func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
