package curve

import "github.com/drand/kyber"

// Point is an element of G1 or G2.
type Point struct{ v kyber.Point }

// IsIdentity reports whether p is the identity element of its group.
func (p Point) IsIdentity() bool {
	return p.v.Equal(p.v.Clone().Null())
}

// Add returns p + other. Both points must belong to the same group.
func (p Point) Add(other Point) Point {
	return Point{v: p.v.Clone().Add(p.v, other.v)}
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{v: p.v.Clone().Sub(p.v, other.v)}
}

// Neg returns -p.
func (p Point) Neg() Point {
	return Point{v: p.v.Clone().Neg(p.v)}
}

// Equal reports whether two points are the same group element.
func (p Point) Equal(other Point) bool {
	return p.v.Equal(other.v)
}

// MarshalBinary encodes the point in the canonical kyber (compressed)
// encoding.
func (p Point) MarshalBinary() ([]byte, error) {
	return p.v.MarshalBinary()
}

// UnmarshalBinary decodes a point previously produced by MarshalBinary. The
// receiver must already be bound to the right group (via Curve.NewPoint).
func (p Point) UnmarshalBinary(data []byte) error {
	return p.v.UnmarshalBinary(data)
}

// Clone returns an independent copy of p.
func (p Point) Clone() Point {
	return Point{v: p.v.Clone()}
}

// String renders the point for debug logging.
func (p Point) String() string {
	return p.v.String()
}
