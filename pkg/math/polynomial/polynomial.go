// Package polynomial implements the scalar polynomials used by Feldman
// verifiable secret sharing: a random polynomial of degree t whose constant
// term is the shared secret, evaluated at each party's index to produce
// that party's share, with the coefficients' group commitments published so
// every recipient can verify its share without learning the secret. Degree
// t gives t+1 coefficients, matching the t+1 shares a (t,n) scheme needs to
// reconstruct the secret.
package polynomial

import (
	"crypto/rand"

	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/math/sample"
)

// Polynomial is a dense polynomial over the BLS12-381 scalar field,
// represented by its coefficients from the constant term upward.
type Polynomial struct {
	group        curve.Curve
	coefficients []curve.Scalar
}

// NewPolynomial builds a polynomial of the given degree whose constant term
// is fixed to secret and whose remaining coefficients are drawn uniformly
// at random. degree is t for a (t,n) Feldman VSS scheme, so the resulting
// t+1 coefficients are exactly what t+1 cooperating parties need to
// reconstruct the secret by interpolation.
func NewPolynomial(group curve.Curve, degree int, secret curve.Scalar) *Polynomial {
	coeffs := make([]curve.Scalar, degree+1)
	coeffs[0] = secret
	for i := 1; i <= degree; i++ {
		coeffs[i] = sample.Scalar(rand.Reader, group)
	}
	return &Polynomial{group: group, coefficients: coeffs}
}

// Degree returns the polynomial's degree.
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Constant returns the polynomial's constant term (the shared secret).
func (p *Polynomial) Constant() curve.Scalar {
	return p.coefficients[0]
}

// Evaluate computes p(x) using Horner's method.
func (p *Polynomial) Evaluate(x curve.Scalar) curve.Scalar {
	result := p.group.NewScalar()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.coefficients[i])
	}
	return result
}

// Commitments returns the Feldman VSS commitments A_0, ..., A_t to each
// coefficient, i.e. A_k = g^{a_k}. A_0 is the commitment to the secret
// itself and equals the party's contribution to the combined public key.
func (p *Polynomial) Commitments() []curve.Point {
	commits := make([]curve.Point, len(p.coefficients))
	for i, c := range p.coefficients {
		commits[i] = c.ActOnBase()
	}
	return commits
}
