// Package sample provides randomness helpers shared by every protocol round
// that needs to draw field elements or raw entropy.
package sample

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/luxfi/threshold-bls/pkg/math/curve"
)

// Scalar draws a scalar uniformly at random from r's reader, bound to the
// given curve's generator.
func Scalar(r io.Reader, c curve.Curve) curve.Scalar {
	return curve.RandomScalar(r, c)
}

// Bytes returns n cryptographically random bytes.
func Bytes(n int) []byte {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic(fmt.Sprintf("sample: failed to read randomness: %v", err))
	}
	return b
}
