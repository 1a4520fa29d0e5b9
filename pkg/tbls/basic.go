package tbls

import (
	"crypto/rand"

	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/math/sample"
)

// KeyPair is a single-signer BLS key pair, independent of any threshold
// scheme. It exists so the combined output of threshold signing can be
// checked with the same verification equation an ordinary BLS key pair
// would use, and for the aggregated multi-signature scheme in pkg/aggbls,
// which aggregates one of these per signer rather than sharing a single
// key.
type KeyPair struct {
	SK curve.Scalar // G2
	PK curve.Point  // g2^SK
}

// GenerateKeyPair samples a fresh single-signer BLS key pair.
func GenerateKeyPair() KeyPair {
	sk := sample.Scalar(rand.Reader, curve.G2())
	return KeyPair{SK: sk, PK: sk.ActOnBase()}
}

// Sign computes sigma = H(message)^sk, the plain (non-threshold) BLS
// signature.
func (kp KeyPair) Sign(message []byte) curve.Point {
	hx := curve.G1().HashToPoint(message)
	return kp.SK.Act(hx)
}

// VerifyBasic checks a plain BLS signature against pk using the pairing
// equation e(sigma, g2) = e(H(m), pk).
func VerifyBasic(pk curve.Point, message []byte, sigma curve.Point) bool {
	hx := curve.G1().HashToPoint(message)
	lhs := curve.Pairing(sigma, curve.G2().NewBasePoint())
	rhs := curve.Pairing(hx, pk)
	return lhs.Equal(rhs)
}
