// Package commitment implements the hash commitment parties use during the
// first round of distributed key generation to commit to their share of the
// group public key before anyone has seen anyone else's.
package commitment

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/party"
)

// BlindLength is the size in bytes of the random blinding factor, matching
// the 256-bit blind used throughout the rest of this module's proofs.
const BlindLength = 32

// Commitment is the SHA-256 digest published in round 1 of key generation.
type Commitment [sha256.Size]byte

// Commit hashes point, bound to the committing party's index so that one
// party's commitment can never be replayed as another's, together with a
// fresh random blind. It returns the commitment to publish now and the
// blind/point pair to reveal in the following round.
func Commit(self party.ID, point curve.Point) (com Commitment, blind [BlindLength]byte, err error) {
	if _, err = rand.Read(blind[:]); err != nil {
		return com, blind, fmt.Errorf("commitment: failed to sample blind: %w", err)
	}
	com, err = compute(self, point, blind)
	return com, blind, err
}

// Verify recomputes the commitment from the revealed point, blind and
// claimed committer, and reports whether it matches com.
func Verify(self party.ID, point curve.Point, blind [BlindLength]byte, com Commitment) (bool, error) {
	recomputed, err := compute(self, point, blind)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(recomputed[:], com[:]) == 1, nil
}

func compute(self party.ID, point curve.Point, blind [BlindLength]byte) (Commitment, error) {
	var com Commitment
	encoded, err := point.MarshalBinary()
	if err != nil {
		return com, fmt.Errorf("commitment: failed to encode point: %w", err)
	}
	h := sha256.New()
	h.Write(encoded)
	h.Write([]byte(self))
	h.Write(blind[:])
	copy(com[:], h.Sum(nil))
	return com, nil
}
