package sign

import (
	"fmt"

	"github.com/luxfi/threshold-bls/internal/round"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
)

// partialSigMessage is round 0's broadcast: one signer's partial
// signature, ECDDH proof, and its keygen-time party index so the combiner
// can select the matching verification-key share out of vk_vec.
type partialSigMessage struct {
	round.NormalBroadcastContent
	KeygenIndex int
	Sigma       []byte
	ProofA1     []byte
	ProofA2     []byte
	ProofZ      []byte
}

func (partialSigMessage) RoundNumber() round.Number { return 1 }

func encodePoint(p curve.Point) ([]byte, error) {
	data, err := p.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("sign: failed to encode point: %w", err)
	}
	return data, nil
}

func decodePoint(group curve.Curve, data []byte) (curve.Point, error) {
	p := group.NewPoint()
	if err := p.UnmarshalBinary(data); err != nil {
		return curve.Point{}, fmt.Errorf("sign: failed to decode point: %w", err)
	}
	return p, nil
}

func encodeScalar(s curve.Scalar) ([]byte, error) {
	data, err := s.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("sign: failed to encode scalar: %w", err)
	}
	return data, nil
}

func decodeScalar(group curve.Curve, data []byte) (curve.Scalar, error) {
	s := group.NewScalar()
	if err := s.UnmarshalBinary(data); err != nil {
		return curve.Scalar{}, fmt.Errorf("sign: failed to decode scalar: %w", err)
	}
	return s, nil
}
