package keygen

import (
	"fmt"

	"github.com/luxfi/threshold-bls/internal/round"
	"github.com/luxfi/threshold-bls/pkg/commitment"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
)

// commitMessage is round 1's broadcast: a hash commitment to this party's
// key-generation public key share.
type commitMessage struct {
	round.NormalBroadcastContent
	Comm commitment.Commitment
}

func (commitMessage) RoundNumber() round.Number { return 1 }

// decommitMessage is round 2's broadcast: the opening of the round-1
// commitment.
type decommitMessage struct {
	round.NormalBroadcastContent
	Y     []byte
	Blind [commitment.BlindLength]byte
}

func (decommitMessage) RoundNumber() round.Number { return 2 }

// shareMessage is round 3's P2P message: a VSS share plus the sender's
// polynomial commitments, addressed to a single recipient.
type shareMessage struct {
	Share       []byte
	Commitments [][]byte
}

func (shareMessage) RoundNumber() round.Number { return 3 }

// dlogMessage is round 4's broadcast: the proof of knowledge of this
// party's combined secret share.
type dlogMessage struct {
	round.NormalBroadcastContent
	PK         []byte
	Commitment []byte
	Response   []byte
}

func (dlogMessage) RoundNumber() round.Number { return 4 }

func encodePoint(p curve.Point) ([]byte, error) {
	data, err := p.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("keygen: failed to encode point: %w", err)
	}
	return data, nil
}

func decodePoint(group curve.Curve, data []byte) (curve.Point, error) {
	p := group.NewPoint()
	if err := p.UnmarshalBinary(data); err != nil {
		return curve.Point{}, fmt.Errorf("keygen: failed to decode point: %w", err)
	}
	return p, nil
}

func encodeScalar(s curve.Scalar) ([]byte, error) {
	data, err := s.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("keygen: failed to encode scalar: %w", err)
	}
	return data, nil
}

func decodeScalar(group curve.Curve, data []byte) (curve.Scalar, error) {
	s := group.NewScalar()
	if err := s.UnmarshalBinary(data); err != nil {
		return curve.Scalar{}, fmt.Errorf("keygen: failed to decode scalar: %w", err)
	}
	return s, nil
}
