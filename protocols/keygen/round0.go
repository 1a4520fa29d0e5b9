// Package keygen implements the five-round distributed key generation
// protocol: every party commits to a fresh key share (R0-R1), distributes
// a Feldman VSS sharing of it (R2-R3), and proves knowledge of its
// combined secret share (R4), terminating in a LocalKey usable for
// threshold signing.
package keygen

import (
	"fmt"

	"github.com/luxfi/threshold-bls/internal/round"
	"github.com/luxfi/threshold-bls/pkg/commitment"
	"github.com/luxfi/threshold-bls/pkg/party"
	"github.com/luxfi/threshold-bls/pkg/pool"
	"github.com/luxfi/threshold-bls/pkg/protocol"
	"github.com/luxfi/threshold-bls/pkg/tbls"
)

// Start begins a key-generation run. info.Threshold (t) and len(info.PartyIDs)
// (n) must satisfy 1 <= t <= n-1 and n >= 2, else ErrTooFewParties or
// ErrInvalidThreshold is returned.
func Start(info round.Info, pl *pool.Pool) protocol.StartFunc {
	return func(sessionID []byte) (round.Session, error) {
		n := len(info.PartyIDs)
		if n < 2 {
			return nil, fmt.Errorf("%w: got %d", ErrTooFewParties, n)
		}
		if info.Threshold < 1 || info.Threshold > n-1 {
			return nil, fmt.Errorf("%w: %d for %d parties", ErrInvalidThreshold, info.Threshold, n)
		}
		helper, err := round.NewSession(info, sessionID, pl)
		if err != nil {
			return nil, err
		}

		keys := tbls.NewKeys(party.PartyIDToIndex(helper.SelfID()))
		com, decom, err := keys.Commit(helper.SelfID())
		if err != nil {
			return nil, err
		}

		return &round0{
			Helper: helper,
			keys:   keys,
			com:    com,
			decom:  decom,
		}, nil
	}
}

// round0 holds this party's freshly sampled key share and its round-1
// commitment, ready to broadcast. It has no incoming messages: Done is
// always true, so the driver finalizes it on the very first Proceed call.
type round0 struct {
	*round.Helper
	keys  tbls.Keys
	com   commitment.Commitment
	decom tbls.Decommitment
}

func (r *round0) Number() round.Number  { return 0 }
func (r *round0) IsExpensive() bool     { return false }
func (r *round0) Done() bool            { return true }
func (r *round0) BroadcastContent() round.BroadcastContent { return nil }
func (r *round0) MessageContent() round.Content            { return nil }

func (r *round0) VerifyMessage(round.Message) error        { return nil }
func (r *round0) StoreBroadcastMessage(round.Message) error { return nil }
func (r *round0) StoreMessage(round.Message) error          { return nil }

func (r *round0) Finalize(out chan<- *round.Message) (round.Session, error) {
	msg := &commitMessage{Comm: r.com}
	if err := r.BroadcastMessage(out, msg); err != nil {
		return nil, err
	}

	comms := make(map[party.ID]commitment.Commitment, r.N())
	comms[r.SelfID()] = r.com

	return &round1{
		round0: r,
		comms:  comms,
	}, nil
}
