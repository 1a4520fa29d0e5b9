package keygen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/threshold-bls/internal/round"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/party"
	"github.com/luxfi/threshold-bls/pkg/pool"
	"github.com/luxfi/threshold-bls/pkg/tbls"
	"github.com/luxfi/threshold-bls/protocols/keygen"
	"github.com/luxfi/threshold-bls/protocols/sign"
)

// runMachines drives a set of Machines to completion by repeatedly letting
// every machine emit what it can, fanning the emitted messages out to every
// other machine, and looping until nobody has anything left to do. It mimics
// the synchronous-network model the DKG and signing protocols are specified
// against: every honest party's messages for a round are assumed to arrive
// before the round advances.
func runMachines(t *testing.T, machines map[party.ID]*round.Machine) map[party.ID]interface{} {
	t.Helper()

	for rounds := 0; rounds < 20; rounds++ {
		out := make(chan *round.Message, 256)
		progressed := false
		for _, m := range machines {
			if m.WantsToProceed() {
				require.NoError(t, m.Proceed(out, true))
				progressed = true
			}
		}
		close(out)

		var pending []*round.Message
		for msg := range out {
			pending = append(pending, msg)
		}
		for _, msg := range pending {
			for id, m := range machines {
				if msg.IsFor(id) {
					require.NoError(t, m.HandleIncoming(*msg))
				}
			}
		}

		if !progressed && len(pending) == 0 {
			break
		}
	}

	results := make(map[party.ID]interface{}, len(machines))
	for id, m := range machines {
		require.True(t, m.IsFinished(), "party %s did not finish", id)
		out, err := m.PickOutput()
		require.NoError(t, err)
		results[id] = out
	}
	return results
}

func runKeygen(t *testing.T, n, threshold int) map[party.ID]*keygen.LocalKey {
	t.Helper()
	ids := party.NewIDSlice(n)
	pl := pool.NewPool(0)

	machines := make(map[party.ID]*round.Machine, n)
	for _, id := range ids {
		info := round.Info{SelfID: id, PartyIDs: ids, Threshold: threshold, Group: curve.G2()}
		start := keygen.Start(info, pl)
		first, err := start([]byte("test-session"))
		require.NoError(t, err)
		machines[id] = round.NewMachine(id, ids.Copy(), 4, first)
	}

	results := runMachines(t, machines)
	keys := make(map[party.ID]*keygen.LocalKey, n)
	for id, r := range results {
		lk, ok := r.(*keygen.LocalKey)
		require.True(t, ok)
		require.NoError(t, lk.Validate())
		keys[id] = lk
	}

	// Every party must agree on the same group verification key.
	first := keys[ids[0]].VK
	for _, id := range ids {
		require.True(t, keys[id].VK.Equal(first))
	}
	return keys
}

func TestKeygenThenSign(t *testing.T) {
	for _, tc := range []struct{ n, threshold int }{
		{2, 1}, {3, 2}, {5, 2}, {8, 4},
	} {
		tc := tc
		t.Run("", func(t *testing.T) {
			keys := runKeygen(t, tc.n, tc.threshold)
			ids := party.NewIDSlice(tc.n)

			message := []byte("attack at dawn")
			pl := pool.NewPool(0)

			machines := make(map[party.ID]*round.Machine, tc.n)
			for _, id := range ids {
				lk := keys[id]
				info := round.Info{SelfID: id, PartyIDs: ids, Threshold: tc.threshold, Group: curve.G2()}
				key := sign.Key{ID: lk.ID, VK: lk.VK, SKShare: lk.SKShare, VKVec: lk.VKVec}
				start := sign.Start(info, pl, key, message)
				first, err := start([]byte("test-sign-session"))
				require.NoError(t, err)
				m := round.NewMachine(id, ids.Copy(), 2, first)
				require.Equal(t, round.Number(2), m.TotalRounds())
				machines[id] = m
			}

			results := runMachines(t, machines)
			vk := keys[ids[0]].VK
			for id, r := range results {
				sig, ok := r.(tbls.Signature)
				require.True(t, ok)
				require.True(t, sig.Verify(vk, message), "party %s produced an invalid combined signature", id)
			}
		})
	}
}
