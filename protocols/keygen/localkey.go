package keygen

import (
	"fmt"

	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/math/polynomial"
	"github.com/luxfi/threshold-bls/pkg/party"
	"github.com/luxfi/threshold-bls/pkg/tbls"
)

// LocalKey is the terminal output of a successful key-generation run, held
// by a single party. It is the unit of persistence: everything a party
// needs to take part in signing lives here.
type LocalKey struct {
	ID        party.ID
	Threshold int
	PartyIDs  party.IDSlice

	VK      curve.Point            // group verification key
	SKShare curve.Scalar           // this party's combined secret share
	VKVec   map[party.ID]curve.Point // every party's verification-key share, keyed by keygen-time ID
}

// SharedKeys extracts the tbls.SharedKeys view of this key, for use by the
// signing protocol's partial-sign step.
func (lk *LocalKey) SharedKeys() tbls.SharedKeys {
	return tbls.SharedKeys{
		Index:     party.PartyIDToIndex(lk.ID),
		Threshold: lk.Threshold,
		VK:        lk.VK,
		SKShare:   lk.SKShare,
		VKShare:   lk.VKVec[lk.ID],
	}
}

// Validate checks the invariants a loaded LocalKey must satisfy before it is
// safe to use for signing: the party's own share is consistent with its own
// entry in VKVec, every party has a verification-key share, and VK is
// actually the group key those shares interpolate to at x=0 (using any
// threshold+1 of them, since that is the DKG's public Lagrange identity).
// A LocalKey whose VK was tampered with independently of VKVec, or whose
// VKVec no longer matches the polynomial it was produced from, fails here.
func (lk *LocalKey) Validate() error {
	if !lk.PartyIDs.Contains(lk.ID) {
		return fmt.Errorf("keygen: local key's own ID %s not in party set", lk.ID)
	}
	ownVK, ok := lk.VKVec[lk.ID]
	if !ok {
		return fmt.Errorf("keygen: local key missing own verification-key share")
	}
	if !lk.SKShare.ActOnBase().Equal(ownVK) {
		return fmt.Errorf("keygen: local key's secret share does not match its own verification-key share")
	}
	if len(lk.VKVec) != len(lk.PartyIDs) {
		return fmt.Errorf("keygen: local key has %d verification-key shares, want %d", len(lk.VKVec), len(lk.PartyIDs))
	}

	ids := lk.PartyIDs.Copy().Sort()[:lk.Threshold+1]
	coefficients := polynomial.Lagrange(curve.G2(), ids)
	reconstructed := curve.G2().NewPoint()
	for _, id := range ids {
		vkShare, ok := lk.VKVec[id]
		if !ok {
			return fmt.Errorf("keygen: local key missing verification-key share for %s", id)
		}
		reconstructed = reconstructed.Add(coefficients[id].Act(vkShare))
	}
	if !reconstructed.Equal(lk.VK) {
		return fmt.Errorf("keygen: published verification key is not the Lagrange interpolation of VKVec")
	}
	return nil
}
