package keygen_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/threshold-bls/pkg/party"
	"github.com/luxfi/threshold-bls/protocols/keygen"
)

// TestLocalKeyMarshalRoundTrip runs a real DKG, persists the resulting
// LocalKey through JSON the way cmd/tbls does, and checks the reloaded copy
// both deep-equals the original and still passes Validate.
func TestLocalKeyMarshalRoundTrip(t *testing.T) {
	keys := runKeygen(t, 4, 1)
	ids := party.NewIDSlice(4)
	original := keys[ids[0]]

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var reloaded keygen.LocalKey
	require.NoError(t, json.Unmarshal(data, &reloaded))
	require.NoError(t, reloaded.Validate())

	require.Equal(t, original.ID, reloaded.ID)
	require.Equal(t, original.Threshold, reloaded.Threshold)
	require.Equal(t, original.PartyIDs, reloaded.PartyIDs)
	require.True(t, original.VK.Equal(reloaded.VK))
	require.True(t, original.SKShare.ActOnBase().Equal(reloaded.SKShare.ActOnBase()))
	require.Equal(t, len(original.VKVec), len(reloaded.VKVec))
	for id, vk := range original.VKVec {
		got, ok := reloaded.VKVec[id]
		require.True(t, ok, "missing verification-key share for %s after round trip", id)
		require.True(t, vk.Equal(got))
	}
}

// TestLocalKeyMarshalRejectsTamperedVK checks that a VK altered independently
// of VKVec after persistence is caught by Validate, not silently accepted.
func TestLocalKeyMarshalRejectsTamperedVK(t *testing.T) {
	keys := runKeygen(t, 4, 1)
	ids := party.NewIDSlice(4)
	original := keys[ids[0]]

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var tampered keygen.LocalKey
	require.NoError(t, json.Unmarshal(data, &tampered))

	tampered.VK = tampered.VK.Add(tampered.VKVec[tampered.ID])
	require.Error(t, tampered.Validate())
}
