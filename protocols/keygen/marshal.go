package keygen

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/party"
)

type localKeyJSON struct {
	ID        string            `json:"id"`
	Threshold int               `json:"threshold"`
	PartyIDs  []string          `json:"party_ids"`
	VK        string            `json:"vk"`       // base64
	SKShare   string            `json:"sk_share"` // base64
	VKVec     map[string]string `json:"vk_vec"`   // base64, keyed by party ID
}

// MarshalJSON encodes the key material as base64 strings inside a JSON
// envelope, so a LocalKey can be written to and read back from disk between
// a keygen run and a later signing run.
func (lk *LocalKey) MarshalJSON() ([]byte, error) {
	vkBytes, err := lk.VK.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("keygen: failed to marshal verification key: %w", err)
	}
	skBytes, err := lk.SKShare.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("keygen: failed to marshal secret share: %w", err)
	}

	vkVec := make(map[string]string, len(lk.VKVec))
	for id, vk := range lk.VKVec {
		b, err := vk.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("keygen: failed to marshal verification-key share for %s: %w", id, err)
		}
		vkVec[string(id)] = base64.StdEncoding.EncodeToString(b)
	}

	partyIDs := make([]string, len(lk.PartyIDs))
	for i, id := range lk.PartyIDs {
		partyIDs[i] = string(id)
	}

	return json.Marshal(&localKeyJSON{
		ID:        string(lk.ID),
		Threshold: lk.Threshold,
		PartyIDs:  partyIDs,
		VK:        base64.StdEncoding.EncodeToString(vkBytes),
		SKShare:   base64.StdEncoding.EncodeToString(skBytes),
		VKVec:     vkVec,
	})
}

// UnmarshalJSON decodes a LocalKey previously produced by MarshalJSON. The
// result is not validated against the DKG invariants; callers should call
// Validate before trusting it for signing.
func (lk *LocalKey) UnmarshalJSON(data []byte) error {
	var in localKeyJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	lk.ID = party.ID(in.ID)
	lk.Threshold = in.Threshold
	lk.PartyIDs = make(party.IDSlice, len(in.PartyIDs))
	for i, id := range in.PartyIDs {
		lk.PartyIDs[i] = party.ID(id)
	}

	vkBytes, err := base64.StdEncoding.DecodeString(in.VK)
	if err != nil {
		return fmt.Errorf("keygen: failed to decode verification key: %w", err)
	}
	vk := curve.G2().NewPoint()
	if err := vk.UnmarshalBinary(vkBytes); err != nil {
		return fmt.Errorf("keygen: failed to unmarshal verification key: %w", err)
	}
	lk.VK = vk

	skBytes, err := base64.StdEncoding.DecodeString(in.SKShare)
	if err != nil {
		return fmt.Errorf("keygen: failed to decode secret share: %w", err)
	}
	sk := curve.G2().NewScalar()
	if err := sk.UnmarshalBinary(skBytes); err != nil {
		return fmt.Errorf("keygen: failed to unmarshal secret share: %w", err)
	}
	lk.SKShare = sk

	lk.VKVec = make(map[party.ID]curve.Point, len(in.VKVec))
	for idStr, encoded := range in.VKVec {
		b, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return fmt.Errorf("keygen: failed to decode verification-key share for %s: %w", idStr, err)
		}
		p := curve.G2().NewPoint()
		if err := p.UnmarshalBinary(b); err != nil {
			return fmt.Errorf("keygen: failed to unmarshal verification-key share for %s: %w", idStr, err)
		}
		lk.VKVec[party.ID(idStr)] = p
	}

	return nil
}
