package aggbls_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/threshold-bls/pkg/aggbls"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/party"
	"github.com/luxfi/threshold-bls/pkg/tbls"
)

func signerSet(n int) (party.IDSlice, map[party.ID]tbls.KeyPair) {
	ids := party.NewIDSlice(n)
	keys := make(map[party.ID]tbls.KeyPair, n)
	for _, id := range ids {
		keys[id] = tbls.GenerateKeyPair()
	}
	return ids, keys
}

func TestAggregateSignVerify(t *testing.T) {
	ids, keys := signerSet(5)
	message := []byte("rogue key attacks do not work here")

	pks := make(map[party.ID]curve.Point, len(ids))
	for _, id := range ids {
		pks[id] = keys[id].PK
	}
	apk, err := aggbls.Aggregate(pks)
	require.NoError(t, err)

	sigmas := make(map[party.ID]curve.Point, len(ids))
	for _, id := range ids {
		sigmas[id] = aggbls.LocalSign(keys[id].SK, message)
	}
	sig, err := aggbls.CombineSignatures(apk, sigmas)
	require.NoError(t, err)

	require.True(t, sig.Verify(apk, message))
	require.False(t, sig.Verify(apk, []byte("tampered")))
}

func TestAggregateVerifyRejectsDuplicateMessages(t *testing.T) {
	ids, keys := signerSet(2)
	pks := make(map[party.ID]curve.Point, len(ids))
	for _, id := range ids {
		pks[id] = keys[id].PK
	}
	apk, err := aggbls.Aggregate(pks)
	require.NoError(t, err)

	message := []byte("same message twice")
	sigmas := make(map[party.ID]curve.Point, len(ids))
	for _, id := range ids {
		sigmas[id] = aggbls.LocalSign(keys[id].SK, message)
	}
	sig, err := aggbls.CombineSignatures(apk, sigmas)
	require.NoError(t, err)

	_, err = aggbls.AggregateVerify(sig, []aggbls.Entry{
		{APK: apk, Message: message},
		{APK: apk, Message: message},
	})
	require.Error(t, err)
}

func TestAggregateVerifyAcrossDistinctSignerSetsAndMessages(t *testing.T) {
	idsA, keysA := signerSet(3)
	idsB, keysB := signerSet(4)

	pksA := make(map[party.ID]curve.Point, len(idsA))
	for _, id := range idsA {
		pksA[id] = keysA[id].PK
	}
	pksB := make(map[party.ID]curve.Point, len(idsB))
	for _, id := range idsB {
		pksB[id] = keysB[id].PK
	}
	apkA, err := aggbls.Aggregate(pksA)
	require.NoError(t, err)
	apkB, err := aggbls.Aggregate(pksB)
	require.NoError(t, err)

	msgA := []byte("message for set A")
	msgB := []byte("message for set B")

	sigmasA := make(map[party.ID]curve.Point, len(idsA))
	for _, id := range idsA {
		sigmasA[id] = aggbls.LocalSign(keysA[id].SK, msgA)
	}
	sigmasB := make(map[party.ID]curve.Point, len(idsB))
	for _, id := range idsB {
		sigmasB[id] = aggbls.LocalSign(keysB[id].SK, msgB)
	}

	sigA, err := aggbls.CombineSignatures(apkA, sigmasA)
	require.NoError(t, err)
	sigB, err := aggbls.CombineSignatures(apkB, sigmasB)
	require.NoError(t, err)

	combined := aggbls.SIG{Sigma: sigA.Sigma.Add(sigB.Sigma)}

	ok, err := aggbls.AggregateVerify(combined, []aggbls.Entry{
		{APK: apkA, Message: msgA},
		{APK: apkB, Message: msgB},
	})
	require.NoError(t, err)
	require.True(t, ok)
}
