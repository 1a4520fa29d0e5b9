package tbls_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/threshold-bls/pkg/tbls"
)

func TestBasicSignVerify(t *testing.T) {
	kp := tbls.GenerateKeyPair()
	message := []byte("the quick brown fox")

	sigma := kp.Sign(message)
	require.True(t, tbls.VerifyBasic(kp.PK, message, sigma))

	other := tbls.GenerateKeyPair()
	require.False(t, tbls.VerifyBasic(other.PK, message, sigma))
	require.False(t, tbls.VerifyBasic(kp.PK, []byte("tampered"), sigma))
}
