package main

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/threshold-bls/pkg/tbls"
)

// TestVerifyCmdSucceedsOnValidSignature builds a plain BLS keypair and
// signature (no DKG needed to exercise Verify's own math) and checks the
// verify subcommand's RunE returns nil -- the exit-code-zero path -- when
// given matching hex-encoded flags.
func TestVerifyCmdSucceedsOnValidSignature(t *testing.T) {
	message := []byte("attack at dawn")

	kp := tbls.GenerateKeyPair()
	sigma := kp.Sign(message)
	require.True(t, tbls.VerifyBasic(kp.PK, message, sigma))

	vkBytes, err := kp.PK.MarshalBinary()
	require.NoError(t, err)
	sigBytes, err := sigma.MarshalBinary()
	require.NoError(t, err)

	cmd := newVerifyCmd()
	cmd.SetArgs([]string{
		"--public-key", hex.EncodeToString(vkBytes),
		"--signature", hex.EncodeToString(sigBytes),
		"--message", string(message),
	})
	require.NoError(t, cmd.Execute())
}

// TestVerifyCmdFailsOnMismatchedMessage checks the non-zero-exit path: a
// correctly-formed signature over the wrong message must come back as an
// error from RunE, not a panic or a silent success.
func TestVerifyCmdFailsOnMismatchedMessage(t *testing.T) {
	message := []byte("attack at dawn")
	wrongMessage := []byte("retreat at dusk")

	kp := tbls.GenerateKeyPair()
	sigma := kp.Sign(message)

	vkBytes, err := kp.PK.MarshalBinary()
	require.NoError(t, err)
	sigBytes, err := sigma.MarshalBinary()
	require.NoError(t, err)

	cmd := newVerifyCmd()
	cmd.SetArgs([]string{
		"--public-key", hex.EncodeToString(vkBytes),
		"--signature", hex.EncodeToString(sigBytes),
		"--message", string(wrongMessage),
	})
	require.Error(t, cmd.Execute())
}

// TestVerifyCmdFailsOnMalformedKey checks that bytes which don't decode to a
// curve point are rejected before any pairing is attempted, rather than
// panicking.
func TestVerifyCmdFailsOnMalformedKey(t *testing.T) {
	cmd := newVerifyCmd()
	cmd.SetArgs([]string{
		"--public-key", hex.EncodeToString([]byte("not a curve point")),
		"--signature", hex.EncodeToString([]byte("also not a curve point")),
		"--message", "anything",
	})
	require.Error(t, cmd.Execute())
}
