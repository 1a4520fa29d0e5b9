package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/tbls"
)

func newVerifyCmd() *cobra.Command {
	var (
		vkHex  string
		sigHex string
		message string
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "locally verify a combined threshold signature",
		RunE: func(cmd *cobra.Command, args []string) error {
			vkBytes, err := hex.DecodeString(vkHex)
			if err != nil {
				return fmt.Errorf("tbls: invalid verification key: %w", err)
			}
			sigBytes, err := hex.DecodeString(sigHex)
			if err != nil {
				return fmt.Errorf("tbls: invalid signature: %w", err)
			}

			vk := curve.G2().NewPoint()
			if err := vk.UnmarshalBinary(vkBytes); err != nil {
				return fmt.Errorf("tbls: failed to decode verification key: %w", err)
			}
			sigma := curve.G1().NewPoint()
			if err := sigma.UnmarshalBinary(sigBytes); err != nil {
				return fmt.Errorf("tbls: failed to decode signature: %w", err)
			}

			sig := tbls.Signature{Sigma: sigma}
			if !sig.Verify(vk, []byte(message)) {
				return fmt.Errorf("tbls: signature does not verify")
			}
			fmt.Println("signature verified")
			return nil
		},
	}
	cmd.Flags().StringVar(&vkHex, "public-key", "", "hex-encoded group verification key")
	cmd.Flags().StringVar(&sigHex, "signature", "", "hex-encoded combined signature")
	cmd.Flags().StringVar(&message, "message", "", "message the signature should verify against")
	_ = cmd.MarkFlagRequired("public-key")
	_ = cmd.MarkFlagRequired("signature")
	return cmd
}
