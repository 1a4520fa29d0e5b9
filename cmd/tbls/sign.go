package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/threshold-bls/internal/mediator"
	"github.com/luxfi/threshold-bls/internal/round"
	"github.com/luxfi/threshold-bls/pkg/math/curve"
	"github.com/luxfi/threshold-bls/pkg/party"
	"github.com/luxfi/threshold-bls/pkg/pool"
	"github.com/luxfi/threshold-bls/pkg/tbls"
	"github.com/luxfi/threshold-bls/protocols/keygen"
	"github.com/luxfi/threshold-bls/protocols/sign"
)

func newSignCmd() *cobra.Command {
	var (
		keyPath     string
		parties     int
		message     string
		roomID      string
		mediatorURL string
	)
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "run threshold signing over a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			keyData, err := os.ReadFile(keyPath)
			if err != nil {
				return fmt.Errorf("tbls: failed to read local key: %w", err)
			}
			var localKey keygen.LocalKey
			if err := json.Unmarshal(keyData, &localKey); err != nil {
				return fmt.Errorf("tbls: failed to parse local key: %w", err)
			}
			if err := localKey.Validate(); err != nil {
				return fmt.Errorf("tbls: local key failed validation: %w", err)
			}

			ctx := context.Background()
			client := mediator.NewClient(mediatorURL, roomID)

			idx, err := client.Join(ctx)
			if err != nil {
				return err
			}
			if idx > parties {
				return fmt.Errorf("tbls: too many parties joined room %q (at least %d, expected %d)", roomID, idx, parties)
			}
			self := party.IndexToPartyID(idx)
			allIDs := party.NewIDSlice(parties)

			pl := pool.NewPool(0)
			info := round.Info{SelfID: self, PartyIDs: allIDs, Threshold: localKey.Threshold, Group: curve.G2()}
			key := sign.Key{ID: localKey.ID, VK: localKey.VK, SKShare: localKey.SKShare, VKVec: localKey.VKVec}
			start := sign.Start(info, pl, key, []byte(message))

			result, err := runOverMediator(ctx, client, self, allIDs, 2, start, []byte(roomID))
			if err != nil {
				return err
			}
			signature := result.(tbls.Signature)

			sigma, err := signature.Sigma.MarshalBinary()
			if err != nil {
				return err
			}
			fmt.Printf("signature: %s\n", hex.EncodeToString(sigma))
			return nil
		},
	}
	cmd.Flags().StringVar(&keyPath, "key", "", "path to the local key produced by keygen")
	cmd.Flags().IntVarP(&parties, "parties", "n", 3, "number of signers taking part in this run")
	cmd.Flags().StringVar(&message, "message", "", "message to sign")
	cmd.Flags().StringVar(&roomID, "room-id", "default-room", "coordination room identifier")
	cmd.Flags().StringVar(&mediatorURL, "mediator", "http://127.0.0.1:8080", "mediator server address")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
