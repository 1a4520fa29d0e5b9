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
	"github.com/luxfi/threshold-bls/protocols/keygen"
)

func newKeygenCmd() *cobra.Command {
	var (
		threshold   int
		parties     int
		output      string
		roomID      string
		mediatorURL string
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "run distributed key generation",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			info := round.Info{SelfID: self, PartyIDs: allIDs, Threshold: threshold, Group: curve.G2()}
			start := keygen.Start(info, pl)

			result, err := runOverMediator(ctx, client, self, allIDs, 4, start, []byte(roomID))
			if err != nil {
				return err
			}
			localKey := result.(*keygen.LocalKey)

			data, err := json.MarshalIndent(localKey, "", "  ")
			if err != nil {
				return fmt.Errorf("tbls: failed to serialize local key: %w", err)
			}
			if err := os.WriteFile(output, data, 0o600); err != nil {
				return fmt.Errorf("tbls: failed to write local key: %w", err)
			}

			vk, err := localKey.VK.MarshalBinary()
			if err != nil {
				return err
			}
			fmt.Printf("local key saved to %s\n", output)
			fmt.Printf("verification key: %s\n", hex.EncodeToString(vk))
			return nil
		},
	}
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 1, "threshold t: t+1 parties are required to sign")
	cmd.Flags().IntVarP(&parties, "parties", "n", 3, "number of parties n")
	cmd.Flags().StringVarP(&output, "output", "o", "local-key.json", "where to save the resulting local key")
	cmd.Flags().StringVar(&roomID, "room-id", "default-room", "coordination room identifier")
	cmd.Flags().StringVar(&mediatorURL, "mediator", "http://127.0.0.1:8080", "mediator server address")
	return cmd
}
