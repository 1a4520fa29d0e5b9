package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/luxfi/threshold-bls/internal/mediator"
	"github.com/luxfi/threshold-bls/internal/round"
	"github.com/luxfi/threshold-bls/pkg/party"
	"github.com/luxfi/threshold-bls/pkg/protocol"
)

// runOverMediator drives a single protocol run to completion, relaying its
// traffic through client. It alternates between flushing whatever the
// current round can emit and polling the relay for what other parties have
// sent, until the Machine reaches a terminal Result or Abort.
func runOverMediator(ctx context.Context, client *mediator.Client, self party.ID, others party.IDSlice, totalRounds round.Number, start protocol.StartFunc, sessionID []byte) (interface{}, error) {
	first, err := start(sessionID)
	if err != nil {
		return nil, fmt.Errorf("tbls: failed to start protocol: %w", err)
	}
	machine := round.NewMachine(self, others, totalRounds, first)

	send := func() error {
		out := make(chan *round.Message, 64)
		if err := machine.Proceed(out, true); err != nil {
			close(out)
			return err
		}
		close(out)
		for msg := range out {
			data, err := mediator.EncodeMessage(msg)
			if err != nil {
				return err
			}
			if err := client.Send(ctx, data); err != nil {
				return err
			}
		}
		return nil
	}

	if err := send(); err != nil {
		return nil, err
	}

	cursor := 0
	for !machine.IsFinished() {
		batch, next, err := client.Poll(ctx, cursor)
		if err != nil {
			return nil, err
		}
		cursor = next
		for _, raw := range batch {
			msg, err := mediator.DecodeMessage(raw)
			if err != nil {
				return nil, err
			}
			if !msg.IsFor(self) {
				continue
			}
			if err := machine.HandleIncoming(msg); err != nil {
				return nil, fmt.Errorf("tbls: %w", err)
			}
		}
		if machine.WantsToProceed() {
			slog.Debug("advancing round", "party", self, "round", machine.CurrentRound())
			if err := send(); err != nil {
				return nil, err
			}
		}
	}

	return machine.PickOutput()
}
