package main

import (
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/luxfi/threshold-bls/internal/mediator"
)

func newMediatorCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "mediator-server",
		Short: "run the message relay parties coordinate through",
	}
	run := &cobra.Command{
		Use:   "run",
		Short: "start the mediator relay and block until terminated",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := mediator.NewServer(slog.Default())
			slog.Info("starting mediator server", "addr", addr)
			return http.ListenAndServe(addr, srv.Handler())
		},
	}
	run.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "address to listen on")
	cmd.AddCommand(run)
	return cmd
}
