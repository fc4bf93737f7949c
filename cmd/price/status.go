package main

import (
	"github.com/spf13/cobra"

	"github.com/KAY53N/bsc-node/internal/report"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show head block, peer count and sync progress of the node",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	status, err := s.client.Status(ctx)
	if err != nil {
		return err
	}
	return report.WriteStatus(cmd.OutOrStdout(), status, s.format)
}
