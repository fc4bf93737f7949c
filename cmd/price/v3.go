package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KAY53N/bsc-node/internal/model"
	"github.com/KAY53N/bsc-node/internal/report"
)

func newV3Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "v3 POOL",
		Short: "Price the two tokens of a V3 pool from slot0",
		Args:  cobra.ExactArgs(1),
		RunE:  runV3,
	}

	cmd.Flags().String("block", "latest", "block height (decimal or 0x hex) or latest")

	return cmd
}

func runV3(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	block, err := model.ParseBlockRef(s.cfg.Block)
	if err != nil {
		return err
	}

	resolver, err := s.resolver()
	if err != nil {
		return err
	}

	start := time.Now()
	quote, err := resolver.ResolvePool(ctx, args[0], block)
	logDuration(s.logger, "resolve pool", start, zap.String("pool", args[0]))
	if err != nil {
		return err
	}

	return report.WriteQuote(cmd.OutOrStdout(), quote, s.format)
}
