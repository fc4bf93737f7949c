package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KAY53N/bsc-node/internal/model"
	"github.com/KAY53N/bsc-node/internal/report"
)

func newV2Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "v2 TOKEN [BASE]",
		Short: "Price TOKEN against BASE through its PancakeSwap V2 pair",
		Long: "Looks up the V2 pair of TOKEN and BASE on the factory and prices TOKEN from the pair reserves.\n" +
			"BASE defaults to WBNB.",
		Args: cobra.RangeArgs(1, 2),
		RunE: runV2,
	}

	cmd.Flags().String("block", "latest", "block height (decimal or 0x hex) or latest")
	cmd.Flags().String("factory", "", "V2 factory address (defaults to PancakeSwap V2)")
	cmd.Flags().String("base", "", "base token address")

	return cmd
}

func runV2(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	base := s.cfg.Base
	if len(args) == 2 {
		base = args[1]
	}
	block, err := model.ParseBlockRef(s.cfg.Block)
	if err != nil {
		return err
	}

	resolver, err := s.resolver()
	if err != nil {
		return err
	}

	start := time.Now()
	quote, err := resolver.ResolvePair(ctx, args[0], base, block)
	logDuration(s.logger, "resolve pair", start, zap.String("token", args[0]), zap.String("base", base))
	if err != nil {
		return err
	}

	return report.WriteQuote(cmd.OutOrStdout(), quote, s.format)
}
