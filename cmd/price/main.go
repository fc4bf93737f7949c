package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KAY53N/bsc-node/internal/chain"
	"github.com/KAY53N/bsc-node/internal/codec"
	"github.com/KAY53N/bsc-node/internal/config"
	"github.com/KAY53N/bsc-node/internal/contract"
	"github.com/KAY53N/bsc-node/internal/price"
	"github.com/KAY53N/bsc-node/internal/report"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "price",
		Short:         "Token price probe for a BSC node",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file path")
	flags.String("rpc", "http://localhost:8545", "BSC RPC URL")
	flags.Duration("timeout", chain.DefaultCallTimeout, "per-call RPC timeout")
	flags.String("format", "text", "output format (text, json)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newV2Cmd(), newV3Cmd(), newStatusCmd())
	return root
}

// session bundles what every subcommand needs once configuration is loaded.
type session struct {
	cfg    config.Config
	format report.Format
	logger *zap.Logger
	client *chain.Client
}

func openSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	client, err := chain.NewClient(ctx, cfg.RPCURL, cfg.Timeout)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("%w: connect rpc: %w", chain.ErrTransportFailure, err)
	}

	return &session{cfg: cfg, format: format, logger: logger, client: client}, nil
}

func (s *session) Close() {
	s.client.Close()
	_ = s.logger.Sync()
}

func (s *session) resolver() (*price.Resolver, error) {
	factory, err := codec.ParseAddress(s.cfg.Factory)
	if err != nil {
		return nil, fmt.Errorf("factory: %w", err)
	}
	reader := contract.NewReader(s.client, s.logger)
	return price.NewResolver(reader, price.Config{
		Factory:      factory,
		KnownSymbols: s.cfg.KnownSymbols,
	}, s.logger), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func logDuration(logger *zap.Logger, msg string, start time.Time, fields ...zap.Field) {
	logger.Debug(msg, append(fields, zap.Duration("elapsed", time.Since(start)))...)
}
