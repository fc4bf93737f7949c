package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KAY53N/bsc-node/internal/chain"
	"github.com/KAY53N/bsc-node/internal/contract"
	"github.com/KAY53N/bsc-node/internal/price"
)

func TestDescribeErrorDistinctKinds(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range errorMessages {
		msg := describeError(fmt.Errorf("wrapped: %w", m.kind))
		require.Contains(t, msg, m.message)
		require.False(t, seen[m.message], "duplicate message %q", m.message)
		seen[m.message] = true
	}
}

func TestDescribeErrorTransportHint(t *testing.T) {
	err := fmt.Errorf("%w: %w", contract.ErrPairNotFound, fmt.Errorf("%w: connection refused", chain.ErrTransportFailure))
	msg := describeError(err)
	require.Contains(t, msg, "no V2 pair exists")
	require.Contains(t, msg, "hint: the node did not answer")
}

func TestDescribeErrorCallFailedHint(t *testing.T) {
	err := fmt.Errorf("%w: %w", price.ErrPriceUnavailable, chain.ErrCallFailed)
	msg := describeError(err)
	require.Contains(t, msg, "pool price state could not be read")
	require.Contains(t, msg, "node rejected the call")
}

func TestDescribeErrorUnknown(t *testing.T) {
	msg := describeError(fmt.Errorf("boom"))
	require.Equal(t, "error: boom", msg)
	require.False(t, strings.Contains(msg, "hint"))
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	require.True(t, names["v2"])
	require.True(t, names["v3"])
	require.True(t, names["status"])
	require.NotNil(t, root.PersistentFlags().Lookup("rpc"))
	require.NotNil(t, root.PersistentFlags().Lookup("timeout"))
}
