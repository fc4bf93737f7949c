package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/KAY53N/bsc-node/internal/codec"
	"github.com/KAY53N/bsc-node/internal/model"
)

// DefaultCallTimeout bounds a single RPC round trip.
const DefaultCallTimeout = 10 * time.Second

var (
	// ErrTransportFailure marks calls that never got an answer from the node:
	// timeouts, refused connections, unparseable responses.
	ErrTransportFailure = errors.New("rpc transport failure")
	// ErrCallFailed marks calls the node answered with a JSON-RPC error,
	// e.g. a revert or missing state on an unsynced node.
	ErrCallFailed = errors.New("eth_call failed")
)

// Client wraps go-ethereum RPC and provides the calls the price probe needs.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client
	timeout   time.Duration
}

// NewClient creates a new chain client from the RPC URL. Every call made
// through the client is bounded by timeout; a non-positive value selects
// DefaultCallTimeout.
func NewClient(ctx context.Context, rpcURL string, timeout time.Duration) (*Client, error) {
	if rpcURL == "" {
		return nil, fmt.Errorf("rpc url is required")
	}
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}

	return &Client{
		rpcClient: rpcClient,
		ethClient: ethclient.NewClient(rpcClient),
		timeout:   timeout,
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// Call performs eth_call and returns the raw hex result. A null result is
// returned as the empty string.
func (c *Client) Call(ctx context.Context, to common.Address, data codec.Call, block model.BlockRef) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	msg := map[string]interface{}{
		"to":   to,
		"data": data.Hex(),
	}

	var result *string
	if err := c.rpcClient.CallContext(callCtx, &result, "eth_call", msg, block.String()); err != nil {
		return "", classify(err, "eth_call %s %s", to.Hex(), data.Selector().Hex())
	}
	if result == nil {
		return "", nil
	}
	return *result, nil
}

// Status reports the node head, peer count and sync progress.
func (c *Client) Status(ctx context.Context) (model.NodeStatus, error) {
	var status model.NodeStatus

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	head, err := c.ethClient.BlockNumber(callCtx)
	cancel()
	if err != nil {
		return status, classify(err, "eth_blockNumber")
	}
	status.Head = head

	callCtx, cancel = context.WithTimeout(ctx, c.timeout)
	progress, err := c.ethClient.SyncProgress(callCtx)
	cancel()
	if err != nil {
		return status, classify(err, "eth_syncing")
	}
	if progress != nil {
		status.Syncing = true
		status.CurrentBlock = progress.CurrentBlock
		status.HighestBlock = progress.HighestBlock
		status.SyncedAccounts = progress.SyncedAccounts
		status.SyncedStorage = progress.SyncedStorage
		status.SyncedBytecodes = progress.SyncedBytecodes
		status.HealedTrienodes = progress.HealedTrienodes
	}

	// Public endpoints often disable the net namespace, so peers stay zero.
	callCtx, cancel = context.WithTimeout(ctx, c.timeout)
	var peers hexutil.Uint64
	if err := c.rpcClient.CallContext(callCtx, &peers, "net_peerCount"); err == nil {
		status.Peers = uint64(peers)
	}
	cancel()

	return status, nil
}

func classify(err error, format string, args ...interface{}) error {
	op := fmt.Sprintf(format, args...)
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return fmt.Errorf("%w: %s: %v", ErrCallFailed, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrTransportFailure, op, err)
}
