package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/KAY53N/bsc-node/internal/codec"
	"github.com/KAY53N/bsc-node/internal/model"
)

// DefaultDecimals is assumed for tokens whose decimals() cannot be read.
const DefaultDecimals uint8 = 18

var (
	ErrPairNotFound            = errors.New("pair not found")
	ErrReservesUnavailable     = errors.New("reserves unavailable")
	ErrTokenAddressUnavailable = errors.New("token address unavailable")
	ErrPriceStateUnavailable   = errors.New("price state unavailable")
)

// Caller executes a read-only contract call and returns the raw hex result.
// An empty result means the call produced no data.
type Caller interface {
	Call(ctx context.Context, to common.Address, data codec.Call, block model.BlockRef) (string, error)
}

// Reader reads AMM and ERC20 view functions through a Caller.
type Reader struct {
	caller Caller
	logger *zap.Logger
}

// NewReader builds a Reader on top of caller.
func NewReader(caller Caller, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{caller: caller, logger: logger}
}

// LookupPair asks a V2 factory for the pair of tokenA and tokenB. A missing
// or zero-address pair yields ErrPairNotFound.
func (r *Reader) LookupPair(ctx context.Context, factory, tokenA, tokenB common.Address, block model.BlockRef) (common.Address, error) {
	call := codec.NewCall(codec.SelectorGetPair, codec.AddressWord(tokenA), codec.AddressWord(tokenB))
	raw, err := r.call(ctx, factory, call, block)
	if isEmpty(raw) {
		return common.Address{}, absent(ErrPairNotFound, err)
	}

	pair, err := codec.DecodeAddress(raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("getPair: %w", err)
	}
	if pair == (common.Address{}) {
		return common.Address{}, ErrPairNotFound
	}
	return pair, nil
}

// Reserves returns reserve0 and reserve1 of a V2 pair.
func (r *Reader) Reserves(ctx context.Context, pair common.Address, block model.BlockRef) (*big.Int, *big.Int, error) {
	raw, err := r.call(ctx, pair, codec.NewCall(codec.SelectorGetReserves), block)
	word0, ok0 := codec.WordAt(raw, 0)
	word1, ok1 := codec.WordAt(raw, 1)
	if !ok0 || !ok1 {
		return nil, nil, absent(ErrReservesUnavailable, err)
	}

	reserve0, err := codec.DecodeUint(word0)
	if err != nil {
		return nil, nil, fmt.Errorf("getReserves reserve0: %w", err)
	}
	reserve1, err := codec.DecodeUint(word1)
	if err != nil {
		return nil, nil, fmt.Errorf("getReserves reserve1: %w", err)
	}
	return reserve0, reserve1, nil
}

// Token0 returns the first token of a pair or pool.
func (r *Reader) Token0(ctx context.Context, pool common.Address, block model.BlockRef) (common.Address, error) {
	return r.tokenAddress(ctx, pool, codec.SelectorToken0, "token0", block)
}

// Token1 returns the second token of a pair or pool.
func (r *Reader) Token1(ctx context.Context, pool common.Address, block model.BlockRef) (common.Address, error) {
	return r.tokenAddress(ctx, pool, codec.SelectorToken1, "token1", block)
}

func (r *Reader) tokenAddress(ctx context.Context, pool common.Address, sel codec.Selector, name string, block model.BlockRef) (common.Address, error) {
	raw, err := r.call(ctx, pool, codec.NewCall(sel), block)
	if isEmpty(raw) {
		return common.Address{}, fmt.Errorf("%s: %w", name, absent(ErrTokenAddressUnavailable, err))
	}
	addr, err := codec.DecodeAddress(raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("%s: %w", name, err)
	}
	return addr, nil
}

// Decimals returns the token's decimals, or DefaultDecimals when the call
// fails or returns something that is not a uint8.
func (r *Reader) Decimals(ctx context.Context, token common.Address, block model.BlockRef) uint8 {
	raw, err := r.call(ctx, token, codec.NewCall(codec.SelectorDecimals), block)
	if isEmpty(raw) {
		r.logger.Debug("decimals unavailable, using default",
			zap.String("token", model.LowerHex(token)),
			zap.Uint8("default", DefaultDecimals),
			zap.Error(err),
		)
		return DefaultDecimals
	}

	value, err := codec.DecodeUint(raw)
	if err != nil || !value.IsUint64() || value.Uint64() > 255 {
		r.logger.Debug("decimals malformed, using default",
			zap.String("token", model.LowerHex(token)),
			zap.String("raw", raw),
		)
		return DefaultDecimals
	}
	return uint8(value.Uint64())
}

// Symbol returns the token's symbol, or codec.UnknownText.
func (r *Reader) Symbol(ctx context.Context, token common.Address, block model.BlockRef) string {
	raw, err := r.call(ctx, token, codec.NewCall(codec.SelectorSymbol), block)
	if isEmpty(raw) {
		r.logger.Debug("symbol unavailable", zap.String("token", model.LowerHex(token)), zap.Error(err))
		return codec.UnknownText
	}
	return codec.DecodeString(raw)
}

// Slot0 returns sqrtPriceX96, the first field of a V3 pool's slot0.
func (r *Reader) Slot0(ctx context.Context, pool common.Address, block model.BlockRef) (*big.Int, error) {
	raw, err := r.call(ctx, pool, codec.NewCall(codec.SelectorSlot0), block)
	word, ok := codec.WordAt(raw, 0)
	if !ok {
		return nil, absent(ErrPriceStateUnavailable, err)
	}
	sqrtPrice, err := codec.DecodeUint(word)
	if err != nil {
		return nil, fmt.Errorf("slot0: %w", err)
	}
	return sqrtPrice, nil
}

// call runs a single contract call. A gateway error is reported together
// with an empty result so every caller applies its no-data policy.
func (r *Reader) call(ctx context.Context, to common.Address, data codec.Call, block model.BlockRef) (string, error) {
	raw, err := r.caller.Call(ctx, to, data, block)
	if err != nil {
		r.logger.Debug("contract call failed",
			zap.String("to", model.LowerHex(to)),
			zap.String("selector", data.Selector().Hex()),
			zap.String("block", block.String()),
			zap.Error(err),
		)
		return "", err
	}
	return raw, nil
}

func isEmpty(raw string) bool {
	return raw == "" || raw == "0x"
}

// absent returns kind, carrying the gateway error along when there was one.
func absent(kind error, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}
