package price

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/KAY53N/bsc-node/internal/codec"
	"github.com/KAY53N/bsc-node/internal/contract"
	"github.com/KAY53N/bsc-node/internal/model"
)

var (
	ErrPriceUnavailable = errors.New("price unavailable")
	ErrZeroLiquidity    = errors.New("zero liquidity")
	ErrZeroPrice        = errors.New("pool price is zero")
)

// Config holds resolver settings.
type Config struct {
	// Factory is the V2 factory used for pair lookups.
	Factory common.Address
	// KnownSymbols maps lowercase token addresses to display symbols used
	// when symbol() cannot be read.
	KnownSymbols map[string]string
}

// Resolver computes token prices from AMM pool state.
type Resolver struct {
	reader *contract.Reader
	cfg    Config
	logger *zap.Logger
}

// NewResolver builds a Resolver reading through reader.
func NewResolver(reader *contract.Reader, cfg Config, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{reader: reader, cfg: cfg, logger: logger}
}

// ResolvePair prices target in units of base using the V2 pair of the two
// tokens. Every read uses block; pass a fixed height for a consistent quote.
func (r *Resolver) ResolvePair(ctx context.Context, target, base string, block model.BlockRef) (model.PoolQuote, error) {
	targetAddr, err := codec.ParseAddress(target)
	if err != nil {
		return model.PoolQuote{}, fmt.Errorf("target token: %w", err)
	}
	baseAddr, err := codec.ParseAddress(base)
	if err != nil {
		return model.PoolQuote{}, fmt.Errorf("base token: %w", err)
	}

	r.logger.Debug("lookup pair",
		zap.String("factory", model.LowerHex(r.cfg.Factory)),
		zap.String("target", model.LowerHex(targetAddr)),
		zap.String("base", model.LowerHex(baseAddr)),
		zap.String("block", block.Label()),
	)

	pair, err := r.reader.LookupPair(ctx, r.cfg.Factory, targetAddr, baseAddr, block)
	if err != nil {
		return model.PoolQuote{}, err
	}

	reserve0, reserve1, err := r.reader.Reserves(ctx, pair, block)
	if err != nil {
		return model.PoolQuote{}, err
	}

	token0, err := r.reader.Token0(ctx, pair, block)
	if err != nil {
		return model.PoolQuote{}, err
	}

	// A pair holds exactly two tokens, so whichever slot is not the target's
	// belongs to the base token.
	targetReserve, baseReserve := reserve1, reserve0
	if model.LowerHex(token0) == model.LowerHex(targetAddr) {
		targetReserve, baseReserve = reserve0, reserve1
	}

	targetDecimals := r.reader.Decimals(ctx, targetAddr, block)
	baseDecimals := r.reader.Decimals(ctx, baseAddr, block)

	if targetReserve.Sign() == 0 {
		return model.PoolQuote{}, fmt.Errorf("%w: pair %s", ErrZeroLiquidity, model.LowerHex(pair))
	}

	r.logger.Debug("pair state",
		zap.String("pair", model.LowerHex(pair)),
		zap.String("token0", model.LowerHex(token0)),
		zap.String("target_reserve", targetReserve.String()),
		zap.String("base_reserve", baseReserve.String()),
		zap.Uint8("target_decimals", targetDecimals),
		zap.Uint8("base_decimals", baseDecimals),
	)

	basePerTarget := reserveRatio(baseReserve, baseDecimals, targetReserve, targetDecimals)

	return model.PoolQuote{
		Kind:  model.ConstantProduct,
		Block: block,
		Pool:  model.LowerHex(pair),
		TokenA: model.Token{
			Address:  model.LowerHex(targetAddr),
			Symbol:   r.symbol(ctx, targetAddr, block),
			Decimals: targetDecimals,
		},
		TokenB: model.Token{
			Address:  model.LowerHex(baseAddr),
			Symbol:   r.symbol(ctx, baseAddr, block),
			Decimals: baseDecimals,
		},
		ReserveA:  targetReserve,
		ReserveB:  baseReserve,
		PriceAInB: toDecimal(basePerTarget),
		PriceBInA: toDecimal(reciprocal(basePerTarget)),
	}, nil
}

// ResolvePool prices token0 and token1 of a V3 pool against each other from
// its slot0 square-root price.
func (r *Resolver) ResolvePool(ctx context.Context, pool string, block model.BlockRef) (model.PoolQuote, error) {
	poolAddr, err := codec.ParseAddress(pool)
	if err != nil {
		return model.PoolQuote{}, fmt.Errorf("pool: %w", err)
	}

	r.logger.Debug("fetch pool", zap.String("pool", model.LowerHex(poolAddr)), zap.String("block", block.Label()))

	token0, err := r.reader.Token0(ctx, poolAddr, block)
	if err != nil {
		return model.PoolQuote{}, err
	}
	token1, err := r.reader.Token1(ctx, poolAddr, block)
	if err != nil {
		return model.PoolQuote{}, err
	}

	symbol0 := r.symbol(ctx, token0, block)
	symbol1 := r.symbol(ctx, token1, block)
	decimals0 := r.reader.Decimals(ctx, token0, block)
	decimals1 := r.reader.Decimals(ctx, token1, block)

	sqrtPriceX96, err := r.reader.Slot0(ctx, poolAddr, block)
	if err != nil {
		return model.PoolQuote{}, fmt.Errorf("%w: %w", ErrPriceUnavailable, err)
	}
	if sqrtPriceX96.Sign() == 0 {
		return model.PoolQuote{}, fmt.Errorf("%w: pool %s", ErrZeroPrice, model.LowerHex(poolAddr))
	}

	r.logger.Debug("pool state",
		zap.String("pool", model.LowerHex(poolAddr)),
		zap.String("sqrt_price_x96", sqrtPriceX96.String()),
		zap.Uint8("decimals0", decimals0),
		zap.Uint8("decimals1", decimals1),
	)

	price1Per0 := sqrtPriceRatio(sqrtPriceX96, decimals0, decimals1)

	return model.PoolQuote{
		Kind:         model.Concentrated,
		Block:        block,
		Pool:         model.LowerHex(poolAddr),
		TokenA:       model.Token{Address: model.LowerHex(token0), Symbol: symbol0, Decimals: decimals0},
		TokenB:       model.Token{Address: model.LowerHex(token1), Symbol: symbol1, Decimals: decimals1},
		SqrtPriceX96: sqrtPriceX96,
		PriceAInB:    toDecimal(price1Per0),
		PriceBInA:    toDecimal(reciprocal(price1Per0)),
	}, nil
}

func (r *Resolver) symbol(ctx context.Context, token common.Address, block model.BlockRef) string {
	symbol := r.reader.Symbol(ctx, token, block)
	if symbol != codec.UnknownText {
		return symbol
	}
	if known, ok := r.cfg.KnownSymbols[strings.ToLower(token.Hex())]; ok {
		return known
	}
	return symbol
}
