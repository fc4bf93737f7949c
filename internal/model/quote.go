package model

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// PoolKind names the AMM design a quote was read from.
type PoolKind string

const (
	// ConstantProduct pools price from the ratio of two reserves.
	ConstantProduct PoolKind = "v2"
	// Concentrated pools store a Q96 square-root price.
	Concentrated PoolKind = "v3"
)

// PriceDigits is the number of fractional digits prices are reported with.
const PriceDigits = 8

// PoolQuote is the result of one price computation.
//
// For constant-product quotes TokenA is the priced token and TokenB the base
// token it is priced in. For concentrated quotes they are token0 and token1.
type PoolQuote struct {
	Kind   PoolKind
	Block  BlockRef
	Pool   string
	TokenA Token
	TokenB Token

	// Constant-product only, in TokenA/TokenB order.
	ReserveA *big.Int
	ReserveB *big.Int

	// Concentrated only.
	SqrtPriceX96 *big.Int

	// PriceAInB is the amount of TokenB one TokenA is worth.
	PriceAInB decimal.Decimal
	// PriceBInA is the amount of TokenA one TokenB is worth.
	PriceBInA decimal.Decimal
}

// HumanReserves scales the raw reserves by token decimals.
func (q PoolQuote) HumanReserves() (decimal.Decimal, decimal.Decimal) {
	return scaleAmount(q.ReserveA, q.TokenA.Decimals), scaleAmount(q.ReserveB, q.TokenB.Decimals)
}

func scaleAmount(value *big.Int, decimals uint8) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(value, -int32(decimals))
}
