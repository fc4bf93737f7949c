package price

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/KAY53N/bsc-node/internal/model"
)

// q192 is 2^192, the scale of a squared Q96 value.
var q192 = new(big.Int).Lsh(big.NewInt(1), 192)

func pow10(n uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// reserveRatio returns (numReserve / 10^numDecimals) / (denReserve / 10^denDecimals).
// denReserve must be non-zero.
func reserveRatio(numReserve *big.Int, numDecimals uint8, denReserve *big.Int, denDecimals uint8) *big.Rat {
	num := new(big.Int).Mul(numReserve, pow10(denDecimals))
	den := new(big.Int).Mul(denReserve, pow10(numDecimals))
	return new(big.Rat).SetFrac(num, den)
}

// sqrtPriceRatio converts a Q96 square-root price to token1 per token0,
// adjusted for token decimals: (sqrtPriceX96 / 2^96)^2 * 10^(decimals0 - decimals1).
func sqrtPriceRatio(sqrtPriceX96 *big.Int, decimals0, decimals1 uint8) *big.Rat {
	num := new(big.Int).Mul(sqrtPriceX96, sqrtPriceX96)
	num.Mul(num, pow10(decimals0))
	den := new(big.Int).Mul(q192, pow10(decimals1))
	return new(big.Rat).SetFrac(num, den)
}

// reciprocal returns 1/r, or zero when r is zero.
func reciprocal(r *big.Rat) *big.Rat {
	if r.Sign() == 0 {
		return new(big.Rat)
	}
	return new(big.Rat).Inv(r)
}

func toDecimal(r *big.Rat) decimal.Decimal {
	return decimal.RequireFromString(r.FloatString(model.PriceDigits))
}
