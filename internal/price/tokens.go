package price

import "strings"

// BSC mainnet addresses used as defaults.
const (
	PancakeV2Factory = "0xcA143Ce32Fe78f1f7019d7d551a6402fC5350c73"
	WBNB             = "0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c"
	USDT             = "0x55d398326f99059fF775485246999027B3197955"
	BUSD             = "0xe9e7CEA3DedcA5984780Bafc599bD69ADd087D56"
)

// DefaultKnownSymbols returns display symbols used when symbol() cannot be read.
func DefaultKnownSymbols() map[string]string {
	return map[string]string{
		strings.ToLower(WBNB): "WBNB",
		strings.ToLower(USDT): "USDT",
		strings.ToLower(BUSD): "BUSD",
	}
}
