package model

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Token describes an ERC20 token as shown in a quote.
type Token struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// LowerHex returns the canonical lowercase 0x form of an address.
func LowerHex(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}
