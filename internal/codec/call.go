package codec

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Selector identifies a contract view function.
type Selector [4]byte

// Selectors for the view functions the price probe reads.
var (
	SelectorGetPair     = Selector{0xe6, 0xa4, 0x39, 0x05} // getPair(address,address)
	SelectorGetReserves = Selector{0x09, 0x02, 0xf1, 0xac} // getReserves()
	SelectorToken0      = Selector{0x0d, 0xfe, 0x16, 0x81} // token0()
	SelectorToken1      = Selector{0xd2, 0x12, 0x20, 0xa7} // token1()
	SelectorDecimals    = Selector{0x31, 0x3c, 0xe5, 0x67} // decimals()
	SelectorSymbol      = Selector{0x95, 0xd8, 0x9b, 0x41} // symbol()
	SelectorSlot0       = Selector{0x38, 0x50, 0xc7, 0xbd} // slot0()
)

// Hex returns the selector as 0x-prefixed hex.
func (s Selector) Hex() string {
	return "0x" + hex.EncodeToString(s[:])
}

// Call is an encoded contract call: selector followed by argument words.
type Call struct {
	data []byte
}

// NewCall builds the calldata for a selector and its arguments.
func NewCall(sel Selector, args ...Word) Call {
	data := make([]byte, 0, len(sel)+len(args)*WordSize)
	data = append(data, sel[:]...)
	for _, arg := range args {
		data = append(data, arg[:]...)
	}
	return Call{data: data}
}

// Selector returns the function selector of the call.
func (c Call) Selector() Selector {
	var sel Selector
	copy(sel[:], c.data)
	return sel
}

// Bytes returns a copy of the calldata.
func (c Call) Bytes() []byte {
	out := make([]byte, len(c.data))
	copy(out, c.data)
	return out
}

// Hex returns the calldata as 0x-prefixed hex.
func (c Call) Hex() string {
	return hexutil.Encode(c.data)
}
