package codec

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// WordSize is the size of one ABI word in bytes.
const WordSize = 32

const (
	wordHexLen    = WordSize * 2
	addressHexLen = common.AddressLength * 2
	// minAddressResultLen is the shortest raw result accepted by DecodeAddress.
	// Shorter results come from reverted calls or nodes without the state.
	minAddressResultLen = 26
)

var (
	// ErrInvalidAddress is returned for input that is not 40 hex digits.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrMalformedWord is returned when a call result cannot hold the expected value.
	ErrMalformedWord = errors.New("malformed abi word")
)

// Word is a single 32-byte ABI word.
type Word [WordSize]byte

// Hex returns the word as 64 hex digits without prefix.
func (w Word) Hex() string {
	return hex.EncodeToString(w[:])
}

// ParseAddress validates and case-folds a hex address with optional 0x prefix.
func ParseAddress(input string) (common.Address, error) {
	digits := strip0x(strings.TrimSpace(input))
	if len(digits) != addressHexLen {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, input)
	}
	raw, err := hex.DecodeString(strings.ToLower(digits))
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, input)
	}
	return common.BytesToAddress(raw), nil
}

// EncodeAddress left-pads an address to a full argument word.
func EncodeAddress(input string) (Word, error) {
	addr, err := ParseAddress(input)
	if err != nil {
		return Word{}, err
	}
	return AddressWord(addr), nil
}

// AddressWord left-pads an already parsed address to a full argument word.
func AddressWord(addr common.Address) Word {
	var w Word
	copy(w[WordSize-common.AddressLength:], addr.Bytes())
	return w
}

// DecodeAddress reads the low-order 20 bytes of a result word.
func DecodeAddress(raw string) (common.Address, error) {
	if len(raw) < minAddressResultLen {
		return common.Address{}, fmt.Errorf("%w: address result too short (%d chars)", ErrMalformedWord, len(raw))
	}
	digits := strip0x(raw)
	if len(digits) > addressHexLen {
		digits = digits[len(digits)-addressHexLen:]
	} else if len(digits) < addressHexLen {
		digits = strings.Repeat("0", addressHexLen-len(digits)) + digits
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrMalformedWord, err)
	}
	return common.BytesToAddress(b), nil
}

// DecodeUint interprets a result as a big-endian unsigned integer.
// An empty result ("" or "0x") decodes to zero.
func DecodeUint(raw string) (*big.Int, error) {
	digits := strip0x(raw)
	if digits == "" {
		return new(big.Int), nil
	}
	value, ok := new(big.Int).SetString(digits, 16)
	if !ok || value.Sign() < 0 {
		return nil, fmt.Errorf("%w: not an unsigned hex integer", ErrMalformedWord)
	}
	return value, nil
}

// WordAt returns the i-th 64-digit word of a raw result.
func WordAt(raw string, i int) (string, bool) {
	digits := strip0x(raw)
	start := i * wordHexLen
	if i < 0 || len(digits) < start+wordHexLen {
		return "", false
	}
	return digits[start : start+wordHexLen], true
}

// WordCount returns the number of complete words in a raw result.
func WordCount(raw string) int {
	return len(strip0x(raw)) / wordHexLen
}

func strip0x(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
