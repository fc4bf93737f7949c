package codec

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"unicode"
	"unicode/utf8"
)

// UnknownText is returned when a text result cannot be decoded.
const UnknownText = "?"

// DecodeString decodes a symbol-style text result. A result shaped as
// offset 32, length, payload is decoded from its payload; anything else is
// read as raw bytes with trailing NULs trimmed, which also covers bytes32
// symbols. It never fails: undecodable input yields UnknownText.
func DecodeString(raw string) string {
	digits := strip0x(raw)
	if digits == "" {
		return UnknownText
	}

	if text, ok := decodeDynamicString(digits); ok {
		return text
	}

	b, err := hex.DecodeString(digits)
	if err != nil {
		return UnknownText
	}
	b = bytes.TrimRight(b, "\x00")
	if len(b) == 0 || !utf8.Valid(b) || !printable(b) {
		return UnknownText
	}
	return string(b)
}

// decodeDynamicString handles the single-value dynamic string layout. The
// second return is false when the layout does not match, so the caller can
// fall back to the raw reading.
func decodeDynamicString(digits string) (string, bool) {
	offsetWord, ok := WordAt(digits, 0)
	if !ok {
		return "", false
	}
	offset, ok := new(big.Int).SetString(offsetWord, 16)
	if !ok || offset.Cmp(big.NewInt(WordSize)) != 0 {
		return "", false
	}

	lengthWord, ok := WordAt(digits, 1)
	if !ok {
		return "", false
	}
	length, ok := new(big.Int).SetString(lengthWord, 16)
	if !ok || !length.IsInt64() {
		return "", false
	}
	start := 2 * wordHexLen
	end := start + int(length.Int64())*2
	if length.Int64() > int64(len(digits)) || end > len(digits) {
		return "", false
	}

	b, err := hex.DecodeString(digits[start:end])
	if err != nil || len(b) == 0 || !utf8.Valid(b) {
		return UnknownText, true
	}
	return string(b), true
}

func printable(b []byte) bool {
	for _, r := range string(b) {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
