package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
)

func TestSelectorsMatchSignatures(t *testing.T) {
	cases := map[string]Selector{
		"getPair(address,address)": SelectorGetPair,
		"getReserves()":            SelectorGetReserves,
		"token0()":                 SelectorToken0,
		"token1()":                 SelectorToken1,
		"decimals()":               SelectorDecimals,
		"symbol()":                 SelectorSymbol,
		"slot0()":                  SelectorSlot0,
	}
	for signature, sel := range cases {
		var want Selector
		copy(want[:], crypto.Keccak256([]byte(signature))[:4])
		if sel != want {
			t.Fatalf("%s: selector %s, want %s", signature, sel.Hex(), want.Hex())
		}
	}
}

func TestAddressRoundTrip(t *testing.T) {
	inputs := []string{
		"0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c",
		"55d398326f99059fF775485246999027B3197955",
		"0X0000000000000000000000000000000000000001",
	}
	for _, input := range inputs {
		word, err := EncodeAddress(input)
		if err != nil {
			t.Fatalf("encode %s: %v", input, err)
		}
		if !strings.HasPrefix(word.Hex(), strings.Repeat("0", 24)) {
			t.Fatalf("word not left padded: %s", word.Hex())
		}

		addr, err := DecodeAddress("0x" + word.Hex())
		if err != nil {
			t.Fatalf("decode %s: %v", input, err)
		}

		want := strings.ToLower(input)
		if !strings.HasPrefix(want, "0x") {
			want = "0x" + want
		}
		if got := strings.ToLower(addr.Hex()); got != want {
			t.Fatalf("round trip mismatch: %s != %s", got, want)
		}
	}
}

func TestEncodeAddressInvalid(t *testing.T) {
	inputs := []string{
		"",
		"0x",
		"0x1234",
		"0xzz4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c",
		"0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c00",
	}
	for _, input := range inputs {
		if _, err := EncodeAddress(input); !errors.Is(err, ErrInvalidAddress) {
			t.Fatalf("expected ErrInvalidAddress for %q, got %v", input, err)
		}
	}
}

func TestDecodeAddressLenient(t *testing.T) {
	if _, err := DecodeAddress("0x1234"); !errors.Is(err, ErrMalformedWord) {
		t.Fatalf("expected ErrMalformedWord, got %v", err)
	}
	if _, err := DecodeAddress(""); !errors.Is(err, ErrMalformedWord) {
		t.Fatalf("expected ErrMalformedWord for empty result, got %v", err)
	}

	// Shorter than a full word but above the floor is read as a truncated word.
	addr, err := DecodeAddress("0x" + strings.Repeat("0", 20) + "abcd")
	if err != nil {
		t.Fatalf("decode short result: %v", err)
	}
	if got := strings.ToLower(addr.Hex()); got != "0x000000000000000000000000000000000000abcd" {
		t.Fatalf("unexpected address: %s", got)
	}

	if _, err := DecodeAddress("0x" + strings.Repeat("g", 64)); !errors.Is(err, ErrMalformedWord) {
		t.Fatalf("expected ErrMalformedWord for non-hex, got %v", err)
	}
}

func TestDecodeUintEmpty(t *testing.T) {
	for _, raw := range []string{"", "0x"} {
		value, err := DecodeUint(raw)
		if err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
		if value.Sign() != 0 {
			t.Fatalf("expected zero for %q, got %s", raw, value)
		}
	}
}

func TestDecodeUint(t *testing.T) {
	value, err := DecodeUint("0x0000000000000000000000000000000000000000000000000000000000000012")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if value.Int64() != 18 {
		t.Fatalf("expected 18, got %s", value)
	}

	if _, err := DecodeUint("0xnothex"); !errors.Is(err, ErrMalformedWord) {
		t.Fatalf("expected ErrMalformedWord, got %v", err)
	}
	if _, err := DecodeUint("-1"); !errors.Is(err, ErrMalformedWord) {
		t.Fatalf("expected ErrMalformedWord for signed input, got %v", err)
	}
}

func TestWordAt(t *testing.T) {
	raw := "0x" + strings.Repeat("1", 64) + strings.Repeat("2", 64) + "33"
	if WordCount(raw) != 2 {
		t.Fatalf("expected 2 words, got %d", WordCount(raw))
	}
	w, ok := WordAt(raw, 1)
	if !ok || w != strings.Repeat("2", 64) {
		t.Fatalf("unexpected second word: %q %v", w, ok)
	}
	if _, ok := WordAt(raw, 2); ok {
		t.Fatalf("partial word must not be returned")
	}
	if _, ok := WordAt(raw, -1); ok {
		t.Fatalf("negative index must not be returned")
	}
}

func TestNewCall(t *testing.T) {
	a, err := EncodeAddress("0x1111111111111111111111111111111111111111")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	b, err := EncodeAddress("0x2222222222222222222222222222222222222222")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	call := NewCall(SelectorGetPair, a, b)
	want := "0xe6a43905" + a.Hex() + b.Hex()
	if call.Hex() != want {
		t.Fatalf("calldata mismatch:\n%s\n%s", call.Hex(), want)
	}
	if call.Selector() != SelectorGetPair {
		t.Fatalf("selector mismatch")
	}

	data := call.Bytes()
	data[0] = 0
	if call.Selector() != SelectorGetPair {
		t.Fatalf("call mutated through Bytes")
	}

	if got := NewCall(SelectorDecimals).Hex(); got != "0x313ce567" {
		t.Fatalf("unexpected no-arg calldata: %s", got)
	}
}
