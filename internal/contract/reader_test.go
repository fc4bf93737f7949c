package contract

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KAY53N/bsc-node/internal/chain"
	"github.com/KAY53N/bsc-node/internal/codec"
	"github.com/KAY53N/bsc-node/internal/model"
)

type recordedCall struct {
	to    common.Address
	data  string
	block string
}

// stubCaller returns canned results keyed by target address and selector.
type stubCaller struct {
	results map[string]string
	errs    map[string]error
	calls   []recordedCall
}

func newStubCaller() *stubCaller {
	return &stubCaller{results: map[string]string{}, errs: map[string]error{}}
}

func stubKey(to common.Address, sel codec.Selector) string {
	return model.LowerHex(to) + sel.Hex()
}

func (s *stubCaller) set(to common.Address, sel codec.Selector, raw string) {
	s.results[stubKey(to, sel)] = raw
}

func (s *stubCaller) fail(to common.Address, sel codec.Selector, err error) {
	s.errs[stubKey(to, sel)] = err
}

func (s *stubCaller) Call(_ context.Context, to common.Address, data codec.Call, block model.BlockRef) (string, error) {
	s.calls = append(s.calls, recordedCall{to: to, data: data.Hex(), block: block.String()})
	key := stubKey(to, data.Selector())
	if err, ok := s.errs[key]; ok {
		return "", err
	}
	return s.results[key], nil
}

func word(v *big.Int) string {
	return fmt.Sprintf("%064x", v)
}

func addrWord(addr common.Address) string {
	return codec.AddressWord(addr).Hex()
}

var (
	factory = common.HexToAddress("0xcA143Ce32Fe78f1f7019d7d551a6402fC5350c73")
	tokenA  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	tokenB  = common.HexToAddress("0x2222222222222222222222222222222222222222")
	pair    = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func TestLookupPair(t *testing.T) {
	caller := newStubCaller()
	caller.set(factory, codec.SelectorGetPair, "0x"+addrWord(pair))
	reader := NewReader(caller, zap.NewNop())

	got, err := reader.LookupPair(context.Background(), factory, tokenA, tokenB, model.AtHeight(100))
	require.NoError(t, err)
	require.Equal(t, pair, got)

	require.Len(t, caller.calls, 1)
	require.Equal(t, "0xe6a43905"+addrWord(tokenA)+addrWord(tokenB), caller.calls[0].data)
	require.Equal(t, "0x64", caller.calls[0].block)
}

func TestLookupPairZeroAddressIsNotFound(t *testing.T) {
	for _, raw := range []string{"", "0x", "0x" + strings.Repeat("0", 64)} {
		caller := newStubCaller()
		caller.set(factory, codec.SelectorGetPair, raw)
		reader := NewReader(caller, nil)

		_, err := reader.LookupPair(context.Background(), factory, tokenA, tokenB, model.Latest)
		require.ErrorIs(t, err, ErrPairNotFound, "raw %q", raw)
	}
}

func TestLookupPairTransportFailure(t *testing.T) {
	caller := newStubCaller()
	caller.fail(factory, codec.SelectorGetPair, fmt.Errorf("%w: dial tcp: connection refused", chain.ErrTransportFailure))
	reader := NewReader(caller, nil)

	_, err := reader.LookupPair(context.Background(), factory, tokenA, tokenB, model.Latest)
	require.ErrorIs(t, err, ErrPairNotFound)
	require.ErrorIs(t, err, chain.ErrTransportFailure)
}

func TestReserves(t *testing.T) {
	caller := newStubCaller()
	// reserve0, reserve1, blockTimestampLast
	caller.set(pair, codec.SelectorGetReserves, "0x"+word(big.NewInt(1000))+word(big.NewInt(2000))+word(big.NewInt(1700000000)))
	reader := NewReader(caller, nil)

	r0, r1, err := reader.Reserves(context.Background(), pair, model.Latest)
	require.NoError(t, err)
	require.Equal(t, int64(1000), r0.Int64())
	require.Equal(t, int64(2000), r1.Int64())
}

func TestReservesShortResult(t *testing.T) {
	for _, raw := range []string{"", "0x", "0x" + word(big.NewInt(5))} {
		caller := newStubCaller()
		caller.set(pair, codec.SelectorGetReserves, raw)
		reader := NewReader(caller, nil)

		_, _, err := reader.Reserves(context.Background(), pair, model.Latest)
		require.ErrorIs(t, err, ErrReservesUnavailable, "raw %q", raw)
	}
}

func TestToken0Token1(t *testing.T) {
	caller := newStubCaller()
	caller.set(pair, codec.SelectorToken0, "0x"+addrWord(tokenA))
	caller.set(pair, codec.SelectorToken1, "0x"+addrWord(tokenB))
	reader := NewReader(caller, nil)

	t0, err := reader.Token0(context.Background(), pair, model.Latest)
	require.NoError(t, err)
	require.Equal(t, tokenA, t0)

	t1, err := reader.Token1(context.Background(), pair, model.Latest)
	require.NoError(t, err)
	require.Equal(t, tokenB, t1)
}

func TestTokenAddressUnavailable(t *testing.T) {
	reader := NewReader(newStubCaller(), nil)

	_, err := reader.Token0(context.Background(), pair, model.Latest)
	require.ErrorIs(t, err, ErrTokenAddressUnavailable)
	_, err = reader.Token1(context.Background(), pair, model.Latest)
	require.ErrorIs(t, err, ErrTokenAddressUnavailable)
}

func TestTokenAddressMalformed(t *testing.T) {
	caller := newStubCaller()
	caller.set(pair, codec.SelectorToken0, "0xdead")
	reader := NewReader(caller, nil)

	_, err := reader.Token0(context.Background(), pair, model.Latest)
	require.ErrorIs(t, err, codec.ErrMalformedWord)
}

func TestDecimals(t *testing.T) {
	caller := newStubCaller()
	caller.set(tokenA, codec.SelectorDecimals, "0x"+word(big.NewInt(6)))
	reader := NewReader(caller, nil)

	require.Equal(t, uint8(6), reader.Decimals(context.Background(), tokenA, model.Latest))
}

func TestDecimalsDefaults(t *testing.T) {
	cases := map[string]func(*stubCaller){
		"no data":   func(s *stubCaller) { s.set(tokenA, codec.SelectorDecimals, "0x") },
		"empty":     func(s *stubCaller) {},
		"reverted":  func(s *stubCaller) { s.fail(tokenA, codec.SelectorDecimals, chain.ErrCallFailed) },
		"too large": func(s *stubCaller) { s.set(tokenA, codec.SelectorDecimals, "0x"+word(big.NewInt(256))) },
		"not hex":   func(s *stubCaller) { s.set(tokenA, codec.SelectorDecimals, "0xzz") },
	}
	for name, setup := range cases {
		caller := newStubCaller()
		setup(caller)
		reader := NewReader(caller, nil)
		require.Equal(t, DefaultDecimals, reader.Decimals(context.Background(), tokenA, model.Latest), name)
	}
}

func TestSymbol(t *testing.T) {
	caller := newStubCaller()
	caller.set(tokenA, codec.SelectorSymbol, "0x"+word(big.NewInt(32))+word(big.NewInt(4))+"55534454"+strings.Repeat("0", 56))
	caller.fail(tokenB, codec.SelectorSymbol, chain.ErrCallFailed)
	reader := NewReader(caller, nil)

	require.Equal(t, "USDT", reader.Symbol(context.Background(), tokenA, model.Latest))
	require.Equal(t, codec.UnknownText, reader.Symbol(context.Background(), tokenB, model.Latest))
}

func TestSlot0(t *testing.T) {
	sqrtPrice := new(big.Int).Lsh(big.NewInt(1), 96)
	caller := newStubCaller()
	// sqrtPriceX96, tick, and the remaining slot0 fields
	caller.set(pair, codec.SelectorSlot0, "0x"+word(sqrtPrice)+word(big.NewInt(0))+strings.Repeat("0", 64*5))
	reader := NewReader(caller, nil)

	got, err := reader.Slot0(context.Background(), pair, model.Latest)
	require.NoError(t, err)
	require.Equal(t, 0, sqrtPrice.Cmp(got))
}

func TestSlot0Unavailable(t *testing.T) {
	for _, raw := range []string{"", "0x", "0x1234"} {
		caller := newStubCaller()
		caller.set(pair, codec.SelectorSlot0, raw)
		reader := NewReader(caller, nil)

		_, err := reader.Slot0(context.Background(), pair, model.Latest)
		require.ErrorIs(t, err, ErrPriceStateUnavailable, "raw %q", raw)
	}
}
