package main

import (
	"errors"
	"fmt"

	"github.com/KAY53N/bsc-node/internal/chain"
	"github.com/KAY53N/bsc-node/internal/codec"
	"github.com/KAY53N/bsc-node/internal/contract"
	"github.com/KAY53N/bsc-node/internal/model"
	"github.com/KAY53N/bsc-node/internal/price"
)

var errorMessages = []struct {
	kind    error
	message string
}{
	{codec.ErrInvalidAddress, "invalid address"},
	{model.ErrInvalidBlock, "invalid block"},
	{contract.ErrPairNotFound, "no V2 pair exists for these tokens"},
	{contract.ErrReservesUnavailable, "pair reserves could not be read"},
	{contract.ErrTokenAddressUnavailable, "pool token addresses could not be read"},
	{price.ErrZeroLiquidity, "pair has no liquidity for the token"},
	{price.ErrPriceUnavailable, "pool price state could not be read"},
	{price.ErrZeroPrice, "pool price is zero"},
	{codec.ErrMalformedWord, "node returned malformed data"},
}

// describeError turns a command error into a single line for the user.
func describeError(err error) string {
	msg := "error: " + err.Error()
	for _, m := range errorMessages {
		if errors.Is(err, m.kind) {
			msg = fmt.Sprintf("error: %s (%v)", m.message, err)
			break
		}
	}
	if errors.Is(err, chain.ErrTransportFailure) {
		msg += "\nhint: the node did not answer; check --rpc and that it is running"
	} else if errors.Is(err, chain.ErrCallFailed) {
		msg += "\nhint: the node rejected the call; it may still be syncing or the address is not a contract"
	}
	return msg
}
