package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

const latestTag = "latest"

// ErrInvalidBlock is returned for block selectors that are neither latest nor a height.
var ErrInvalidBlock = errors.New("invalid block")

// BlockRef selects the state a call reads: the chain head or a fixed height.
type BlockRef struct {
	height uint64
	pinned bool
}

// Latest reads from the current chain head.
var Latest = BlockRef{}

// AtHeight pins reads to a block height.
func AtHeight(height uint64) BlockRef {
	return BlockRef{height: height, pinned: true}
}

// ParseBlockRef accepts "latest", a decimal height, or a 0x-prefixed hex height.
func ParseBlockRef(input string) (BlockRef, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, latestTag) {
		return Latest, nil
	}

	var (
		height uint64
		err    error
	)
	if strings.HasPrefix(input, "0x") || strings.HasPrefix(input, "0X") {
		height, err = strconv.ParseUint(input[2:], 16, 64)
	} else {
		height, err = strconv.ParseUint(input, 10, 64)
	}
	if err != nil {
		return BlockRef{}, fmt.Errorf("%w %q: expected latest or a non-negative height", ErrInvalidBlock, input)
	}
	return AtHeight(height), nil
}

// IsLatest reports whether the reference follows the chain head.
func (b BlockRef) IsLatest() bool {
	return !b.pinned
}

// Height returns the pinned height, or zero for Latest.
func (b BlockRef) Height() uint64 {
	return b.height
}

// String renders the reference in the form eth_call expects.
func (b BlockRef) String() string {
	if !b.pinned {
		return latestTag
	}
	return hexutil.EncodeUint64(b.height)
}

// Label renders the reference for people: "latest" or a decimal height.
func (b BlockRef) Label() string {
	if !b.pinned {
		return latestTag
	}
	return strconv.FormatUint(b.height, 10)
}
