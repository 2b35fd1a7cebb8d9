package bigutils

import (
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// ParseU256 parses a decimal or 0x-prefixed hex string into a uint256.
func ParseU256(s string) (*uint256.Int, bool) {
	i := big.NewInt(0)
	ok := false
	if strings.HasPrefix(s, "0x") {
		i, ok = i.SetString(s[2:], 16)
	} else {
		i, ok = i.SetString(s, 10)
	}
	if ok {
		u, overflow := uint256.FromBig(i)
		return u, !overflow
	}
	return nil, false
}

func ConvertBig(v *big.Int) *uint256.Int {
	u, overflow := uint256.FromBig(v)
	if overflow {
		panic("big.Int overflow")
	}
	return u
}
