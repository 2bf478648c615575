// Package numparse parses the CLI's positional bound arguments, which
// the CLI allows in either plain decimal or scientific notation
// ("1e+10", "1.1e+10"). No example in the retrieval pack parses
// scientific notation, so this goes directly against strconv/math/big
// rather than an adapted pack idiom -- see DESIGN.md.
package numparse

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pchuck/infinite-series/wheelsieve/internal/wheelerr"
)

// ParseBound parses s as a non-negative integer bound, accepting plain
// decimal digits or scientific notation such as "1e10", "1e+10", or
// "1.1e+10". The value must be exactly representable as a uint64
// (no fractional remainder after expansion).
func ParseBound(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, wheelerr.Input("empty number")
	}

	if !strings.ContainsAny(s, "eE.") {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, wheelerr.Input("invalid number %q: %v", s, err)
		}
		return v, nil
	}

	f, _, err := big.ParseFloat(s, 10, 256, big.ToNearestEven)
	if err != nil {
		return 0, wheelerr.Input("invalid number %q: %v", s, err)
	}
	if f.Sign() < 0 {
		return 0, wheelerr.Input("negative number %q", s)
	}

	i, acc := f.Int(nil)
	if acc != big.Exact {
		return 0, wheelerr.Input("number %q is not an integer", s)
	}
	if !i.IsUint64() {
		return 0, wheelerr.Input("number %q overflows 64 bits", s)
	}
	return i.Uint64(), nil
}
