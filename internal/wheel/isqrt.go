package wheel

import "math/big"

// ISqrt returns floor(sqrt(n)) exactly for any uint64 n. A float64
// sqrt loses mantissa bits well before n approaches 2^64, and q =
// floor(sqrt(N)/3) gates how far the small-primes table and every
// segment's inner sieve loop run -- an off-by-one here would silently
// under- or over-sieve, so this goes through math/big.Int.Sqrt rather
// than math.Sqrt.
func ISqrt(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	var x big.Int
	x.SetUint64(n)
	x.Sqrt(&x)
	return x.Uint64()
}
