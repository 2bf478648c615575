package sieve

import "github.com/pchuck/infinite-series/wheelsieve/internal/wheel"

// BuildSmallPrimes builds the is_prime table: a BitSieve of length
// q+2 bits, q = floor(sqrt(n)/3), with bit i set iff the integer at
// wheel index i is prime. Every segment kernel consults this table
// read-only; it is built once, on the
// driver's goroutine, before any worker starts.
func BuildSmallPrimes(n uint64) *wheel.BitSieve {
	q := wheel.ISqrt(n) / 3
	bs := wheel.NewBitSieve(int(q) + 2)
	bs.Clear(0)

	rec := wheel.NewRecurrence()
	for i := uint64(1); i <= q; i++ {
		c, ij := rec.Advance(i)
		if !bs.Get(int(i)) {
			continue // i is already known composite; its multiples were struck by a smaller prime
		}
		w := wheel.NewCompositeWalker(c, ij, rec.T())
		for {
			j := w.J()
			if j > q {
				break
			}
			bs.Clear(int(j))
			w.Next()
		}
	}
	return bs
}
