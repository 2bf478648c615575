package sieve

import "github.com/pchuck/infinite-series/wheelsieve/internal/wheel"

// smallSievePrimeCount is how many of the smallest wheel-index primes
// (5,7,11,13,17[,19]) are pre-cleared into the template, matching the
// step-size tier: the wheel-2310 ladder also clears 19.
func smallSievePrimeCount(wheel2310 bool) uint64 {
	if wheel2310 {
		return 6
	}
	return 5
}

// BuildPreSieveTemplate builds the reusable template segment: a
// BitSieve of sieveSz bits (= stepSz/3) with every composite of the
// small sieve primes pre-cleared, anchored so local bit 0 represents
// wheel index jOff = (F_adj-1)/3. Every fresh segment starts life as a
// byte-for-byte copy of this template.
func BuildPreSieveTemplate(sieveSz int, jOff uint64, wheel2310 bool) *wheel.BitSieve {
	tmpl := wheel.NewBitSieve(sieveSz)

	rec := wheel.NewRecurrence()
	maxI := smallSievePrimeCount(wheel2310)
	for i := uint64(1); i <= maxI; i++ {
		c, ij := rec.Advance(i)
		w := wheel.NewCompositeWalker(c, ij, rec.T())
		w.SkipTo(jOff)
		for {
			j := w.J()
			local := int(j - jOff)
			if local >= sieveSz {
				break
			}
			tmpl.Clear(local)
			w.Next()
		}
	}

	// Finalisation: when the template starts at the very first
	// wheel index (F_adj == 1, i.e. jOff == 0), the sweep above leaves
	// bits 1..5 (1..6) set, since each walk starts at p*p and those
	// bits hold the seed primes themselves. In every later segment the
	// same bit positions hold multiples of the seed primes, so byte 0
	// is overwritten with 0xc0 (0x80), clearing bit 0 and the seed-prime
	// bits. The segment kernel writes 0xfe back for the segment at 1
	// and sets bit 0 again for later segments.
	if jOff == 0 {
		if wheel2310 {
			tmpl.SetByte(0, 0x80)
		} else {
			tmpl.SetByte(0, 0xc0)
		}
	}

	tmpl.ClearTailBits(sieveSz)
	return tmpl
}
