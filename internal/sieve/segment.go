package sieve

import (
	"strconv"

	"github.com/pchuck/infinite-series/wheelsieve/internal/wheel"
	"github.com/pchuck/infinite-series/wheelsieve/internal/wheelerr"
)

// Mode selects what a segment (and the driver that gathers segments)
// produces.
type Mode int

const (
	ModeCount Mode = iota
	ModeSum
	ModePrint
)

// segment describes one unit of parallel work: the half-open-by-value,
// closed-by-bound integer range [low, high] and the wheel-index
// geometry derived from it.
type segment struct {
	id       uint64
	low      uint64
	high     uint64
	m        uint64 // local index count
	m2       uint64 // high/3, the global index ceiling for this segment's sieve pass
	nOff     uint64 // low - 1
	jOff     uint64 // nOff / 3, the wheel index of "low"
	isFirst  bool
	isLast   bool
}

func newSegment(id, low, high, fAdj, n uint64) segment {
	oddAdj := uint64(0)
	if high&1 == 1 {
		oddAdj = 1
	}
	a := high - low + oddAdj
	m := (a + 2) / 3 // ceil(a/3)
	nOff := low - 1
	return segment{
		id:      id,
		low:     low,
		high:    high,
		m:       m,
		m2:      high / 3,
		nOff:    nOff,
		jOff:    nOff / 3,
		isFirst: low == fAdj,
		isLast:  high == n,
	}
}

// segmentResult is what a segment kernel hands back to the driver for
// gathering: a commutative partial (count/sum) or an ordered byte
// buffer ready to be flushed once every lower-numbered chunk has been.
type segmentResult struct {
	id       uint64
	count    uint64
	sum      uint64
	printBuf []byte
}

// sieveSegment runs the full per-segment kernel:
// allocate, stamp the pre-sieve template, apply the two boundary
// clears, sieve with the resumed Luo recurrence against is_prime, then
// emit according to mode.
func sieveSegment(seg segment, f, n uint64, isPrime, tmpl *wheel.BitSieve, wheel2310 bool, mode Mode) (segmentResult, error) {
	nbits := int(seg.m) + 2
	bs, err := allocateBitSieve(nbits, "segment")
	if err != nil {
		return segmentResult{}, err
	}

	// Step 2: stamp the pre-sieve template.
	bs.CopyFrom(tmpl)

	// Step 3: undo the template's byte-0 finalisation. The segment at 1
	// gets 0xfe, re-representing 5,7,11,13,17(,19,23) as prime and
	// clearing 1. A later segment of a template anchored at 1 (f <= 5)
	// has a low congruent to 1 modulo every seed prime, so its bit 0 is
	// set again and left to the sieve loop below.
	if seg.low == 1 {
		bs.SetByte(0, 0xfe)
	} else if f <= 5 {
		bs.Set(0)
	}

	// Step 4: first segment below F clears candidates under the
	// caller's floor. Bit 0 is seg.low itself (IndexToValue(0) == 1,
	// so nOff+IndexToValue(0) == low) and needs the same floor check
	// as bits 1 and 2 -- it is a real candidate, not a sentinel.
	if seg.isFirst && f > 5 {
		if seg.nOff+wheel.IndexToValue(0) < f {
			bs.Clear(0)
		}
		if seg.nOff+wheel.IndexToValue(1) < f {
			bs.Clear(1)
		}
		if seg.nOff+wheel.IndexToValue(2) < f {
			bs.Clear(2)
		}
	}

	// Bits m and m+1 denote integers above high (bit m is the next
	// segment's low), which the next segment covers itself.
	if !seg.isLast {
		bs.ClearTailBits(int(seg.m))
	}

	// Step 5: last segment clears anything beyond N.
	if seg.isLast {
		bs.ClearTailBits(int(seg.m) + 2)
		if seg.m+1 < uint64(nbits) && seg.nOff+wheel.IndexToValue(seg.m+1) > n {
			bs.Clear(int(seg.m + 1))
		}
		if seg.nOff+wheel.IndexToValue(seg.m) > n {
			bs.Clear(int(seg.m))
		}
	}

	// Step 6: sieve against is_prime using the resumed recurrence.
	var rec *wheel.Recurrence
	var startI uint64
	if wheel2310 {
		rec = wheel.ResumeAfter6()
		startI = 7
	} else {
		rec = wheel.ResumeAfter5()
		startI = 6
	}

	qLocal := wheel.ISqrt(seg.high) / 3
	for i := startI; i <= qLocal; i++ {
		c, ij := rec.Advance(i)
		if int(i) >= isPrime.Len() || !isPrime.Get(int(i)) {
			continue
		}
		w := wheel.NewCompositeWalker(c, ij, rec.T())
		w.SkipTo(seg.jOff)
		for {
			j := w.J()
			if j > seg.m2 {
				break
			}
			local := int(j - seg.jOff)
			if local >= 0 && local < nbits {
				bs.Clear(local)
			}
			w.Next()
		}
	}

	return emit(seg, f, n, bs, mode), nil
}

// allocateBitSieve wraps BitSieve construction so a pathological
// allocation size surfaces as a ResourceError instead of a raw panic.
func allocateBitSieve(nbits int, target string) (bs *wheel.BitSieve, err error) {
	defer func() {
		if r := recover(); r != nil {
			bs = nil
			err = wheelerr.Resource(target, nbits, errorFromRecover(r))
		}
	}()
	return wheel.NewBitSieve(nbits), nil
}

func errorFromRecover(r interface{}) error {
	if e, ok := r.(error); ok {
		return e
	}
	return wheelerr.Internal("%v", r)
}

// boundaryPrimes returns 2 and/or 3 when they fall in [f, n]; they are
// never wheel-represented, so only the segment starting at integer 1
// ever needs to consider them, and always ahead of every wheel-index
// prime.
func boundaryPrimes(f, n, low uint64) []uint64 {
	if low != 1 {
		return nil
	}
	var out []uint64
	if f <= 2 && 2 <= n {
		out = append(out, 2)
	}
	if f <= 3 && 3 <= n {
		out = append(out, 3)
	}
	return out
}

func emit(seg segment, f, n uint64, bs *wheel.BitSieve, mode Mode) segmentResult {
	boundary := boundaryPrimes(f, n, seg.low)

	switch mode {
	case ModeCount:
		return segmentResult{id: seg.id, count: uint64(bs.PopCount()) + uint64(len(boundary))}

	case ModeSum:
		sum := uint64(0)
		for _, p := range boundary {
			sum += p
		}
		// Bit 0 represents seg.low, a real candidate distinct from
		// every other segment's range (never the previous segment's
		// last bit), so it must be included here exactly as it is in
		// ModeCount's bs.PopCount().
		for i := 0; i < bs.Len(); i++ {
			if bs.Get(i) {
				sum += seg.nOff + wheel.IndexToValue(uint64(i))
			}
		}
		return segmentResult{id: seg.id, sum: sum}

	default: // ModePrint
		popcount := bs.PopCount()
		buf := make([]byte, 0, 16*(len(boundary)+popcount))
		for _, p := range boundary {
			buf = strconv.AppendUint(buf, p, 10)
			buf = append(buf, '\n')
		}
		for i := 0; i < bs.Len(); i++ {
			if bs.Get(i) {
				v := seg.nOff + wheel.IndexToValue(uint64(i))
				buf = strconv.AppendUint(buf, v, 10)
				buf = append(buf, '\n')
			}
		}
		return segmentResult{id: seg.id, count: uint64(popcount + len(boundary)), printBuf: buf}
	}
}
