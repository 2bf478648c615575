package wheel

// IndexToValue maps a wheel index i >= 1 to the integer it represents.
// Every candidate > 3 is congruent to 1 or 5 (mod 6); (3i+1)|1 lands on
// 3i+2 when i is odd (3i+1 is even, so OR-ing in the low bit adds one)
// and on 3i+1 unchanged when i is even (3i+1 is already odd). Index 0
// maps to 1; a segment uses it for its local bit 0, which denotes the
// segment's own low (nOff + IndexToValue(0) == low).
func IndexToValue(i uint64) uint64 {
	return (3*i + 1) | 1
}

// ValueToIndex is the inverse of IndexToValue: v must be coprime to 6
// (v%6 == 1 or v%6 == 5).
func ValueToIndex(v uint64) uint64 {
	switch v % 6 {
	case 5:
		return (v - 2) / 3
	case 1:
		return (v - 1) / 3
	default:
		panic("wheel: value not coprime to 6")
	}
}

// Recurrence carries Luo's Algorithm 3 state (k, c, t): advancing it
// wheel-index by wheel-index yields, for the prime represented at that
// index, its first composite wheel index and the alternating step used
// to reach every subsequent one -- all without a single division.
type Recurrence struct {
	k, c, t uint64
}

// NewRecurrence returns the seed state preceding wheel index 1.
func NewRecurrence() *Recurrence {
	return &Recurrence{k: 1, c: 0, t: 2}
}

// ResumeAfter5 returns the state reached after advancing through wheel
// indices 1..5 (primes 5,7,11,13,17), ready to continue at index 6.
// Equal to calling NewRecurrence and Advance(1..5), kept as a literal
// constant because the segment kernel reconstructs it once per
// segment rather than replaying five steps.
func ResumeAfter5() *Recurrence {
	return &Recurrence{k: 2, c: 96, t: 34}
}

// ResumeAfter6 returns the state reached after advancing through wheel
// indices 1..6 (primes 5,7,11,13,17,19), ready to continue at index 7.
func ResumeAfter6() *Recurrence {
	return &Recurrence{k: 1, c: 120, t: 38}
}

// Advance moves the recurrence to wheel index i (callers must advance
// in strictly increasing order starting from the index following the
// recurrence's seed) and returns the first composite wheel index and
// initial step for the prime represented at i.
func (r *Recurrence) Advance(i uint64) (c, ij uint64) {
	r.k = 3 - r.k
	r.c += 4 * r.k * i
	r.t += 4 * r.k
	ij = 2*i*(3-r.k) + 1
	return r.c, ij
}

// T returns the current alternation sum (the sum of the two
// alternating steps), needed to seed a CompositeWalker.
func (r *Recurrence) T() uint64 { return r.t }

// CompositeWalker enumerates the composite wheel indices of a single
// prime, alternating step sizes ij and t-ij as dictated by Luo's
// recurrence.
type CompositeWalker struct {
	j, ij, t uint64
}

// NewCompositeWalker starts a walker at composite index c with initial
// step ij, carrying the alternation sum t.
func NewCompositeWalker(c, ij, t uint64) *CompositeWalker {
	return &CompositeWalker{j: c, ij: ij, t: t}
}

// J returns the current composite wheel index.
func (w *CompositeWalker) J() uint64 { return w.j }

// Next advances to the next composite wheel index.
func (w *CompositeWalker) Next() {
	w.j += w.ij
	w.ij = w.t - w.ij
}

// SkipTo advances the walker to the first composite index >= target
// without visiting every intermediate composite: it jumps
// floor((target-j)/t) whole periods of t (which leave ij unchanged),
// then takes single steps (at most two) until J() >= target. A no-op
// if the walker is already at or past target.
func (w *CompositeWalker) SkipTo(target uint64) {
	if w.j >= target {
		return
	}
	steps := (target - w.j) / w.t
	w.j += steps * w.t
	for w.j < target {
		w.j += w.ij
		w.ij = w.t - w.ij
	}
}
