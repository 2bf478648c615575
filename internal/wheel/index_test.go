package wheel

import "testing"

func TestIndexToValue(t *testing.T) {
	tests := []struct {
		i    uint64
		want uint64
	}{
		{1, 5},
		{2, 7},
		{3, 11},
		{4, 13},
		{5, 17},
		{6, 19},
		{7, 23},
		{8, 25},
		{9, 29},
		{10, 31},
	}
	for _, tt := range tests {
		if got := IndexToValue(tt.i); got != tt.want {
			t.Errorf("IndexToValue(%d) = %d, want %d", tt.i, got, tt.want)
		}
	}
}

func TestValueToIndexRoundTrip(t *testing.T) {
	for i := uint64(1); i < 1000; i++ {
		v := IndexToValue(i)
		if got := ValueToIndex(v); got != i {
			t.Errorf("ValueToIndex(IndexToValue(%d)=%d) = %d, want %d", i, v, got, i)
		}
	}
}

// TestRecurrenceMatchesDirectComputation checks the Luo recurrence's
// composite indices against values derived directly from wheel index
// arithmetic, for the first few small primes.
func TestRecurrenceMatchesDirectComputation(t *testing.T) {
	primeAtIndex := map[uint64]uint64{1: 5, 2: 7, 3: 11, 4: 13, 5: 17, 6: 19, 7: 23}

	rec := NewRecurrence()
	for i := uint64(1); i <= 7; i++ {
		c, ij := rec.Advance(i)
		p := primeAtIndex[i]

		w := NewCompositeWalker(c, ij, rec.T())
		for m := uint64(0); m < 6; m++ {
			j := w.J()
			gotValue := IndexToValue(j)
			// The composite at step m is p * q for the m-th integer q
			// >= p that is itself coprime to 6.
			wantValue := p * nthCoprimeTo6AtOrAbove(p, m)
			if gotValue != wantValue {
				t.Errorf("prime index %d (p=%d) step %d: composite value = %d, want %d", i, p, m, gotValue, wantValue)
			}
			w.Next()
		}
	}
}

// nthCoprimeTo6AtOrAbove returns the m-th (0-based) integer >= start
// that is coprime to 6, where start itself is assumed coprime to 6.
func nthCoprimeTo6AtOrAbove(start uint64, m uint64) uint64 {
	count := uint64(0)
	v := start
	for {
		if v%6 == 1 || v%6 == 5 {
			if count == m {
				return v
			}
			count++
		}
		v++
	}
}

func TestResumeStatesMatchAdvance(t *testing.T) {
	rec := NewRecurrence()
	var last struct {
		k, c, t uint64
	}
	for i := uint64(1); i <= 5; i++ {
		rec.Advance(i)
	}
	last.k, last.c, last.t = recurrenceState(rec)

	resumed := ResumeAfter5()
	rk, rc, rt := recurrenceState(resumed)
	if rk != last.k || rc != last.c || rt != last.t {
		t.Fatalf("ResumeAfter5() = (%d,%d,%d), want (%d,%d,%d)", rk, rc, rt, last.k, last.c, last.t)
	}

	rec2 := NewRecurrence()
	for i := uint64(1); i <= 6; i++ {
		rec2.Advance(i)
	}
	k6, c6, t6 := recurrenceState(rec2)
	resumed6 := ResumeAfter6()
	rk6, rc6, rt6 := recurrenceState(resumed6)
	if rk6 != k6 || rc6 != c6 || rt6 != t6 {
		t.Fatalf("ResumeAfter6() = (%d,%d,%d), want (%d,%d,%d)", rk6, rc6, rt6, k6, c6, t6)
	}
}

func recurrenceState(r *Recurrence) (k, c, t uint64) {
	return r.k, r.c, r.t
}

func TestCompositeWalkerSkipTo(t *testing.T) {
	rec := NewRecurrence()
	c, ij := rec.Advance(1) // prime 5
	full := NewCompositeWalker(c, ij, rec.T())

	// Walk the slow way to the 20th composite of 5.
	for i := 0; i < 20; i++ {
		full.Next()
	}
	target := full.J()

	skipped := NewCompositeWalker(c, ij, rec.T())
	skipped.SkipTo(target)
	if skipped.J() != target {
		t.Errorf("SkipTo(%d) landed on %d", target, skipped.J())
	}
}
