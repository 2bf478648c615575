package sieve

import (
	"testing"

	"github.com/pchuck/infinite-series/wheelsieve/internal/wheel"
)

// TestPreSieveTemplateClearsExpectedComposites builds a template
// anchored at the very first wheel index (jOff=0) and checks every bit
// against whether the corresponding integer is a multiple of one of
// the small sieve primes. The seed primes themselves count as
// multiples here: the jOff=0 finalisation (byte 0 = 0xc0) clears their
// bits, and the segment kernel restores them for the segment at 1.
func TestPreSieveTemplateClearsExpectedComposites(t *testing.T) {
	sieveSz := 200
	tmpl := BuildPreSieveTemplate(sieveSz, 0, false)

	smallPrimes := []uint64{5, 7, 11, 13, 17}
	for i := 1; i < sieveSz; i++ {
		v := wheel.IndexToValue(uint64(i))
		wantComposite := false
		for _, p := range smallPrimes {
			if v%p == 0 {
				wantComposite = true
				break
			}
		}
		got := !tmpl.Get(i)
		if got != wantComposite {
			t.Errorf("index %d (value %d): template marks composite=%v, want %v", i, v, got, wantComposite)
		}
	}
}

func TestPreSieveTemplateWheel2310AlsoClears19(t *testing.T) {
	sieveSz := 400
	tmpl := BuildPreSieveTemplate(sieveSz, 0, true)

	for i := 1; i < sieveSz; i++ {
		v := wheel.IndexToValue(uint64(i))
		if v != 19 && v%19 == 0 {
			if tmpl.Get(i) {
				t.Errorf("index %d (value %d) is a multiple of 19 but was not pre-cleared", i, v)
			}
		}
	}
}

func TestPreSieveTemplateOffsetAnchoring(t *testing.T) {
	// Build a template for a segment that does not start at wheel
	// index 0, and confirm its bit 0 describes jOff itself correctly
	// (composite iff jOff's integer value is a multiple of a seed
	// prime).
	jOff := uint64(50)
	sieveSz := 100
	tmpl := BuildPreSieveTemplate(sieveSz, jOff, false)

	v := wheel.IndexToValue(jOff)
	wantComposite := false
	for _, p := range []uint64{5, 7, 11, 13, 17} {
		if v != p && v%p == 0 {
			wantComposite = true
			break
		}
	}
	if got := !tmpl.Get(0); got != wantComposite {
		t.Errorf("bit 0 (value %d): composite=%v, want %v", v, got, wantComposite)
	}
}
