// Package sieve implements the parallel segmented wheel-factored sieve
// described by Luo's Algorithm 3: small-primes and pre-sieve table construction,
// the per-segment kernel, and the driver that partitions [F, N] across
// worker goroutines and gathers their results.
package sieve

import (
	"context"
	"io"
	"runtime"
	"sync"

	"github.com/pchuck/infinite-series/wheelsieve/internal/wheel"
	"github.com/pchuck/infinite-series/wheelsieve/internal/wheelerr"
)

// MaxBound is 2^64 - 7, the largest integer this sieve allows as N.
const MaxBound = ^uint64(0) - 6

// SumLimit is the largest N for which a 64-bit running sum of primes
// in [1, N] is guaranteed not to overflow.
const SumLimit = 29_505_444_490

// progressThreshold is the N above which worker 0 reports percentage
// progress in non-print modes.
const progressThreshold = 2_000_000_000

// Options configures one sieve run.
type Options struct {
	From, To uint64
	Workers  int
	Mode     Mode
	Output   io.Writer  // required when Mode == ModePrint
	Progress func(pct int)
}

// Result is the outcome of a COUNT or SUM run. PRINT mode streams to
// Options.Output instead and only reports Found/Count here.
type Result struct {
	Count uint64
	Sum   uint64
	Found bool
}

// Validate checks the bounds required before any sieving
// starts.
func (o Options) Validate() error {
	if o.To > MaxBound {
		return wheelerr.Input("N=%d exceeds the maximum supported bound %d", o.To, MaxBound)
	}
	if o.From < 1 {
		return wheelerr.Input("F must be >= 1, got %d", o.From)
	}
	if o.To < o.From {
		return wheelerr.Input("N=%d is less than F=%d", o.To, o.From)
	}
	if o.Mode == ModeSum && o.To > SumLimit {
		return wheelerr.Input("--sum requires N <= %d, got %d", SumLimit, o.To)
	}
	return nil
}

// Run executes the parallel segmented sieve over [opt.From, opt.To]
// and returns the aggregated result. Cancelling ctx stops the driver
// from starting new chunks; chunks already in flight run to
// completion and are discarded.
func Run(ctx context.Context, opt Options) (Result, error) {
	if err := opt.Validate(); err != nil {
		return Result{}, err
	}

	f, n := opt.From, opt.To
	fAdj := AdjustFloor(f)
	stepSz, wheel2310 := StepSize(n)

	if stepSz%Wheel210 != 0 {
		return Result{}, wheelerr.Internal("step size %d is not a multiple of %d", stepSz, Wheel210)
	}

	smallPrimes := BuildSmallPrimes(n)

	jOffTemplate := (fAdj - 1) / 3
	sieveSz := int(stepSz / 3)
	tmpl := BuildPreSieveTemplate(sieveSz, jOffTemplate, wheel2310)

	// ceil((n-fAdj+stepSz)/stepSz). This can overshoot
	// by one chunk whose low then falls past n -- the dispatch loop
	// below treats such a chunk as empty rather than relying on the
	// formula being exact, alongside its "high capped by high>N or
	// high<low" check.
	numChunks := ceilDiv(n-fAdj+stepSz, stepSz)

	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if uint64(workers) > numChunks {
		workers = int(numChunks)
	}
	if workers < 1 {
		workers = 1
	}

	d := &driver{
		opt:         opt,
		f:           f,
		n:           n,
		fAdj:        fAdj,
		stepSz:      stepSz,
		wheel2310:   wheel2310,
		smallPrimes: smallPrimes,
		tmpl:        tmpl,
		numChunks:   numChunks,
		pending:     make(map[uint64][]byte),
	}
	return d.run(ctx, workers)
}

// driver holds the immutable per-run context, passed by reference to
// every segment kernel invocation, plus the mutable ordered-emission
// state guarded by mu.
type driver struct {
	opt       Options
	f, n      uint64
	fAdj      uint64
	stepSz    uint64
	wheel2310 bool

	smallPrimes *wheel.BitSieve
	tmpl        *wheel.BitSieve
	numChunks   uint64

	mu      sync.Mutex
	pending map[uint64][]byte
	cursor  uint64
	fatal   error
}

func (d *driver) run(ctx context.Context, workers int) (Result, error) {
	var wg sync.WaitGroup
	var mu sync.Mutex // guards count/sum/found and abort
	var count, sum uint64
	var found bool
	var firstErr error

	abort := func() bool {
		mu.Lock()
		defer mu.Unlock()
		if firstErr != nil {
			return true
		}
		select {
		case <-ctx.Done():
			return true
		default:
			return false
		}
	}

	// Static round-robin schedule: worker w owns chunk ids
	// w, w+workers, w+2*workers, ... -- a fixed, contiguous stride so
	// each worker's resource footprint (one segment at a time) is
	// bounded and independent of the others.
	for w := 0; w < workers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			var completed uint64 // only worker 0 reports progress, so no atomics needed
			for chunkID := uint64(w); chunkID < d.numChunks; chunkID += uint64(workers) {
				if abort() {
					return
				}

				low := d.fAdj + chunkID*d.stepSz
				if low > d.n {
					// Overshoot chunk from the ceiling formula: nothing
					// to sieve, but PRINT mode still needs its (empty)
					// slot to keep the cursor advancing.
					if d.opt.Mode == ModePrint {
						if err := d.deliver(chunkID, nil); err != nil {
							mu.Lock()
							if firstErr == nil {
								firstErr = err
							}
							mu.Unlock()
							return
						}
					}
					continue
				}
				high := low + d.stepSz - 1
				if high > d.n || high < low {
					high = d.n
				}
				seg := newSegment(chunkID, low, high, d.fAdj, d.n)

				res, err := sieveSegment(seg, d.f, d.n, d.smallPrimes, d.tmpl, d.wheel2310, d.opt.Mode)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}

				switch d.opt.Mode {
				case ModeCount:
					mu.Lock()
					count += res.count
					if res.count > 0 {
						found = true
					}
					mu.Unlock()
				case ModeSum:
					mu.Lock()
					sum += res.sum
					mu.Unlock()
				default:
					if err := d.deliver(chunkID, res.printBuf); err != nil {
						mu.Lock()
						if firstErr == nil {
							firstErr = err
						}
						mu.Unlock()
						return
					}
					mu.Lock()
					count += res.count
					if res.count > 0 {
						found = true
					}
					mu.Unlock()
				}

				if w == 0 && d.opt.Progress != nil && d.n > progressThreshold && d.opt.Mode != ModePrint {
					completed++
					d.opt.Progress(int(completed * 100 / d.numChunks))
				}
			}
		}()
	}

	wg.Wait()

	if firstErr != nil {
		return Result{}, firstErr
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	switch d.opt.Mode {
	case ModeCount:
		return Result{Count: count, Found: found}, nil
	case ModeSum:
		return Result{Sum: sum, Found: sum > 0}, nil
	default:
		return Result{Count: count, Found: found}, nil
	}
}

// deliver implements the per-chunk slot + monotone cursor ordering
// scheme: a worker stores its buffer, then whichever
// worker finds the cursor's slot ready flushes every consecutive ready
// slot it can, so the stream is strictly ordered by chunk id
// regardless of completion order.
func (d *driver) deliver(chunkID uint64, buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fatal != nil {
		return nil // a prior IOError already cancelled printing; drop silently
	}

	d.pending[chunkID] = buf
	for {
		next, ok := d.pending[d.cursor]
		if !ok {
			break
		}
		delete(d.pending, d.cursor)
		if len(next) > 0 {
			if _, err := d.opt.Output.Write(next); err != nil {
				d.fatal = wheelerr.IO(err)
				return d.fatal
			}
		}
		d.cursor++
	}
	return nil
}
