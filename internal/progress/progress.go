// Package progress renders the CLI's advisory stderr progress line and
// the final summary/timing lines the CLI requires, adapted from the
// teacher's hand-rolled stderr bar (kept instead of a general-purpose
// progress-bar library because the wire format here is an exact,
// contractual text format, not a layout choice).
package progress

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

// Reporter writes the advisory "  <p>%\r" progress line and the final
// summary/timing lines to w, honoring quiet mode and skipping the
// percentage line entirely when w isn't a terminal (so redirected
// output is never polluted with carriage-return updates).
type Reporter struct {
	w      io.Writer
	quiet  bool
	isTerm bool
}

// NewReporter builds a Reporter. quiet suppresses every line this
// type writes, matching the -q/--quiet contract.
func NewReporter(w io.Writer, quiet bool) *Reporter {
	r := &Reporter{w: w, quiet: quiet}
	if f, ok := w.(*os.File); ok {
		r.isTerm = term.IsTerminal(int(f.Fd()))
	}
	return r
}

// Percent renders the advisory "  <p>%\r" line. A no-op in quiet mode
// or when the sink isn't a terminal.
func (r *Reporter) Percent(pct int) {
	if r.quiet || !r.isTerm {
		return
	}
	fmt.Fprintf(r.w, "  %d%%\r", pct)
}

// FinalCount renders the "Primes found: <n>\n" summary line.
func (r *Reporter) FinalCount(n uint64) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.w, "Primes found: %d\n", n)
}

// FinalSum renders the "Sum of primes: <n>\n" summary line.
func (r *Reporter) FinalSum(s uint64) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.w, "Sum of primes: %d\n", s)
}

// Seconds renders the "Seconds: <t.ttt>\n" timing line.
func (r *Reporter) Seconds(d time.Duration) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.w, "Seconds: %.3f\n", d.Seconds())
}

// Rate renders an advisory, comma-grouped primes/sec line, the same
// shape as cmd/primes main.go prints before its own summary, plus a
// compact K/M/B rendering of count for runs large enough that the
// comma-grouped "Primes found" line is hard to scan at a glance.
func (r *Reporter) Rate(count uint64, elapsed time.Duration) {
	if r.quiet || elapsed <= 0 {
		return
	}
	rate := float64(count) / elapsed.Seconds()
	fmt.Fprintf(r.w, "Rate: %s primes/s (%s total)\n", formatRate(rate), FormatNumber(int64(count)))
}

func formatRate(rate float64) string {
	s := fmt.Sprintf("%.0f", rate)
	n := len(s)
	if n <= 3 {
		return s
	}

	var sb strings.Builder
	sb.Grow(n + n/3)
	offset := n % 3
	if offset == 0 {
		offset = 3
	}
	sb.WriteString(s[:offset])
	for i := offset; i < n; i += 3 {
		sb.WriteByte(',')
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// GetCPUCount reports the number of logical CPUs, used as the "auto"
// / 100% worker-count default.
func GetCPUCount() int {
	return runtime.NumCPU()
}

// FormatNumber renders n with a K/M/B suffix for compact display.
func FormatNumber(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.2fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.2fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.2fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}
