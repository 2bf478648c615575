// Command wheelsieve counts, sums, or prints the primes in an
// inclusive integer interval [F, N] using a parallel segmented
// wheel-factored sieve. Flag and argument handling follows the CLI grammar below;
// the sieve itself lives in internal/sieve.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/pchuck/infinite-series/wheelsieve/internal/cliflags"
	"github.com/pchuck/infinite-series/wheelsieve/internal/numparse"
	"github.com/pchuck/infinite-series/wheelsieve/internal/progress"
	"github.com/pchuck/infinite-series/wheelsieve/internal/sieve"
	"github.com/pchuck/infinite-series/wheelsieve/internal/wheelerr"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wheelsieve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	printFlag := fs.BoolP("print", "p", false, "print primes in [F, N], one per line")
	sumFlag := fs.BoolP("sum", "s", false, "print the sum of primes in [F, N] instead of the count")
	quiet := fs.BoolP("quiet", "q", false, "suppress progress and summary output on stderr")
	maxWorkers := fs.String("maxworkers", "", "worker count: integer, percentage (e.g. 50%), or auto")
	threads := fs.String("threads", "", "alias for --maxworkers")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] N | FROM N\n\n", fs.Name())
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	from, to, err := parseBounds(fs.Args())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	workersSpec := "100%"
	if *maxWorkers != "" {
		workersSpec = *maxWorkers
	}
	if *threads != "" {
		workersSpec = *threads
	}
	workers, err := cliflags.ParseWorkers(workersSpec, progress.GetCPUCount())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	mode := sieve.ModeCount
	switch {
	case *printFlag:
		mode = sieve.ModePrint
	case *sumFlag:
		mode = sieve.ModeSum
	}

	opt := sieve.Options{From: from, To: to, Workers: workers, Mode: mode}

	var out *bufio.Writer
	if mode == sieve.ModePrint {
		out = bufio.NewWriterSize(stdout, 64*1024)
		opt.Output = out
	}

	reporter := progress.NewReporter(stderr, *quiet)
	if mode != sieve.ModePrint {
		opt.Progress = reporter.Percent
	}

	start := time.Now()
	res, runErr := sieve.Run(context.Background(), opt)
	elapsed := time.Since(start)

	if out != nil {
		if flushErr := out.Flush(); flushErr != nil && runErr == nil {
			runErr = flushErr
		}
	}

	if runErr != nil {
		fmt.Fprintln(stderr, runErr)
		return wheelerr.ExitCode(runErr)
	}

	if mode == sieve.ModeSum {
		reporter.FinalSum(res.Sum)
	} else {
		reporter.FinalCount(res.Count)
	}
	reporter.Rate(res.Count, elapsed)
	reporter.Seconds(elapsed)

	if !res.Found {
		return 1
	}
	return 0
}

// parseBounds resolves the CLI's one-or-two positional arguments into
// [from, to], defaulting from to 1 when only N is given.
func parseBounds(positional []string) (from, to uint64, err error) {
	switch len(positional) {
	case 1:
		from = 1
		to, err = numparse.ParseBound(positional[0])
	case 2:
		from, err = numparse.ParseBound(positional[0])
		if err == nil {
			to, err = numparse.ParseBound(positional[1])
		}
	default:
		err = fmt.Errorf("expected N or FROM N, got %d positional arguments", len(positional))
	}
	return from, to, err
}
