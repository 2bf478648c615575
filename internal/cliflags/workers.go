// Package cliflags implements the worker-count grammar for
// --maxworkers/--threads (integer, percentage, or "auto"), validating
// values inline before sieving starts.
package cliflags

import (
	"strconv"
	"strings"

	"github.com/pchuck/infinite-series/wheelsieve/internal/wheelerr"
)

// ParseWorkers resolves a --maxworkers/--threads value against the
// number of logical CPUs available (cpus), returning the worker count
// to use. Accepted syntaxes: "auto" (all CPUs), "N%" (N percent of
// CPUs, rounded down, minimum 1), or a bare decimal integer.
func ParseWorkers(raw string, cpus int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "auto") {
		return cpus, nil
	}

	if strings.HasSuffix(raw, "%") {
		pctStr := strings.TrimSuffix(raw, "%")
		pct, err := strconv.Atoi(pctStr)
		if err != nil || pct <= 0 {
			return 0, wheelerr.Input("invalid worker percentage %q", raw)
		}
		workers := cpus * pct / 100
		if workers < 1 {
			workers = 1
		}
		return workers, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, wheelerr.Input("invalid worker count %q", raw)
	}
	return n, nil
}
