// internal/batch/concurrency.go
package batch

import (
	"runtime"
)

// OptimalConcurrency calculates the worker count for CPU bound resolution
func OptimalConcurrency() int {
	numCPU := runtime.NumCPU()

	// Resolution does no I/O; more workers than cores only adds scheduling.
	optimal := numCPU

	if optimal < 1 {
		optimal = 1
	}
	if optimal > 32 {
		optimal = 32
	}
	return optimal
}
