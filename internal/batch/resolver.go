// internal/batch/resolver.go
package batch

import (
	"context"
	"sync"
)

// Pair is one (base, target) resolution request
type Pair struct {
	Base   string
	Target string
}

// Outcome is the resolution of the Pair at the same index
type Outcome struct {
	Pair        Pair
	Destination string
	OK          bool
}

// ResolveFunc computes a destination; it must be safe for concurrent use
type ResolveFunc func(base, target string) (string, bool)

// Resolver resolves many pairs with bounded concurrency
type Resolver struct {
	resolve     ResolveFunc
	concurrency int
}

// New creates a new batch Resolver.
// If concurrency <= 0, it auto-tunes based on system resources
func New(resolve ResolveFunc, concurrency int) *Resolver {
	if concurrency <= 0 {
		concurrency = OptimalConcurrency()
	}
	return &Resolver{
		resolve:     resolve,
		concurrency: concurrency,
	}
}

// Concurrency returns the number of workers used per batch
func (r *Resolver) Concurrency() int {
	return r.concurrency
}

// ResolveAll resolves every pair and returns outcomes in input order.
// Pairs are dispatched host by host, hosts in order of first appearance
// (see DispatchOrder). When ctx is cancelled, pairs not yet
// started are left unresolved and ctx.Err() is returned with the partial
// outcomes. progress, if not nil, is called once per finished pair.
func (r *Resolver) ResolveAll(ctx context.Context, pairs []Pair, progress func()) ([]Outcome, error) {
	outcomes := make([]Outcome, len(pairs))
	for i, p := range pairs {
		outcomes[i].Pair = p
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < r.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				p := pairs[i]
				outcomes[i].Destination, outcomes[i].OK = r.resolve(p.Base, p.Target)
				if progress != nil {
					progress()
				}
			}
		}()
	}

	var err error
dispatch:
	for _, i := range DispatchOrder(pairs) {
		if err = ctx.Err(); err != nil {
			break dispatch
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return outcomes, err
}
