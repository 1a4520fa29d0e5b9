// Package pool provides a small bounded worker pool used to parallelize the
// independent cryptographic checks a round needs to perform -- verifying n-1
// commitments, proofs, or shares from the other parties is embarrassingly
// parallel, and does not need to happen on the caller's goroutine.
package pool

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool bounds the amount of parallel work dispatched via Parallelize.
type Pool struct {
	size int
}

// NewPool creates a pool with the given number of workers. A size of 0 or
// less selects runtime.GOMAXPROCS(0).
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	return &Pool{size: size}
}

// Size reports the configured parallelism.
func (p *Pool) Size() int {
	return p.size
}

// Parallelize calls fn(i) for every i in [0, n), running up to p.Size()
// calls concurrently, and returns the first error encountered (if any),
// after every in-flight call has returned.
func (p *Pool) Parallelize(n int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	var g errgroup.Group
	g.SetLimit(p.size)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return fn(i)
		})
	}
	return g.Wait()
}
