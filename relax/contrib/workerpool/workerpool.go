// Copyright 2025 The go-relax Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool that
// implements relax.Executor.
//
// A Pool is created once and reused for every sweep of an iterative solve,
// so the per-sweep cost is a handful of channel sends rather than a
// goroutine spawn per row block.
//
// Usage:
//
//	pool := workerpool.New(0) // RELAX_NUM_WORKERS or GOMAXPROCS
//	defer pool.Close()
//
//	for range sweeps {
//	    relax.Run(pool, jacobi)
//	}
package workerpool

import (
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// EnvNumWorkers names the environment variable read by DefaultWorkers.
const EnvNumWorkers = "RELAX_NUM_WORKERS"

// batchesPerWorker controls how finely ForEach splits its index range.
// More batches balance uneven rows better at the cost of more atomic adds.
const batchesPerWorker = 8

// Pool is a persistent worker pool that can be reused across many sweeps.
// Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem represents one worker's share of a parallel operation.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// cursor is the shared batch counter for ForEach, padded so that workers
// spinning on it do not false-share a cache line with other data.
type cursor struct {
	_    cpu.CacheLinePad
	next atomic.Int64
	_    cpu.CacheLinePad
}

// DefaultWorkers returns the worker count used by New(0): the value of
// RELAX_NUM_WORKERS if it is a positive integer, otherwise GOMAXPROCS.
func DefaultWorkers() int {
	if val := os.Getenv(EnvNumWorkers); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return runtime.GOMAXPROCS(0)
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses DefaultWorkers.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkers()
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ForEach calls fn once for every index in [0, n) and blocks until all
// calls complete. Indices are handed out in batches through an atomic
// counter, so rows of uneven length are balanced across workers. The
// order in which indices run is unspecified.
//
// ForEach implements relax.Executor.
func (p *Pool) ForEach(n int, fn func(i int)) {
	batch := max(1, n/(p.numWorkers*batchesPerWorker))
	p.ParallelForBatched(n, batch, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}

// ParallelFor executes fn over [0, n) split into one contiguous chunk per
// worker. fn receives (start, end) and must process [start, end).
// Blocks until all work completes.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			wg.Done()
			continue
		}
		p.workC <- workItem{
			fn:      func() { fn(start, end) },
			barrier: &wg,
		}
	}
	wg.Wait()
}

// ParallelForBatched executes fn over [0, n) in batches of batchSize
// indices claimed through an atomic counter. Blocks until all work
// completes.
func (p *Pool) ParallelForBatched(n, batchSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if batchSize <= 0 {
		batchSize = 1
	}

	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	c := new(cursor)
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					start := int(c.next.Add(int64(batchSize))) - batchSize
					if start >= n {
						return
					}
					fn(start, min(start+batchSize, n))
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}
