// Copyright 2025 go-relax Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package grid provides a data-parallel launch substrate modelled on a GPU
// grid: the index space is cut into fixed-size blocks and each block runs
// on its own goroutine, with at most MaxBlocks blocks in flight.
//
// Unlike workerpool, a Grid holds no goroutines between launches and can
// stop early when its context is cancelled. Cancellation is checked only
// between blocks; a block that has started always runs to completion, so a
// kernel never observes a partially executed row.
package grid

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultBlockSize is the number of indices per block when BlockSize is 0.
const DefaultBlockSize = 256

// Grid launches per-index functions in blocks.
type Grid struct {
	// BlockSize is the number of consecutive indices per block.
	// Zero means DefaultBlockSize.
	BlockSize int

	// MaxBlocks caps the number of blocks running at once.
	// Zero means GOMAXPROCS.
	MaxBlocks int
}

// Launch calls fn for every index in [0, n) and waits for all started
// blocks to finish. If ctx is cancelled, blocks not yet started are
// skipped and ctx.Err() is returned.
func (g Grid) Launch(ctx context.Context, n int, fn func(i int)) error {
	if n <= 0 {
		return ctx.Err()
	}
	blockSize := g.BlockSize
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	limit := g.MaxBlocks
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	eg, blockCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for start := 0; start < n; start += blockSize {
		if blockCtx.Err() != nil {
			break
		}
		end := min(start+blockSize, n)
		eg.Go(func() error {
			if err := blockCtx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				fn(i)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	// blockCtx is always cancelled once Wait returns; report the parent.
	return ctx.Err()
}

// ForEach implements relax.Executor with a background context.
func (g Grid) ForEach(n int, fn func(i int)) {
	_ = g.Launch(context.Background(), n, fn)
}
