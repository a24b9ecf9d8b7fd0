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

package relax

import (
	"fmt"

	"github.com/samber/lo"
)

// Executor is an execution substrate for per-index kernels.
//
// ForEach calls fn exactly once for every i in [0, n), in any order and on
// any goroutines, and returns after every call has completed.
type Executor interface {
	ForEach(n int, fn func(i int))
}

// Serial runs indices in ascending order on the calling goroutine.
type Serial struct{}

func (Serial) ForEach(n int, fn func(i int)) {
	for i := range n {
		fn(i)
	}
}

// Reverse runs indices in descending order on the calling goroutine.
type Reverse struct{}

func (Reverse) ForEach(n int, fn func(i int)) {
	for i := n - 1; i >= 0; i-- {
		fn(i)
	}
}

// Permuted runs indices in the order given by Order on the calling
// goroutine. Order must be a permutation of [0, n).
type Permuted struct {
	Order []int
}

func (p Permuted) ForEach(n int, fn func(i int)) {
	if len(p.Order) != n {
		panic(fmt.Sprintf("relax: permutation of length %d used for %d indices", len(p.Order), n))
	}
	for _, i := range p.Order {
		fn(i)
	}
}

// Shuffled returns a Permuted executor with a random order of [0, n).
func Shuffled(n int) Permuted {
	return Permuted{Order: lo.Shuffle(lo.Range(n))}
}

// Run dispatches k over [0, k.Len()) on ex. A nil ex runs serially.
//
// Run is safe under any executor for DiagonalOp and JacobiOp. For
// GaussSeidelOp use RunGaussSeidel, which makes the ordering policy
// explicit.
func Run(ex Executor, k Kernel) {
	executor(ex).ForEach(k.Len(), k.Execute)
}

func executor(ex Executor) Executor {
	if ex == nil {
		return Serial{}
	}
	return ex
}
