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

// Floats is a constraint for floating-point scalar types.
type Floats interface {
	~float32 | ~float64
}

// Ordinals is a constraint for column index types.
type Ordinals interface {
	~int | ~int32 | ~int64 | ~uint32 | ~uint64
}

// Kernel is a per-index relaxation operation.
//
// Execute must be called once for every i in [0, Len()). Implementations
// hold no state between calls.
type Kernel interface {
	Execute(i int)
	Len() int
}

// SplitIndex decomposes a combined index into its row and right-hand side.
// Row is the fastest-varying component.
func SplitIndex(i, rows int) (row, rhs int) {
	return i % rows, i / rows
}
