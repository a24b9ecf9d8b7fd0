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
	"unsafe"
)

// Block is a dense Rows x NumRHS block of vectors stored column by column
// in Data, with Stride elements between the starts of consecutive columns.
// Element (row, rhs) lives at Data[rhs*Stride+row].
type Block[T Floats] struct {
	Data   []T
	Rows   int
	NumRHS int
	Stride int
}

// NewBlock returns a Block view of data after checking that the stride
// separates columns and data is long enough to hold every column.
func NewBlock[T Floats](data []T, rows, numRHS, stride int) (Block[T], error) {
	b := Block[T]{Data: data, Rows: rows, NumRHS: numRHS, Stride: stride}
	if rows <= 0 || numRHS <= 0 {
		return b, fmt.Errorf("%w: block %dx%d", ErrShape, rows, numRHS)
	}
	if stride < rows {
		return b, fmt.Errorf("%w: stride %d < rows %d", ErrShape, stride, rows)
	}
	if need := b.span(); len(data) < need {
		return b, fmt.Errorf("%w: block needs %d elements, data has %d", ErrShape, need, len(data))
	}
	return b, nil
}

// Vector wraps a single column.
func Vector[T Floats](data []T) Block[T] {
	return Block[T]{Data: data, Rows: len(data), NumRHS: 1, Stride: len(data)}
}

// Len returns Rows*NumRHS, the size of the combined index space.
func (b Block[T]) Len() int {
	return b.Rows * b.NumRHS
}

// Col returns column rhs as a slice of length Rows aliasing Data.
func (b Block[T]) Col(rhs int) []T {
	off := rhs * b.Stride
	return b.Data[off : off+b.Rows : off+b.Rows]
}

// At returns element (row, rhs).
func (b Block[T]) At(row, rhs int) T {
	return b.Data[rhs*b.Stride+row]
}

// Set stores v at element (row, rhs).
func (b Block[T]) Set(row, rhs int, v T) {
	b.Data[rhs*b.Stride+row] = v
}

func (b Block[T]) span() int {
	if b.NumRHS == 0 {
		return 0
	}
	return (b.NumRHS-1)*b.Stride + b.Rows
}

// overlaps reports whether the storage spans of a and b share memory.
func overlaps[T Floats](a, b Block[T]) bool {
	na, nb := a.span(), b.span()
	if na == 0 || nb == 0 || len(a.Data) == 0 || len(b.Data) == 0 {
		return false
	}
	var zero T
	size := uintptr(unsafe.Sizeof(zero))
	pa := uintptr(unsafe.Pointer(unsafe.SliceData(a.Data)))
	pb := uintptr(unsafe.Pointer(unsafe.SliceData(b.Data)))
	return pa < pb+uintptr(nb)*size && pb < pa+uintptr(na)*size
}
