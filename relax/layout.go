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
	"iter"
)

// Layout is a read-only view of a square sparse matrix, one row at a time.
//
// Row returns the row's column indices and values in storage order. The
// returned slices alias the caller's buffers and must not be modified or
// retained past the sweep.
type Layout[T Floats, I Ordinals] interface {
	NumRows() int
	Row(row int) (cols []I, vals []T)
	Entries(row int) iter.Seq2[I, T]
}

// CRS is the packed compressed-row layout: row r occupies
// Indices[Offsets[r]:Offsets[r+1]] and Values[Offsets[r]:Offsets[r+1]].
type CRS[T Floats, I Ordinals] struct {
	Offsets []int
	Indices []I
	Values  []T
}

// NewCRS returns a CRS view after checking that offsets start at zero,
// never decrease, cover both flat arrays, and that every column lies in
// [0, numRows).
func NewCRS[T Floats, I Ordinals](offsets []int, indices []I, values []T) (CRS[T, I], error) {
	m := CRS[T, I]{Offsets: offsets, Indices: indices, Values: values}
	if len(offsets) < 2 {
		return m, fmt.Errorf("%w: need at least 2 offsets, got %d", ErrMalformedLayout, len(offsets))
	}
	if offsets[0] != 0 {
		return m, fmt.Errorf("%w: offsets[0] = %d, want 0", ErrMalformedLayout, offsets[0])
	}
	n := len(offsets) - 1
	for r := range n {
		if offsets[r+1] < offsets[r] {
			return m, fmt.Errorf("%w: offsets decrease at row %d (%d > %d)",
				ErrMalformedLayout, r, offsets[r], offsets[r+1])
		}
	}
	nnz := offsets[n]
	if len(indices) != nnz || len(values) != nnz {
		return m, fmt.Errorf("%w: offsets[%d] = %d but len(indices) = %d, len(values) = %d",
			ErrMalformedLayout, n, nnz, len(indices), len(values))
	}
	for r := range n {
		if err := checkColumns(r, indices[offsets[r]:offsets[r+1]], n); err != nil {
			return m, err
		}
	}
	return m, nil
}

// NumRows returns the number of rows.
func (m CRS[T, I]) NumRows() int {
	return len(m.Offsets) - 1
}

// Row returns the column indices and values of row.
func (m CRS[T, I]) Row(row int) ([]I, []T) {
	lo, hi := m.Offsets[row], m.Offsets[row+1]
	return m.Indices[lo:hi:hi], m.Values[lo:hi:hi]
}

// Entries returns row's (column, value) pairs in storage order.
func (m CRS[T, I]) Entries(row int) iter.Seq2[I, T] {
	cols, vals := m.Row(row)
	return entries(cols, vals)
}

// NNZ returns the total number of stored entries.
func (m CRS[T, I]) NNZ() int {
	return m.Offsets[len(m.Offsets)-1]
}

// RowPointer is the per-row layout: row r owns Indices[r][:Counts[r]] and
// Values[r][:Counts[r]].
type RowPointer[T Floats, I Ordinals] struct {
	Indices [][]I
	Values  [][]T
	Counts  []int
}

// NewRowPointer returns a RowPointer view after checking that the three
// per-row arrays agree in length, that each count fits its row's slices,
// and that every column lies in [0, numRows).
func NewRowPointer[T Floats, I Ordinals](indices [][]I, values [][]T, counts []int) (RowPointer[T, I], error) {
	m := RowPointer[T, I]{Indices: indices, Values: values, Counts: counts}
	n := len(counts)
	if n == 0 {
		return m, fmt.Errorf("%w: no rows", ErrMalformedLayout)
	}
	if len(indices) != n || len(values) != n {
		return m, fmt.Errorf("%w: %d counts but %d index rows and %d value rows",
			ErrMalformedLayout, n, len(indices), len(values))
	}
	for r, c := range counts {
		if c < 0 || c > len(indices[r]) || c > len(values[r]) {
			return m, fmt.Errorf("%w: row %d count %d exceeds index length %d or value length %d",
				ErrMalformedLayout, r, c, len(indices[r]), len(values[r]))
		}
		if err := checkColumns(r, indices[r][:c], n); err != nil {
			return m, err
		}
	}
	return m, nil
}

// RowPointerOf returns a RowPointer view of m sharing m's buffers.
// Only the per-row slice headers are allocated.
func RowPointerOf[T Floats, I Ordinals](m CRS[T, I]) RowPointer[T, I] {
	n := m.NumRows()
	rp := RowPointer[T, I]{
		Indices: make([][]I, n),
		Values:  make([][]T, n),
		Counts:  make([]int, n),
	}
	for r := range n {
		rp.Indices[r], rp.Values[r] = m.Row(r)
		rp.Counts[r] = len(rp.Indices[r])
	}
	return rp
}

// NumRows returns the number of rows.
func (m RowPointer[T, I]) NumRows() int {
	return len(m.Counts)
}

// Row returns the column indices and values of row.
func (m RowPointer[T, I]) Row(row int) ([]I, []T) {
	c := m.Counts[row]
	return m.Indices[row][:c:c], m.Values[row][:c:c]
}

// Entries returns row's (column, value) pairs in storage order.
func (m RowPointer[T, I]) Entries(row int) iter.Seq2[I, T] {
	cols, vals := m.Row(row)
	return entries(cols, vals)
}

func entries[T Floats, I Ordinals](cols []I, vals []T) iter.Seq2[I, T] {
	return func(yield func(I, T) bool) {
		for k, c := range cols {
			if !yield(c, vals[k]) {
				return
			}
		}
	}
}

func checkColumns[I Ordinals](row int, cols []I, n int) error {
	for _, c := range cols {
		// Negative signed ordinals wrap to large uint64 values and fail here too.
		if uint64(c) >= uint64(n) {
			return fmt.Errorf("%w: row %d has column %d, numRows = %d", ErrColumnOutOfRange, row, c, n)
		}
	}
	return nil
}
