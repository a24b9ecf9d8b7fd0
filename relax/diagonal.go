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
	"math"
)

// DiagonalOp copies each row's diagonal coefficient into Diag.
//
// Rows are independent: Execute(row) reads only the matrix and writes only
// Diag[row], so all rows may run concurrently in any order.
type DiagonalOp[T Floats, I Ordinals] struct {
	Matrix Layout[T, I]
	Diag   []T
}

// Len returns the number of rows.
func (op DiagonalOp[T, I]) Len() int {
	return op.Matrix.NumRows()
}

// Find returns the first stored entry of row whose column equals row.
func (op DiagonalOp[T, I]) Find(row int) (T, bool) {
	cols, vals := op.Matrix.Row(row)
	for k, c := range cols {
		if int(c) == row {
			return vals[k], true
		}
	}
	var zero T
	return zero, false
}

// Execute stores row's diagonal entry in Diag[row]. If the row has no
// diagonal entry, Diag[row] is left unmodified.
func (op DiagonalOp[T, I]) Execute(row int) {
	if v, ok := op.Find(row); ok {
		op.Diag[row] = v
	}
}

// ExtractDiagonal runs DiagonalOp over every row of m on ex.
//
// Rows without a diagonal entry keep their previous diag value, exactly as
// DiagonalOp does. They are reported as a *MissingDiagonalError so callers
// cannot silently divide by a stale value.
func ExtractDiagonal[T Floats, I Ordinals](ex Executor, m Layout[T, I], diag []T) error {
	n := m.NumRows()
	if len(diag) < n {
		return fmt.Errorf("%w: diag has %d elements, matrix has %d rows", ErrShape, len(diag), n)
	}
	op := DiagonalOp[T, I]{Matrix: m, Diag: diag}
	found := make([]bool, n)
	executor(ex).ForEach(n, func(row int) {
		if v, ok := op.Find(row); ok {
			diag[row] = v
			found[row] = true
		}
	})

	var missing []int
	for r, ok := range found {
		if !ok {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return &MissingDiagonalError{Rows: missing}
	}
	return nil
}

// CheckDiagonal reports entries of diag that are zero, NaN or infinite as
// a *ZeroDiagonalError.
func CheckDiagonal[T Floats](diag []T) error {
	var bad []int
	for r, d := range diag {
		f := float64(d)
		if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			bad = append(bad, r)
		}
	}
	if len(bad) > 0 {
		return &ZeroDiagonalError{Rows: bad}
	}
	return nil
}
