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

import "fmt"

// GaussSeidelOp computes one damped fine-grain Gauss-Seidel step per
// (row, rhs) pair, in place:
//
//	x[row] += Damping * (b[row] - sum_k A[row,k]*x[k]) / Diag[row]
//
// The sum reads the live values of X, including entries already updated
// earlier in the same sweep. Run in ascending order on one goroutine this
// is exact Gauss-Seidel; run out of order or concurrently it is the
// asynchronous "hybrid" variant. Execute takes no locks; see Mode.
type GaussSeidelOp[T Floats, I Ordinals] struct {
	Matrix  Layout[T, I]
	Diag    []T
	X       Block[T]
	B       Block[T]
	Damping T
}

// NewGaussSeidel returns a GaussSeidelOp after checking that every block
// matches the matrix, that x does not overlap b, and that the first
// numRows entries of diag are finite and nonzero.
func NewGaussSeidel[T Floats, I Ordinals](m Layout[T, I], diag []T, x, b Block[T], damping T) (GaussSeidelOp[T, I], error) {
	op := GaussSeidelOp[T, I]{Matrix: m, Diag: diag, X: x, B: b, Damping: damping}
	if err := checkSystem(m, diag, x, b); err != nil {
		return op, fmt.Errorf("gauss-seidel: %w", err)
	}
	if overlaps(x, b) {
		return op, fmt.Errorf("gauss-seidel: %w", ErrAliased)
	}
	return op, nil
}

// Len returns Rows*NumRHS of X.
func (op GaussSeidelOp[T, I]) Len() int {
	return op.X.Len()
}

// Execute performs the Gauss-Seidel update for combined index i.
func (op GaussSeidelOp[T, I]) Execute(i int) {
	row, rhs := SplitIndex(i, op.X.Rows)
	x := op.X.Data[rhs*op.X.Stride:]
	b := op.B.Data[rhs*op.B.Stride:]

	residual := b[row]
	cols, vals := op.Matrix.Row(row)
	for k, c := range cols {
		residual -= vals[k] * x[c]
	}
	x[row] += op.Damping * residual / op.Diag[row]
}
