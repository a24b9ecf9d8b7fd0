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

// JacobiOp computes one damped Jacobi step per (row, rhs) pair:
//
//	x[row] = x0[row] + Damping * (b[row] - sum_k A[row,k]*x0[k]) / Diag[row]
//
// The sum runs over every stored entry of the row, diagonal included.
// Execute reads only X0 and B and writes only X(row, rhs), so the result
// does not depend on execution order.
type JacobiOp[T Floats, I Ordinals] struct {
	Matrix  Layout[T, I]
	Diag    []T
	X       Block[T]
	X0      Block[T]
	B       Block[T]
	Damping T
}

// NewJacobi returns a JacobiOp after checking that every block matches
// the matrix, that x does not overlap x0 or b, and that the first
// numRows entries of diag are finite and nonzero.
func NewJacobi[T Floats, I Ordinals](m Layout[T, I], diag []T, x, x0, b Block[T], damping T) (JacobiOp[T, I], error) {
	op := JacobiOp[T, I]{Matrix: m, Diag: diag, X: x, X0: x0, B: b, Damping: damping}
	if err := checkSystem(m, diag, x, x0, b); err != nil {
		return op, fmt.Errorf("jacobi: %w", err)
	}
	if overlaps(x, x0) || overlaps(x, b) {
		return op, fmt.Errorf("jacobi: %w", ErrAliased)
	}
	return op, nil
}

// Len returns Rows*NumRHS of X.
func (op JacobiOp[T, I]) Len() int {
	return op.X.Len()
}

// Execute performs the Jacobi update for combined index i.
func (op JacobiOp[T, I]) Execute(i int) {
	row, rhs := SplitIndex(i, op.X.Rows)
	x := op.X.Data[rhs*op.X.Stride:]
	x0 := op.X0.Data[rhs*op.X0.Stride:]
	b := op.B.Data[rhs*op.B.Stride:]

	residual := b[row]
	cols, vals := op.Matrix.Row(row)
	for k, c := range cols {
		residual -= vals[k] * x0[c]
	}
	x[row] = x0[row] + op.Damping*residual/op.Diag[row]
}

// checkSystem validates the shapes shared by Jacobi and Gauss-Seidel.
func checkSystem[T Floats, I Ordinals](m Layout[T, I], diag []T, blocks ...Block[T]) error {
	n := m.NumRows()
	if len(diag) < n {
		return fmt.Errorf("%w: diag has %d elements, matrix has %d rows", ErrShape, len(diag), n)
	}
	for _, blk := range blocks {
		if blk.Rows != n {
			return fmt.Errorf("%w: block has %d rows, matrix has %d", ErrShape, blk.Rows, n)
		}
		if blk.NumRHS != blocks[0].NumRHS {
			return fmt.Errorf("%w: blocks disagree on NumRHS (%d vs %d)", ErrShape, blk.NumRHS, blocks[0].NumRHS)
		}
		if _, err := NewBlock(blk.Data, blk.Rows, blk.NumRHS, blk.Stride); err != nil {
			return err
		}
	}
	return CheckDiagonal(diag[:n])
}
