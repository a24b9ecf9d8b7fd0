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

// Package relax provides row-parallel relaxation kernels for sparse
// iterative solvers: diagonal extraction, Jacobi and Gauss-Seidel.
//
// # Kernels
//
// Each kernel is a small copyable descriptor that borrows caller-owned
// slices and exposes Execute(i) for a single row (or combined row/RHS
// index):
//   - DiagonalOp - copies each row's diagonal entry into a dense vector
//   - JacobiOp - x = x0 + w * (b - A*x0) / diag, reading only x0 and b
//   - GaussSeidelOp - x += w * (b - A*x) / diag, in place on x
//
// No kernel allocates, locks, logs or validates. Validation happens once,
// in NewCRS, NewRowPointer, NewBlock, NewJacobi and NewGaussSeidel.
//
// # Storage Layouts
//
// Kernels are written once against the Layout interface, which exposes a
// row's (column, value) pairs in storage order. Two layouts are provided:
//   - CRS - shared offsets plus flat index and value arrays
//   - RowPointer - one index slice and one value slice per row, plus counts
//
// # Multiple Right-Hand Sides
//
// Vectors are Blocks: numRHS columns of length Rows packed in one slice
// with a fixed Stride between columns. Jacobi and Gauss-Seidel are
// dispatched over the combined index i in [0, Rows*NumRHS), decomposed as
// row = i % Rows and rhs = i / Rows.
//
// # Execution
//
// Kernels are dispatched by an Executor. Serial, Reverse and Permuted run
// on the calling goroutine; relax/contrib/workerpool and relax/contrib/grid
// provide parallel substrates.
//
// DiagonalOp and JacobiOp write disjoint locations and read only inputs
// that are immutable for the sweep, so any executor produces bit-identical
// results. GaussSeidelOp reads its own output. RunGaussSeidel therefore
// takes a Mode:
//   - Strict - ascending order on one goroutine, exact Gauss-Seidel
//   - Hybrid - the caller's executor, asynchronous ("hybrid") Gauss-Seidel
//
// # Example Usage
//
//	// A = diag(2, 3, 4)
//	m, _ := relax.NewCRS([]int{0, 1, 2, 3}, []int32{0, 1, 2}, []float64{2, 3, 4})
//	diag := make([]float64, 3)
//	if err := relax.ExtractDiagonal(relax.Serial{}, m, diag); err != nil {
//	    return err
//	}
//
//	x := relax.Vector(make([]float64, 3))
//	x0 := relax.Vector([]float64{0, 0, 0})
//	b := relax.Vector([]float64{2, 3, 4})
//	op, err := relax.NewJacobi(m, diag, x, x0, b, 1.0)
//	if err != nil {
//	    return err
//	}
//	relax.Run(relax.Serial{}, op)
//	// x.Data = [1, 1, 1]
package relax
