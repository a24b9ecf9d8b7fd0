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
package relax_test

import (
	"errors"
	"math"
	"testing"

	"github.com/ajroetker/go-relax/internal/fixture"
	"github.com/ajroetker/go-relax/internal/testutil"
	"github.com/ajroetker/go-relax/relax"
	"github.com/ajroetker/go-relax/relax/contrib/workerpool"
)

func TestExtractDiagonal(t *testing.T) {
	m := fixture.DenseToCRS([][]float64{
		{4, 1, 0},
		{2, 5, 1},
		{0, 3, 6},
	})
	diag := make([]float64, 3)
	if err := relax.ExtractDiagonal(relax.Serial{}, m, diag); err != nil {
		t.Fatal(err)
	}
	testutil.RequireBitIdentical(t, diag, []float64{4, 5, 6})
}

func TestExtractDiagonalLayoutsAgree(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	crs := fixture.DiagDominant(400, 8, 21)
	rp := relax.RowPointerOf(crs)

	fromCRS := make([]float64, crs.NumRows())
	fromRP := make([]float64, crs.NumRows())
	if err := relax.ExtractDiagonal(pool, crs, fromCRS); err != nil {
		t.Fatal(err)
	}
	if err := relax.ExtractDiagonal(relax.Shuffled(rp.NumRows()), rp, fromRP); err != nil {
		t.Fatal(err)
	}
	testutil.RequireBitIdentical(t, fromRP, fromCRS)

	for r := range crs.NumRows() {
		want := math.NaN()
		for c, v := range crs.Entries(r) {
			if int(c) == r {
				want = v
			}
		}
		if fromCRS[r] != want {
			t.Fatalf("diag[%d] = %v, want %v", r, fromCRS[r], want)
		}
	}
}

func TestDiagonalOpFirstMatchWins(t *testing.T) {
	// Row 0 stores its diagonal twice; the earlier entry is used.
	m, err := relax.NewCRS([]int{0, 3, 4}, []int32{1, 0, 0, 1}, []float64{9, 2, 7, 3})
	if err != nil {
		t.Fatal(err)
	}
	diag := make([]float64, 2)
	relax.Run(nil, relax.DiagonalOp[float64, int32]{Matrix: m, Diag: diag})
	testutil.RequireBitIdentical(t, diag, []float64{2, 3})
}

func TestDiagonalOpLeavesMissingRowsUntouched(t *testing.T) {
	m, err := relax.NewRowPointer(
		[][]int32{{0}, {0}, {2}},
		[][]float64{{5}, {1}, {6}},
		[]int{1, 1, 1},
	)
	if err != nil {
		t.Fatal(err)
	}

	op := relax.DiagonalOp[float64, int32]{Matrix: m, Diag: []float64{-1, -1, -1}}
	relax.Run(relax.Serial{}, op)
	testutil.RequireBitIdentical(t, op.Diag, []float64{5, -1, 6})

	if _, ok := op.Find(1); ok {
		t.Error("Find(1) reported a diagonal entry for a row without one")
	}
}

func TestExtractDiagonalReportsMissingRows(t *testing.T) {
	m := fixture.DenseToCRS([][]float64{
		{1, 0, 0, 0},
		{1, 0, 1, 0},
		{0, 0, 2, 0},
		{0, 1, 0, 0},
	})
	diag := []float64{-1, -1, -1, -1}
	err := relax.ExtractDiagonal(relax.Serial{}, m, diag)
	if !errors.Is(err, relax.ErrMissingDiagonal) {
		t.Fatalf("ExtractDiagonal() error = %v, want ErrMissingDiagonal", err)
	}
	var missing *relax.MissingDiagonalError
	if !errors.As(err, &missing) {
		t.Fatalf("error %T is not *MissingDiagonalError", err)
	}
	if len(missing.Rows) != 2 || missing.Rows[0] != 1 || missing.Rows[1] != 3 {
		t.Errorf("missing rows = %v, want [1 3]", missing.Rows)
	}
	// Found rows are still written; missing rows keep their old value.
	testutil.RequireBitIdentical(t, diag, []float64{1, -1, 2, -1})
}

func TestExtractDiagonalShortBuffer(t *testing.T) {
	m := fixture.Poisson2D(3)
	err := relax.ExtractDiagonal(relax.Serial{}, m, make([]float64, 8))
	if !errors.Is(err, relax.ErrShape) {
		t.Fatalf("ExtractDiagonal() error = %v, want ErrShape", err)
	}
}

func TestCheckDiagonal(t *testing.T) {
	if err := relax.CheckDiagonal([]float64{1, -2, 1e-300}); err != nil {
		t.Errorf("CheckDiagonal() unexpected error: %v", err)
	}

	err := relax.CheckDiagonal([]float32{1, 0, float32(math.Inf(1)), float32(math.NaN())})
	var zero *relax.ZeroDiagonalError
	if !errors.As(err, &zero) || !errors.Is(err, relax.ErrZeroDiagonal) {
		t.Fatalf("CheckDiagonal() error = %v, want *ZeroDiagonalError", err)
	}
	if len(zero.Rows) != 3 || zero.Rows[0] != 1 || zero.Rows[2] != 3 {
		t.Errorf("bad rows = %v, want [1 2 3]", zero.Rows)
	}
}

func TestMissingDiagonalErrorMessage(t *testing.T) {
	rows := make([]int, 20)
	for i := range rows {
		rows[i] = i * 2
	}
	msg := (&relax.MissingDiagonalError{Rows: rows}).Error()
	want := "relax: missing diagonal entry in 20 row(s): 0, 2, 4, 6, 8, 10, 12, 14, ..."
	if msg != want {
		t.Errorf("Error() = %q, want %q", msg, want)
	}
}
