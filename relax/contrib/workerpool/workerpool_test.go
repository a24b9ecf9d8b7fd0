// Copyright 2025 The go-relax Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/ajroetker/go-relax/internal/fixture"
	"github.com/ajroetker/go-relax/internal/testutil"
	"github.com/ajroetker/go-relax/relax"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	t.Setenv(EnvNumWorkers, "")
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestDefaultWorkersEnv(t *testing.T) {
	tests := []struct {
		val  string
		want int
	}{
		{"3", 3},
		{"0", runtime.GOMAXPROCS(0)},
		{"-2", runtime.GOMAXPROCS(0)},
		{"many", runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			t.Setenv(EnvNumWorkers, tt.val)
			if got := DefaultWorkers(); got != tt.want {
				t.Errorf("DefaultWorkers() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestForEach(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	for _, n := range []int{1, 3, 100, 1000, 4097} {
		counts := make([]atomic.Int32, n)
		pool.ForEach(n, func(i int) {
			counts[i].Add(1)
		})
		for i := range counts {
			if c := counts[i].Load(); c != 1 {
				t.Fatalf("n=%d: index %d ran %d times, want 1", n, i, c)
			}
		}
	}
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForBatched(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelForBatched(n, 10, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForSmallN(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	n := 3
	var count atomic.Int32

	pool.ParallelFor(n, func(start, end int) {
		count.Add(int32(end - start))
	})

	if count.Load() != int32(n) {
		t.Errorf("count = %d, want %d", count.Load(), n)
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelFor(0, func(start, end int) {
		called = true
	})
	pool.ForEach(0, func(int) {
		called = true
	})

	if called {
		t.Error("n=0 should not call fn")
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)

	pool.ForEach(n, func(i int) {
		results[i] = i * 2
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestJacobiOnPoolMatchesSerial(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	m := fixture.Poisson2D(24)
	n := m.NumRows()
	diag := make([]float64, n)
	if err := relax.ExtractDiagonal(pool, m, diag); err != nil {
		t.Fatal(err)
	}
	x0 := relax.Vector(fixture.Random(n, 5))
	b := relax.Vector(fixture.Random(n, 6))

	run := func(ex relax.Executor) []float64 {
		x := relax.Vector(make([]float64, n))
		op, err := relax.NewJacobi(m, diag, x, x0, b, 2.0/3.0)
		if err != nil {
			t.Fatal(err)
		}
		relax.Run(ex, op)
		return x.Data
	}
	testutil.RequireBitIdentical(t, run(pool), run(relax.Serial{}))
}

// A diagonal matrix gives Gauss-Seidel no cross-row reads, so a hybrid
// sweep on the pool must agree exactly with a strict one.
func TestHybridGaussSeidelDiagonalMatrix(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 500
	offsets := make([]int, n+1)
	indices := make([]int32, n)
	values := make([]float64, n)
	for i := range n {
		offsets[i+1] = i + 1
		indices[i] = int32(i)
		values[i] = float64(i%7 + 2)
	}
	m, err := relax.NewCRS(offsets, indices, values)
	if err != nil {
		t.Fatal(err)
	}
	b := relax.Vector(fixture.Random(n, 9))

	run := func(mode relax.Mode) []float64 {
		x := relax.Vector(make([]float64, n))
		op, err := relax.NewGaussSeidel(m, values, x, b, 1.0)
		if err != nil {
			t.Fatal(err)
		}
		relax.RunGaussSeidel(pool, mode, op)
		return x.Data
	}
	testutil.RequireBitIdentical(t, run(relax.Hybrid), run(relax.Strict))
}

func BenchmarkForEach(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	n := 1000
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ForEach(n, func(j int) {
			_ = j * j
		})
	}
}

func BenchmarkJacobiPoisson(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	m := fixture.Poisson2D(128)
	n := m.NumRows()
	diag := make([]float64, n)
	if err := relax.ExtractDiagonal(pool, m, diag); err != nil {
		b.Fatal(err)
	}
	op, err := relax.NewJacobi(m, diag, relax.Vector(make([]float64, n)),
		relax.Vector(fixture.Random(n, 1)), relax.Vector(fixture.Random(n, 2)), 1.0)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		relax.Run(pool, op)
	}
}
