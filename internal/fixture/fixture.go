// Package fixture builds small sparse systems for tests, benchmarks and the
// relaxbench command. Nothing here is used on a kernel's hot path.
package fixture

import (
	"math/rand"

	"github.com/ajroetker/go-relax/relax"
)

// DenseToCRS packs the nonzeros of a square dense matrix row by row in
// ascending column order.
func DenseToCRS(dense [][]float64) relax.CRS[float64, int32] {
	offsets := make([]int, 1, len(dense)+1)
	var indices []int32
	var values []float64
	for _, row := range dense {
		for j, v := range row {
			if v != 0 {
				indices = append(indices, int32(j))
				values = append(values, v)
			}
		}
		offsets = append(offsets, len(values))
	}
	return relax.CRS[float64, int32]{Offsets: offsets, Indices: indices, Values: values}
}

// Poisson2D returns the 5-point Laplacian on an n x n grid with Dirichlet
// boundaries: 4 on the diagonal and -1 for each grid neighbour.
func Poisson2D(n int) relax.CRS[float64, int32] {
	rows := n * n
	offsets := make([]int, 1, rows+1)
	indices := make([]int32, 0, 5*rows)
	values := make([]float64, 0, 5*rows)
	for i := range n {
		for j := range n {
			row := i*n + j
			if i > 0 {
				indices = append(indices, int32(row-n))
				values = append(values, -1)
			}
			if j > 0 {
				indices = append(indices, int32(row-1))
				values = append(values, -1)
			}
			indices = append(indices, int32(row))
			values = append(values, 4)
			if j < n-1 {
				indices = append(indices, int32(row+1))
				values = append(values, -1)
			}
			if i < n-1 {
				indices = append(indices, int32(row+n))
				values = append(values, -1)
			}
			offsets = append(offsets, len(values))
		}
	}
	return relax.CRS[float64, int32]{Offsets: offsets, Indices: indices, Values: values}
}

// DiagDominant returns a random strictly diagonally dominant n x n matrix
// with about perRow off-diagonal entries per row. The diagonal entry is
// stored at a random position within each row so kernels cannot rely on
// its placement.
func DiagDominant(n, perRow int, seed int64) relax.CRS[float64, int32] {
	rng := rand.New(rand.NewSource(seed))
	offsets := make([]int, 1, n+1)
	var indices []int32
	var values []float64
	for row := range n {
		seen := map[int]bool{row: true}
		var cols []int32
		var vals []float64
		sum := 0.0
		for range perRow {
			c := rng.Intn(n)
			if seen[c] {
				continue
			}
			seen[c] = true
			v := rng.Float64()*2 - 1
			cols = append(cols, int32(c))
			vals = append(vals, v)
			if v < 0 {
				sum -= v
			} else {
				sum += v
			}
		}
		at := rng.Intn(len(cols) + 1)
		cols = append(cols[:at], append([]int32{int32(row)}, cols[at:]...)...)
		vals = append(vals[:at], append([]float64{sum + 1 + rng.Float64()}, vals[at:]...)...)
		indices = append(indices, cols...)
		values = append(values, vals...)
		offsets = append(offsets, len(values))
	}
	return relax.CRS[float64, int32]{Offsets: offsets, Indices: indices, Values: values}
}

// Random returns n values uniformly drawn from [-1, 1).
func Random(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}
	return out
}
