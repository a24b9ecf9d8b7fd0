package fixture

import (
	"fmt"

	"github.com/edp1096/sparse"

	"github.com/ajroetker/go-relax/relax"
)

// DirectSolve solves A*x = b by sparse LU factorization. It is the
// reference fixed point that relaxation sweeps are checked against.
func DirectSolve(m relax.Layout[float64, int32], b []float64) ([]float64, error) {
	n := m.NumRows()
	if len(b) != n {
		return nil, fmt.Errorf("direct solve: rhs has %d elements, matrix has %d rows", len(b), n)
	}

	config := &sparse.Configuration{
		Real:           true,
		Expandable:     true,
		TiesMultiplier: 5,
		PrinterWidth:   140,
	}
	mat, err := sparse.Create(int64(n), config)
	if err != nil {
		return nil, fmt.Errorf("direct solve: create matrix: %w", err)
	}
	defer mat.Destroy()

	// The sparse package indexes rows, columns and vectors from 1.
	for row := range n {
		for col, v := range m.Entries(row) {
			mat.GetElement(int64(row+1), int64(col)+1).Real += v
		}
	}
	rhs := make([]float64, n+1)
	copy(rhs[1:], b)

	if err := mat.Factor(); err != nil {
		return nil, fmt.Errorf("direct solve: factor: %w", err)
	}
	solution, err := mat.Solve(rhs)
	if err != nil {
		return nil, fmt.Errorf("direct solve: solve: %w", err)
	}
	return solution[1 : n+1], nil
}
