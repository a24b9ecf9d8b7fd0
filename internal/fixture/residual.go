package fixture

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ajroetker/go-relax/relax"
)

// Residual returns b - A*x for a single right-hand side.
func Residual(m relax.Layout[float64, int32], x, b []float64) []float64 {
	r := make([]float64, m.NumRows())
	for row := range r {
		ax := 0.0
		for col, v := range m.Entries(row) {
			ax += v * x[col]
		}
		r[row] = b[row] - ax
	}
	return r
}

// ResidualNorm returns the 2-norm of b - A*x.
func ResidualNorm(m relax.Layout[float64, int32], x, b []float64) float64 {
	return floats.Norm(Residual(m, x, b), 2)
}

// BlockResidualNorms returns the residual 2-norm of every column of x.
func BlockResidualNorms(m relax.Layout[float64, int32], x, b relax.Block[float64]) []float64 {
	norms := make([]float64, x.NumRHS)
	for rhs := range norms {
		norms[rhs] = ResidualNorm(m, x.Col(rhs), b.Col(rhs))
	}
	return norms
}
