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
package main

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/ajroetker/go-relax/internal/fixture"
	"github.com/ajroetker/go-relax/relax"
	"github.com/ajroetker/go-relax/relax/contrib/grid"
	"github.com/ajroetker/go-relax/relax/contrib/workerpool"
)

// runConfig holds the flags of the run command.
type runConfig struct {
	Grid      int
	Layout    string
	Kernel    string
	Mode      string
	Executor  string
	Workers   int
	BlockSize int
	RHS       int
	Damping   float64
	Sweeps    int
	Seed      int64
	Check     bool
}

func defaultRunConfig() runConfig {
	return runConfig{
		Grid:     32,
		Layout:   "crs",
		Kernel:   "jacobi",
		Mode:     "strict",
		Executor: "serial",
		RHS:      1,
		Damping:  1,
		Sweeps:   20,
		Seed:     1,
	}
}

// runSummary is what a run reports once all sweeps are done.
type runSummary struct {
	Rows     int
	NNZ      int
	Sweeps   int
	Elapsed  time.Duration
	Initial  []float64 // residual 2-norm per RHS before the first sweep
	Final    []float64 // residual 2-norm per RHS after the last sweep
	MaxError float64   // max |x - x_direct| over all RHS, when checked
	Checked  bool
}

func newRunCommand(logger *zerolog.Logger) *cobra.Command {
	cfg := defaultRunConfig()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run relaxation sweeps on a 2D Poisson problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := execute(cfg, *logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rows=%d nnz=%d sweeps=%d elapsed=%s per-sweep=%s\n",
				s.Rows, s.NNZ, s.Sweeps, s.Elapsed, s.Elapsed/time.Duration(max(s.Sweeps, 1)))
			for rhs := range s.Final {
				fmt.Fprintf(out, "rhs %d: residual %.3e -> %.3e\n", rhs, s.Initial[rhs], s.Final[rhs])
			}
			if s.Checked {
				fmt.Fprintf(out, "max error vs direct solve: %.3e\n", s.MaxError)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&cfg.Grid, "grid", cfg.Grid, "grid points per side (matrix has grid^2 rows)")
	f.StringVar(&cfg.Layout, "layout", cfg.Layout, "storage layout: crs or rowptr")
	f.StringVar(&cfg.Kernel, "kernel", cfg.Kernel, "kernel: jacobi or gauss-seidel")
	f.StringVar(&cfg.Mode, "mode", cfg.Mode, "gauss-seidel mode: strict or hybrid")
	f.StringVar(&cfg.Executor, "executor", cfg.Executor, "executor: serial, pool or grid")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "pool workers or grid blocks in flight (0 = default)")
	f.IntVar(&cfg.BlockSize, "block-size", cfg.BlockSize, "grid block size (0 = default)")
	f.IntVar(&cfg.RHS, "rhs", cfg.RHS, "number of right-hand sides")
	f.Float64Var(&cfg.Damping, "damping", cfg.Damping, "damping factor")
	f.IntVar(&cfg.Sweeps, "sweeps", cfg.Sweeps, "number of sweeps")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for the random right-hand sides")
	f.BoolVar(&cfg.Check, "check", cfg.Check, "compare against a sparse LU solution")
	return cmd
}

// execute builds the model problem and runs cfg.Sweeps sweeps of the
// selected kernel.
func execute(cfg runConfig, logger zerolog.Logger) (runSummary, error) {
	var s runSummary
	if cfg.Grid <= 0 || cfg.RHS <= 0 || cfg.Sweeps < 0 {
		return s, fmt.Errorf("grid and rhs must be positive and sweeps non-negative (got %d, %d, %d)",
			cfg.Grid, cfg.RHS, cfg.Sweeps)
	}
	mode, err := relax.ParseMode(cfg.Mode)
	if err != nil {
		return s, err
	}

	crs := fixture.Poisson2D(cfg.Grid)
	var m relax.Layout[float64, int32]
	switch cfg.Layout {
	case "crs":
		m = crs
	case "rowptr":
		m = relax.RowPointerOf(crs)
	default:
		return s, fmt.Errorf("unknown layout %q (want crs or rowptr)", cfg.Layout)
	}

	ex, closeEx, err := newExecutor(cfg)
	if err != nil {
		return s, err
	}
	defer closeEx()

	n := m.NumRows()
	s.Rows, s.NNZ, s.Sweeps = n, crs.NNZ(), cfg.Sweeps
	log := logger.With().
		Str("kernel", cfg.Kernel).
		Str("layout", cfg.Layout).
		Str("executor", cfg.Executor).
		Int("rows", n).
		Int("rhs", cfg.RHS).
		Logger()

	diag := make([]float64, n)
	if err := relax.ExtractDiagonal(ex, m, diag); err != nil {
		return s, err
	}

	b := relax.Block[float64]{Data: fixture.Random(n*cfg.RHS, cfg.Seed), Rows: n, NumRHS: cfg.RHS, Stride: n}
	x := relax.Block[float64]{Data: make([]float64, n*cfg.RHS), Rows: n, NumRHS: cfg.RHS, Stride: n}
	s.Initial = fixture.BlockResidualNorms(m, x, b)

	start := time.Now()
	switch cfg.Kernel {
	case "jacobi":
		x, err = runJacobi(ex, m, diag, x, b, cfg, log)
	case "gauss-seidel":
		if mode == relax.Hybrid {
			log.Warn().Msg("hybrid mode: sweeps are asynchronous and not reproducible across runs")
		}
		err = runGaussSeidel(ex, mode, m, diag, x, b, cfg, log)
	default:
		err = fmt.Errorf("unknown kernel %q (want jacobi or gauss-seidel)", cfg.Kernel)
	}
	if err != nil {
		return s, err
	}
	s.Elapsed = time.Since(start)
	s.Final = fixture.BlockResidualNorms(m, x, b)
	log.Info().
		Dur("elapsed", s.Elapsed).
		Floats64("residual", s.Final).
		Msg("sweeps complete")

	if cfg.Check {
		for rhs := range cfg.RHS {
			want, err := fixture.DirectSolve(m, b.Col(rhs))
			if err != nil {
				return s, err
			}
			s.MaxError = max(s.MaxError, floats.Distance(x.Col(rhs), want, math.Inf(1)))
		}
		s.Checked = true
		log.Info().Float64("max_error", s.MaxError).Msg("compared with direct solve")
	}
	return s, nil
}

func newExecutor(cfg runConfig) (relax.Executor, func(), error) {
	switch cfg.Executor {
	case "serial":
		return relax.Serial{}, func() {}, nil
	case "pool":
		pool := workerpool.New(cfg.Workers)
		return pool, pool.Close, nil
	case "grid":
		return grid.Grid{BlockSize: cfg.BlockSize, MaxBlocks: cfg.Workers}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown executor %q (want serial, pool or grid)", cfg.Executor)
	}
}

// runJacobi alternates between two iterate blocks and returns the one
// holding the latest iterate.
func runJacobi(ex relax.Executor, m relax.Layout[float64, int32], diag []float64,
	x, b relax.Block[float64], cfg runConfig, log zerolog.Logger,
) (relax.Block[float64], error) {
	next := relax.Block[float64]{Data: make([]float64, len(x.Data)), Rows: x.Rows, NumRHS: x.NumRHS, Stride: x.Stride}
	fwd, err := relax.NewJacobi(m, diag, next, x, b, cfg.Damping)
	if err != nil {
		return x, err
	}
	bwd, err := relax.NewJacobi(m, diag, x, next, b, cfg.Damping)
	if err != nil {
		return x, err
	}

	cur := x
	for sweep := range cfg.Sweeps {
		if sweep%2 == 0 {
			relax.Run(ex, fwd)
			cur = next
		} else {
			relax.Run(ex, bwd)
			cur = x
		}
		logSweep(log, sweep, m, cur, b)
	}
	return cur, nil
}

func runGaussSeidel(ex relax.Executor, mode relax.Mode, m relax.Layout[float64, int32], diag []float64,
	x, b relax.Block[float64], cfg runConfig, log zerolog.Logger,
) error {
	op, err := relax.NewGaussSeidel(m, diag, x, b, cfg.Damping)
	if err != nil {
		return err
	}
	for sweep := range cfg.Sweeps {
		relax.RunGaussSeidel(ex, mode, op)
		logSweep(log, sweep, m, x, b)
	}
	return nil
}

func logSweep(log zerolog.Logger, sweep int, m relax.Layout[float64, int32], x, b relax.Block[float64]) {
	if e := log.Debug(); e.Enabled() {
		e.Int("sweep", sweep+1).Floats64("residual", fixture.BlockResidualNorms(m, x, b)).Msg("sweep")
	}
}
