// Package solver solves the dense complex linear systems the assembler
// produces, dispatching between a direct factorization for small problems
// and an iterative method for large ones.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package solver

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/capytaine/capytaine/go-capytaine/bem-core/bemerr"
)

// Method names the algorithm a Result was produced with.
type Method string

const (
	MethodDenseLU Method = "dense_lu"
	MethodGMRES   Method = "gmres"
)

// Config controls the solver's dispatch and iterative behaviour, grounded on
// original_source's AssemblyConfig.solver_type field.
type Config struct {
	// DenseThreshold is the largest system size solved by direct
	// factorization; above it Solve switches to GMRES. The crossover point
	// is workload- and hardware-dependent, so it is left as a tunable with
	// a conservative default.
	DenseThreshold int

	// MaxIterations bounds GMRES restarts*inner-steps combined. Ignored by
	// the dense path.
	MaxIterations int

	// Tolerance is the relative residual norm GMRES stops at.
	Tolerance float64

	// Restart is the Krylov subspace size before GMRES restarts.
	Restart int
}

// DefaultConfig returns the solver's default dispatch policy.
func DefaultConfig() Config {
	return Config{
		DenseThreshold: 4000,
		MaxIterations:  1000,
		Tolerance:      1e-8,
		Restart:        30,
	}
}

// Result carries a solved potential-density matrix plus the diagnostics a
// caller needs to report a solve (original_source's BEMResult:
// computation_time, iterations).
type Result struct {
	X                 *mat.CDense
	Method            Method
	Iterations        int
	ConditionEstimate float64
	ComputationTime   time.Duration
}

// Solve solves A*X = B for every column of B independently, reusing A's
// factorization (or preconditioner) across columns when there is more
// than one right-hand side to solve.
func Solve(A, B *mat.CDense, cfg Config) (*Result, error) {
	start := time.Now()

	n, nc := A.Dims()
	if n != nc {
		return nil, &bemerr.SolverError{Reason: bemerr.ReasonAllocation, UnderlyingText: "influence matrix is not square"}
	}
	rb, _ := B.Dims()
	if rb != n {
		return nil, &bemerr.SolverError{Reason: bemerr.ReasonAllocation, UnderlyingText: "right-hand side row count does not match matrix size"}
	}

	var res *Result
	var err error
	if n <= cfg.DenseThreshold {
		res, err = denseSolve(A, B)
	} else {
		res, err = gmresSolve(A, B, cfg)
	}
	if err != nil {
		return nil, err
	}

	res.ComputationTime = time.Since(start)
	return res, nil
}
