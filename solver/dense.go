// Package solver - dense direct solve via a real block-augmented system.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
//
// gonum.org/v1/gonum/lapack/gonum implements only the real (D-prefixed)
// LAPACK routines; there is no complex Z-prefixed counterpart to factorize
// against directly (confirmed by its Dhgeqz-family signatures, which carry
// no complex analogue anywhere in the package). mat.LU wraps exactly that
// real LAPACK path (Dgetrf/Dgetrs under the hood), so a complex A*x=b is
// rewritten as the equivalent real 2N-by-2N system before handing it to
// mat.LU, rather than reimplementing LU decomposition by hand:
//
//	(Ar + i*Ai)(xr + i*xi) = br + i*bi
//	  Ar*xr - Ai*xi = br
//	  Ai*xr + Ar*xi = bi
//
//	[ Ar  -Ai ] [xr]   [br]
//	[ Ai   Ar ] [xi] = [bi]
package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/capytaine/capytaine/go-capytaine/bem-core/bemerr"
)

func denseSolve(A, B *mat.CDense) (*Result, error) {
	n, _ := A.Dims()
	_, m := B.Dims()

	aug := mat.NewDense(2*n, 2*n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := A.At(i, j)
			aug.Set(i, j, real(v))
			aug.Set(i, n+j, -imag(v))
			aug.Set(n+i, j, imag(v))
			aug.Set(n+i, n+j, real(v))
		}
	}

	rhs := mat.NewDense(2*n, m, nil)
	for i := 0; i < n; i++ {
		for c := 0; c < m; c++ {
			v := B.At(i, c)
			rhs.Set(i, c, real(v))
			rhs.Set(n+i, c, imag(v))
		}
	}

	var lu mat.LU
	lu.Factorize(aug)

	cond := lu.Cond()
	if math.IsInf(cond, 1) || cond > 1e12 {
		return nil, &bemerr.SolverError{
			Reason:       bemerr.ReasonSingular,
			ConditionEst: cond,
		}
	}

	var sol mat.Dense
	if err := lu.SolveTo(&sol, false, rhs); err != nil {
		return nil, &bemerr.SolverError{
			Reason:         bemerr.ReasonSingular,
			ConditionEst:   cond,
			UnderlyingText: err.Error(),
		}
	}

	X := mat.NewCDense(n, m, nil)
	for i := 0; i < n; i++ {
		for c := 0; c < m; c++ {
			X.Set(i, c, complex(sol.At(i, c), sol.At(n+i, c)))
		}
	}

	return &Result{X: X, Method: MethodDenseLU, ConditionEstimate: cond}, nil
}
