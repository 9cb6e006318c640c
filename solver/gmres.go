// Package solver - restarted, Jacobi-preconditioned GMRES for large
// systems.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
//
// gonum.org/v1/gonum/blas/blas64 is real-only (it mirrors the real D-prefix
// BLAS level-1 routines); its complex counterpart in the same module,
// blas/cblas128, mirrors the Z-prefix routines (Dotc/Dotu/Axpy/Scal/Nrm2)
// and is what the vector arithmetic of a complex Arnoldi process actually
// needs, so the inner loop below is built on cblas128 rather than on a
// hand-rolled complex dot/axpy.
package solver

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"

	"github.com/capytaine/capytaine/go-capytaine/bem-core/bemerr"
)

func gmresSolve(A, B *mat.CDense, cfg Config) (*Result, error) {
	n, _ := A.Dims()
	_, m := B.Dims()

	precon := jacobiPreconditioner(A)

	X := mat.NewCDense(n, m, nil)
	maxIters := 0
	for c := 0; c < m; c++ {
		b := make([]complex128, n)
		for i := 0; i < n; i++ {
			b[i] = B.At(i, c)
		}
		x, iters, err := gmresSingle(A, b, precon, cfg)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			X.Set(i, c, x[i])
		}
		if iters > maxIters {
			maxIters = iters
		}
	}

	return &Result{X: X, Method: MethodGMRES, Iterations: maxIters}, nil
}

// jacobiPreconditioner returns the diagonal of A, inverted, as the
// practical substitute for ILU(0): on a dense, fully-populated influence
// matrix there is no sparsity pattern for zero-fill-in to preserve, so
// ILU(0) degenerates to a full factorization. The diagonal scaling keeps
// the cheap-preconditioner intent without that degeneracy.
func jacobiPreconditioner(A *mat.CDense) []complex128 {
	n, _ := A.Dims()
	d := make([]complex128, n)
	for i := 0; i < n; i++ {
		v := A.At(i, i)
		if cmplx.Abs(v) < 1e-14 {
			v = complex(1, 0)
		}
		d[i] = 1 / v
	}
	return d
}

func vec(x []complex128) cblas128.Vector {
	return cblas128.Vector{N: len(x), Inc: 1, Data: x}
}

func matVec(A *mat.CDense, x []complex128) []complex128 {
	n, _ := A.Dims()
	y := make([]complex128, n)
	for i := 0; i < n; i++ {
		var sum complex128
		for j := 0; j < n; j++ {
			sum += A.At(i, j) * x[j]
		}
		y[i] = sum
	}
	return y
}

func residual(A *mat.CDense, x, b []complex128) []complex128 {
	ax := matVec(A, x)
	r := make([]complex128, len(b))
	for i := range r {
		r[i] = b[i] - ax[i]
	}
	return r
}

func applyPrecon(precon, x []complex128) []complex128 {
	y := make([]complex128, len(x))
	for i := range x {
		y[i] = precon[i] * x[i]
	}
	return y
}

// givensRotation returns the unitary rotation (c real, s complex, c^2+|s|^2=1)
// that zeroes b against a: c*a + s*b = r, -conj(s)*a + c*b = 0. Standard
// complex generalisation of the real Givens rotation used to reduce the
// Hessenberg matrix in Arnoldi's process (Saad & Schultz 1986).
func givensRotation(a, b complex128) (float64, complex128) {
	absA := cmplx.Abs(a)
	if absA == 0 {
		return 0, complex(1, 0)
	}
	normR := math.Hypot(absA, cmplx.Abs(b))
	rho := a / complex(absA, 0)
	c := absA / normR
	s := rho * cmplx.Conj(b) / complex(normR, 0)
	return c, s
}

func applyGivens(c float64, s, x, y complex128) (complex128, complex128) {
	nx := complex(c, 0)*x + s*y
	ny := -cmplx.Conj(s)*x + complex(c, 0)*y
	return nx, ny
}

func backSolve(h [][]complex128, g []complex128, k int) []complex128 {
	y := make([]complex128, k)
	for i := k - 1; i >= 0; i-- {
		sum := g[i]
		for j := i + 1; j < k; j++ {
			sum -= h[i][j] * y[j]
		}
		y[i] = sum / h[i][i]
	}
	return y
}

// gmresSingle solves A*x = b with restarted, right-preconditioned GMRES.
func gmresSingle(A *mat.CDense, b, precon []complex128, cfg Config) ([]complex128, int, error) {
	n := len(b)
	restart := cfg.Restart
	if restart <= 0 || restart > n {
		restart = n
	}
	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = 1000
	}
	tol := cfg.Tolerance
	if tol <= 0 {
		tol = 1e-8
	}

	x := make([]complex128, n)
	bNorm := cblas128.Nrm2(vec(b))
	if bNorm == 0 {
		return x, 0, nil
	}

	totalIters := 0
	for {
		r := residual(A, x, b)
		rNorm := cblas128.Nrm2(vec(r))
		if rNorm/bNorm < tol {
			return x, totalIters, nil
		}

		v := make([][]complex128, restart+1)
		h := make([][]complex128, restart+1)
		for i := range h {
			h[i] = make([]complex128, restart)
		}
		g := make([]complex128, restart+1)
		cs := make([]float64, restart)
		sn := make([]complex128, restart)

		v[0] = make([]complex128, n)
		copy(v[0], r)
		cblas128.Scal(complex(1/rNorm, 0), vec(v[0]))
		g[0] = complex(rNorm, 0)

		k := 0
		for ; k < restart; k++ {
			totalIters++
			w := matVec(A, applyPrecon(precon, v[k]))
			for i := 0; i <= k; i++ {
				h[i][k] = cblas128.Dotc(vec(v[i]), vec(w))
				cblas128.Axpy(-h[i][k], vec(v[i]), vec(w))
			}
			wNorm := cblas128.Nrm2(vec(w))
			h[k+1][k] = complex(wNorm, 0)

			v[k+1] = make([]complex128, n)
			if wNorm > 1e-14 {
				copy(v[k+1], w)
				cblas128.Scal(complex(1/wNorm, 0), vec(v[k+1]))
			}

			for i := 0; i < k; i++ {
				h[i][k], h[i+1][k] = applyGivens(cs[i], sn[i], h[i][k], h[i+1][k])
			}
			cs[k], sn[k] = givensRotation(h[k][k], h[k+1][k])
			h[k][k], h[k+1][k] = applyGivens(cs[k], sn[k], h[k][k], h[k+1][k])
			g[k], g[k+1] = applyGivens(cs[k], sn[k], g[k], g[k+1])

			converged := cmplx.Abs(g[k+1])/bNorm < tol
			outOfBudget := totalIters >= maxIter
			if converged || outOfBudget {
				k++
				break
			}
		}

		y := backSolve(h, g, k)
		upd := make([]complex128, n)
		for i := 0; i < k; i++ {
			for j := 0; j < n; j++ {
				upd[j] += y[i] * v[i][j]
			}
		}
		upd = applyPrecon(precon, upd)
		for i := 0; i < n; i++ {
			x[i] += upd[i]
		}

		if totalIters >= maxIter {
			r := residual(A, x, b)
			rNorm := cblas128.Nrm2(vec(r))
			if rNorm/bNorm >= tol {
				return nil, totalIters, &bemerr.SolverError{
					Reason:      bemerr.ReasonNonConvergent,
					Iterations:  totalIters,
					RelResidual: rNorm / bNorm,
				}
			}
			return x, totalIters, nil
		}
	}
}
