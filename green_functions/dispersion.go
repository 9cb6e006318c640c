// Package green_functions - finite-depth dispersion relation and
// eigenfunction series wave term.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
//
// Generalizes the Newton-Raphson solver already present in utils.go
// (ComputeWaveNumber, the propagating root of omega^2 = g*k*tanh(k*h)) to
// the full set of roots FinGreen3D's eigenfunction expansion needs: the one
// propagating mode plus the evanescent modes k_n*tan(k_n*h) = -v.
package green_functions

import (
	"math"
	"math/cmplx"
)

// EvanescentRoots returns the first n positive roots of
// k*tan(k*h) = -v, v = omega^2/g, which bracket into the intervals
// ((m-1/2)*pi/h, m*pi/h) for m = 1..n. Used by FinGreen3D and finite-depth
// Delhommeau to build the evanescent part of the wave term.
func EvanescentRoots(v, h float64, n int) []float64 {
	roots := make([]float64, n)
	f := func(k float64) float64 { return k*math.Tan(k*h) + v }
	for m := 1; m <= n; m++ {
		lo := (float64(m)-0.5)*math.Pi/h + 1e-9
		hi := float64(m)*math.Pi/h - 1e-9
		roots[m-1] = bisect(f, lo, hi, 80)
	}
	return roots
}

// bisect finds a root of f in [lo, hi], assuming a sign change across the
// interval (guaranteed here by the tan(k*h) branch structure).
func bisect(f func(float64) float64, lo, hi float64, iters int) float64 {
	flo := f(lo)
	for i := 0; i < iters; i++ {
		mid := 0.5 * (lo + hi)
		fm := f(mid)
		if (fm > 0) == (flo > 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

// finiteDepthWaveSeries evaluates the finite-depth wave correction as
// FinGreen3D's eigenfunction expansion: one propagating mode plus at most
// maxEvanescent evanescent modes, stopping early once a mode's term falls
// below tol relative to the running sum.
func finiteDepthWaveSeries(r, z, zp, k, h float64, tol float64) complex128 {
	v := k * math.Tanh(k*h) // recovers v = omega^2/g since k solves the propagating dispersion relation
	propagating := propagatingTerm(r, z, zp, k, h)

	const maxEvanescent = 60
	roots := EvanescentRoots(v, h, maxEvanescent)
	var evanescent complex128
	for _, kn := range roots {
		term := evanescentTerm(r, z, zp, kn, h)
		evanescent += term
		if cmplx.Abs(term) < tol*cmplx.Abs(propagating+evanescent) {
			break
		}
	}
	return propagating + evanescent
}

func propagatingTerm(r, z, zp, k, h float64) complex128 {
	num := math.Cosh(k*(z+h)) * math.Cosh(k*(zp+h))
	den := math.Cosh(k * h)
	amplitude := 2 * k * (den * den) / (math.Sinh(k*h)*math.Cosh(k*h) + k*h)
	shape := num / (den * den)
	return complex(amplitude, 0) * shape * besselH0(k*r)
}

func evanescentTerm(r, z, zp, kn, h float64) complex128 {
	num := math.Cos(kn*(z+h)) * math.Cos(kn*(zp+h))
	den := math.Cos(kn * h)
	amplitude := 2 * kn * (den * den) / (math.Sin(kn*h)*math.Cos(kn*h) + kn*h)
	shape := num / (den * den)
	k0 := math.Sqrt(2/(math.Pi*kn*math.Max(r, 1e-9))) * math.Exp(-kn*math.Max(r, 1e-9))
	return complex(amplitude*shape*k0, 0)
}

// dispersionRoots returns the propagating root (the wavenumber itself)
// followed by up to 10 evanescent roots, stored as purely imaginary
// complex128 values, for a Green's function method that wants to expose its
// dispersion relation roots for introspection without committing to
// FinGreen3D's own eigenfunction bookkeeping.
func dispersionRoots(waterDepth float64, wavenumber complex128) []complex128 {
	roots := []complex128{wavenumber}
	k := real(wavenumber)
	if math.IsInf(waterDepth, 1) || waterDepth <= 0 || k <= 0 {
		return roots
	}
	v := k * math.Tanh(k*waterDepth)
	for _, kn := range EvanescentRoots(v, waterDepth, 10) {
		roots = append(roots, complex(0, kn))
	}
	return roots
}

// besselH0 returns the outgoing-wave Hankel function H0^(1)(x) = J0(x) +
// i*Y0(x), used by the propagating-mode term of the finite-depth series.
func besselH0(x float64) complex128 {
	if x <= 0 {
		return complex(1, 0)
	}
	return complex(math.J0(x), math.Y0(x))
}
