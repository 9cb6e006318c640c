// Package green_functions - shared infinite-depth wave-term kernel.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
//
// This file implements the classical Wehausen & Laitone (1960)
// single-integral representation of the infinite-depth free-surface
// Green's function, shared by Delhommeau (direct-quadrature path) and
// LiangWuNoblesse (used as the near/intermediate-field branch before the
// asymptotic far-field branch takes over).
package green_functions

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// waveTermInfiniteDepth evaluates the wave part of the infinite-depth,
// free-surface Green's function:
//
//	Gw(r,z,zp;k) = 2k * PV integral_0^inf (mu+k)/(mu-k) exp(mu(z+zp)) J0(mu r) dmu
//	             - 2*pi*i*k*exp(k(z+zp))*J0(k*r)
//
// in the normalisation G = -1/(4*pi*R) - 1/(4*pi*R1) + Gw/(4*pi), i.e. the
// caller is responsible for the 1/(4*pi) prefactor (see Delhommeau.scalarKernel).
// The principal value is approximated by excluding a small neighbourhood of
// the pole at mu=k and integrating the two remaining branches with a fixed
// Gauss-Legendre rule; this converges because z+zp <= 0 makes the
// integrand decay exponentially, so truncating at a finite cutoff is safe.
func waveTermInfiniteDepth(r, z, zp float64, k float64, tol float64) complex128 {
	if k <= 0 {
		return 0
	}
	zsum := z + zp // <= 0

	integrand := func(mu float64) float64 {
		if zsum > -700/math.Max(mu, 1e-12) {
			return (mu + k) / (mu - k) * math.Exp(mu*zsum) * math.J0(mu*r)
		}
		return 0
	}

	// Cutoff where exp(mu*zsum) has decayed below tol relative to the
	// integrand's scale; guard against zsum == 0 (field point at the
	// free surface) with a generous fixed cutoff.
	cutoff := 50.0 * k
	if zsum < 0 {
		cutoff = math.Min(cutoff, -math.Log(tol)/(-zsum)+k)
	}
	if cutoff < 4*k {
		cutoff = 4 * k
	}

	delta := math.Max(1e-4*k, 1e-9)
	const nPts = 48

	pv := quad.Fixed(integrand, 0, math.Max(k-delta, 0), nPts, quad.Legendre{}, 0)
	pv += quad.Fixed(integrand, k+delta, cutoff, nPts, quad.Legendre{}, 0)

	residue := 2 * math.Pi * math.J0(k*r) * math.Exp(k*zsum)

	real := 2 * k * pv
	imag := -k * residue
	return complex(real, imag)
}

// rankineAndImage returns the Rankine source and its free-surface mirror
// image, -1/(4*pi*R) - 1/(4*pi*R1), shared by every method: the four
// variants differ only in how they compute the wave term, and agree on
// this Rankine part.
func rankineAndImage(r, z, zp float64) float64 {
	R := math.Hypot(r, z-zp)
	R1 := math.Hypot(r, z+zp)
	const invFourPi = 1.0 / (4 * math.Pi)
	var out float64
	if R > 0 {
		out -= invFourPi / R
	}
	if R1 > 0 {
		out -= invFourPi / R1
	}
	return out
}

// waveTermFarField is the LiangWuNoblesse (2018) far-field branch: the
// stationary-phase reduction of the Bessel integral representation,
// J0(x) ~ sqrt(2/(pi x)) cos(x - pi/4) for large x. Only the outgoing-wave
// residue survives at leading order once kr is large, which gives the
// |G|*sqrt(r) -> const deep-water asymptotic behaviour.
func waveTermFarField(r, z, zp, k float64) complex128 {
	zsum := z + zp
	amp := math.Exp(k * zsum)
	imagTerm := -2 * math.Pi * k * amp * math.J0(k*r)
	return complex(0, imagTerm)
}

// evaluateWaveTerm dispatches between the direct quadrature form (accurate
// for small-to-moderate kr) and the stationary-phase asymptotic form
// (cheap and accurate for kr > farFieldThreshold), the near/intermediate/
// far-field branch selection LiangWuNoblesse uses, keyed on kr.
const farFieldThreshold = 5.0

func evaluateWaveTerm(r, z, zp, k, tol float64) complex128 {
	if k <= 0 {
		return 0
	}
	if k*r > farFieldThreshold {
		return waveTermFarField(r, z, zp, k)
	}
	return waveTermInfiniteDepth(r, z, zp, k, tol)
}

// UlpDiff returns the number of representable float64 between a and b.
func UlpDiff(a, b float64) uint64 {
	ai := math.Float64bits(a)
	bi := math.Float64bits(b)
	if ai > bi {
		return ai - bi
	}
	return bi - ai
}

// scalarKernel is a Green's function reduced to its scalar form, a
// function of horizontal separation r and the two vertical coordinates.
type scalarKernel func(r, z, zp float64) complex128

// numericalGradientKernel lifts a scalarKernel into a pointKernel (value
// plus gradient) via central differences, the fallback for methods too
// complex to differentiate cheaply in closed form. The assembler never
// requests a gradient at r = z = zp = 0, so the only singular case
// guarded here is the self-term, where r has already been floored to
// singularEps by the caller.
func numericalGradientKernel(scalar scalarKernel, step float64) pointKernel {
	return func(r, z, zp float64) (complex128, complex128, complex128, error) {
		value := scalar(r, z, zp)
		var dGdr complex128
		if r > step {
			dGdr = (scalar(r+step, z, zp) - scalar(r-step, z, zp)) / complex(2*step, 0)
		} else {
			dGdr = (scalar(r+step, z, zp) - value) / complex(step, 0)
		}
		dGdz := (scalar(r, z+step, zp) - scalar(r, z-step, zp)) / complex(2*step, 0)
		return value, dGdr, dGdz, nil
	}
}
