// Package green_functions - Prony-decomposition evaluation of the
// finite-depth wave term.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
//
// finiteDepthWaveSeries (dispersion.go) sums cosh/cos shape functions of the
// vertical coordinate directly. Each of those shape functions is itself
// exactly a two-term sum of complex exponentials in z:
//
//	cosh(k(z+h))   = 0.5*exp(k h)*exp(k z)     + 0.5*exp(-k h)*exp(-k z)
//	cos(kn(z+h))   = 0.5*exp(i kn h)*exp(i kn z) + 0.5*exp(-i kn h)*exp(-i kn z)
//
// so the whole finite-depth wave term, for fixed r/zp/k/h, is exactly a
// PronyDecomposition (utils.go) in z: a short sum of coefficient*exp(exponent*z)
// terms. original_source fits this same finite-depth kernel with an
// exponential-sum approximation as a faster alternative to direct
// eigenfunction summation; this port computes the exact coefficients
// algebraically instead of fitting them. The two evaluation paths truncate
// the evanescent series by different rules, so they agree to within the
// truncation tolerance rather than to floating-point precision.
package green_functions

import (
	"math"
	"math/cmplx"
)

// buildFiniteDepthProny constructs the exponential-sum decomposition of the
// finite-depth wave term in z, for fixed horizontal separation r, source
// depth zp, wavenumber k and water depth h. At most maxEvanescent
// evanescent modes are included; the series stops after the first mode
// whose coefficient magnitude falls below tol times the running sum of
// coefficient magnitudes.
func buildFiniteDepthProny(r, zp, k, h, tol float64) *PronyDecomposition {
	v := k * math.Tanh(k*h)

	var coeffs, exps []complex128

	// Propagating mode.
	denP := math.Cosh(k * h)
	ampP := 2 * k * (denP * denP) / (math.Sinh(k*h)*math.Cosh(k*h) + k*h)
	cP := complex(ampP/(denP*denP)*math.Cosh(k*(zp+h)), 0) * besselH0(k*r)
	coeffs = append(coeffs, cP*complex(0.5*math.Exp(k*h), 0), cP*complex(0.5*math.Exp(-k*h), 0))
	exps = append(exps, complex(k, 0), complex(-k, 0))

	const maxEvanescent = 60
	roots := EvanescentRoots(v, h, maxEvanescent)
	runningMag := cmplx.Abs(cP)
	for _, kn := range roots {
		denE := math.Cos(kn * h)
		ampE := 2 * kn * (denE * denE) / (math.Sin(kn*h)*math.Cos(kn*h) + kn*h)
		k0 := math.Sqrt(2/(math.Pi*kn*math.Max(r, 1e-9))) * math.Exp(-kn*math.Max(r, 1e-9))
		cE := complex(ampE/(denE*denE)*math.Cos(kn*(zp+h))*k0, 0)

		coeffs = append(coeffs,
			cE*complex(0.5, 0)*cmplx.Exp(complex(0, kn*h)),
			cE*complex(0.5, 0)*cmplx.Exp(complex(0, -kn*h)),
		)
		exps = append(exps, complex(0, kn), complex(0, -kn))

		if cmplx.Abs(cE) < tol*runningMag {
			break
		}
		runningMag += cmplx.Abs(cE)
	}

	return NewPronyDecomposition(coeffs, exps)
}

// pronyFiniteDepthWaveSeries evaluates the finite-depth wave term by building
// its exact Prony decomposition in z and summing it at the requested z,
// selected by DelhommeauParameters.FiniteDepthPronyDecompositionMethod ==
// FortranMethod as the accelerated alternative to finiteDepthWaveSeries's
// direct eigenfunction summation.
func pronyFiniteDepthWaveSeries(r, z, zp, k, h, tol float64) complex128 {
	decomp := buildFiniteDepthProny(r, zp, k, h, tol)
	return decomp.Evaluate(z)
}
