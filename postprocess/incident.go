// Package postprocess turns panel source densities into hydrodynamic
// coefficients.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package postprocess

import (
	"math"
	"math/cmplx"

	"github.com/capytaine/capytaine/go-capytaine/bem-core/mesh"
)

// IncidentWave describes a single plane incident wave of unit amplitude,
// the excitation a diffraction problem's boundary condition is posed
// against.
type IncidentWave struct {
	Wavenumber  float64 // k, from the dispersion relation at this frequency/depth
	Frequency   float64 // omega
	Heading     float64 // beta, radians, measured from the positive x axis
	Gravity     float64
	WaterDepth  float64 // <= 0 is treated as infinite depth
}

// Potential evaluates the unit-amplitude incident wave potential phi_I(r)
// at p. Uses the standard linear (Airy) wave potential; for infinite
// depth it reduces to the classical exp(kz) decay, for finite depth to
// the cosh(k(z+h))/cosh(kh) profile.
func (w IncidentWave) Potential(p mesh.Vec3) complex128 {
	phase := w.Wavenumber * (p[0]*math.Cos(w.Heading) + p[1]*math.Sin(w.Heading))
	amp := complex(0, w.Gravity/w.Frequency)

	var depthProfile complex128
	if w.WaterDepth <= 0 || math.IsInf(w.WaterDepth, 1) {
		depthProfile = complex(math.Exp(w.Wavenumber*p[2]), 0)
	} else {
		h := w.WaterDepth
		depthProfile = complex(math.Cosh(w.Wavenumber*(p[2]+h))/math.Cosh(w.Wavenumber*h), 0)
	}

	return amp * depthProfile * cmplx.Exp(complex(0, phase))
}

// NormalDerivative evaluates d(phi_I)/dn at p for outward unit normal n;
// the diffraction boundary condition's right-hand side at a panel
// centroid is -d(phi_I)/dn there. Computed analytically: the horizontal
// gradient follows the propagation direction, the vertical gradient
// follows the depth profile's own derivative.
func (w IncidentWave) NormalDerivative(p, n mesh.Vec3) complex128 {
	phase := w.Wavenumber * (p[0]*math.Cos(w.Heading) + p[1]*math.Sin(w.Heading))
	amp := complex(0, w.Gravity/w.Frequency)
	phaseFactor := cmplx.Exp(complex(0, phase))

	var depthProfile, depthDeriv complex128
	if w.WaterDepth <= 0 || math.IsInf(w.WaterDepth, 1) {
		depthProfile = complex(math.Exp(w.Wavenumber*p[2]), 0)
		depthDeriv = complex(w.Wavenumber*math.Exp(w.Wavenumber*p[2]), 0)
	} else {
		h := w.WaterDepth
		ch := math.Cosh(w.Wavenumber * h)
		depthProfile = complex(math.Cosh(w.Wavenumber*(p[2]+h))/ch, 0)
		depthDeriv = complex(w.Wavenumber*math.Sinh(w.Wavenumber*(p[2]+h))/ch, 0)
	}

	dx := amp * depthProfile * phaseFactor * complex(0, w.Wavenumber*math.Cos(w.Heading))
	dy := amp * depthProfile * phaseFactor * complex(0, w.Wavenumber*math.Sin(w.Heading))
	dz := amp * depthDeriv * phaseFactor

	return dx*complex(n[0], 0) + dy*complex(n[1], 0) + dz*complex(n[2], 0)
}
