// Package green_functions - HAMS and LiangWuNoblesse implementations
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>

package green_functions

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// LiangWuNoblesseGF implements the infinite depth Green function of Liang, Wu, Noblesse (2018)
// Uses the same implementation as Delhommeau for the Rankine and reflected Rankine terms
type LiangWuNoblesseGF struct {
	*BaseGreenFunction
	exportableSettings map[string]interface{}
}

// NewLiangWuNoblesseGF creates a new LiangWuNoblesse Green function
func NewLiangWuNoblesseGF() *LiangWuNoblesseGF {
	lwn := &LiangWuNoblesseGF{
		BaseGreenFunction: NewBaseGreenFunction(),
		exportableSettings: map[string]interface{}{
			"green_function": "LiangWuNoblesseGF",
		},
	}
	lwn.SetFloatingPointPrecision(Float64)
	return lwn
}

// String returns a string representation of the LiangWuNoblesse Green function
func (lwn *LiangWuNoblesseGF) String() string {
	return "LiangWuNoblesseGF()"
}

// Evaluate computes the Green function using the LiangWuNoblesse method
func (lwn *LiangWuNoblesseGF) Evaluate(mesh1, mesh2 interface{}, freeSurface float64, waterDepth float64,
	wavenumber complex128, adjointDoubleLayer bool, earlyDotProduct bool) (*mat.CDense, *mat.CDense, error) {

	// Check constraints for LiangWuNoblesse method
	if math.IsInf(freeSurface, 1) || !math.IsInf(waterDepth, 1) {
		return nil, nil, errors.New("LiangWuNoblesseGF is only implemented for infinite depth with a free surface")
	}

	colocationPoints, earlyDotProductNormals, err := lwn.getColocationPointsAndNormals(mesh1, mesh2, adjointDoubleLayer)
	if err != nil {
		return nil, nil, err
	}

	meshLike2, ok := mesh2.(MeshLike)
	if !ok {
		return nil, nil, &GreenFunctionEvaluationError{"mesh2 must implement MeshLike interface"}
	}
	sourceCenters := meshLike2.GetFacesCenters()
	sourceAreas := meshLike2.GetFacesAreas()

	rows, _ := colocationPoints.Dims()
	cols := meshLike2.GetNbFaces()
	if err := ValidateMatrixDimensions(rows, cols); err != nil {
		return nil, nil, err
	}

	k := real(wavenumber)
	scalar := func(r, z, zp float64) complex128 {
		base := rankineAndImage(r, z, zp)
		if k <= 0 {
			return complex(base, 0)
		}
		return complex(base, 0) + evaluateWaveTerm(r, z, zp, k, tabulationTol)/complex(4*math.Pi, 0)
	}
	kernel := numericalGradientKernel(scalar, gradientStep)

	selfPairs := selfPanelPairs(mesh1, mesh2, rows, cols)
	result, err := assembleSK(colocationPoints, sourceCenters, sourceAreas, earlyDotProductNormals,
		adjointDoubleLayer, earlyDotProduct, selfPairs, selfTermEps, kernel, scalar)
	if err != nil {
		return nil, nil, err
	}

	return result.S, result.K, result.asWarning()
}

// HAMS represents the HAMS (Hydrodynamic Analysis of Marine Structures) Green function
type HAMS struct {
	*BaseGreenFunction
	exportableSettings map[string]interface{}
}

// NewHAMS creates a new HAMS Green function
func NewHAMS() *HAMS {
	hams := &HAMS{
		BaseGreenFunction: NewBaseGreenFunction(),
		exportableSettings: map[string]interface{}{
			"green_function": "HAMS",
		},
	}
	hams.SetFloatingPointPrecision(Float64)
	return hams
}

// String returns a string representation of the HAMS Green function
func (h *HAMS) String() string {
	return "HAMS()"
}

// Evaluate computes the Green function using the HAMS method
func (h *HAMS) Evaluate(mesh1, mesh2 interface{}, freeSurface float64, waterDepth float64,
	wavenumber complex128, adjointDoubleLayer bool, earlyDotProduct bool) (*mat.CDense, *mat.CDense, error) {

	colocationPoints, earlyDotProductNormals, err := h.getColocationPointsAndNormals(mesh1, mesh2, adjointDoubleLayer)
	if err != nil {
		return nil, nil, err
	}

	meshLike2, ok := mesh2.(MeshLike)
	if !ok {
		return nil, nil, &GreenFunctionEvaluationError{"mesh2 must implement MeshLike interface"}
	}
	sourceCenters := meshLike2.GetFacesCenters()
	sourceAreas := meshLike2.GetFacesAreas()

	rows, _ := colocationPoints.Dims()
	cols := meshLike2.GetNbFaces()
	if err := ValidateMatrixDimensions(rows, cols); err != nil {
		return nil, nil, err
	}

	_ = freeSurface
	infinite := math.IsInf(waterDepth, 1)
	k := real(wavenumber)

	scalar := func(r, z, zp float64) complex128 {
		base := rankineAndImage(r, z, zp)
		if k <= 0 {
			return complex(base, 0)
		}
		if infinite {
			return complex(base, 0) + hamsImageSeries(r, z, zp, k, tabulationTol)
		}
		return complex(base, 0) + finiteDepthWaveSeries(r, z, zp, k, waterDepth, tabulationTol)/complex(4*math.Pi, 0)
	}
	kernel := numericalGradientKernel(scalar, gradientStep)

	selfPairs := selfPanelPairs(mesh1, mesh2, rows, cols)
	result, err := assembleSK(colocationPoints, sourceCenters, sourceAreas, earlyDotProductNormals,
		adjointDoubleLayer, earlyDotProduct, selfPairs, selfTermEps, kernel, scalar)
	if err != nil {
		return nil, nil, err
	}

	return result.S, result.K, result.asWarning()
}

// hamsImageSeries approximates the free-surface wave correction as a series
// of vertical image sources above the true image point, with alternating
// sign and a constant spacing of 2/k, terminated adaptively once a
// term's contribution falls below tol relative to the running sum.
func hamsImageSeries(r, z, zp, k, tol float64) complex128 {
	const invFourPi = 1.0 / (4 * math.Pi)
	const maxTerms = 60

	var sum complex128
	for n := 1; n <= maxTerms; n++ {
		sign := 1.0
		if n%2 == 0 {
			sign = -1.0
		}
		zn := z + zp + 2*float64(n)/k
		Rn := math.Hypot(r, zn)
		if Rn < 1e-9 {
			Rn = 1e-9
		}
		term := complex(sign*invFourPi/Rn, 0)
		sum += term
		if cmplx.Abs(term) < tol*cmplx.Abs(sum) {
			break
		}
	}

	imagPart := -2 * math.Pi * k * math.Exp(k*(z+zp)) * math.J0(k*r)
	return sum + complex(0, imagPart)
}
