// Package postprocess - radiation added mass and damping.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package postprocess

import (
	"math"

	"github.com/capytaine/capytaine/go-capytaine/bem-core/bemerr"
	"github.com/capytaine/capytaine/go-capytaine/bem-core/mesh"
)

// RadiationCoefficients holds the 6x6 added-mass and damping tensors one
// frequency's set of six radiation solutions produces.
type RadiationCoefficients struct {
	AddedMass [6][6]float64
	Damping   [6][6]float64
}

// ComputeRadiation implements the radiation added-mass/damping formulas:
//
//	A_mn = -Re{ Sum_i x^(m)_i . (n_i . v_i^(n)) . area_i } * rho / omega^2
//	B_mn =  Im{ Sum_i x^(m)_i . (n_i . v_i^(n)) . area_i } * rho / omega
//
// solutions[m] is the panel potential (S . sigma) for radiation mode m, as
// problem.Solve passes it; all six
// modes must be present (surge, sway, heave, roll, pitch, yaw, indices 0-5).
func ComputeRadiation(m *mesh.Mesh, solutions [6][]complex128, omega, rho float64) (*RadiationCoefficients, error) {
	if omega <= 0 {
		return nil, &bemerr.InvalidParameters{Reason: "radiation post-processing requires omega > 0"}
	}

	n := m.NbFaces()
	for mode, x := range solutions {
		if len(x) != n {
			return nil, &bemerr.InvalidParameters{Reason: "radiation solution length does not match mesh panel count for mode " + modeName(mode)}
		}
	}

	var out RadiationCoefficients
	for mm := 0; mm < 6; mm++ {
		for nn := 0; nn < 6; nn++ {
			var sum complex128
			for i, p := range m.Panels {
				v := mesh.RigidBodyVelocity(nn, p.Centroid)
				dot := p.Normal.Dot(v)
				sum += solutions[mm][i] * complex(dot*p.Area, 0)
			}
			out.AddedMass[mm][nn] = -real(sum) * rho / (omega * omega)
			out.Damping[mm][nn] = imag(sum) * rho / omega
		}
	}

	if err := checkFinite6x6(out.AddedMass, "added mass"); err != nil {
		return nil, err
	}
	if err := checkFinite6x6(out.Damping, "damping"); err != nil {
		return nil, err
	}

	return &out, nil
}

// SymmetryResidual reports how far AddedMass deviates from its expected
// real-symmetric form (verified and reported as a warning, not enforced
// by projection): the Frobenius norm of A - A^T.
func (r *RadiationCoefficients) SymmetryResidual() float64 {
	var sum float64
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			d := r.AddedMass[i][j] - r.AddedMass[j][i]
			sum += d * d
		}
	}
	return math.Sqrt(sum)
}

// DampingIsPositiveSemidefinite checks that the damping tensor is
// (approximately) positive semidefinite via Gershgorin's circle theorem
// (cheap, sufficient, avoids pulling in a dedicated eigensolver for a
// one-off 6x6 check): every eigenvalue lies
// within the union of discs centred at each diagonal entry with radius
// the sum of the off-diagonal row magnitudes, so a matrix whose every disc
// lies within tol of zero or above it cannot have an eigenvalue below
// -tol.
func (r *RadiationCoefficients) DampingIsPositiveSemidefinite(tol float64) bool {
	for i := 0; i < 6; i++ {
		radius := 0.0
		for j := 0; j < 6; j++ {
			if j != i {
				radius += math.Abs(r.Damping[i][j])
			}
		}
		if r.Damping[i][i]-radius < -tol {
			return false
		}
	}
	return true
}

func checkFinite6x6(m [6][6]float64, name string) error {
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if math.IsNaN(m[i][j]) || math.IsInf(m[i][j], 0) {
				return &bemerr.PostProcessError{Mode: i, Reason: name + " entry is non-finite"}
			}
		}
	}
	return nil
}

func modeName(mode int) string {
	names := [6]string{"surge", "sway", "heave", "roll", "pitch", "yaw"}
	if mode < 0 || mode >= len(names) {
		return "unknown"
	}
	return names[mode]
}
