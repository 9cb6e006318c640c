// Package postprocess - diffraction exciting forces.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package postprocess

import (
	"math"

	"github.com/capytaine/capytaine/go-capytaine/bem-core/bemerr"
	"github.com/capytaine/capytaine/go-capytaine/bem-core/mesh"
)

// ComputeExcitingForces implements the diffraction exciting-force formula:
//
//	F^beta_m = i.omega.rho . Sum_i (x^beta_i + phi_I(r_i)) . (n_i . e_m(r_i)) . area_i
//
// x is the diffraction solution vector for heading wave.Heading, phi_I is
// the same incident wave used to build the diffraction right-hand side.
func ComputeExcitingForces(m *mesh.Mesh, x []complex128, wave IncidentWave, rho float64) ([6]complex128, error) {
	var out [6]complex128
	if wave.Frequency <= 0 {
		return out, &bemerr.InvalidParameters{Reason: "exciting-force post-processing requires omega > 0"}
	}
	if len(x) != m.NbFaces() {
		return out, &bemerr.InvalidParameters{Reason: "diffraction solution length does not match mesh panel count"}
	}

	coeff := complex(0, wave.Frequency*rho)
	for mode := 0; mode < 6; mode++ {
		var sum complex128
		for i, p := range m.Panels {
			e := mesh.ModeUnitVector(mode, p.Centroid)
			dot := p.Normal.Dot(e)
			sum += (x[i] + wave.Potential(p.Centroid)) * complex(dot*p.Area, 0)
		}
		out[mode] = coeff * sum
	}

	for mode, f := range out {
		if math.IsNaN(real(f)) || math.IsNaN(imag(f)) || math.IsInf(real(f), 0) || math.IsInf(imag(f), 0) {
			return out, &bemerr.PostProcessError{Frequency: wave.Frequency, Mode: mode, Reason: "exciting force is non-finite"}
		}
	}

	return out, nil
}
