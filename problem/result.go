// Package problem - solve result, named and shaped after
// original_source/bem/src/solver.rs's BEMResult.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package problem

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/capytaine/capytaine/go-capytaine/bem-core/postprocess"
)

// Result is the output of Solve: the panel potentials lifted from the
// solved source density plus
// whichever hydrodynamic coefficients the problem's type produced, and
// the computation metadata a caller needs (wall time, iteration count,
// matrix condition estimate).
type Result struct {
	Potential      *mat.CDense // N x len(RHS) panel potentials (S . sigma), one column per mode/heading solved
	Radiation      *postprocess.RadiationCoefficients
	ExcitingForces [][6]complex128 // one entry per heading, in Problem.Headings order

	ComputationTime   time.Duration
	Iterations        int
	ConditionEstimate float64
	SilentFailures    int
}

// HasAddedMass reports whether the result carries radiation coefficients.
func (r *Result) HasAddedMass() bool { return r.Radiation != nil }

// HasDamping is an alias for HasAddedMass: both tensors are always produced
// together.
func (r *Result) HasDamping() bool { return r.Radiation != nil }

// HasExcitationForce reports whether the result carries diffraction
// exciting forces.
func (r *Result) HasExcitationForce() bool { return len(r.ExcitingForces) > 0 }

// AddedMass returns the radiation added-mass tensor, or nil if the problem
// was not a radiation/combined problem.
func (r *Result) AddedMass() *[6][6]float64 {
	if r.Radiation == nil {
		return nil
	}
	return &r.Radiation.AddedMass
}

// Damping returns the radiation damping tensor, or nil if the problem was
// not a radiation/combined problem.
func (r *Result) Damping() *[6][6]float64 {
	if r.Radiation == nil {
		return nil
	}
	return &r.Radiation.Damping
}

// ExcitationForce returns the exciting-force vectors, one per heading, or
// nil if the problem was not a diffraction/combined problem. ExcitingForce
// is the name original_source uses as an alias for the same field.
func (r *Result) ExcitationForce() [][6]complex128 { return r.ExcitingForces }

// ExcitingForce is an alias of ExcitationForce kept for the spelling
// original_source's accessor uses.
func (r *Result) ExcitingForce() [][6]complex128 { return r.ExcitingForces }
