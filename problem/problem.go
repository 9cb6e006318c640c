// Package problem - Problem specification and the top-level Solve entry
// point.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
//
// Problem/ProblemType are named after original_source/bem/src/solver.rs's
// BEMProblem/ProblemType, generalised from the original's single-body,
// single-mode record into the {Radiation, Diffraction, Combined} union
// this package exposes.
package problem

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/capytaine/capytaine/go-capytaine/bem-core/assembly"
	"github.com/capytaine/capytaine/go-capytaine/bem-core/bemerr"
	"github.com/capytaine/capytaine/go-capytaine/bem-core/green_functions"
	"github.com/capytaine/capytaine/go-capytaine/bem-core/mesh"
	"github.com/capytaine/capytaine/go-capytaine/bem-core/postprocess"
	"github.com/capytaine/capytaine/go-capytaine/bem-core/solver"
)

// effectiveWaterDepth normalises Problem.WaterDepth's "<=0 means infinite"
// convention to the +Inf sentinel green_functions.ComputeWaveNumber and
// FinGreen3D expect.
func (p *Problem) effectiveWaterDepth() float64 {
	if p.WaterDepth <= 0 {
		return math.Inf(1)
	}
	return p.WaterDepth
}

// Type discriminates the three problem kinds this package solves.
type Type int

const (
	Radiation Type = iota
	Diffraction
	Combined
)

// Problem is a problem specification:
// {Radiation, frequency, mode}, {Diffraction, frequency, heading_radians},
// or {Combined, frequency, headings, modes}.
type Problem struct {
	Type Type

	Mesh       *mesh.Mesh
	Frequency  float64 // omega
	Gravity    float64
	WaterDepth float64 // <=0 or +Inf means infinite depth
	Density    float64 // rho

	Modes    []int     // radiation modes to solve, 0-5; used when Type is Radiation or Combined
	Headings []float64 // diffraction headings in radians; used when Type is Diffraction or Combined

	Config AssemblyConfig
}

// buildGreenFunction selects and constructs the Green's function
// implementation named by p.Config.GreenFunctionMethod.
func (p *Problem) buildGreenFunction() (green_functions.AbstractGreenFunction, error) {
	switch p.Config.GreenFunctionMethod {
	case Delhommeau:
		return green_functions.NewDefaultDelhommeau(), nil
	case FinGreen3D:
		if math.IsInf(p.effectiveWaterDepth(), 1) {
			return nil, &bemerr.InvalidParameters{Reason: "FinGreen3D requires a finite water depth"}
		}
		return green_functions.NewFinGreen3D(p.WaterDepth), nil
	case HAMS:
		return green_functions.NewHAMS(), nil
	case LiangWuNoblesse:
		return green_functions.NewLiangWuNoblesseGF(), nil
	default:
		return nil, &bemerr.InvalidParameters{Reason: "unknown Green's function method"}
	}
}

func (p *Problem) validate() error {
	if p.Mesh == nil || p.Mesh.NbFaces() == 0 {
		return &bemerr.InvalidParameters{Reason: "problem requires a non-empty mesh"}
	}
	if p.Frequency <= 0 {
		return &bemerr.InvalidParameters{Reason: "problem requires omega > 0"}
	}
	if p.Gravity <= 0 {
		return &bemerr.InvalidParameters{Reason: "problem requires g > 0"}
	}
	switch p.Type {
	case Radiation:
		if len(p.Modes) == 0 {
			return &bemerr.InvalidParameters{Reason: "radiation problem requires at least one mode"}
		}
	case Diffraction:
		if len(p.Headings) == 0 {
			return &bemerr.InvalidParameters{Reason: "diffraction problem requires at least one heading"}
		}
	case Combined:
		if len(p.Modes) == 0 && len(p.Headings) == 0 {
			return &bemerr.InvalidParameters{Reason: "combined problem requires at least one mode or heading"}
		}
	default:
		return &bemerr.InvalidParameters{Reason: "unknown problem type"}
	}
	return nil
}

// radiationRHS builds the radiation boundary condition for mode m:
// entry i is n_i . v_i^(m).
func radiationRHS(m *mesh.Mesh, mode int) []complex128 {
	b := make([]complex128, m.NbFaces())
	for i, p := range m.Panels {
		v := mesh.RigidBodyVelocity(mode, p.Centroid)
		b[i] = complex(p.Normal.Dot(v), 0)
	}
	return b
}

// diffractionRHS builds the diffraction boundary condition for heading
// wave.Heading: entry i is -d(phi_I)/dn at the centroid.
func diffractionRHS(m *mesh.Mesh, wave postprocess.IncidentWave) []complex128 {
	b := make([]complex128, m.NbFaces())
	for i, p := range m.Panels {
		b[i] = -wave.NormalDerivative(p.Centroid, p.Normal)
	}
	return b
}

// Solve assembles the influence matrix once, solves every requested
// right-hand side against it, reusing one factorization across every
// mode/heading, and post-processes the resulting source densities into
// hydrodynamic coefficients.
func Solve(p *Problem, progress assembly.ProgressFunc) (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	gf, err := p.buildGreenFunction()
	if err != nil {
		return nil, err
	}

	depth := p.effectiveWaterDepth()
	k := real(green_functions.ComputeWaveNumber(p.Frequency, depth))

	freeSurface := 0.0
	mats, assembleErr := assembly.Assemble(p.Mesh, gf, freeSurface, depth, complex(k, 0), progress)
	if mats == nil {
		return nil, assembleErr
	}

	n := p.Mesh.NbFaces()
	columns := [][]complex128{}
	labels := []string{}

	if p.Type == Radiation || p.Type == Combined {
		for _, mode := range p.Modes {
			columns = append(columns, radiationRHS(p.Mesh, mode))
			labels = append(labels, "radiation")
		}
	}
	waves := make([]postprocess.IncidentWave, 0, len(p.Headings))
	if p.Type == Diffraction || p.Type == Combined {
		for _, beta := range p.Headings {
			wave := postprocess.IncidentWave{
				Wavenumber: k,
				Frequency:  p.Frequency,
				Heading:    beta,
				Gravity:    p.Gravity,
				WaterDepth: depth,
			}
			waves = append(waves, wave)
			columns = append(columns, diffractionRHS(p.Mesh, wave))
			labels = append(labels, "diffraction")
		}
	}

	// The boundary condition on each right-hand side is a prescribed normal
	// velocity, so the system actually solved is the jump-relation form of
	// the normal-derivative (K) matrix against that velocity, not the
	// single-layer (S) matrix: (-1/2 I + K) sigma = rhs. S is then used to
	// lift the solved source density into the panel potentials every
	// post-processing formula below integrates.
	B := denseCMatrixFromColumns(n, columns)
	solveResult, err := solver.Solve(mats.K, B, p.Config.SolverConfig)
	if err != nil {
		return nil, err
	}
	phi := liftPotential(mats.S, solveResult.X)

	result := &Result{
		Potential:         phi,
		ComputationTime:   solveResult.ComputationTime,
		Iterations:        solveResult.Iterations,
		ConditionEstimate: solveResult.ConditionEstimate,
		SilentFailures:    silentFailures(assembleErr),
	}

	radIdx := 0
	var radSolutions [6][]complex128
	haveRadiation := false
	diffIdx := 0
	for col, label := range labels {
		x := columnOf(phi, col, n)
		switch label {
		case "radiation":
			mode := p.Modes[radIdx]
			radSolutions[mode] = x
			haveRadiation = true
			radIdx++
		case "diffraction":
			wave := waves[diffIdx]
			forces, err := postprocess.ComputeExcitingForces(p.Mesh, x, wave, p.Density)
			if err != nil {
				return nil, err
			}
			result.ExcitingForces = append(result.ExcitingForces, forces)
			diffIdx++
		}
	}

	if haveRadiation {
		for _, mode := range p.Modes {
			if radSolutions[mode] == nil {
				radSolutions[mode] = make([]complex128, n)
			}
		}
		coeffs, err := postprocess.ComputeRadiation(p.Mesh, radSolutions, p.Frequency, p.Density)
		if err != nil {
			return nil, err
		}
		result.Radiation = coeffs
	}

	return result, nil
}

// denseCMatrixFromColumns packs independent right-hand sides (one per
// radiation mode or diffraction heading) into a single N x len(columns)
// matrix so solver.Solve can reuse one factorization across all of them.
func denseCMatrixFromColumns(n int, columns [][]complex128) *mat.CDense {
	B := mat.NewCDense(n, len(columns), nil)
	for c, col := range columns {
		for i := 0; i < n; i++ {
			B.Set(i, c, col[i])
		}
	}
	return B
}

// liftPotential recovers the panel potentials phi = S . sigma from a solved
// source-density matrix: the single-layer lift the indirect (source)
// boundary integral formulation needs before any pressure-integration
// post-processing can run.
func liftPotential(S, sigma *mat.CDense) *mat.CDense {
	n, _ := S.Dims()
	_, cols := sigma.Dims()
	phi := mat.NewCDense(n, cols, nil)
	for i := 0; i < n; i++ {
		for c := 0; c < cols; c++ {
			var sum complex128
			for j := 0; j < n; j++ {
				sum += S.At(i, j) * sigma.At(j, c)
			}
			phi.Set(i, c, sum)
		}
	}
	return phi
}

// columnOf extracts column c of X as a plain slice.
func columnOf(X *mat.CDense, c, n int) []complex128 {
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		out[i] = X.At(i, c)
	}
	return out
}

// silentFailures extracts the assembler's suppressed-failure tally, if any,
// from the warning AssembleCross may have returned alongside usable
// matrices.
func silentFailures(err error) int {
	n, _ := assembly.SilentFailureCount(err)
	return n
}
