// Package bemerr defines the typed error results returned by the BEM core.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
//
// green_functions itself represents failures with a single sentinel
// GreenFunctionEvaluationError{Message string}. A discriminated set of
// error kinds lets a caller branch on what failed without parsing
// strings; this package generalizes that shape into one struct per kind.
package bemerr

import "fmt"

// InvalidParameters reports a precondition violated by the problem
// specification itself (non-positive frequency, infinite depth with a
// method that requires finite depth, an empty mesh, ...).
type InvalidParameters struct {
	Reason string
}

func (e *InvalidParameters) Error() string {
	return fmt.Sprintf("invalid parameters: %s", e.Reason)
}

// EvaluationError reports that a single Green's function evaluation failed
// at a specific separation, e.g. a gradient request at r = z = 0.
type EvaluationError struct {
	R, Z   float64
	Reason string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("green's function evaluation failed at (r=%g, z=%g): %s", e.R, e.Z, e.Reason)
}

// AssemblyError reports that matrix assembly completed but one or more
// panel-pair evaluations failed and were silently zeroed. The matrix is
// still usable; the caller decides whether the tally is acceptable.
type AssemblyError struct {
	SilentFailures int
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembly completed with %d suppressed green's function failures", e.SilentFailures)
}

// SolverReason discriminates the ways a linear solve can fail.
type SolverReason int

const (
	ReasonSingular SolverReason = iota
	ReasonNonConvergent
	ReasonAllocation
)

func (r SolverReason) String() string {
	switch r {
	case ReasonSingular:
		return "Singular"
	case ReasonNonConvergent:
		return "NonConvergent"
	case ReasonAllocation:
		return "Allocation"
	default:
		return "Unknown"
	}
}

// SolverError reports a failed linear solve. It is recoverable: the caller
// may re-solve at a perturbed frequency.
type SolverError struct {
	Reason         SolverReason
	ConditionEst   float64
	Iterations     int
	RelResidual    float64
	UnderlyingText string
}

func (e *SolverError) Error() string {
	switch e.Reason {
	case ReasonSingular:
		return fmt.Sprintf("solver failed: singular matrix (condition estimate %.3e)", e.ConditionEst)
	case ReasonNonConvergent:
		return fmt.Sprintf("solver failed: non-convergent after %d iterations (relative residual %.3e)", e.Iterations, e.RelResidual)
	case ReasonAllocation:
		return fmt.Sprintf("solver failed: allocation error: %s", e.UnderlyingText)
	default:
		return "solver failed: unknown reason"
	}
}

// AllocationError reports that allocating the dense influence matrix
// failed. It is fatal for the assembly that raised it.
type AllocationError struct {
	Rows, Cols int
	Reason     string
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocation error for %dx%d matrix: %s", e.Rows, e.Cols, e.Reason)
}

// PostProcessError reports a NaN or otherwise non-finite result in a
// coefficient tensor. It is always terminal.
type PostProcessError struct {
	Frequency float64
	Mode      int
	Reason    string
}

func (e *PostProcessError) Error() string {
	return fmt.Sprintf("post-process error at omega=%g mode=%d: %s", e.Frequency, e.Mode, e.Reason)
}
