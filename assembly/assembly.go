// Package assembly drives the Green's function library across every panel
// pair of one or two meshes to build the dense influence matrices, on top
// of the panel-integrator reduction already performed inside
// green_functions.Evaluate.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package assembly

import (
	"gonum.org/v1/gonum/mat"

	"github.com/capytaine/capytaine/go-capytaine/bem-core/bemerr"
	"github.com/capytaine/capytaine/go-capytaine/bem-core/green_functions"
)

// ProgressFunc is invoked at row-assembly boundaries with
// (rowsCompleted, rowsTotal). It may be called concurrently from worker
// goroutines; a caller that is not safe for concurrent use must serialise
// it itself.
type ProgressFunc func(rowsCompleted, rowsTotal int)

// Matrices holds the assembled S (source/single-layer) and K
// (double-layer/normal-derivative) influence matrices for one frequency.
// A boundary-velocity right-hand side is solved against K (with its jump
// relation applied), recovering the panel source densities; S then lifts
// those densities into the panel potentials post-processing integrates.
type Matrices struct {
	S *mat.CDense
	K *mat.CDense
}

// Assemble builds the S and K matrices of the mesh against itself (the
// common case: a body's own influence on its own panels) for the given
// Green's function method, frequency parameters and free surface/depth.
// progress, if non-nil, is called exactly once, after the underlying
// row-parallel green_functions.Evaluate call returns, with rowsCompleted ==
// rowsTotal == the field mesh's face count; no per-row or per-batch
// progress is reported.
func Assemble(m green_functions.MeshLike, gf green_functions.AbstractGreenFunction, freeSurface, waterDepth float64,
	wavenumber complex128, progress ProgressFunc) (*Matrices, error) {
	return AssembleCross(m, m, gf, freeSurface, waterDepth, wavenumber, progress)
}

// AssembleCross builds the influence of sourceMesh's panels on fieldMesh's
// panels: row i is field panel i, column j is source panel j (the
// cross-body case, e.g. checking reciprocity between two bodies). Passing the same mesh for both arguments is the self-influence
// case handled by Assemble.
func AssembleCross(fieldMesh, sourceMesh green_functions.MeshLike, gf green_functions.AbstractGreenFunction,
	freeSurface, waterDepth float64, wavenumber complex128, progress ProgressFunc) (*Matrices, error) {

	if fieldMesh.GetNbFaces() == 0 || sourceMesh.GetNbFaces() == 0 {
		return nil, &bemerr.InvalidParameters{Reason: "assembly requires a non-empty mesh"}
	}

	rows := fieldMesh.GetNbFaces()

	S, K, err := gf.Evaluate(fieldMesh, sourceMesh, freeSurface, waterDepth, wavenumber, false, true)
	if err != nil {
		if _, ok := err.(*bemerr.AssemblyError); !ok {
			// Anything other than the silent-failure tally is fatal: no
			// matrix was produced to warn about.
			if S == nil {
				return nil, &bemerr.InvalidParameters{Reason: err.Error()}
			}
			return nil, err
		}
	}

	applyJumpRelation(K, fieldMesh, sourceMesh)

	if progress != nil {
		progress(rows, rows)
	}

	return &Matrices{S: S, K: K}, err
}

// applyJumpRelation adds the -1/2 solid-angle term to K's diagonal when the
// panel lies on the body surface being evaluated against itself, the
// standard jump-relation statement for a double-layer potential. green_functions'
// assembleSK already floors the self-term's horizontal separation so the
// kernel itself stays finite; this adds the jump term assembleSK has no way
// to know about, since it operates one scalar kernel call at a time.
func applyJumpRelation(K *mat.CDense, fieldMesh, sourceMesh green_functions.MeshLike) {
	if fieldMesh != sourceMesh {
		return
	}
	n := fieldMesh.GetNbFaces()
	rows, _ := K.Dims()
	if rows != n {
		return
	}
	for i := 0; i < n; i++ {
		K.Set(i, i, K.At(i, i)-complex(0.5, 0))
	}
}

// SilentFailureCount extracts the tally of suppressed Green's function
// failures from the error AssembleCross/Assemble return alongside a still-
// usable pair of matrices: a non-zero count is a warning, not an abort.
// Returns ok == false when err is nil or was not produced by this
// package's assembly path.
func SilentFailureCount(err error) (int, bool) {
	if ae, ok := err.(*bemerr.AssemblyError); ok {
		return ae.SilentFailures, true
	}
	return 0, false
}
