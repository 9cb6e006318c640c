// Package green_functions - shared row-parallel matrix assembly helper.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
//
// Every method's Evaluate needs the same mesh-to-mesh reduction: single-
// point collocation at panel centroids, row-parallel, with the source
// panel's area folded in. This file hosts that reduction once so
// Delhommeau/FinGreen3D/HAMS/LiangWuNoblesse only need to supply their
// scalar kernel.
package green_functions

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/capytaine/capytaine/go-capytaine/bem-core/bemerr"
	"github.com/capytaine/capytaine/go-capytaine/bem-core/green_functions/simd"
)

// pointKernel evaluates the scalar potential and its gradient
// (dG/dr, dG/dz) at horizontal separation r and vertical coordinates
// (z, zp) of field and source point respectively. It returns an error only
// for failures that should be tallied and zeroed rather than aborting
// assembly.
type pointKernel func(r, z, zp float64) (value complex128, dGdr complex128, dGdz complex128, err error)

// assembleResult carries the assembled matrices plus the silent-failure
// tally the assembler surfaces to its caller.
type assembleResult struct {
	S              *mat.CDense
	K              *mat.CDense
	SilentFailures int
}

// asWarning turns a non-zero silent-failure tally into a
// *bemerr.AssemblyError without discarding the matrices that were still
// produced: assembler-level tallies are surfaced as warnings, and the
// caller decides whether to proceed. Returns nil when nothing failed.
func (r *assembleResult) asWarning() error {
	if r.SilentFailures == 0 {
		return nil
	}
	return &bemerr.AssemblyError{SilentFailures: r.SilentFailures}
}

// assembleSK drives kernel across every (field, source) panel pair. rows
// and earlyDotProductNormals always share the same row count, EXCEPT that
// when adjointDoubleLayer is false the normals are indexed by the source
// (column) panel instead of the field (row) panel, mirroring the usual
// getColocationPointsAndNormals split between the "D matrix" and "K
// matrix" cases.
//
// scalar, when non-nil, identifies kernel as built from a scalarKernel via
// numericalGradientKernel: assembleRow then re-derives each off-diagonal
// entry's value from simd.BatchRankine's row-batched evaluation of the
// shared Rankine-plus-image term instead of kernel's own (scalar) value,
// which the two agree on. FinGreen3D does not decompose into a Rankine
// part the batcher recognises, so it passes scalar == nil and every entry
// comes from kernel directly, as before.
func assembleSK(
	colocationPoints *mat.Dense, // rows x 3
	sourceCenters *mat.Dense, // cols x 3
	sourceAreas []float64, // cols
	earlyDotProductNormals *mat.Dense, // rows x 3 (adjoint) or cols x 3 (non-adjoint)
	adjointDoubleLayer bool,
	earlyDotProduct bool,
	selfPairs map[[2]int]bool, // (i,j) pairs requiring the singular treatment
	singularEps float64,
	kernel pointKernel,
	scalar scalarKernel,
) (*assembleResult, error) {
	rows, _ := colocationPoints.Dims()
	cols, _ := sourceCenters.Dims()

	S := mat.NewCDense(rows, cols, nil)
	var kCols int
	if earlyDotProduct {
		kCols = 1
	} else {
		kCols = 3
	}
	K := mat.NewCDense(rows, cols*kCols, nil)

	failures := make([]int, rows)

	workers := runtime.GOMAXPROCS(0)
	if workers > rows {
		workers = rows
	}
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	rowsPerWorker := (rows + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * rowsPerWorker
		hi := lo + rowsPerWorker
		if hi > rows {
			hi = rows
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				fail := assembleRow(i, colocationPoints, sourceCenters, sourceAreas,
					earlyDotProductNormals, adjointDoubleLayer, earlyDotProduct,
					selfPairs, singularEps, kernel, scalar, S, K, kCols)
				failures[i] = fail
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, f := range failures {
		total += f
	}
	return &assembleResult{S: S, K: K, SilentFailures: total}, nil
}

// selfPanelPairs reports which (i,j) pairs are self-influence terms: mesh1
// and mesh2 are the same underlying mesh and i==j. Interface equality on
// mesh1/mesh2 compares the dynamic pointer, the identity test an Evaluate
// caller applies when assembling the influence matrix of a body against
// itself, since a panel does not act as a point source on itself.
func selfPanelPairs(mesh1, mesh2 interface{}, rows, cols int) map[[2]int]bool {
	if rows != cols {
		return nil
	}
	if mesh1 != mesh2 {
		return nil
	}
	pairs := make(map[[2]int]bool, rows)
	for i := 0; i < rows; i++ {
		pairs[[2]int{i, i}] = true
	}
	return pairs
}

func assembleRow(
	i int,
	colocationPoints, sourceCenters *mat.Dense,
	sourceAreas []float64,
	earlyDotProductNormals *mat.Dense,
	adjointDoubleLayer, earlyDotProduct bool,
	selfPairs map[[2]int]bool,
	singularEps float64,
	kernel pointKernel,
	scalar scalarKernel,
	S, K *mat.CDense,
	kCols int,
) int {
	cols, _ := sourceCenters.Dims()
	px, py, pz := colocationPoints.At(i, 0), colocationPoints.At(i, 1), colocationPoints.At(i, 2)

	var fieldNormal [3]float64
	if adjointDoubleLayer {
		fieldNormal = [3]float64{
			earlyDotProductNormals.At(i, 0),
			earlyDotProductNormals.At(i, 1),
			earlyDotProductNormals.At(i, 2),
		}
	}

	// Precompute the row's horizontal separations so the shared
	// Rankine-plus-image term can be evaluated once, across every
	// off-diagonal column, via simd.BatchRankine rather than one point at
	// a time inside kernel. The self pair (at most one per row) is left
	// out of the batch: BatchRankine's near-singular floor is a per-term
	// threshold test (R > singularEps) rather than rankineAndImage's
	// strict R > 0, so the two disagree exactly at the flooring distance.
	rs := make([]float64, cols)
	zs := make([]float64, cols)
	qzs := make([]float64, cols)
	dxs := make([]float64, cols)
	dys := make([]float64, cols)
	selfCol := -1
	for j := 0; j < cols; j++ {
		qx, qy, qz := sourceCenters.At(j, 0), sourceCenters.At(j, 1), sourceCenters.At(j, 2)
		dx := px - qx
		dy := py - qy
		r := math.Hypot(dx, dy)

		if selfPairs != nil && selfPairs[[2]int{i, j}] {
			selfCol = j
			if r < singularEps {
				r = singularEps
			}
		}
		rs[j], zs[j], qzs[j], dxs[j], dys[j] = r, pz, qz, dx, dy
	}

	var rankineRow []float64
	if scalar != nil {
		rankineRow = simd.BatchRankine(rs, zs, qzs, singularEps)
	}

	failures := 0
	for j := 0; j < cols; j++ {
		r, qz, dx, dy := rs[j], qzs[j], dxs[j], dys[j]

		value, dGdr, dGdz, err := kernel(r, pz, qz)
		if err != nil {
			failures++
			continue
		}
		if scalar != nil && j != selfCol {
			// kernel's value is scalar(r, pz, qz) verbatim (see
			// numericalGradientKernel); replace the Rankine-plus-image part
			// of it with the row-batched evaluation so the assembled
			// matrix entry is actually sourced from simd.BatchRankine
			// instead of the redundant scalar one.
			value += complex(rankineRow[j]-rankineAndImage(r, pz, qz), 0)
		}
		area := sourceAreas[j]
		S.Set(i, j, value*complex(area, 0))

		// Gradient wrt the field point, in Cartesian coordinates: the
		// horizontal part follows the unit vector from source to field.
		var gx, gy, gz complex128
		if r > 1e-12 {
			ux, uy := dx/r, dy/r
			gx = dGdr * complex(ux, 0)
			gy = dGdr * complex(uy, 0)
		}
		gz = dGdz

		if earlyDotProduct {
			var n [3]float64
			if adjointDoubleLayer {
				n = fieldNormal
			} else {
				n = [3]float64{
					earlyDotProductNormals.At(j, 0),
					earlyDotProductNormals.At(j, 1),
					earlyDotProductNormals.At(j, 2),
				}
			}
			dot := gx*complex(n[0], 0) + gy*complex(n[1], 0) + gz*complex(n[2], 0)
			K.Set(i, j, dot*complex(area, 0))
		} else {
			K.Set(i, j*kCols+0, gx*complex(area, 0))
			K.Set(i, j*kCols+1, gy*complex(area, 0))
			K.Set(i, j*kCols+2, gz*complex(area, 0))
		}
	}
	return failures
}
