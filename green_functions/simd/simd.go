// Package simd provides a lane-width-aware batch evaluator for the
// Rankine-dominated part of the wave Green's function, the one term every
// method shares: the four variants differ only in how they compute the
// wave term, and agree on the Rankine part.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
//
// Grounded on the lane-width auto-detection of the go-highway packed-matmul
// contrib (hwy.Zero[T]().NumLanes()), generalized from dense matrix
// multiplication to an elementwise batch kernel; batches are fanned out with
// the same errgroup work-stealing pattern the row assembler already uses
// (green_functions/assemble.go), since the contrib's own pool type is
// private to its matmul package. The scalar path in green_functions/wave.go
// (rankineAndImage) is the reference implementation; this package's tests
// check BatchRankine against a per-lane scalar evaluation, and the
// green_functions tests check the batched row assembly against the
// analytic Rankine value.
package simd

import (
	"math"
	"runtime"

	"github.com/ajroetker/go-highway/hwy"
	"golang.org/x/sync/errgroup"
)

// LaneWidth returns the number of float64 lanes the widest instruction set
// available on this machine can hold, via go-highway's runtime dispatch.
// Falls back to 1 (scalar) when no wider width is detected.
func LaneWidth() int {
	n := hwy.Zero[float64]().NumLanes()
	if n < 1 {
		return 1
	}
	return n
}

// BatchRankine evaluates the Rankine-plus-mirror-image term
// -1/(4*pi*R) - 1/(4*pi*R1) for every (r[i], z[i], zp[i]) triple, processing
// lane-width-sized batches in parallel across a worker pool. A term whose
// distance (R or R1) is at or below singularEps is omitted, so it
// contributes zero to out[i]; singular entries are not otherwise treated.
func BatchRankine(r, z, zp []float64, singularEps float64) []float64 {
	n := len(r)
	out := make([]float64, n)
	lanes := LaneWidth()
	if lanes < 1 {
		lanes = 1
	}

	nBatches := (n + lanes - 1) / lanes
	workers := runtime.GOMAXPROCS(0)
	if workers > nBatches {
		workers = nBatches
	}
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	batchesPerWorker := (nBatches + workers - 1) / workers
	for w := 0; w < workers; w++ {
		loB := w * batchesPerWorker
		hiB := loB + batchesPerWorker
		if hiB > nBatches {
			hiB = nBatches
		}
		if loB >= hiB {
			continue
		}
		g.Go(func() error {
			for b := loB; b < hiB; b++ {
				lo := b * lanes
				hi := lo + lanes
				if hi > n {
					hi = n
				}
				for i := lo; i < hi; i++ {
					out[i] = rankineLane(r[i], z[i], zp[i], singularEps)
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

const invFourPi = 1.0 / (4 * math.Pi)

func rankineLane(r, z, zp, singularEps float64) float64 {
	R := math.Hypot(r, z-zp)
	R1 := math.Hypot(r, z+zp)
	var out float64
	if R > singularEps {
		out -= invFourPi / R
	}
	if R1 > singularEps {
		out -= invFourPi / R1
	}
	return out
}
