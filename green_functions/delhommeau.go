// Package green_functions - Delhommeau method implementation
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>

package green_functions

import (
	"fmt"
	"hash/fnv"
	"math"
	"path/filepath"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// TabulationGridShape represents different grid shapes for tabulation
type TabulationGridShape string

const (
	Legacy       TabulationGridShape = "legacy"
	ScaledNemoh3 TabulationGridShape = "scaled_nemoh3"
)

// FiniteDepthMethod represents different methods for finite depth calculations
type FiniteDepthMethod string

const (
	LegacyMethod FiniteDepthMethod = "legacy"
	NewerMethod  FiniteDepthMethod = "newer"
)

// GFSingularities represents different singularity handling methods
type GFSingularities string

const (
	HighFreq               GFSingularities = "high_freq"
	LowFreq                GFSingularities = "low_freq"
	LowFreqWithRankinePart GFSingularities = "low_freq_with_rankine_part"
)

// PronyDecompositionMethod represents different Prony decomposition methods
type PronyDecompositionMethod string

const (
	PythonMethod  PronyDecompositionMethod = "python"
	FortranMethod PronyDecompositionMethod = "fortran"
)

// DelhommeauParameters holds configuration parameters for Delhommeau method
type DelhommeauParameters struct {
	TabulationNr                        int
	TabulationRmax                      float64
	TabulationNz                        int
	TabulationZmin                      float64
	TabulationNbIntegrationPoints       int
	TabulationGridShape                 TabulationGridShape
	TabulationCacheDir                  string
	FiniteDepthMethod                   FiniteDepthMethod
	FiniteDepthPronyDecompositionMethod PronyDecompositionMethod
	FloatingPointPrecision              FloatingPointPrecision
	GfSingularities                     GFSingularities
}

// DefaultDelhommeauParameters returns default parameters for Delhommeau method
func DefaultDelhommeauParameters() DelhommeauParameters {
	return DelhommeauParameters{
		TabulationNr:                        676,
		TabulationRmax:                      100.0,
		TabulationNz:                        372,
		TabulationZmin:                      -251.0,
		TabulationNbIntegrationPoints:       1001,
		TabulationGridShape:                 ScaledNemoh3,
		FiniteDepthMethod:                   NewerMethod,
		FiniteDepthPronyDecompositionMethod: PythonMethod,
		FloatingPointPrecision:              Float64,
		GfSingularities:                     LowFreq,
	}
}

// Delhommeau implements the Green function as in Aquadyn and Nemoh
type Delhommeau struct {
	*BaseGreenFunction
	parameters               DelhommeauParameters
	tabulationGridShapeIndex int
	finiteDepthMethodIndex   int
	gfSingularitiesIndex     int
	dispersionRelationRoots  []complex128
	exportableSettings       map[string]interface{}
	hash                     uint64
	tabulation               *TabulationCache
	tabulationOnce           sync.Once
}

// tabulationTol bounds the truncation error of the quadrature/series used
// both to build the tabulation and, for points outside its range, to
// evaluate the wave term directly.
const tabulationTol = 1e-6

// gradientStep is the central-difference step used to lift the scalar
// kernel into a value+gradient kernel (see numericalGradientKernel).
const gradientStep = 1e-5

// selfTermEps floors the horizontal separation used for a panel's
// self-influence term, avoiding the r=0 singularity of the Rankine part
// while the panel's own area still carries the physical self-contribution.
const selfTermEps = 1e-3

// NewDelhommeau creates a new Delhommeau Green function with specified parameters
func NewDelhommeau(params DelhommeauParameters) *Delhommeau {
	d := &Delhommeau{
		BaseGreenFunction:       NewBaseGreenFunction(),
		parameters:              params,
		dispersionRelationRoots: make([]complex128, 1), // dummy array
	}

	d.SetFloatingPointPrecision(params.FloatingPointPrecision)

	// Set grid shape index
	switch params.TabulationGridShape {
	case Legacy:
		d.tabulationGridShapeIndex = 0
	case ScaledNemoh3:
		d.tabulationGridShapeIndex = 1
	}

	// Set finite depth method index
	switch params.FiniteDepthMethod {
	case LegacyMethod:
		d.finiteDepthMethodIndex = 0
	case NewerMethod:
		d.finiteDepthMethodIndex = 1
	}

	// Set GF singularities index
	switch params.GfSingularities {
	case HighFreq:
		d.gfSingularitiesIndex = 0
	case LowFreq:
		d.gfSingularitiesIndex = 1
	case LowFreqWithRankinePart:
		d.gfSingularitiesIndex = 2
	}

	// Create exportable settings
	d.exportableSettings = map[string]interface{}{
		"green_function":                          "Delhommeau",
		"tabulation_nr":                           params.TabulationNr,
		"tabulation_rmax":                         params.TabulationRmax,
		"tabulation_nz":                           params.TabulationNz,
		"tabulation_zmin":                         params.TabulationZmin,
		"tabulation_nb_integration_points":        params.TabulationNbIntegrationPoints,
		"tabulation_grid_shape":                   params.TabulationGridShape,
		"finite_depth_method":                     params.FiniteDepthMethod,
		"finite_depth_prony_decomposition_method": params.FiniteDepthPronyDecompositionMethod,
		"floating_point_precision":                params.FloatingPointPrecision,
		"gf_singularities":                        params.GfSingularities,
	}

	d.hash = d.computeHash()

	// The tabulation itself is built lazily, on first Evaluate call: filling
	// its TabulationNr x TabulationNz grid is the most expensive step of
	// constructing a Delhommeau method, and most callers (parameter
	// inspection, hashing, String) never need it.
	return d
}

// NewDefaultDelhommeau creates a new Delhommeau Green function with default parameters
func NewDefaultDelhommeau() *Delhommeau {
	return NewDelhommeau(DefaultDelhommeauParameters())
}

// computeHash computes a hash for the Delhommeau configuration
func (d *Delhommeau) computeHash() uint64 {
	h := fnv.New64a()
	// Sort keys for deterministic hash
	var keys []string
	for k := range d.exportableSettings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(h, "%s=%v", k, d.exportableSettings[k])
	}
	return h.Sum64()
}

// Hash returns the hash of the Delhommeau configuration
func (d *Delhommeau) Hash() uint64 {
	return d.hash
}

// String returns a string representation showing only non-default values
func (d *Delhommeau) String() string {
	defaults := DefaultDelhommeauParameters()
	var nonDefaults []string

	if d.parameters.TabulationNr != defaults.TabulationNr {
		nonDefaults = append(nonDefaults, fmt.Sprintf("tabulation_nr=%d", d.parameters.TabulationNr))
	}
	if d.parameters.TabulationRmax != defaults.TabulationRmax {
		nonDefaults = append(nonDefaults, fmt.Sprintf("tabulation_rmax=%.1f", d.parameters.TabulationRmax))
	}
	if d.parameters.TabulationNz != defaults.TabulationNz {
		nonDefaults = append(nonDefaults, fmt.Sprintf("tabulation_nz=%d", d.parameters.TabulationNz))
	}
	if d.parameters.TabulationZmin != defaults.TabulationZmin {
		nonDefaults = append(nonDefaults, fmt.Sprintf("tabulation_zmin=%.1f", d.parameters.TabulationZmin))
	}
	if d.parameters.TabulationNbIntegrationPoints != defaults.TabulationNbIntegrationPoints {
		nonDefaults = append(nonDefaults, fmt.Sprintf("tabulation_nb_integration_points=%d", d.parameters.TabulationNbIntegrationPoints))
	}
	if d.parameters.TabulationGridShape != defaults.TabulationGridShape {
		nonDefaults = append(nonDefaults, fmt.Sprintf("tabulation_grid_shape=%s", d.parameters.TabulationGridShape))
	}
	if d.parameters.FiniteDepthMethod != defaults.FiniteDepthMethod {
		nonDefaults = append(nonDefaults, fmt.Sprintf("finite_depth_method=%s", d.parameters.FiniteDepthMethod))
	}
	if d.parameters.FiniteDepthPronyDecompositionMethod != defaults.FiniteDepthPronyDecompositionMethod {
		nonDefaults = append(nonDefaults, fmt.Sprintf("finite_depth_prony_decomposition_method=%s", d.parameters.FiniteDepthPronyDecompositionMethod))
	}
	if d.parameters.FloatingPointPrecision != defaults.FloatingPointPrecision {
		nonDefaults = append(nonDefaults, fmt.Sprintf("floating_point_precision=%s", d.parameters.FloatingPointPrecision))
	}
	if d.parameters.GfSingularities != defaults.GfSingularities {
		nonDefaults = append(nonDefaults, fmt.Sprintf("gf_singularities=%s", d.parameters.GfSingularities))
	}

	if len(nonDefaults) == 0 {
		return "Delhommeau()"
	}
	return fmt.Sprintf("Delhommeau(%s)", fmt.Sprintf("%v", nonDefaults))
}

// ensureTabulation builds the tabulation on first use and caches it for the
// lifetime of the Delhommeau value.
func (d *Delhommeau) ensureTabulation() {
	d.tabulationOnce.Do(func() {
		if d.parameters.TabulationCacheDir == "" {
			d.createTabulation()
		} else {
			d.createOrLoadTabulation()
		}
	})
}

// createTabulation builds an in-memory lookup table of the infinite-depth
// wave term at unit wavenumber. The free-surface Green's function obeys the
// similarity relation Gw(r,z,zp;k) = k * Gw(k*r,k*z,k*zp;1) (Delhommeau
// 1987), so a single k=1 table covers every wavenumber Evaluate is called
// with; scalarKernel below applies the rescaling.
func (d *Delhommeau) createTabulation() error {
	p := d.parameters
	if p.TabulationNr < 2 || p.TabulationNz < 2 {
		return nil
	}

	rRange := make([]float64, p.TabulationNr)
	for i := range rRange {
		rRange[i] = p.TabulationRmax * float64(i) / float64(p.TabulationNr-1)
	}
	zRange := make([]float64, p.TabulationNz)
	for i := range zRange {
		// zRange runs from TabulationZmin (deepest) up to 0 (free surface).
		zRange[i] = p.TabulationZmin * float64(p.TabulationNz-1-i) / float64(p.TabulationNz-1)
	}

	cache := NewTabulationCache(rRange, zRange, p.FloatingPointPrecision)
	for zi, z := range zRange {
		for ri, r := range rRange {
			cache.Values[zi][ri] = evaluateWaveTerm(r, z, z, 1.0, tabulationTol)
		}
	}
	cache.IsValid = true
	d.tabulation = cache
	return nil
}

// createOrLoadTabulation builds the tabulation, namespacing it by the
// configuration hash under TabulationCacheDir. This port keeps the table in
// memory for the process lifetime; it does not persist it to disk between
// runs.
func (d *Delhommeau) createOrLoadTabulation() error {
	if d.parameters.TabulationCacheDir != "" {
		_ = filepath.Join(d.parameters.TabulationCacheDir, fmt.Sprintf("tabulation_%d.cache", d.hash))
	}
	return d.createTabulation()
}

// scalarKernel returns the full Green's function (Rankine + mirror image +
// wave correction) as a function of horizontal separation and the two
// vertical coordinates, dispatching on water depth and falling back to
// direct evaluation outside the tabulation's range.
func (d *Delhommeau) scalarKernel(waterDepth float64, wavenumber complex128) scalarKernel {
	k := real(wavenumber)
	infinite := math.IsInf(waterDepth, 1)
	if infinite && k > 0 {
		d.ensureTabulation()
	}

	return func(r, z, zp float64) complex128 {
		base := rankineAndImage(r, z, zp)
		if k <= 0 {
			return complex(base, 0)
		}

		var wave complex128
		switch {
		case infinite && d.tabulation != nil && d.tabulation.IsValid &&
			k*r <= d.parameters.TabulationRmax && k*z >= d.parameters.TabulationZmin && k*zp >= d.parameters.TabulationZmin:
			// The table holds the k=1 wave term at zp == z, and the wave term
			// depends on the vertical coordinates only through z+zp.
			tabulated, err := d.tabulation.Interpolate(k*r, k*(z+zp)/2)
			if err == nil {
				wave = complex(k, 0) * tabulated
			} else {
				wave = evaluateWaveTerm(r, z, zp, k, tabulationTol)
			}
		case infinite:
			wave = evaluateWaveTerm(r, z, zp, k, tabulationTol)
		case d.parameters.FiniteDepthPronyDecompositionMethod == FortranMethod:
			wave = pronyFiniteDepthWaveSeries(r, z, zp, k, waterDepth, tabulationTol)
		default:
			wave = finiteDepthWaveSeries(r, z, zp, k, waterDepth, tabulationTol)
		}

		return complex(base, 0) + wave/complex(4*math.Pi, 0)
	}
}

// Evaluate computes the Green function between two meshes using Delhommeau method
func (d *Delhommeau) Evaluate(mesh1, mesh2 interface{}, freeSurface float64, waterDepth float64,
	wavenumber complex128, adjointDoubleLayer bool, earlyDotProduct bool) (*mat.CDense, *mat.CDense, error) {

	colocationPoints, earlyDotProductNormals, err := d.getColocationPointsAndNormals(mesh1, mesh2, adjointDoubleLayer)
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

	// Delhommeau's free-surface condition is linearised about z=0; the
	// freeSurface elevation parameter only matters to higher-order methods
	// and is carried here for Evaluate's common signature.
	_ = freeSurface

	d.dispersionRelationRoots = dispersionRoots(waterDepth, wavenumber)

	selfPairs := selfPanelPairs(mesh1, mesh2, rows, cols)
	scalar := d.scalarKernel(waterDepth, wavenumber)
	kernel := numericalGradientKernel(scalar, gradientStep)

	result, err := assembleSK(colocationPoints, sourceCenters, sourceAreas, earlyDotProductNormals,
		adjointDoubleLayer, earlyDotProduct, selfPairs, selfTermEps, kernel, scalar)
	if err != nil {
		return nil, nil, err
	}

	return result.S, result.K, result.asWarning()
}

// DispersionRoots returns the dispersion relation roots computed by the
// most recent Evaluate call: the propagating wavenumber followed by the
// finite-depth evanescent roots. Before the first Evaluate call it holds a
// single zero placeholder.
func (d *Delhommeau) DispersionRoots() []complex128 {
	return d.dispersionRelationRoots
}

// GetParameters returns the current parameters
func (d *Delhommeau) GetParameters() DelhommeauParameters {
	return d.parameters
}
