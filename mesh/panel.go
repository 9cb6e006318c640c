// Package mesh provides the in-memory panelised-surface representation
// consumed by the rest of the BEM core.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package mesh

import (
	"math"

	"github.com/capytaine/capytaine/go-capytaine/bem-core/bemerr"
)

// Vec3 is a Cartesian point or vector.
type Vec3 [3]float64

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}
func (v Vec3) Dot(o Vec3) float64 { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}
func (v Vec3) Finite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Panel is a planar quadrilateral (a degenerate triangle is a quadrilateral
// with a repeated last vertex). All derived fields are computed once at
// construction and are immutable thereafter.
type Panel struct {
	Vertices [4]Vec3
	Centroid Vec3
	Normal   Vec3 // outward unit normal
	Area     float64

	// LocalBasis is an orthonormal (tangent1, tangent2, normal) frame
	// centred at Centroid, used by higher-order quadrature refinements.
	LocalBasis [3]Vec3
}

// NewPanel builds a Panel from four ordered vertices (CCW as seen from the
// fluid domain, i.e. the outward side) and validates its invariants.
// A triangle is passed with the last vertex repeated.
func NewPanel(vertices [4]Vec3) (Panel, error) {
	for _, v := range vertices {
		if !v.Finite() {
			return Panel{}, &bemerr.InvalidParameters{Reason: "panel vertex is not finite"}
		}
	}

	centroid := Vec3{}
	for _, v := range vertices {
		centroid = centroid.Add(v)
	}
	centroid = centroid.Scale(0.25)

	// Area and normal via the shoelace/cross-product sum over the two
	// triangles of the quadrilateral diagonal split; this handles the
	// degenerate-triangle case (vertices[2] == vertices[3]) naturally.
	d1 := vertices[2].Sub(vertices[0])
	d2 := vertices[3].Sub(vertices[1])
	diagCross := d1.Cross(d2)
	area := 0.5 * diagCross.Norm()
	if area <= 0 {
		return Panel{}, &bemerr.InvalidParameters{Reason: "panel has non-positive area"}
	}
	normal := diagCross.Normalized()

	tangent1 := vertices[1].Sub(vertices[0]).Normalized()
	tangent2 := normal.Cross(tangent1).Normalized()

	for i := range vertices {
		edge1 := vertices[(i+1)%4].Sub(vertices[i])
		edge2 := vertices[(i+3)%4].Sub(vertices[i])
		n := edge1.Cross(edge2)
		if n.Norm() > 1e-12 && n.Normalized().Dot(normal) < 0 {
			return Panel{}, &bemerr.InvalidParameters{Reason: "panel normal is inconsistent with vertex winding"}
		}
	}

	return Panel{
		Vertices:   vertices,
		Centroid:   centroid,
		Normal:     normal,
		Area:       area,
		LocalBasis: [3]Vec3{tangent1, tangent2, normal},
	}, nil
}

// ReflectedY returns the panel mirrored across the xOz plane, reversing
// vertex order so the outward normal remains outward.
func (p Panel) ReflectedY() Panel {
	reflect := func(v Vec3) Vec3 { return Vec3{v[0], -v[1], v[2]} }
	mirrored := [4]Vec3{
		reflect(p.Vertices[0]),
		reflect(p.Vertices[3]),
		reflect(p.Vertices[2]),
		reflect(p.Vertices[1]),
	}
	q, err := NewPanel(mirrored)
	if err != nil {
		// A valid panel mirrors to a valid panel; this can only fail on
		// degenerate input that NewPanel would already have rejected.
		return p
	}
	return q
}
