package mesh

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/capytaine/capytaine/go-capytaine/bem-core/bemerr"
)

// Mesh is an ordered sequence of panels plus the vector-access arrays the
// rest of the core expects. The index of a panel in Panels is its stable
// identity: every matrix and vector downstream is indexed in this order.
type Mesh struct {
	Panels []Panel

	// SymmetryAxis is empty for an asymmetric mesh, or "xOz"/"yOz" for a
	// mesh built (or verified, via IsPlaneSymmetric) to be symmetric
	// about that plane. Empty by default; callers opt in explicitly.
	SymmetryAxis string

	centers *mat.Dense
	normals *mat.Dense
	areas   []float64
}

// NewMesh validates and wraps an ordered slice of panels.
func NewMesh(panels []Panel) (*Mesh, error) {
	if len(panels) == 0 {
		return nil, &bemerr.InvalidParameters{Reason: "mesh has no panels"}
	}

	centers := mat.NewDense(len(panels), 3, nil)
	normals := mat.NewDense(len(panels), 3, nil)
	areas := make([]float64, len(panels))

	for i, p := range panels {
		if !p.Centroid.Finite() || !p.Normal.Finite() {
			return nil, &bemerr.InvalidParameters{Reason: "mesh contains a non-finite panel"}
		}
		centers.SetRow(i, p.Centroid[:])
		normals.SetRow(i, p.Normal[:])
		areas[i] = p.Area
	}

	return &Mesh{
		Panels:  panels,
		centers: centers,
		normals: normals,
		areas:   areas,
	}, nil
}

// GetFacesCenters satisfies green_functions.MeshLike.
func (m *Mesh) GetFacesCenters() *mat.Dense { return m.centers }

// GetFacesNormals satisfies green_functions.MeshLike.
func (m *Mesh) GetFacesNormals() *mat.Dense { return m.normals }

// GetNbFaces satisfies green_functions.MeshLike.
func (m *Mesh) GetNbFaces() int { return len(m.Panels) }

// GetFacesAreas satisfies green_functions.MeshLike.
func (m *Mesh) GetFacesAreas() []float64 { return m.areas }

// Areas returns the per-panel area slice, in panel index order.
func (m *Mesh) Areas() []float64 { return m.areas }

// NbFaces is the idiomatic Go accessor; GetNbFaces exists only to satisfy
// the MeshLike contract the green_functions package already defines.
func (m *Mesh) NbFaces() int { return len(m.Panels) }

// ReflectY returns a new Mesh with every panel mirrored across the xOz
// plane, a supplemental feature (see SPEC_FULL.md, module mesh) used to
// build up symmetric hulls and to test the Green's function y -> -y
// invariance property.
func (m *Mesh) ReflectY() *Mesh {
	mirrored := make([]Panel, len(m.Panels))
	for i, p := range m.Panels {
		mirrored[i] = p.ReflectedY()
	}
	out, _ := NewMesh(mirrored)
	return out
}

// IsPlaneSymmetric reports whether the mesh is, within tol, invariant
// under reflection across the xOz plane: for every panel there exists
// another panel (possibly itself) whose centroid and normal match the
// mirror image within tol.
func (m *Mesh) IsPlaneSymmetric(tol float64) bool {
	for _, p := range m.Panels {
		mirrorCentroid := Vec3{p.Centroid[0], -p.Centroid[1], p.Centroid[2]}
		mirrorNormal := Vec3{p.Normal[0], -p.Normal[1], p.Normal[2]}
		found := false
		for _, q := range m.Panels {
			if q.Centroid.Sub(mirrorCentroid).Norm() < tol && q.Normal.Sub(mirrorNormal).Norm() < tol {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// RigidBodyVelocity evaluates the unit rigid-body velocity field of
// radiation mode m (0=surge, 1=sway, 2=heave, 3=roll, 4=pitch, 5=yaw) at
// point p, about the origin.
func RigidBodyVelocity(mode int, p Vec3) Vec3 {
	switch mode {
	case 0:
		return Vec3{1, 0, 0}
	case 1:
		return Vec3{0, 1, 0}
	case 2:
		return Vec3{0, 0, 1}
	case 3: // roll: omega x r, omega = (1,0,0)
		return Vec3{1, 0, 0}.Cross(p)
	case 4: // pitch: omega = (0,1,0)
		return Vec3{0, 1, 0}.Cross(p)
	case 5: // yaw: omega = (0,0,1)
		return Vec3{0, 0, 1}.Cross(p)
	default:
		return Vec3{math.NaN(), math.NaN(), math.NaN()}
	}
}

// ModeUnitVector returns the translation unit vector or moment arm basis
// vector of mode m, used by the exciting-force integral's generalised mode
// shape. It is identical to RigidBodyVelocity but named separately because
// the two quantities are conceptually distinct even though numerically
// equal.
func ModeUnitVector(mode int, p Vec3) Vec3 { return RigidBodyVelocity(mode, p) }
