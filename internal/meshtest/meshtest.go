// Package meshtest provides a minimal green_functions.MeshLike
// implementation shared by the core's test suites. It generalizes the
// MockMesh type green_functions/abstract_test.go declared privately for
// its own tests.
package meshtest

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// MockMesh implements the green_functions.MeshLike interface directly,
// without going through mesh.Mesh's panel-validation machinery, so that
// interface-contract tests can exercise degenerate or synthetic inputs.
type MockMesh struct {
	facesCenters *mat.Dense
	facesNormals *mat.Dense
	facesAreas   []float64
	nbFaces      int
}

// New builds a MockMesh from parallel slices of face centers and normals,
// with a uniform unit area per face.
func New(centers, normals [][]float64) *MockMesh {
	areas := make([]float64, len(centers))
	for i := range areas {
		areas[i] = 1.0
	}
	return NewWithAreas(centers, normals, areas)
}

// NewWithAreas builds a MockMesh with an explicit per-face area, needed
// whenever the test exercises the area-weighting the assembler applies.
func NewWithAreas(centers, normals [][]float64, areas []float64) *MockMesh {
	nFaces := len(centers)
	centersData := make([]float64, 0, nFaces*3)
	normalsData := make([]float64, 0, nFaces*3)

	for i := 0; i < nFaces; i++ {
		centersData = append(centersData, centers[i]...)
		normalsData = append(normalsData, normals[i]...)
	}

	return &MockMesh{
		facesCenters: mat.NewDense(nFaces, 3, centersData),
		facesNormals: mat.NewDense(nFaces, 3, normalsData),
		facesAreas:   areas,
		nbFaces:      nFaces,
	}
}

// Sphere returns a crude lat/long-sampled sphere mesh of the given radius,
// centred at (0, 0, -radius) so that its top touches the free surface z=0,
// used by end-to-end unit-sphere test scenarios.
func Sphere(radius float64, nLat, nLon int) *MockMesh {
	var centers, normals [][]float64
	totalArea := 4 * math.Pi * radius * radius
	panelArea := totalArea / float64(nLat*nLon)
	areas := make([]float64, 0, nLat*nLon)

	for i := 0; i < nLat; i++ {
		theta := (float64(i) + 0.5) / float64(nLat) * math.Pi
		for j := 0; j < nLon; j++ {
			phi := (float64(j) + 0.5) / float64(nLon) * 2 * math.Pi
			x := radius * math.Sin(theta) * math.Cos(phi)
			y := radius * math.Sin(theta) * math.Sin(phi)
			z := -radius * math.Cos(theta) // push the body below the free surface z=0
			centers = append(centers, []float64{x, y, z - radius})
			normals = append(normals, []float64{math.Sin(theta) * math.Cos(phi), math.Sin(theta) * math.Sin(phi), -math.Cos(theta)})
			areas = append(areas, panelArea)
		}
	}
	return NewWithAreas(centers, normals, areas)
}

func (m *MockMesh) GetFacesCenters() *mat.Dense { return m.facesCenters }
func (m *MockMesh) GetFacesNormals() *mat.Dense { return m.facesNormals }
func (m *MockMesh) GetNbFaces() int             { return m.nbFaces }
func (m *MockMesh) GetFacesAreas() []float64    { return m.facesAreas }
