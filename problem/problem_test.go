package problem

import (
	"math"
	"testing"

	"github.com/capytaine/capytaine/go-capytaine/bem-core/mesh"
)

// sphereMesh builds a crude lat/long sphere, submerged one radius below the
// free surface, mirroring postprocess's own test helper.
func sphereMesh(t *testing.T, radius float64, nLat, nLon int) *mesh.Mesh {
	t.Helper()
	var panels []mesh.Panel
	for i := 0; i < nLat; i++ {
		theta0 := float64(i) / float64(nLat) * math.Pi
		theta1 := float64(i+1) / float64(nLat) * math.Pi
		for j := 0; j < nLon; j++ {
			phi0 := float64(j) / float64(nLon) * 2 * math.Pi
			phi1 := float64(j+1) / float64(nLon) * 2 * math.Pi

			v := func(theta, phi float64) mesh.Vec3 {
				x := radius * math.Sin(theta) * math.Cos(phi)
				y := radius * math.Sin(theta) * math.Sin(phi)
				z := -radius*math.Cos(theta) - radius
				return mesh.Vec3{x, y, z}
			}

			p, err := mesh.NewPanel([4]mesh.Vec3{
				v(theta0, phi0), v(theta0, phi1), v(theta1, phi1), v(theta1, phi0),
			})
			if err != nil {
				continue
			}
			panels = append(panels, p)
		}
	}
	m, err := mesh.NewMesh(panels)
	if err != nil {
		t.Fatalf("NewMesh failed: %v", err)
	}
	return m
}

func TestSolve_RadiationProblemProducesFiniteCoefficients(t *testing.T) {
	m := sphereMesh(t, 1.0, 5, 10)

	p := &Problem{
		Type:       Radiation,
		Mesh:       m,
		Frequency:  1.0,
		Gravity:    9.81,
		WaterDepth: 0, // infinite depth, via the <=0 convention
		Density:    1025,
		Modes:      []int{2, 3}, // heave, roll
		Config:     DefaultAssemblyConfig(),
	}

	result, err := Solve(p, nil)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !result.HasAddedMass() || !result.HasDamping() {
		t.Fatal("expected a radiation problem to produce added mass and damping")
	}
	if result.HasExcitationForce() {
		t.Fatal("a pure radiation problem should not produce exciting forces")
	}

	addedMass := result.AddedMass()
	damping := result.Damping()
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if math.IsNaN(addedMass[i][j]) || math.IsInf(addedMass[i][j], 0) {
				t.Fatalf("added mass (%d,%d) is not finite: %v", i, j, addedMass[i][j])
			}
			if math.IsNaN(damping[i][j]) || math.IsInf(damping[i][j], 0) {
				t.Fatalf("damping (%d,%d) is not finite: %v", i, j, damping[i][j])
			}
		}
	}
	if result.ConditionEstimate <= 0 {
		t.Fatalf("expected a positive condition estimate, got %v", result.ConditionEstimate)
	}
}

func TestSolve_DiffractionProblemProducesFiniteForces(t *testing.T) {
	m := sphereMesh(t, 1.0, 5, 10)

	p := &Problem{
		Type:       Diffraction,
		Mesh:       m,
		Frequency:  1.2,
		Gravity:    9.81,
		WaterDepth: -1, // also infinite depth, via the <=0 convention
		Density:    1025,
		Headings:   []float64{0, math.Pi / 2},
		Config:     DefaultAssemblyConfig(),
	}

	result, err := Solve(p, nil)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !result.HasExcitationForce() {
		t.Fatal("expected a diffraction problem to produce exciting forces")
	}
	if result.HasAddedMass() {
		t.Fatal("a pure diffraction problem should not produce radiation coefficients")
	}
	if len(result.ExcitationForce()) != len(p.Headings) {
		t.Fatalf("got %d force vectors, want %d", len(result.ExcitationForce()), len(p.Headings))
	}
	for h, forces := range result.ExcitingForce() {
		for mode, f := range forces {
			if math.IsNaN(real(f)) || math.IsNaN(imag(f)) {
				t.Fatalf("heading %d mode %d force is NaN: %v", h, mode, f)
			}
		}
	}
}

func TestSolve_CombinedProblemProducesBoth(t *testing.T) {
	m := sphereMesh(t, 1.0, 5, 10)

	p := &Problem{
		Type:       Combined,
		Mesh:       m,
		Frequency:  0.8,
		Gravity:    9.81,
		WaterDepth: math.Inf(1),
		Density:    1025,
		Modes:      []int{2},
		Headings:   []float64{0},
		Config:     DefaultAssemblyConfig(),
	}

	result, err := Solve(p, nil)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !result.HasAddedMass() || !result.HasExcitationForce() {
		t.Fatal("expected a combined problem to produce both radiation and diffraction outputs")
	}
}

func TestSolve_RejectsNilMesh(t *testing.T) {
	p := &Problem{Type: Radiation, Mesh: nil, Frequency: 1, Gravity: 9.81, Modes: []int{0}, Config: DefaultAssemblyConfig()}
	if _, err := Solve(p, nil); err == nil {
		t.Fatal("expected an error for a nil mesh")
	}
}

func TestSolve_RejectsMissingModesAndHeadings(t *testing.T) {
	m := sphereMesh(t, 1.0, 3, 6)
	p := &Problem{Type: Radiation, Mesh: m, Frequency: 1, Gravity: 9.81, Config: DefaultAssemblyConfig()}
	if _, err := Solve(p, nil); err == nil {
		t.Fatal("expected an error for a radiation problem with no modes")
	}
}

func TestAssemblyConfig_StringOmitsDefaults(t *testing.T) {
	if got := DefaultAssemblyConfig().String(); got != "AssemblyConfig()" {
		t.Fatalf("got %q, want AssemblyConfig()", got)
	}
	c := DefaultAssemblyConfig()
	c.GreenFunctionMethod = HAMS
	if got := c.String(); got == "AssemblyConfig()" {
		t.Fatal("expected a non-default method to show up in String()")
	}
}

func TestAssemblyConfig_HashIsDeterministic(t *testing.T) {
	a := DefaultAssemblyConfig()
	b := DefaultAssemblyConfig()
	if a.Hash() != b.Hash() {
		t.Fatal("expected identical configs to hash identically")
	}
	b.IntegrationPoints = 4
	if a.Hash() == b.Hash() {
		t.Fatal("expected different configs to hash differently")
	}
}
