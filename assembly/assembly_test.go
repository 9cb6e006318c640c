package assembly

import (
	"math/cmplx"
	"testing"

	"github.com/capytaine/capytaine/go-capytaine/bem-core/bemerr"
	"github.com/capytaine/capytaine/go-capytaine/bem-core/green_functions"
	"github.com/capytaine/capytaine/go-capytaine/bem-core/internal/meshtest"
)

func TestAssemble_SphereProducesSquareMatrices(t *testing.T) {
	m := meshtest.Sphere(1.0, 4, 8)
	gf := green_functions.NewDefaultDelhommeau()

	mats, err := Assemble(m, gf, 0.0, -1, complex(1.0, 0), nil)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	n := m.GetNbFaces()
	rS, cS := mats.S.Dims()
	if rS != n || cS != n {
		t.Fatalf("S has dims %dx%d, want %dx%d", rS, cS, n, n)
	}
	rK, cK := mats.K.Dims()
	if rK != n || cK != n {
		t.Fatalf("K has dims %dx%d, want %dx%d", rK, cK, n, n)
	}
}

func TestAssemble_ProgressCallbackFires(t *testing.T) {
	m := meshtest.Sphere(1.0, 3, 6)
	gf := green_functions.NewDefaultDelhommeau()

	var gotRows, gotTotal int
	progress := func(rowsCompleted, rowsTotal int) {
		gotRows, gotTotal = rowsCompleted, rowsTotal
	}

	if _, err := Assemble(m, gf, 0.0, -1, complex(1.0, 0), progress); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if gotTotal != m.GetNbFaces() || gotRows != gotTotal {
		t.Fatalf("progress callback reported %d/%d, want %d/%d", gotRows, gotTotal, m.GetNbFaces(), m.GetNbFaces())
	}
}

func TestAssemble_RejectsEmptyMesh(t *testing.T) {
	empty := meshtest.New(nil, nil)
	gf := green_functions.NewDefaultDelhommeau()

	_, err := Assemble(empty, gf, 0.0, -1, complex(1.0, 0), nil)
	if err == nil {
		t.Fatal("expected an error for an empty mesh")
	}
	if _, ok := err.(*bemerr.InvalidParameters); !ok {
		t.Fatalf("expected *bemerr.InvalidParameters, got %T", err)
	}
}

func TestApplyJumpRelation_SelfInfluenceOnly(t *testing.T) {
	m := meshtest.Sphere(1.0, 3, 6)
	gf := green_functions.NewDefaultDelhommeau()

	self, err := Assemble(m, gf, 0.0, -1, complex(1.0, 0), nil)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	cross, err := AssembleCross(m, meshtest.Sphere(1.0, 3, 6), gf, 0.0, -1, complex(1.0, 0), nil)
	if err != nil {
		t.Fatalf("AssembleCross failed: %v", err)
	}

	// The self-assembled K must have picked up the -1/2 jump term on its
	// diagonal; a structurally identical but distinct source mesh must not,
	// since fieldMesh != sourceMesh under the identity test applyJumpRelation
	// and selfPanelPairs both rely on.
	if cmplx.Abs(self.K.At(0, 0)-cross.K.At(0, 0)) < 1e-9 {
		t.Fatal("expected self-assembled K to differ from cross-assembled K by the jump term")
	}
}

func TestSilentFailureCount_NilErrorReportsNotOK(t *testing.T) {
	if _, ok := SilentFailureCount(nil); ok {
		t.Fatal("expected ok == false for a nil error")
	}
}

func TestSilentFailureCount_AssemblyErrorReportsTally(t *testing.T) {
	err := &bemerr.AssemblyError{SilentFailures: 3}
	n, ok := SilentFailureCount(err)
	if !ok || n != 3 {
		t.Fatalf("got (%d, %v), want (3, true)", n, ok)
	}
}
