package simd

import (
	"math"
	"testing"
)

func TestBatchRankine_AgreesWithScalar(t *testing.T) {
	n := 37
	r := make([]float64, n)
	z := make([]float64, n)
	zp := make([]float64, n)
	for i := 0; i < n; i++ {
		r[i] = 0.5 + float64(i)*0.3
		z[i] = -1.0 - float64(i)*0.1
		zp[i] = -2.0 - float64(i)*0.05
	}

	got := BatchRankine(r, z, zp, 1e-10)
	for i := range got {
		want := rankineLane(r[i], z[i], zp[i], 1e-10)
		if math.Abs(got[i]-want) > 1e-12 {
			t.Fatalf("entry %d: got %v want %v", i, got[i], want)
		}
	}
}

func TestLaneWidth_Positive(t *testing.T) {
	if LaneWidth() < 1 {
		t.Fatal("lane width must be at least 1 (scalar fallback)")
	}
}
