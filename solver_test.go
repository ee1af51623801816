package lens

import (
	"math/cmplx"
	"sort"
	"testing"
)

func TestSolvePolynomialKnownRoots(t *testing.T) {
	// (z-1)(z-2)(z-3) = -6 + 11z - 6z^2 + z^3
	coeffs := []complex128{-6, 11, -6, 1}
	roots, status := SolvePolynomial(coeffs, nil, 200, 1e-12)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if len(roots) != 3 {
		t.Fatalf("got %d roots, want 3", len(roots))
	}

	got := make([]float64, len(roots))
	for i, r := range roots {
		got[i] = real(r)
	}
	sort.Float64s(got)
	want := []float64{1, 2, 3}
	for i := range want {
		if d := got[i] - want[i]; d > 1e-6 || d < -1e-6 {
			t.Errorf("root %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSolvePolynomialSeeded(t *testing.T) {
	coeffs := []complex128{-6, 11, -6, 1}
	seed := []complex128{1.1, 2.1, 2.9}
	roots, status := SolvePolynomial(coeffs, seed, 200, 1e-12)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	for _, r := range evalAll(coeffs, roots) {
		if cmplx.Abs(r) > 1e-6 {
			t.Errorf("residual too large: %v", r)
		}
	}
}

func evalAll(coeffs, roots []complex128) []complex128 {
	out := make([]complex128, len(roots))
	for i, z := range roots {
		out[i] = evalPoly(coeffs, z)
	}
	return out
}

func TestCauchyBound(t *testing.T) {
	coeffs := []complex128{-6, 11, -6, 1}
	if b := cauchyBound(coeffs); b <= 0 {
		t.Errorf("cauchyBound = %v, want positive", b)
	}
}
