package lens

import "testing"

func TestLensBodyMapAndJacOffBody(t *testing.T) {
	lb := newBinaryBody(1.0, 0.3)
	theta := complex(0.7, 0.4)
	w, status := lb.mapZ(theta)
	if status != OK {
		t.Fatalf("mapZ status = %v", status)
	}

	jr, status := lb.jacAt(theta)
	if status != OK {
		t.Fatalf("jacAt status = %v", status)
	}
	if jr.Det == 0 {
		t.Fatalf("det = 0, expected nondegenerate")
	}
	_ = w
}

func TestJacDeterminantFormula(t *testing.T) {
	lb := newBinaryBody(1.0, 0.3)
	theta := complex(2.0, 1.5)
	jr, status := lb.jacAt(theta)
	if status != OK {
		t.Fatalf("jacAt status = %v", status)
	}
	g := lb.shear(theta, 0)[0]
	g1, g2 := real(g), imag(g)
	want := 1 - (g1*g1 + g2*g2)
	if diff := jr.Det - want; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("det = %v, want %v", jr.Det, want)
	}
}

func TestInvJacAtInverseAwayFromCriticalCurve(t *testing.T) {
	lb := newBinaryBody(1.0, 0.3)
	// An ordinary point far from both bodies and from the critical curve:
	// the determinant is well above the precision floor, so invJacAt
	// reports OK and returns the full matrix inverse.
	theta := complex(5.0, 5.0)
	inv, status := lb.invJacAt(theta)
	if status != OK {
		t.Fatalf("status = %v, want OK far from any body", status)
	}
	jr, _ := lb.jacAt(theta)
	// A*D - B*C of the inverse should recover 1/det for a 2x2 inverse.
	recovered := inv.A*inv.D - inv.B*inv.C
	want := 1 / jr.Det
	if diff := recovered - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("inverse det = %v, want %v", recovered, want)
	}
}

func TestNearBodyDegenerate(t *testing.T) {
	lb := newBinaryBody(1.0, 0.3)
	if _, status := lb.mapZ(lb.bodies[0].z); status != Degenerate {
		t.Errorf("status = %v, want Degenerate at body position", status)
	}
}

func TestFactorial(t *testing.T) {
	cases := []struct {
		n    int
		want int64
	}{{0, 1}, {1, 1}, {2, 2}, {3, 6}, {5, 120}}
	for _, c := range cases {
		if got := factorial(c.n); got != c.want {
			t.Errorf("factorial(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}
