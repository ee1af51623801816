package lens

import (
	"math"
	"testing"
)

func TestResolveLogQ(t *testing.T) {
	pv := ParamVector{LogS: 0, QAxis: -1, Parameterization: LogQ}
	r := pv.Resolve()
	if math.Abs(r.S-1) > 1e-12 {
		t.Errorf("S = %v, want 1", r.S)
	}
	if math.Abs(r.Q-0.1) > 1e-12 {
		t.Errorf("Q = %v, want 0.1", r.Q)
	}
	if want := r.Q / (1 + r.Q); math.Abs(r.Nu-want) > 1e-12 {
		t.Errorf("Nu = %v, want %v (q/(1+q))", r.Nu, want)
	}
}

func TestResolveCMMatchesNuConvention(t *testing.T) {
	pv := ParamVector{LogS: math.Log10(2), QAxis: 0, Parameterization: LogQ}
	r := pv.Resolve()
	// CM = (1-nu)*(-s/2) + nu*(s/2) = s*(nu-0.5)
	want := r.S * (r.Nu - 0.5)
	if d := math.Abs(r.CM.X - want); d > 1e-12 {
		t.Errorf("CM.X = %v, want %v, derived from Nu=%v", r.CM.X, want, r.Nu)
	}
}

func TestResolveRemappedFMonotonic(t *testing.T) {
	pv1 := ParamVector{Parameterization: RemappedF, QAxis: 0.3}
	pv2 := ParamVector{Parameterization: RemappedF, QAxis: 0.7}
	r1 := pv1.Resolve()
	r2 := pv2.Resolve()
	if r2.Q <= r1.Q {
		t.Errorf("q should increase with f: q(0.3)=%v, q(0.7)=%v", r1.Q, r2.Q)
	}
}

func TestResolveRemappedFDefaultQRef(t *testing.T) {
	pv := ParamVector{Parameterization: RemappedF, QAxis: 0.5}
	r := pv.Resolve()
	if r.Q <= 0 {
		t.Errorf("q = %v, want positive", r.Q)
	}
}
