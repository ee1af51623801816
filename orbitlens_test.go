package lens

import (
	"math"
	"testing"
)

func TestBinaryOrbitLensZeroOrbitMatchesStaticBinary(t *testing.T) {
	pv := ParamVector{LogS: 0, QAxis: 0, Parameterization: LogQ, Phi0: 0.2}
	// Chi=0 gives zero orbital rate, so the orbiting lens reduces to a
	// static binary regardless of the other orbit axes.
	orbit := OrbitState{Omega: 0, Inc: 0.3, Chi: 0, A: 1}
	ol := NewBinaryOrbitLens(pv, orbit)
	bl := NewBinaryLens(pv)

	for _, tt := range []float64{0, 1, 5} {
		ov := ol.At(tt).Frame()
		bv := bl.At(0).Frame()
		if math.Abs(ov.S-bv.S) > 1e-9 {
			t.Errorf("t=%v: S = %v, want %v", tt, ov.S, bv.S)
		}
		if math.Abs(ov.Phi-bv.Phi) > 1e-9 {
			t.Errorf("t=%v: Phi = %v, want %v", tt, ov.Phi, bv.Phi)
		}
	}
}

func TestBinaryOrbitLensSeparationVariesWithInclination(t *testing.T) {
	pv := ParamVector{LogS: 0, QAxis: 0, Parameterization: LogQ}
	orbit := OrbitState{Omega: 0, Inc: math.Pi / 4, Chi: 1, A: 1}
	ol := NewBinaryOrbitLens(pv, orbit)

	quarterPeriod := math.Pi / 2 / orbit.omega()
	s0 := ol.At(0).Frame().S
	sQuarter := ol.At(quarterPeriod).Frame().S
	if math.Abs(sQuarter-s0) < 1e-6 {
		t.Errorf("separation did not vary with inclination over a quarter period: s0=%v sq=%v", s0, sQuarter)
	}
}

func TestBinaryOrbitLensCloneIndependent(t *testing.T) {
	pv := ParamVector{LogS: 0, QAxis: 0}
	ol := NewBinaryOrbitLens(pv, OrbitState{Chi: 1, A: 1})
	c := ol.Clone().(*BinaryOrbitLens)
	c.Phi0 = 99
	if ol.Phi0 == c.Phi0 {
		t.Errorf("Clone shares state with the original")
	}
}
