package lens

import (
	"math"
	"testing"
)

func TestNewBinaryLensResolvesParamVector(t *testing.T) {
	pv := ParamVector{LogS: math.Log10(1.5), QAxis: -0.5, Parameterization: LogQ, Phi0: 0.1}
	l := NewBinaryLens(pv)
	if math.Abs(l.S-1.5) > 1e-9 {
		t.Errorf("S = %v, want 1.5", l.S)
	}
	want := math.Pow(10, -0.5)
	if math.Abs(l.Q-want) > 1e-9 {
		t.Errorf("Q = %v, want %v", l.Q, want)
	}
}

func TestBinaryLensCMMatchesFrame(t *testing.T) {
	pv := ParamVector{LogS: 0, QAxis: 0, Parameterization: LogQ}
	l := NewBinaryLens(pv)
	cm := l.CM()
	fr := l.At(0).Frame()
	if cm != fr.CM {
		t.Errorf("CM() = %v, Frame().CM = %v, want equal", cm, fr.CM)
	}
}

func TestBinaryLensDefaultsApplyWhenZero(t *testing.T) {
	l := &BinaryLens{S: 1, Q: 1}
	v := l.At(0).(binaryLensView)
	if v.epsMap != DefaultEpsMap {
		t.Errorf("epsMap = %v, want default %v", v.epsMap, DefaultEpsMap)
	}
	if v.rWide != DefaultRWide {
		t.Errorf("rWide = %v, want default %v", v.rWide, DefaultRWide)
	}
}

func TestBinaryLensInvertImageCount(t *testing.T) {
	pv := ParamVector{LogS: 0, QAxis: -0.3, Parameterization: LogQ}
	l := NewBinaryLens(pv)
	view := l.At(0)

	set, status := view.Invert(Pt(0.05, 0.03), nil)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if n := len(set.Images); n != 3 && n != 5 {
		t.Errorf("got %d images, want 3 or 5", n)
	}
}

func TestBinaryLensCloneIndependent(t *testing.T) {
	l := &BinaryLens{S: 1, Q: 1}
	c := l.Clone().(*BinaryLens)
	c.S = 5
	if l.S == c.S {
		t.Errorf("Clone shares state with the original")
	}
}
