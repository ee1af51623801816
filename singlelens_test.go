package lens

import (
	"math"
	"testing"
)

func TestSingleLensMagnificationLargeU(t *testing.T) {
	// For large u the magnification approaches 1 (unlensed).
	if mu := SingleLensMagnification(100); math.Abs(mu-1) > 1e-3 {
		t.Errorf("mu(100) = %v, want close to 1", mu)
	}
}

func TestSingleLensMagnificationMatchesImageSum(t *testing.T) {
	l := &SingleLens{}
	view := l.At(0)
	beta := Pt(0.5, 0)

	set, status := view.Invert(beta, nil)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if len(set.Images) != 2 {
		t.Fatalf("got %d images, want 2", len(set.Images))
	}

	u := beta.Distance(Pt(0, 0))
	want := SingleLensMagnification(u)
	if got := set.TotalMagnification(); math.Abs(got-want) > 1e-9 {
		t.Errorf("total magnification = %v, want %v", got, want)
	}
}

func TestSingleLensInvertDegenerateAtOrigin(t *testing.T) {
	l := &SingleLens{}
	view := l.At(0)
	if _, status := view.Invert(Pt(0, 0), nil); status != Degenerate {
		t.Errorf("status = %v, want Degenerate", status)
	}
}

func TestSingleLensCloneIsIndependent(t *testing.T) {
	l := &SingleLens{EpsMap: 1e-6}
	c := l.Clone().(*SingleLens)
	c.EpsMap = 1e-3
	if l.EpsMap == c.EpsMap {
		t.Errorf("Clone shares state with the original")
	}
}
