package lens

import "math"

// SingleLens is a single point mass of unit mass at the origin of the lens
// plane: the q→0 degenerate limit of [BinaryLens], given its own type so
// inversion can use the analytic two-image solution instead of running the
// quintic solver on a configuration that always has a duplicate root.
type SingleLens struct {
	EpsMap float64
}

func (l *SingleLens) epsMap() float64 {
	if l.EpsMap == 0 {
		return DefaultEpsMap
	}
	return l.EpsMap
}

// Clone returns an independent copy.
func (l *SingleLens) Clone() Lens {
	c := *l
	return &c
}

// At returns the (time-independent) view of this lens.
func (l *SingleLens) At(t float64) LensView {
	return singleLensView{lb: newSingleBody(), epsMap: l.epsMap()}
}

func newSingleBody() lensBody {
	return lensBody{bodies: [2]massPoint{{z: 0, m: 1}, {z: 0, m: 0}}}
}

type singleLensView struct {
	lb     lensBody
	epsMap float64
}

func (v singleLensView) Map(theta Point) (Point, Status) {
	w, status := v.lb.mapZ(theta.Complex())
	if status != OK {
		return Point{}, status
	}
	return PtFromComplex(w), OK
}

func (v singleLensView) Jac(theta Point) (JacResult, Status) {
	return v.lb.jacAt(theta.Complex())
}

func (v singleLensView) InvJac(theta Point) (InvJacResult, Status) {
	return v.lb.invJacAt(theta.Complex())
}

func (v singleLensView) Shear(z complex128, n int) ([]complex128, Status) {
	if v.lb.nearBody(z) {
		return nil, Degenerate
	}
	return v.lb.shear(z, n), OK
}

// Invert solves the single-lens equation analytically: for source distance
// u = |β| from the lens, the two images lie on the line through the
// origin and β at signed distances θ± = (u ± √(u²+4))/2.
func (v singleLensView) Invert(beta Point, seed []Point) (ImageSet, Status) {
	if beta.Distance(Pt(0, 0)) < degenerateDistance {
		return ImageSet{Status: Degenerate}, Degenerate
	}
	roots := singleLensImages(beta.Complex(), 1.0)
	set := filterRoots(roots, beta, v.lb, v.epsMap)
	if len(set.Images) == 0 {
		return ImageSet{Status: RootFilterFailure}, RootFilterFailure
	}
	return set, set.Status
}

func (v singleLensView) TestWide(beta Point) bool {
	return false
}

func (v singleLensView) Frame() FrameState {
	return FrameState{}
}

// SingleLensMagnification returns the closed-form total magnification of
// an isolated point lens at impact parameter u = |β|, the testable
// single-lens limit of the binary solver (spec.md §8, scenario 5).
func SingleLensMagnification(u float64) float64 {
	return (u*u + 2) / (u * math.Sqrt(u*u+4))
}
