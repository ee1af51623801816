package lens

// BinaryLens is a static (non-orbiting) binary point-mass lens: mass ratio
// q, projected separation s, and binary-axis angle φ0.
type BinaryLens struct {
	S, Q, Phi0 float64
	Nu         float64
	// EpsMap is the spurious-root filter tolerance; defaults to
	// DefaultEpsMap when zero.
	EpsMap float64
	// RWide is the wide-binary threshold factor; defaults to DefaultRWide
	// when zero.
	RWide float64
}

// NewBinaryLens resolves pv and returns a configured BinaryLens with
// default tolerances.
func NewBinaryLens(pv ParamVector) *BinaryLens {
	r := pv.Resolve()
	return &BinaryLens{S: r.S, Q: r.Q, Phi0: r.Phi0, Nu: r.Nu}
}

func (l *BinaryLens) epsMap() float64 {
	if l.EpsMap == 0 {
		return DefaultEpsMap
	}
	return l.EpsMap
}

func (l *BinaryLens) rWide() float64 {
	if l.RWide == 0 {
		return DefaultRWide
	}
	return l.RWide
}

// Clone returns an independent copy; BinaryLens has no shared mutable
// state, so this is a plain value copy.
func (l *BinaryLens) Clone() Lens {
	c := *l
	return &c
}

// CM returns the lens frame's centre-of-mass offset, derived from q and s.
func (l *BinaryLens) CM() Point {
	return Pt((l.Q/(1+l.Q)-0.5)*l.S, 0)
}

// At returns the (time-independent) view of this lens.
func (l *BinaryLens) At(t float64) LensView {
	return binaryLensView{
		lb:     newBinaryBody(l.S, l.Nu),
		s:      l.S,
		nu:     l.Nu,
		q:      l.Q,
		epsMap: l.epsMap(),
		rWide:  l.rWide(),
		frame:  FrameState{CM: l.CM(), Phi: l.Phi0, S: l.S},
	}
}

// binaryLensView is the capability table for a static or orbit-resolved
// binary lens configuration at one instant.
type binaryLensView struct {
	lb     lensBody
	s, nu  float64
	q      float64
	epsMap float64
	rWide  float64
	frame  FrameState
}

func (v binaryLensView) Map(theta Point) (Point, Status) {
	w, status := v.lb.mapZ(theta.Complex())
	if status != OK {
		return Point{}, status
	}
	return PtFromComplex(w), OK
}

func (v binaryLensView) Jac(theta Point) (JacResult, Status) {
	return v.lb.jacAt(theta.Complex())
}

func (v binaryLensView) InvJac(theta Point) (InvJacResult, Status) {
	return v.lb.invJacAt(theta.Complex())
}

func (v binaryLensView) Shear(z complex128, n int) ([]complex128, Status) {
	if v.lb.nearBody(z) {
		return nil, Degenerate
	}
	return v.lb.shear(z, n), OK
}

func (v binaryLensView) Invert(beta Point, seed []Point) (ImageSet, Status) {
	return invertBinary(beta, v.lb, v.s/2, 1-v.nu, v.nu, v.q, v.epsMap, v.rWide, seed)
}

func (v binaryLensView) TestWide(beta Point) bool {
	return testWideBinary(beta, v.s, v.q, v.rWide)
}

func (v binaryLensView) Frame() FrameState {
	return v.frame
}
