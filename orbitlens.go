package lens

// BinaryOrbitLens is a binary point-mass lens whose separation and
// binary-axis orientation vary with time under a circular orbit, per
// spec.md §3. Its point-in-time behaviour is otherwise identical to
// [BinaryLens] — At(t) resolves s(t) and φ(t) and returns the same
// binaryLensView capability table.
type BinaryOrbitLens struct {
	S0, Q, Phi0 float64
	Nu          float64
	Orbit       OrbitState
	EpsMap      float64
	RWide       float64
}

// NewBinaryOrbitLens resolves pv and returns a configured BinaryOrbitLens
// with the given orbit. pv's orbit axes (LogChi, LonA, Inc, LogA) are not
// read.
func NewBinaryOrbitLens(pv ParamVector, orbit OrbitState) *BinaryOrbitLens {
	r := pv.Resolve()
	return &BinaryOrbitLens{S0: r.S, Q: r.Q, Phi0: r.Phi0, Nu: r.Nu, Orbit: orbit}
}

func (l *BinaryOrbitLens) epsMap() float64 {
	if l.EpsMap == 0 {
		return DefaultEpsMap
	}
	return l.EpsMap
}

func (l *BinaryOrbitLens) rWide() float64 {
	if l.RWide == 0 {
		return DefaultRWide
	}
	return l.RWide
}

// Clone returns an independent copy.
func (l *BinaryOrbitLens) Clone() Lens {
	c := *l
	return &c
}

// cmAt returns the centre-of-mass offset for the instantaneous separation
// s(t); the mass fractions are time-independent so only s(t) varies.
func (l *BinaryOrbitLens) cmAt(s float64) Point {
	return Pt((l.Q/(1+l.Q)-0.5)*s, 0)
}

// At resolves s(t) and φ(t) = φ0 − α(t) and returns the corresponding view.
func (l *BinaryOrbitLens) At(t float64) LensView {
	s := l.Orbit.sAt(l.S0, t)
	alpha := l.Orbit.alphaAt(t)
	phi := l.Phi0 - alpha
	fr := FrameState{
		CM:     l.cmAt(s),
		Phi:    phi,
		DPhiDt: -l.Orbit.dAlphaDt(t),
		S:      s,
		DSDt:   l.Orbit.dSDt(l.S0, t),
	}
	return binaryLensView{
		lb:     newBinaryBody(s, l.Nu),
		s:      s,
		nu:     l.Nu,
		q:      l.Q,
		epsMap: l.epsMap(),
		rWide:  l.rWide(),
		frame:  fr,
	}
}
