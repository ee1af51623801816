package lens

import "math"

// Parameterization selects how the mass-ratio axis of a [ParamVector] is
// read back into q. It is resolved once at setup time; nothing downstream
// branches on it again, per the "surface a single enum" guidance for
// parameter remapping.
type Parameterization int

const (
	// LogQ reads the mass-ratio axis directly as log10(q).
	LogQ Parameterization = iota
	// RemappedF reads the mass-ratio axis as f, a (0,1)-valued remapping
	// of q that keeps finite prior mass on arbitrarily large mass ratios.
	RemappedF
)

// DefaultQRef is the default reference mass ratio used by the RemappedF
// parameterization.
const DefaultQRef = 1e7

// ParamVector holds the named axes of a binary-lens parameter vector, as
// read from a run configuration. Orbit and finite-source axes are optional
// and carried as data only: Resolve and the lens constructors do not read
// them.
type ParamVector struct {
	// LogS is log10 of the projected separation s, in Einstein units.
	LogS float64
	// QAxis is the mass-ratio axis, interpreted according to Parameterization.
	QAxis float64
	// Parameterization selects how QAxis is read back into q.
	Parameterization Parameterization
	// QRef is the reference mass ratio used by RemappedF; defaults to
	// DefaultQRef when zero.
	QRef float64
	// Phi0 is the binary-axis angle at closest approach, in radians.
	Phi0 float64

	// LogRhoStar is log10 of the source radius; meaningful only when
	// finite-source evaluation is enabled by the caller.
	LogRhoStar float64

	// Orbit axes; meaningful only when orbital motion is enabled by the
	// caller. LogChi is log10(χ), LonA is the orbital longitude of
	// ascending node Ω, Inc is the orbital inclination ι, LogA is
	// log10(a).
	LogChi float64
	LonA   float64
	Inc    float64
	LogA   float64
}

// Resolved holds the derived lens-configuration quantities obtained by
// resolving a ParamVector once.
type Resolved struct {
	S    float64
	Q    float64
	Phi0 float64
	// Nu is the mass fraction q/(1+q) assigned to the lens at +s/2.
	Nu float64
	// CM is the centre-of-mass offset in the lens frame.
	CM Point
}

// Resolve derives s, q, φ₀, ν, and the centre-of-mass offset from pv,
// applying the mass-ratio remap when pv.Parameterization is RemappedF.
// This is the only place q is computed from the raw axis value; every
// other component consumes the resolved q.
func (pv ParamVector) Resolve() Resolved {
	s := math.Pow(10, pv.LogS)
	q := pv.resolveQ()
	nu := q / (1.0 + q)
	cm := Pt((q/(1+q)-0.5)*s, 0)
	return Resolved{S: s, Q: q, Phi0: pv.Phi0, Nu: nu, CM: cm}
}

func (pv ParamVector) resolveQ() float64 {
	switch pv.Parameterization {
	case RemappedF:
		qRef := pv.QRef
		if qRef == 0 {
			qRef = DefaultQRef
		}
		f := pv.QAxis
		return -1 + (qRef+1)/math.Sqrt(1/f-1)
	default:
		return math.Pow(10, pv.QAxis)
	}
}
