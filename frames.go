package lens

import "math"

// FrameState carries the quantities needed to convert between the
// trajectory frame and the lens frame at one instant: the binary-axis
// rotation φ(t), the centre-of-mass offset, the instantaneous separation
// s(t) of a binary, and (for an orbiting binary) their time derivatives.
type FrameState struct {
	CM     Point
	Phi    float64
	DPhiDt float64
	S      float64
	DSDt   float64
}

// traj2lens maps a trajectory-frame position p at the instant described by
// fr into the lens frame: cm + R(φ)·p.
func traj2lens(p Point, fr FrameState) Point {
	return fr.CM.Add(Vec2(p).Rotate(fr.Phi))
}

// lens2traj maps a lens-frame position p back into the trajectory frame:
// R(−φ)·(p − cm).
func lens2traj(p Point, fr FrameState) Point {
	return Point(p.Sub(fr.CM).Rotate(-fr.Phi))
}

// traj2lensVel maps a trajectory-frame velocity v at position p into the
// lens frame, additionally accounting for the time derivative of R(φ) when
// the frame itself is rotating (an orbiting binary).
func traj2lensVel(p, v Point, fr FrameState) Point {
	rotated := Vec2(v).Rotate(fr.Phi)
	if fr.DPhiDt == 0 {
		return Point(rotated)
	}
	// d/dt [R(φ(t))·p] = R(φ)·v + φ'(t)·R'(φ)·p, where R'(φ) is R(φ+π/2)
	// applied as a derivative (rotate p by φ, then by +90°, scaled by φ').
	dRp := Vec2(p).Rotate(fr.Phi + math.Pi/2).Mul(fr.DPhiDt)
	return Point(rotated.Add(dRp))
}

// OrbitState holds the parameters of a circular orbit of the binary axis,
// per spec.md §3: longitude of ascending node Ω, inclination ι, rate
// χ (with ω = χ·a^(−3/2)), and semi-major axis a.
type OrbitState struct {
	Omega float64 // Ω, longitude of ascending node
	Inc   float64 // ι, inclination
	Chi   float64 // χ
	A     float64 // a, semi-major axis
}

// omega returns ω = χ·a^(−3/2).
func (o OrbitState) omega() float64 {
	return o.Chi * math.Pow(o.A, -1.5)
}

// sAt returns the instantaneous effective separation s(t) for a binary of
// reference separation s0 undergoing this orbit, per spec.md §3:
// s(t) = s0·√(1 − sin²ι·sin²φ_orb(t)), with φ_orb(t) = ω·t + Ω.
func (o OrbitState) sAt(s0, t float64) float64 {
	phiOrb := o.omega()*t + o.Omega
	sinInc := math.Sin(o.Inc)
	sinPhi := math.Sin(phiOrb)
	return s0 * math.Sqrt(1-sinInc*sinInc*sinPhi*sinPhi)
}

// alphaAt returns the orbital azimuth rotation α(t) applied on top of φ0
// to produce the instantaneous frame rotation φ(t) = φ0 − α(t).
func (o OrbitState) alphaAt(t float64) float64 {
	phiOrb := o.omega()*t + o.Omega
	cosInc := math.Cos(o.Inc)
	return math.Atan2(cosInc*math.Sin(phiOrb), math.Cos(phiOrb))
}

// dAlphaDt returns a finite-difference estimate of α'(t), used by the
// velocity frame transform for an orbiting binary.
func (o OrbitState) dAlphaDt(t float64) float64 {
	const h = 1e-6
	return (o.alphaAt(t+h) - o.alphaAt(t-h)) / (2 * h)
}

// dSDt returns a finite-difference estimate of s'(t).
func (o OrbitState) dSDt(s0, t float64) float64 {
	const h = 1e-6
	return (o.sAt(s0, t+h) - o.sAt(s0, t-h)) / (2 * h)
}
