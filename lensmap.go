package lens

import (
	"math"
	"math/cmplx"
)

// massPoint is one point mass of a (possibly degenerate) binary lens, in
// lens-plane complex coordinates.
type massPoint struct {
	z complex128
	m float64
}

// lensBody holds the point masses of a configured lens, independent of
// time. A single lens is the degenerate case s=0, where both bodies sit at
// the origin and their masses sum to 1.
type lensBody struct {
	bodies [2]massPoint
}

func newBinaryBody(s, nu float64) lensBody {
	return lensBody{bodies: [2]massPoint{
		{z: complex(-s/2, 0), m: 1 - nu},
		{z: complex(s/2, 0), m: nu},
	}}
}

const degenerateDistance = 1e-12

// nearBody reports whether z sits within degenerateDistance of any body,
// the condition under which the map is undefined.
func (lb lensBody) nearBody(z complex128) bool {
	for _, b := range lb.bodies {
		if cabs(z-b.z) < degenerateDistance {
			return true
		}
	}
	return false
}

// shear returns γ(z) = Σ mᵢ/(z−zᵢ)² and its first n z-derivatives,
// γ[0]..γ[n], used by Jac/InvJac and by the finite-source Laplacian
// correction.
func (lb lensBody) shear(z complex128, n int) []complex128 {
	out := make([]complex128, n+1)
	for _, b := range lb.bodies {
		dz := z - b.z
		for k := 0; k <= n; k++ {
			sign := 1.0
			if k%2 == 1 {
				sign = -1.0
			}
			coeff := sign * float64(factorial(k+1))
			out[k] += complex(coeff*b.m, 0) / cmplx.Pow(dz, complex(float64(k+2), 0))
		}
	}
	return out
}

func factorial(n int) int64 {
	r := int64(1)
	for i := 2; i <= n; i++ {
		r *= int64(i)
	}
	return r
}

// mapZ evaluates the forward lens equation in complex notation,
// β = θ − Σ mᵢ·conj(θ−θᵢ)⁻¹, equivalently θ − Σ mᵢ(θ−θᵢ)/|θ−θᵢ|².
func (lb lensBody) mapZ(theta complex128) (complex128, Status) {
	if lb.nearBody(theta) {
		return 0, Degenerate
	}
	w := theta
	for _, b := range lb.bodies {
		w -= complex(b.m, 0) / cmplx.Conj(theta-b.z)
	}
	return w, OK
}

// jacAt returns the jacobian determinant and real matrix entries of the
// forward map at θ, derived from the shear: for a point lens (no
// convergence term) J = [[1−γ1, −γ2], [−γ2, 1+γ1]], det J = 1−|γ|².
func (lb lensBody) jacAt(theta complex128) (JacResult, Status) {
	if lb.nearBody(theta) {
		return JacResult{}, Degenerate
	}
	g := lb.shear(theta, 0)[0]
	g1, g2 := real(g), imag(g)
	det := 1 - (g1*g1 + g2*g2)
	return JacResult{Det: det, A: 1 - g1, B: -g2, C: -g2, D: 1 + g1}, OK
}

// invJacAt returns the jacobian determinant and its matrix inverse at θ.
// PrecisionLoss is reported, and the inverse omitted, when |det| falls
// below the precision floor.
func (lb lensBody) invJacAt(theta complex128) (InvJacResult, Status) {
	j, status := lb.jacAt(theta)
	if status != OK {
		return InvJacResult{}, status
	}
	const precisionFloor = 1e-14
	if math.Abs(j.Det) < precisionFloor {
		capped := math.Copysign(precisionFloor, j.Det)
		return InvJacResult{Det: capped}, PrecisionLoss
	}
	inv := 1 / j.Det
	return InvJacResult{
		Det: j.Det,
		A:   j.D * inv,
		B:   -j.B * inv,
		C:   -j.C * inv,
		D:   j.A * inv,
	}, OK
}

