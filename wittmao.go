package lens

import "math"

// DefaultEpsMap is the default spurious-root filter tolerance: a candidate
// root is accepted only if the forward map reproduces β within this
// distance. The spec leaves the exact threshold, and whether it should
// scale with |β|, unspecified; this package treats it as a conservative
// constant, matching the "open question" note on ε_map.
const DefaultEpsMap = 1e-9

// DefaultRWide is the default wide-binary threshold factor.
const DefaultRWide = 5.0

// solverMaxIter and solverTol bound the Durand–Kerner iteration used to
// invert the Witt–Mao polynomial.
const (
	solverMaxIter = 60
	solverTol     = 1e-13
)

// wittMaoCoeffs returns the ascending-order coefficients of the degree-5
// Witt–Mao polynomial for source position w (complex, lens-centred frame),
// half-separation h = s/2, and masses m1 (at -h) and m2 (at +h).
//
// Derived by eliminating z̄ between the lens equation w = z − m1/conj(z−z1)
// − m2/conj(z−z2) and its conjugate, using z1 = −h, z2 = +h so that
// D(z) = (z−z1)(z−z2) = z²−h².
func wittMaoCoeffs(w complex128, h, m1, m2 float64) [6]complex128 {
	wbar := conj(w)
	hc := complex(h, 0)
	h2 := complex(h*h, 0)
	h4 := h2 * h2
	p := complex(h*(m1-m2), 0)

	a := wbar + hc
	b := wbar - hc
	c := wbar - p
	c1 := -(a*h2 + p)
	c2 := -(b*h2 + p)

	var out [6]complex128
	out[5] = a * b
	out[4] = (a + b) - w*a*b - c
	out[3] = a*c2 + b*c1 - w*(a+b)
	out[2] = c1 + c2 - w*(a*c2+b*c1+1) + 2*c*h2 + p
	out[1] = c1*c2 - w*(c1+c2) + h2
	out[0] = -w*c1*c2 - c*h4 - p*h2
	return out
}

func conj(z complex128) complex128 { return complex(real(z), -imag(z)) }

// invertBinary solves the binary lens equation at β for the binary body lb
// (half-separation h, masses m1 at −h and m2 at +h), returning an ordered
// image set filtered by epsMap. seed carries the previous sample's images;
// it seeds the polynomial solver for root continuity only when it holds
// exactly five images, and is ignored otherwise.
func invertBinary(beta Point, lb lensBody, h, m1, m2, q, epsMap, rWide float64, seed []Point) (ImageSet, Status) {
	if testWideBinary(beta, 2*h, q, rWide) {
		return invertWideBinary(beta, lb, h, m1, m2)
	}

	w := beta.Complex()
	coeffs := wittMaoCoeffs(w, h, m1, m2)

	var seedRoots []complex128
	if len(seed) == 5 {
		seedRoots = make([]complex128, 5)
		for i, p := range seed {
			seedRoots[i] = p.Complex()
		}
	}

	roots, status := SolvePolynomial(coeffs[:], seedRoots, solverMaxIter, solverTol)
	if status != OK {
		return ImageSet{Status: status}, status
	}

	set := filterRoots(roots, beta, lb, epsMap)
	if len(set.Images) == 0 {
		// Retry with the perturbative wide-binary inversion before giving
		// up, per the root-filter-failure recovery path.
		if wset, wstatus := invertWideBinary(beta, lb, h, m1, m2); wstatus == OK || wstatus == PrecisionLoss {
			return wset, wstatus
		}
		return ImageSet{Status: RootFilterFailure}, RootFilterFailure
	}
	return set, set.Status
}

// filterRoots keeps only the roots that satisfy |map(z) − β| < epsMap,
// annotating each with its parity and per-image magnification.
func filterRoots(roots []complex128, beta Point, lb lensBody, epsMap float64) ImageSet {
	var set ImageSet
	worst := OK
	for _, z := range roots {
		if isBad(z) {
			continue
		}
		w, status := lb.mapZ(z)
		if status != OK {
			continue
		}
		if cabs(w-beta.Complex()) >= epsMap {
			continue
		}
		// invJacAt, not jacAt, is what applies the precision floor near a
		// caustic: jacAt's raw Det can be arbitrarily close to zero, which
		// would blow mu up to +Inf with status still OK.
		ir, istatus := lb.invJacAt(z)
		if istatus == Degenerate {
			continue
		}
		mu := 1 / math.Abs(ir.Det)
		parity := sign(ir.Det)
		if istatus == PrecisionLoss {
			worst = PrecisionLoss
		}
		set.Images = append(set.Images, PtFromComplex(z))
		set.Parity = append(set.Parity, parity)
		set.Mu = append(set.Mu, mu)
	}
	set.Status = worst
	return set
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}

// testWideBinary reports whether β and the lens configuration (s, q) fall
// in the perturbative wide-binary regime, per spec.md §4.2: s or |β| large
// relative to rWide Einstein radii, or an extreme mass ratio.
func testWideBinary(beta Point, s, q, rWide float64) bool {
	scale := 1.0
	threshold := rWide * scale
	if s > threshold {
		return true
	}
	if beta.DistanceSquared(Pt(0, 0)) > threshold*threshold {
		return true
	}
	if q+1/q > 2*threshold*threshold {
		return true
	}
	return false
}

// invertWideBinary approximates the image set of a wide binary by treating
// each component as an isolated single lens and combining the resulting
// images; this is numerically stabler than the quintic solver when the two
// lenses act nearly independently, per spec.md §4.2. invertBinary reaches
// this function both pre-emptively (TestWide's regime test fires) and as a
// retry after a quintic root-filter failure; either way the returned set is
// tagged FallbackWideBinary so callers can log and count the recovery.
func invertWideBinary(beta Point, lb lensBody, h, m1, m2 float64) (ImageSet, Status) {
	set := ImageSet{Fallback: FallbackWideBinary}
	worst := OK
	for _, comp := range []struct {
		center complex128
		mass   float64
	}{
		{complex(-h, 0), m1},
		{complex(h, 0), m2},
	} {
		local := beta.Complex() - comp.center
		images := singleLensImages(local, comp.mass)
		for _, z := range images {
			theta := z + comp.center
			ir, status := lb.invJacAt(theta)
			if status == Degenerate {
				continue
			}
			if status == PrecisionLoss {
				worst = PrecisionLoss
			}
			mu := 1 / math.Abs(ir.Det)
			set.Images = append(set.Images, PtFromComplex(theta))
			set.Parity = append(set.Parity, sign(ir.Det))
			set.Mu = append(set.Mu, mu)
		}
	}
	if len(set.Images) == 0 {
		set.Status = RootFilterFailure
		return set, RootFilterFailure
	}
	set.Status = worst
	return set, worst
}

// singleLensImages returns the two complex image positions, relative to
// the lens centre, of a point source at w for an isolated point mass mass
// at the origin. With u = |w|/√mass, the images lie along the direction of
// w at signed distances √mass·(u ± √(u²+4))/2. It returns nil for w = 0.
func singleLensImages(w complex128, mass float64) []complex128 {
	u := cabs(w) / math.Sqrt(mass)
	if u == 0 {
		return nil
	}
	thetaPlus := 0.5 * (u + math.Sqrt(u*u+4))
	thetaMinus := 0.5 * (u - math.Sqrt(u*u+4))
	dir := w / complex(cabs(w), 0)
	scale := math.Sqrt(mass)
	return []complex128{
		dir * complex(thetaPlus*scale, 0),
		dir * complex(thetaMinus*scale, 0),
	}
}
