package lens

import (
	"math"
	"math/cmplx"
)

// SolvePolynomial finds all n complex roots of the degree-n polynomial
// with coefficients coeffs (coeffs[0] is the constant term, coeffs[n] the
// leading term), using Durand–Kerner simultaneous iteration. If seed has
// length n it is used as the initial root estimate — the binary-lens
// inverse map seeds this with the previous sample's images so a small
// source step converges to the same root identity. Otherwise the roots
// are seeded on a circle scaled by a Cauchy bound on the root magnitudes.
//
// Returns Degenerate if an iterate diverges to a non-finite value.
func SolvePolynomial(coeffs []complex128, seed []complex128, maxIter int, tol float64) ([]complex128, Status) {
	n := len(coeffs) - 1
	if n <= 0 {
		return nil, Degenerate
	}
	lead := coeffs[n]
	roots := make([]complex128, n)
	if len(seed) == n {
		copy(roots, seed)
	} else {
		bound := cauchyBound(coeffs)
		for k := range roots {
			theta := 2*math.Pi*float64(k)/float64(n) + 0.5
			roots[k] = complex(bound, 0) * cmplx.Exp(complex(0, theta))
		}
	}

	for iter := 0; iter < maxIter; iter++ {
		var maxDelta float64
		for i := range roots {
			num := evalPoly(coeffs, roots[i])
			denom := lead
			for j := range roots {
				if j == i {
					continue
				}
				denom *= roots[i] - roots[j]
			}
			if denom == 0 {
				continue
			}
			delta := num / denom
			roots[i] -= delta
			if isBad(roots[i]) {
				return nil, Degenerate
			}
			if d := cabs(delta); d > maxDelta {
				maxDelta = d
			}
		}
		if maxDelta < tol {
			break
		}
	}
	return roots, OK
}

// evalPoly evaluates a polynomial given in ascending coefficient order at z
// by Horner's method.
func evalPoly(coeffs []complex128, z complex128) complex128 {
	n := len(coeffs) - 1
	result := coeffs[n]
	for i := n - 1; i >= 0; i-- {
		result = result*z + coeffs[i]
	}
	return result
}

// cauchyBound returns an upper bound on the magnitude of any root of
// coeffs, used to seed the solver when no prior roots are available.
func cauchyBound(coeffs []complex128) float64 {
	n := len(coeffs) - 1
	lead := cabs(coeffs[n])
	var maxRatio float64
	for i := 0; i < n; i++ {
		if r := cabs(coeffs[i]) / lead; r > maxRatio {
			maxRatio = r
		}
	}
	return 1 + maxRatio
}
