package lens

// Lens is implemented by the lens kinds this package understands:
// [SingleLens], [BinaryLens], and [BinaryOrbitLens]. Operations that need
// time-dependent state obtain it by calling At, never by mutating the Lens
// value in place — this keeps Clone trivial and forbids any lens-wide
// mutable state.
type Lens interface {
	// Clone returns an independent deep copy. Clone must be cheap: the
	// batch runner calls it once per concurrent job.
	Clone() Lens
	// At resolves any time-dependent state at t and returns a LensView
	// exposing the operations that depend on it. For lens kinds with no
	// time dependence, At(t) is cheap and its result does not vary with t.
	At(t float64) LensView
}

// LensView is a capability table exposing the time-dependent operations of
// a Lens, resolved at one instant. It is held by value; obtaining one is
// the only way to call Map/Jac/InvJac/Shear/Invert, which is what proves
// the time-dependent state has actually been established.
type LensView interface {
	// Map evaluates the forward lens equation at θ.
	Map(theta Point) (Point, Status)
	// Jac returns the jacobian determinant and matrix entries of Map at θ.
	Jac(theta Point) (JacResult, Status)
	// InvJac returns the jacobian determinant and its matrix inverse at θ.
	InvJac(theta Point) (InvJacResult, Status)
	// Shear returns the complex shear γ at z and its first n z-derivatives.
	Shear(z complex128, n int) ([]complex128, Status)
	// Invert solves the lens equation for β, optionally seeded by the
	// previous sample's image set for root continuity.
	Invert(beta Point, seed []Point) (ImageSet, Status)
	// TestWide reports whether β falls in the perturbative wide-binary
	// regime for this lens configuration.
	TestWide(beta Point) bool
	// Frame returns the coordinate-frame quantities (binary axis rotation,
	// centre-of-mass offset, and their time derivatives) needed to convert
	// between trajectory and lens coordinates at this instant.
	Frame() FrameState
}

// JacResult is the jacobian of the forward map at one image position.
type JacResult struct {
	Det    float64
	A, B   float64 // ∂βx/∂θx, ∂βx/∂θy
	C, D   float64 // ∂βy/∂θx, ∂βy/∂θy
}

// InvJacResult is the jacobian determinant and its matrix inverse.
type InvJacResult struct {
	Det float64
	A, B float64
	C, D float64
}

// ImageSet is the ordered set of lens-plane images of a single source
// point, together with their parity and per-image magnification.
type ImageSet struct {
	Images []Point
	// Parity is sign(det J(θᵢ)) for each image, same order as Images.
	Parity []int
	// Mu is |1/det J(θᵢ)| for each image, same order as Images.
	Mu []float64
	// Status reports any abnormal condition encountered producing this set.
	Status Status
	// Fallback reports which recovery path, if any, produced this set.
	Fallback FallbackKind
}

// TotalMagnification returns the point-source magnification, the sum of
// per-image magnifications.
func (s ImageSet) TotalMagnification() float64 {
	var total float64
	for _, mu := range s.Mu {
		total += mu
	}
	return total
}

// ParitySum returns the sum of image parities, which the signed-image
// theorem fixes at -1 for a 3-image set and +1 for a 5-image set.
func (s ImageSet) ParitySum() int {
	var total int
	for _, p := range s.Parity {
		total += p
	}
	return total
}
