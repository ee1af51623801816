// Package lens computes binary point-mass gravitational lens geometry:
// forward and inverse lensing maps, the set of images of a source at a
// given position, image magnification and parity, and the magnification of
// an extended (finite) source via contour integration.
//
// # Lenses
//
// [Lens] is implemented by [SingleLens], [BinaryLens], and [BinaryOrbitLens].
// All three share the same [Lens] interface; callers that need to know which
// concrete kind they hold can use a type switch, but ordinary inversion and
// magnification code never needs to.
//
// # Inversion
//
// The Invert method of the [LensView] returned by [BinaryLens.At] solves
// the binary lens equation by assembling the
// degree-five Witt–Mao polynomial and finding its roots with the solver in
// solver.go, then filtering spurious roots by re-checking the forward map.
// [ImageTracker] assigns a stable index to each image across a trajectory so
// that a light curve's image count and ordering are meaningful sample to
// sample.
//
// # Finite sources
//
// [FiniteSourceMagnification] integrates magnification over a disk source by
// tracing the image contours and falling back to a brute-force grid when
// adaptive refinement of the source boundary reaches its depth cap.
package lens
