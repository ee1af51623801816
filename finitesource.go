package lens

import "math"

// FiniteSourceConfig bounds the finite-source integrator's work, per the
// numeric tolerances sketched in spec.md §4.4.
type FiniteSourceConfig struct {
	// N0 is the initial boundary polygon vertex count.
	N0 int
	// RefineLimit is the maximum allowed image displacement across an
	// unrefined edge, in units of the edge's source-plane length.
	RefineLimit float64
	// MaxDepth is the adaptive-refinement depth cap (finite_source_Npoly_max).
	MaxDepth int
	// GridN is the per-axis resolution of the brute-force fallback grid.
	GridN int
	// Flavor selects the brute-force fallback's sampling strategy, per
	// spec.md §4.4(B). The zero value is MapMag.
	Flavor FiniteSourceFlavor
}

// FiniteSourceFlavor selects which of the two brute-force fallback
// strategies of spec.md §4.4(B) FiniteSourceMagnification falls back to
// when contour integration is degenerate.
type FiniteSourceFlavor int

const (
	// MapMag samples a lens-plane grid and forward-maps each point,
	// estimating the source disk's area from the fraction landing inside
	// it.
	MapMag FiniteSourceFlavor = iota
	// AreaMag samples points directly inside the source disk and inverts
	// each one, integrating 1/|det J| over the disk via source-plane
	// sampling.
	AreaMag
)

// DefaultFiniteSourceConfig returns the package's design-default tolerances.
func DefaultFiniteSourceConfig() FiniteSourceConfig {
	return FiniteSourceConfig{N0: 32, RefineLimit: 1.0, MaxDepth: 10, GridN: 200, Flavor: MapMag}
}

// FiniteSourceResult is the outcome of a finite-source magnification
// evaluation: the area-weighted magnification, a stochastic-error estimate
// from the boundary samples, a status, and which recovery path, if any,
// produced it.
type FiniteSourceResult struct {
	Mu       float64
	Variance float64
	Status   Status
	Fallback FallbackKind
}

// contourVertex is one sample of the source boundary polygon, its
// source-plane position, and its inverse-mapped image set.
type contourVertex struct {
	angle  float64
	beta   Point
	images ImageSet
}

// FiniteSourceMagnification computes the magnification of a uniform disk
// source of radius rho centred on beta, by contour integration (the
// default strategy), falling back to the brute-force grid evaluator when
// the contour construction is degenerate.
func FiniteSourceMagnification(view LensView, beta Point, rho float64, cfg FiniteSourceConfig) FiniteSourceResult {
	if cfg.N0 == 0 {
		cfg = DefaultFiniteSourceConfig()
	}
	result := contourMagnification(view, beta, rho, cfg)
	if result.Status == OK || result.Status == PrecisionLoss {
		return result
	}
	if cfg.Flavor == AreaMag {
		return bruteForceAreaMag(view, beta, rho, cfg)
	}
	return bruteForceMapMag(view, beta, rho, cfg)
}

func contourMagnification(view LensView, beta Point, rho float64, cfg FiniteSourceConfig) FiniteSourceResult {
	n0 := cfg.N0
	if n0 < 8 {
		n0 = 8
	}
	betaOf := func(angle float64) Point {
		return Pt(beta.X+rho*math.Cos(angle), beta.Y+rho*math.Sin(angle))
	}

	verts := make([]contourVertex, n0)
	var prevImages []Point
	for i := 0; i < n0; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n0)
		b := betaOf(angle)
		images, _ := view.Invert(b, prevImages)
		verts[i] = contourVertex{angle: angle, beta: b, images: images}
		prevImages = images.Images
	}

	var refined []contourVertex
	var depthCapHit bool
	for i := 0; i < n0; i++ {
		lo := verts[i]
		hi := verts[(i+1)%n0]
		seg := refineEdge(view, betaOf, lo, hi, cfg.RefineLimit, cfg.MaxDepth, 0, &depthCapHit)
		refined = append(refined, seg...)
	}

	mu, variance := stitchAndIntegrate(refined, rho)
	status := OK
	if depthCapHit {
		status = Degenerate
	}
	return FiniteSourceResult{Mu: mu, Variance: variance, Status: status}
}

// refineEdge recursively bisects the source-plane edge between lo and hi
// whenever their inverse-mapped image sets cannot be matched — a size
// change or a displacement beyond refineLimit·|dβ| — stopping at maxDepth.
// It returns the vertices from lo up to (but not including) hi.
func refineEdge(
	view LensView,
	betaOf func(float64) Point,
	lo, hi contourVertex,
	refineLimit float64,
	maxDepth, depth int,
	depthCapHit *bool,
) []contourVertex {
	dBeta := lo.beta.Distance(hi.beta)
	if edgeMatches(lo.images, hi.images, refineLimit, dBeta) {
		return []contourVertex{lo}
	}
	if depth >= maxDepth {
		*depthCapHit = true
		return []contourVertex{lo}
	}
	hiAngle := hi.angle
	if hiAngle < lo.angle {
		hiAngle += 2 * math.Pi
	}

	// Locate the split point with SolveITP rather than a naive midpoint:
	// f(t) is the (signed) mismatch between the images at parameter t and
	// at lo, offset by the acceptance threshold, which is negative at t=0
	// (lo trivially matches itself). At t=1 it is positive when the edge
	// failed edgeMatches on displacement; when it failed on image count
	// alone f(1) can be <= 0, and the midpoint is used instead.
	angleAt := func(t float64) float64 { return lo.angle + t*(hiAngle-lo.angle) }
	f := func(t float64) float64 {
		b := betaOf(angleAt(t))
		images, _ := view.Invert(b, lo.images.Images)
		return nearestMatchMaxDist(lo.images.Images, images.Images) - refineLimit*dBeta
	}
	ya := -refineLimit * dBeta
	yb := f(1.0)
	var tSplit float64
	if yb <= 0 {
		tSplit = 0.5
	} else {
		tSplit = SolveITP(f, 0.0, 1.0, 1e-6, 1, 0.2, ya, yb)
	}
	midAngle := angleAt(tSplit)
	midBeta := betaOf(midAngle)
	midImages, _ := view.Invert(midBeta, lo.images.Images)
	mid := contourVertex{angle: midAngle, beta: midBeta, images: midImages}
	left := refineEdge(view, betaOf, lo, mid, refineLimit, maxDepth, depth+1, depthCapHit)
	right := refineEdge(view, betaOf, mid, hi, refineLimit, maxDepth, depth+1, depthCapHit)
	return append(left, right...)
}

// edgeMatches reports whether the image sets at the two ends of an edge
// can be accepted without further refinement: equal size, and every
// far-endpoint image within refineLimit·dBeta of its nearest counterpart.
func edgeMatches(a, b ImageSet, refineLimit, dBeta float64) bool {
	if len(a.Images) != len(b.Images) || len(a.Images) == 0 {
		return false
	}
	return nearestMatchMaxDist(a.Images, b.Images) < refineLimit*dBeta
}

func nearestMatchMaxDist(a, b []Point) float64 {
	var maxMin float64
	for _, pb := range b {
		minD := math.Inf(1)
		for _, pa := range a {
			if d := pb.Distance(pa); d < minD {
				minD = d
			}
		}
		if minD > maxMin {
			maxMin = minD
		}
	}
	return maxMin
}

// stitchAndIntegrate walks the refined boundary with an ImageTracker,
// groups points sharing a canonical index into closed image-plane curves,
// and sums their shoelace areas. A generation counter disambiguates curve
// groups across an OrderingLost reset so unrelated curves never merge.
func stitchAndIntegrate(refined []contourVertex, rho float64) (mu, variance float64) {
	tracker := NewImageTracker()
	curves := map[int][]Point{}
	gen := 0

	var mus []float64
	for _, v := range refined {
		idx, status := tracker.Update(v.images)
		if status == OrderingLost {
			gen++
		}
		for i, im := range v.images.Images {
			key := gen*1000 + idx[i]
			curves[key] = append(curves[key], im)
		}
		mus = append(mus, v.images.TotalMagnification())
	}

	var totalArea float64
	for _, pts := range curves {
		totalArea += math.Abs(shoelaceArea(pts))
	}
	mu = totalArea / (math.Pi * rho * rho)
	variance = sampleVariance(mus)
	return mu, variance
}

// shoelaceArea returns the signed area enclosed by the closed polygon pts,
// via the standard cross-product (shoelace) formula.
func shoelaceArea(pts []Point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		sum += Vec2(a).Cross(Vec2(b))
	}
	return 0.5 * sum
}

func sampleVariance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	var acc float64
	for _, x := range xs {
		d := x - mean
		acc += d * d
	}
	return acc / float64(len(xs))
}

// bruteForceMapMag samples a regular lens-plane grid around the point-source
// image region, forward-maps each point, and estimates the source disk's
// area from the fraction landing inside it — the map_mag fallback used when
// contour integration is degenerate.
func bruteForceMapMag(view LensView, beta Point, rho float64, cfg FiniteSourceConfig) FiniteSourceResult {
	center, _ := view.Invert(beta, nil)
	minX, maxX, minY, maxY := boundingBoxFromImages(center.Images, rho)
	n := cfg.GridN
	if n <= 0 {
		n = 200
	}
	dx := (maxX - minX) / float64(n)
	dy := (maxY - minY) / float64(n)
	if dx <= 0 || dy <= 0 {
		return FiniteSourceResult{Status: Degenerate, Fallback: FallbackBruteForce}
	}

	var count int
	for i := 0; i < n; i++ {
		x := minX + (float64(i)+0.5)*dx
		for j := 0; j < n; j++ {
			y := minY + (float64(j)+0.5)*dy
			w, status := view.Map(Pt(x, y))
			if status != OK {
				continue
			}
			if w.Distance(beta) <= rho {
				count++
			}
		}
	}
	cellArea := dx * dy
	area := float64(count) * cellArea
	mu := area / (math.Pi * rho * rho)
	return FiniteSourceResult{Mu: mu, Status: OK, Fallback: FallbackBruteForce}
}

// bruteForceAreaMag samples points directly inside the source disk and
// inverts each one with the full quintic (or wide-binary) solver, summing
// the point-source magnification 1/|det J| at the resulting images and
// averaging over the samples — the area_mag fallback of spec.md §4.4(B),
// distinct from bruteForceMapMag's lens-plane grid-and-forward-map test.
// Because a uniform sample of the disk has constant sample density, the
// sample mean of the point-source magnification already equals
// (1/(πρ²))∫∫ μ_point dA, so no further area normalization is needed.
func bruteForceAreaMag(view LensView, beta Point, rho float64, cfg FiniteSourceConfig) FiniteSourceResult {
	n := cfg.GridN
	if n <= 0 {
		n = 200
	}
	step := 2 * rho / float64(n)

	var seed []Point
	var sum, sumSq float64
	var count int
	for i := 0; i < n; i++ {
		x := -rho + (float64(i)+0.5)*step
		for j := 0; j < n; j++ {
			y := -rho + (float64(j)+0.5)*step
			if x*x+y*y > rho*rho {
				continue
			}
			images, status := view.Invert(Pt(beta.X+x, beta.Y+y), seed)
			if status != OK && status != PrecisionLoss {
				continue
			}
			seed = images.Images
			mu := images.TotalMagnification()
			sum += mu
			sumSq += mu * mu
			count++
		}
	}
	if count == 0 {
		return FiniteSourceResult{Status: Degenerate, Fallback: FallbackBruteForce}
	}
	mean := sum / float64(count)
	variance := sumSq/float64(count) - mean*mean
	return FiniteSourceResult{Mu: mean, Variance: variance, Status: OK, Fallback: FallbackBruteForce}
}

func boundingBoxFromImages(images []Point, rho float64) (minX, maxX, minY, maxY float64) {
	margin := 5 * rho
	if margin < 1.0 {
		margin = 1.0
	}
	if len(images) == 0 {
		return -margin, margin, -margin, margin
	}
	minX, maxX = images[0].X, images[0].X
	minY, maxY = images[0].Y, images[0].Y
	for _, im := range images[1:] {
		minX = math.Min(minX, im.X)
		maxX = math.Max(maxX, im.X)
		minY = math.Min(minY, im.Y)
		maxY = math.Max(maxY, im.Y)
	}
	return minX - margin, maxX + margin, minY - margin, maxY + margin
}
