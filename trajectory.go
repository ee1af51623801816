package lens

import "math"

// Trajectory is the observer-motion collaborator, per spec.md §3/§6: a pure
// function of physical time to trajectory-frame position and velocity,
// plus the sample grid and its frame/physical time conversion. The core
// never owns a Trajectory; the driver borrows one per call rather than
// storing a reference on any lens value.
type Trajectory interface {
	TStart() float64
	TEnd() float64
	NSamples() int
	ObsPos(t float64) Point
	ObsVel(t float64) Point
	SetTimes(times []float64, tOff float64)
	FrameToPhys(tFrame float64) float64
	PhysToFrame(tPhys float64) float64
}

// LinearTrajectory is a straight-line trajectory parametrized by impact
// parameter u0, approach angle alpha, and crossing time t0, in units of the
// Einstein-radius crossing time tE — the minimal concrete Trajectory
// exercising every core operation end-to-end.
type LinearTrajectory struct {
	U0, Alpha, T0, TE float64
	TStartPhys        float64
	TEndPhys          float64
	N                 int

	times []float64
	tOff  float64
}

func (tr *LinearTrajectory) TStart() float64 { return tr.TStartPhys }
func (tr *LinearTrajectory) TEnd() float64   { return tr.TEndPhys }
func (tr *LinearTrajectory) NSamples() int   { return tr.N }

// ObsPos returns the trajectory-frame source position at physical time t:
// (τ·cos α − u0·sin α, τ·sin α + u0·cos α) with τ = (t−t0)/tE.
func (tr *LinearTrajectory) ObsPos(t float64) Point {
	tau := (t - tr.T0) / tr.TE
	sin, cos := math.Sincos(tr.Alpha)
	return Pt(tau*cos-tr.U0*sin, tau*sin+tr.U0*cos)
}

// ObsVel returns the (constant) trajectory-frame velocity.
func (tr *LinearTrajectory) ObsVel(float64) Point {
	sin, cos := math.Sincos(tr.Alpha)
	return Pt(cos/tr.TE, sin/tr.TE)
}

func (tr *LinearTrajectory) SetTimes(times []float64, tOff float64) {
	tr.times = times
	tr.tOff = tOff
}

func (tr *LinearTrajectory) FrameToPhys(tFrame float64) float64 { return tFrame*tr.TE + tr.tOff }
func (tr *LinearTrajectory) PhysToFrame(tPhys float64) float64  { return (tPhys - tr.tOff) / tr.TE }

// Sample is one trajectory driver output: the source position, its image
// set and tracked index_series, the point-source and (optionally)
// finite-source magnification, and the sample's status. Sample is owned by
// the caller — the driver never retains or grows a shared sample vector.
type Sample struct {
	T            float64
	Beta         Point
	Images       ImageSet
	IndexSeries  []int
	Mu           float64
	FiniteSource *FiniteSourceResult
	Status       Status
	// Fallback reports the most specific recovery path taken producing this
	// sample: the point-source inversion's, if any, otherwise the
	// finite-source evaluation's.
	Fallback FallbackKind
}

// DriverConfig configures a Driver's finite-source behaviour.
type DriverConfig struct {
	FiniteSource       bool
	RhoStar            float64
	FiniteSourceConfig FiniteSourceConfig
	// DecimateDtMin is the minimum physical-time gap between finite-source
	// evaluations; intermediate samples reuse the last evaluated result
	// rather than re-running the integrator, per spec.md §4.4.
	DecimateDtMin float64
}

// Driver orchestrates the per-sample pipeline of spec.md §4.5: resolve
// time-dependent lens state, map the trajectory position into the lens
// frame, invert seeded by the previous sample, track image identity, and
// compute magnification. It carries only the tracker, the last accepted
// image set, and the last finite-source result (for decimation) as its own
// state.
type Driver struct {
	Tracker *ImageTracker

	cfg        DriverConfig
	lastImages []Point
	lastFs     option[FiniteSourceResult]
	lastFsT    float64
}

// NewDriver returns a Driver with a fresh tracker.
func NewDriver(cfg DriverConfig) *Driver {
	return &Driver{Tracker: NewImageTracker(), cfg: cfg}
}

// Run evaluates the driver over times, which must be monotonically
// increasing — samples within one trajectory are never processed
// concurrently, per the seeded-root and tracker ordering dependency.
func (d *Driver) Run(l Lens, traj Trajectory, times []float64) []Sample {
	samples := make([]Sample, len(times))
	for i, t := range times {
		samples[i] = d.Step(l, traj, t)
	}
	return samples
}

// Step evaluates a single sample at physical time t.
func (d *Driver) Step(l Lens, traj Trajectory, t float64) Sample {
	view := l.At(t)
	fr := view.Frame()
	beta := traj2lens(traj.ObsPos(t), fr)

	images, status := view.Invert(beta, d.lastImages)
	if status != OK && status != PrecisionLoss {
		d.lastImages = nil
		d.Tracker.Reset()
		return Sample{T: t, Beta: beta, Status: status}
	}

	idx, trackStatus := d.Tracker.Update(images)
	d.lastImages = images.Images
	if trackStatus == OrderingLost {
		status = OrderingLost
		d.lastImages = nil
	}

	sample := Sample{
		T:           t,
		Beta:        beta,
		Images:      images,
		IndexSeries: idx,
		Mu:          images.TotalMagnification(),
		Status:      status,
		Fallback:    images.Fallback,
	}

	if d.cfg.FiniteSource {
		sample.FiniteSource = d.finiteSourceAt(view, beta, t)
		if sample.Fallback == FallbackNone {
			sample.Fallback = sample.FiniteSource.Fallback
		}
	}
	return sample
}

func (d *Driver) finiteSourceAt(view LensView, beta Point, t float64) *FiniteSourceResult {
	if d.lastFs.isSet && t-d.lastFsT < d.cfg.DecimateDtMin {
		result := d.lastFs.unwrap()
		return &result
	}
	result := FiniteSourceMagnification(view, beta, d.cfg.RhoStar, d.cfg.FiniteSourceConfig)
	d.lastFs.set(result)
	d.lastFsT = t
	return &result
}
