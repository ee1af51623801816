package lens

import "sort"

// DefaultDeltaMax is the default continuity tolerance used by ImageTracker
// when matching an image set to the previous one.
const DefaultDeltaMax = 0.1

// ImageTracker assigns a stable index to each image across a sequence of
// image sets, so a light curve's image ordering stays meaningful sample to
// sample. It carries only the previous image set as its own state, per the
// "owned image record per sample" redesign note — callers own every
// sample's ImageSet; the tracker never grows an in-place vector.
type ImageTracker struct {
	DeltaMax float64
	prev     []Point
	prevIdx  []int
}

// NewImageTracker returns a tracker with the default continuity tolerance.
func NewImageTracker() *ImageTracker {
	return &ImageTracker{DeltaMax: DefaultDeltaMax}
}

// Reset clears the tracker's saved state, forcing the next Update to start
// an unseeded assignment — used after OrderingLost or a trajectory
// boundary.
func (tr *ImageTracker) Reset() {
	tr.prev = nil
	tr.prevIdx = nil
}

// Update matches the images in set to the tracker's previous image set,
// returning the per-image canonical index (index_series) in set's order,
// and a status that is OrderingLost if the sizes differ (a caustic
// crossing) and the previous state was discarded.
func (tr *ImageTracker) Update(set ImageSet) ([]int, Status) {
	n := len(set.Images)
	if tr.prev == nil {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		tr.prev = append([]Point(nil), set.Images...)
		tr.prevIdx = idx
		return idx, OK
	}

	if len(tr.prev) != n {
		tr.Reset()
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		tr.prev = append([]Point(nil), set.Images...)
		tr.prevIdx = idx
		return idx, OrderingLost
	}

	assign := tr.assign(set.Images)
	tr.prev = append([]Point(nil), set.Images...)
	tr.prevIdx = assign
	return assign, OK
}

// assign computes the index_series: for each image in cur, the canonical
// index it inherits from the previous set, by greedy nearest-neighbour
// matching subject to DeltaMax, ties broken by lowest index.
func (tr *ImageTracker) assign(cur []Point) []int {
	n := len(cur)
	type candidate struct {
		curI, prevI int
		dist        float64
	}
	var candidates []candidate
	for i, c := range cur {
		for j, p := range tr.prev {
			d := c.Distance(p)
			if d < tr.DeltaMax {
				candidates = append(candidates, candidate{i, j, d})
			}
		}
	}
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].dist != candidates[b].dist {
			return candidates[a].dist < candidates[b].dist
		}
		if candidates[a].curI != candidates[b].curI {
			return candidates[a].curI < candidates[b].curI
		}
		return candidates[a].prevI < candidates[b].prevI
	})

	result := make([]int, n)
	usedCur := make([]bool, n)
	usedPrev := make([]bool, n)
	for i := range result {
		result[i] = -1
	}
	for _, c := range candidates {
		if usedCur[c.curI] || usedPrev[c.prevI] {
			continue
		}
		usedCur[c.curI] = true
		usedPrev[c.prevI] = true
		result[c.curI] = tr.prevIdx[c.prevI]
	}
	// Any image with no match within DeltaMax keeps its own position's
	// canonical index — this can happen near a caustic without a size
	// change, e.g. a fast-moving image.
	for i, idx := range result {
		if idx == -1 {
			result[i] = i
		}
	}
	return result
}
