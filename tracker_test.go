package lens

import "testing"

func TestImageTrackerFirstCallIsIdentity(t *testing.T) {
	tr := NewImageTracker()
	set := ImageSet{Images: []Point{Pt(1, 0), Pt(-1, 0)}}
	idx, status := tr.Update(set)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if idx[0] != 0 || idx[1] != 1 {
		t.Errorf("idx = %v, want [0 1]", idx)
	}
}

func TestImageTrackerFollowsSmallMotion(t *testing.T) {
	tr := NewImageTracker()
	tr.Update(ImageSet{Images: []Point{Pt(1, 0), Pt(-1, 0)}})

	// Swap array order but keep images near their previous positions: the
	// canonical index should follow position, not array slot.
	idx, status := tr.Update(ImageSet{Images: []Point{Pt(-1.01, 0), Pt(1.01, 0)}})
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if idx[0] != 1 || idx[1] != 0 {
		t.Errorf("idx = %v, want [1 0] (order swapped in the array)", idx)
	}
}

func TestImageTrackerSizeChangeReportsOrderingLost(t *testing.T) {
	tr := NewImageTracker()
	tr.Update(ImageSet{Images: []Point{Pt(1, 0), Pt(-1, 0)}})

	idx, status := tr.Update(ImageSet{Images: []Point{Pt(1, 0), Pt(-1, 0), Pt(0, 1)}})
	if status != OrderingLost {
		t.Fatalf("status = %v, want OrderingLost", status)
	}
	if len(idx) != 3 {
		t.Fatalf("got %d indices, want 3", len(idx))
	}
}

func TestImageTrackerResetStartsFresh(t *testing.T) {
	tr := NewImageTracker()
	tr.Update(ImageSet{Images: []Point{Pt(1, 0)}})
	tr.Reset()
	idx, status := tr.Update(ImageSet{Images: []Point{Pt(5, 5)}})
	if status != OK || idx[0] != 0 {
		t.Errorf("idx = %v, status = %v, want [0], OK", idx, status)
	}
}
