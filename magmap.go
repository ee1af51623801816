package lens

import (
	"fmt"
	"io"
)

// MagMapConfig describes a rectangular scan of the trajectory frame for
// [WriteMagMap].
type MagMapConfig struct {
	XMin, XMax float64
	YMin, YMax float64
	NX, NY     int
	// Verbose additionally writes each sample's image count and positions.
	Verbose bool
}

// WriteMagMap writes a magnification-map grid for lens l at time t, in the
// text format described by spec.md §6: one (x, y, μ) record per line in
// trajectory-frame coordinates, a blank line between scan rows, and —
// with Verbose set — (N_images, x1, y1, ..., xN, yN) appended to each
// record, with image positions also converted back to the trajectory
// frame.
func WriteMagMap(w io.Writer, l Lens, t float64, cfg MagMapConfig) error {
	view := l.At(t)
	fr := view.Frame()

	for j := 0; j < cfg.NY; j++ {
		y := scanCoord(cfg.YMin, cfg.YMax, j, cfg.NY)
		for i := 0; i < cfg.NX; i++ {
			x := scanCoord(cfg.XMin, cfg.XMax, i, cfg.NX)
			beta := traj2lens(Pt(x, y), fr)
			images, _ := view.Invert(beta, nil)
			mu := images.TotalMagnification()

			if !cfg.Verbose {
				if _, err := fmt.Fprintf(w, "%g %g %g\n", x, y, mu); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "%g %g %g %d", x, y, mu, len(images.Images)); err != nil {
				return err
			}
			for _, im := range images.Images {
				p := lens2traj(im, fr)
				if _, err := fmt.Fprintf(w, " %g %g", p.X, p.Y); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func scanCoord(lo, hi float64, i, n int) float64 {
	if n <= 1 {
		return lo
	}
	return lo + (hi-lo)*float64(i)/float64(n-1)
}
