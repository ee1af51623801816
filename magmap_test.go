package lens

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteMagMapLineCount(t *testing.T) {
	l := &SingleLens{}
	var buf bytes.Buffer
	cfg := MagMapConfig{XMin: -1, XMax: 1, YMin: -1, YMax: 1, NX: 3, NY: 2}
	if err := WriteMagMap(&buf, l, 0, cfg); err != nil {
		t.Fatalf("WriteMagMap: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// NY rows of NX records, each row followed by a blank line; TrimRight
	// drops the blank line after the last row, leaving NY-1 of them.
	want := cfg.NY*cfg.NX + cfg.NY - 1
	if len(lines) != want {
		t.Errorf("got %d lines, want %d", len(lines), want)
	}
}

func TestWriteMagMapVerboseIncludesImages(t *testing.T) {
	l := &SingleLens{}
	var buf bytes.Buffer
	cfg := MagMapConfig{XMin: 0.5, XMax: 0.5, YMin: 0.5, YMax: 0.5, NX: 1, NY: 1, Verbose: true}
	if err := WriteMagMap(&buf, l, 0, cfg); err != nil {
		t.Fatalf("WriteMagMap: %v", err)
	}
	fields := strings.Fields(strings.TrimSpace(buf.String()))
	// x y mu n_images then n_images*2 coordinates.
	if len(fields) < 4 {
		t.Fatalf("too few fields: %v", fields)
	}
}

func TestScanCoord(t *testing.T) {
	if got := scanCoord(0, 10, 0, 1); got != 0 {
		t.Errorf("single-point scan = %v, want 0", got)
	}
	if got := scanCoord(0, 10, 2, 5); got != 5 {
		t.Errorf("midpoint scan = %v, want 5", got)
	}
}
