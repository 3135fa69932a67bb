package libdot_test

import (
	"testing"

	"github.com/2x3systems/dotpath/dotpath"
	"github.com/2x3systems/dotpath/libdot"
	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/vec"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

func vtx(x, y int64) dotpath.Vertex {
	return dotpath.Vertex{X: x, Y: y}
}

// polyline returns a run from x, y pairs
func polyline(xy ...float64) []vec.Vec2 {
	run := make([]vec.Vec2, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		run = append(run, pt(xy[i], xy[i+1]))
	}
	return run
}

var (
	squareRuns = [][]vec.Vec2{
		polyline(0, 0, 10, 0, 10, 10, 0, 10, 0, 0),
	}
	ellRuns = [][]vec.Vec2{
		polyline(0, 0, 10, 0, 10, 10),
	}
	plusRuns = [][]vec.Vec2{
		polyline(0, 5, 5, 5, 10, 5),
		polyline(5, 0, 5, 5, 5, 10),
	}
)

func mustBuild(t *testing.T, runs [][]vec.Vec2) *libdot.Tour {
	t.Helper()
	T, err := libdot.BuildTour(runs, dotpath.DefaultOptions)
	if err != nil {
		t.Fatal(err)
	}
	return T
}

func dotOpts(tolerance, flatness float64) dotpath.Options {
	return dotpath.Options{
		Tolerance: tolerance,
		Flatness:  flatness,
	}
}
