package libdot_test

import (
	"math"
	"testing"

	"github.com/2x3systems/dotpath/libdot"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func TestFlattenLines(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(pt(0, 0)).
		LineTo(pt(10, 0)).
		LineTo(pt(10, 10)).
		Close().
		MoveTo(pt(20, 0)).
		LineTo(pt(30, 0))

	diff(t, [][]vec.Vec2{
		polyline(0, 0, 10, 0, 10, 10, 0, 0),
		polyline(20, 0, 30, 0),
	}, libdot.FlattenPath(p, 0.25))
}

func TestFlattenCloseAtStart(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(pt(0, 0)).
		LineTo(pt(10, 0)).
		LineTo(pt(0, 0)).
		Close()

	// no closing segment is added when already at the start
	diff(t, [][]vec.Vec2{
		polyline(0, 0, 10, 0, 0, 0),
	}, libdot.FlattenPath(p, 0.25))
}

func TestFlattenSkipsLeadingDraws(t *testing.T) {
	p := &path.Data{
		Cmds:   []path.Command{path.CmdLineTo, path.CmdMoveTo, path.CmdLineTo},
		Coords: []vec.Vec2{pt(5, 5), pt(0, 0), pt(1, 1)},
	}
	diff(t, [][]vec.Vec2{
		polyline(0, 0, 1, 1),
	}, libdot.FlattenPath(p, 0.25))
}

func TestFlattenCurves(t *testing.T) {
	const flatness = 0.1

	quad := (&path.Data{}).
		MoveTo(pt(0, 0)).
		QuadTo(pt(50, 100), pt(100, 0))
	cube := (&path.Data{}).
		MoveTo(pt(0, 0)).
		CubeTo(pt(0, 100), pt(100, 100), pt(100, 0))

	for _, p := range []*path.Data{quad, cube} {
		runs := libdot.FlattenPath(p, flatness)
		if len(runs) != 1 {
			t.Fatalf("got %d runs", len(runs))
		}
		run := runs[0]
		if len(run) < 10 {
			t.Errorf("curve flattened to only %d points", len(run))
		}
		diff(t, pt(0, 0), run[0])
		diff(t, pt(100, 0), run[len(run)-1])

		// both curves are symmetric about x = 50 and peak at y >= 50
		peak := 0.0
		for _, pi := range run {
			peak = math.Max(peak, pi.Y)
		}
		if peak < 49 || peak > 75.01 {
			t.Errorf("unexpected peak %v", peak)
		}
	}

	// a more tolerant flatness gives fewer points
	coarse := libdot.FlattenPath(quad, 10)[0]
	fine := libdot.FlattenPath(quad, flatness)[0]
	if len(coarse) >= len(fine) {
		t.Errorf("coarse %d points, fine %d points", len(coarse), len(fine))
	}
}

func TestFlattenedTour(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(pt(0, 0)).
		QuadTo(pt(50, 100), pt(100, 0)).
		Close()

	T, err := libdot.BuildTourFromPath(p, dotOpts(1, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	checkFullCoverage(t, T)
	V := T.Visits()
	diff(t, V[0], V[len(V)-1])
}
