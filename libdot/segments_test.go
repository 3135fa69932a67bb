package libdot_test

import (
	"math"
	"testing"

	"github.com/2x3systems/dotpath/dotpath"
	"github.com/2x3systems/dotpath/libdot"
	"seehuhn.de/go/geom/vec"
)

func mustCanon(t *testing.T) libdot.Canon {
	t.Helper()
	canon, err := libdot.NewCanon(1)
	if err != nil {
		t.Fatal(err)
	}
	return canon
}

func TestExtractDuplicates(t *testing.T) {
	canon := mustCanon(t)

	for _, runs := range [][][]vec.Vec2{
		{polyline(0, 0, 10, 0), polyline(0, 0, 10, 0)},
		{polyline(0, 0, 10, 0), polyline(10, 0, 0, 0)},
		{polyline(0, 0, 10, 0, 0, 0)},
		{polyline(0.2, 0, 10, 0.3), polyline(9.8, 0, -0.1, 0.1)},
	} {
		ext := libdot.ExtractSegments(runs, canon)
		if len(ext.Edges) != 1 || ext.Duplicates != 1 {
			t.Errorf("%v: got %d edges, %d duplicates", runs, len(ext.Edges), ext.Duplicates)
		}
		X := libdot.BuildGraph(ext)
		if X.NumEdges() != 1 {
			t.Errorf("%v: got %d graph edges", runs, X.NumEdges())
		}
	}
}

func TestExtractAdvancesPastDrops(t *testing.T) {
	canon := mustCanon(t)

	// the duplicate (10,0)-(0,0) and the zero-length (0,0)-(0.2,0.2) are dropped,
	// but the run continues from where each dropped segment ended
	runs := [][]vec.Vec2{
		polyline(0, 0, 10, 0, 0, 0, 0.2, 0.2, 0, 10),
	}
	ext := libdot.ExtractSegments(runs, canon)
	diff(t, 1, ext.Duplicates)
	diff(t, 1, ext.Degenerate)
	diff(t, []dotpath.Segment{
		{ID: 1, From: pt(0, 0), To: pt(10, 0)},
		{ID: 2, From: pt(0.2, 0.2), To: pt(0, 10)},
	}, ext.Segments())
}

func TestExtractShortAndDegenerateRuns(t *testing.T) {
	canon := mustCanon(t)

	runs := [][]vec.Vec2{
		nil,
		polyline(3, 3),
		polyline(1, 1, 1.2, 0.9),
		{pt(0, 0), pt(math.NaN(), 1)},
		{pt(1e300, 0), pt(0, 0)},
	}
	ext := libdot.ExtractSegments(runs, canon)
	diff(t, 0, len(ext.Edges))
	diff(t, 3, ext.Degenerate)
	diff(t, 0, ext.Duplicates)

	X := libdot.BuildGraph(ext)
	diff(t, 0, X.NumVertices())
}

func TestExtractKeepsOriginalCoords(t *testing.T) {
	canon := mustCanon(t)

	ext := libdot.ExtractSegments([][]vec.Vec2{polyline(0.3, -0.2, 9.7, 0.4)}, canon)
	if len(ext.Edges) != 1 {
		t.Fatalf("got %d edges", len(ext.Edges))
	}
	e := ext.Edges[0]
	diff(t, pt(0.3, -0.2), e.From)
	diff(t, pt(9.7, 0.4), e.To)
	diff(t, dotpath.EdgeKey{A: vtx(0, 0), B: vtx(10, 0)}, e.Key())
}

func TestExtractIdempotent(t *testing.T) {
	canon := mustCanon(t)

	runs := [][]vec.Vec2{
		polyline(0, 0, 10, 0, 10, 10, 0, 0),
		polyline(10, 10, 10, 0, 20, 0),
	}
	ext := libdot.ExtractSegments(runs, canon)

	twice := libdot.ExtractSegments(append(runs, runs...), canon)
	diff(t, len(ext.Edges), len(twice.Edges))
	diff(t, ext.Segments(), twice.Segments())

	seen := make(map[dotpath.EdgeKey]bool)
	for i := range twice.Edges {
		key := twice.Edges[i].Key()
		if seen[key] {
			t.Errorf("edge key %v appears twice", key)
		}
		seen[key] = true
	}
}
