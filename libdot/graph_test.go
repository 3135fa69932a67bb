package libdot_test

import (
	"math/rand"
	"testing"

	"github.com/2x3systems/dotpath/dotpath"
	"github.com/2x3systems/dotpath/libdot"
	"seehuhn.de/go/geom/vec"
)

func buildGraph(t *testing.T, runs [][]vec.Vec2) *libdot.Graph {
	t.Helper()
	return libdot.BuildGraph(libdot.ExtractSegments(runs, mustCanon(t)))
}

func degrees(X *libdot.Graph) map[dotpath.Vertex]int {
	deg := make(map[dotpath.Vertex]int, X.NumVertices())
	for i := 0; i < X.NumVertices(); i++ {
		deg[X.Vertex(libdot.VtxID(i))] = X.Degree(libdot.VtxID(i))
	}
	return deg
}

func TestGraphSquare(t *testing.T) {
	X := buildGraph(t, squareRuns)

	diff(t, 4, X.NumEdges())
	diff(t, map[dotpath.Vertex]int{
		vtx(0, 0): 2, vtx(10, 0): 2, vtx(10, 10): 2, vtx(0, 10): 2,
	}, degrees(X))

	P, err := X.Parity()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 0, len(P.Odd))
	diff(t, dotpath.TourCircuit, P.Kind())
}

func TestGraphEll(t *testing.T) {
	X := buildGraph(t, ellRuns)

	diff(t, map[dotpath.Vertex]int{
		vtx(0, 0): 1, vtx(10, 0): 2, vtx(10, 10): 1,
	}, degrees(X))

	P, err := X.Parity()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []dotpath.Vertex{vtx(0, 0), vtx(10, 10)}, X.Vertices(P.Odd))
	diff(t, dotpath.TourPath, P.Kind())

	start, ok := X.StartVertex(P)
	if !ok || X.Vertex(start) != vtx(0, 0) {
		t.Errorf("start vertex: got %v", X.Vertex(start))
	}
}

func TestGraphPlus(t *testing.T) {
	X := buildGraph(t, plusRuns)

	center, ok := X.Lookup(vtx(5, 5))
	if !ok {
		t.Fatal("center vertex missing")
	}
	diff(t, 4, X.Degree(center))
	diff(t, []dotpath.Vertex{vtx(0, 5), vtx(10, 5), vtx(5, 0), vtx(5, 10)}, X.Vertices(X.Neighbors(center)))

	P, err := X.Parity()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 4, len(P.Odd))
	diff(t, dotpath.TourPartial, P.Kind())
}

func TestGraphEmpty(t *testing.T) {
	X := libdot.NewGraph(0)
	P, err := X.Parity()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, dotpath.TourEmpty, P.Kind())
	if _, ok := X.StartVertex(P); ok {
		t.Error("empty graph has no start vertex")
	}
	diff(t, 0, len(X.Circuit(0)))
}

func TestGraphParallelEdges(t *testing.T) {
	X := libdot.NewGraph(2)
	X.AddEdge(vtx(0, 0), vtx(1, 0))
	X.AddEdge(vtx(1, 0), vtx(0, 0))

	diff(t, 2, X.NumVertices())
	diff(t, 2, X.NumEdges())
	diff(t, map[dotpath.Vertex]int{vtx(0, 0): 2, vtx(1, 0): 2}, degrees(X))
}

// randomWalk returns a single run wandering over a small grid, so it often revisits vertices and edges.
func randomWalk(rng *rand.Rand, steps int) []vec.Vec2 {
	x, y := 0, 0
	run := []vec.Vec2{pt(0, 0)}
	for i := 0; i < steps; i++ {
		switch rng.Intn(4) {
		case 0:
			x = min(x+1, 3)
		case 1:
			x = max(x-1, 0)
		case 2:
			y = min(y+1, 3)
		case 3:
			y = max(y-1, 0)
		}
		run = append(run, pt(float64(x)*10, float64(y)*10))
	}
	return run
}

func TestGraphOddCountIsEven(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 300; i++ {
		runs := [][]vec.Vec2{
			randomWalk(rng, 1+rng.Intn(30)),
			randomWalk(rng, rng.Intn(5)),
		}
		X := buildGraph(t, runs)

		P, err := X.Parity()
		if err != nil {
			t.Fatal(err)
		}
		if len(P.Odd)%2 != 0 {
			t.Fatalf("%d odd vertices", len(P.Odd))
		}

		sum := 0
		for _, d := range degrees(X) {
			sum += d
		}
		if sum != 2*X.NumEdges() {
			t.Fatalf("degree sum %d for %d edges", sum, X.NumEdges())
		}
	}
}
