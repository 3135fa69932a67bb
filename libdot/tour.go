package libdot

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"

	"github.com/2x3systems/dotpath/dotpath"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Tour is the result of running a path through the engine.
type Tour struct {
	canon    Canon
	ext      *Extraction
	graph    *Graph
	parity   Parity
	kind     dotpath.TourKind
	visits   []VtxID
	steps    []dotpath.Step
	pairs    []dotpath.Pair
	coverage int
	fp       string
}

// BuildTour canonicalizes and de-duplicates the segments of the given runs, then builds their
// graph, degree analysis, traversal, and (for more than two odd vertices) the advisory pairing.
//
// Having more than two odd vertices is not an error: a partial tour is returned.
func BuildTour(runs [][]vec.Vec2, opts dotpath.Options) (*Tour, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	canon, err := NewCanon(opts.Tolerance)
	if err != nil {
		return nil, err
	}

	ext := ExtractSegments(runs, canon)
	return NewTour(BuildGraph(ext), ext, canon)
}

// BuildTourFromPath flattens the given path and builds its tour.
func BuildTourFromPath(p *path.Data, opts dotpath.Options) (*Tour, error) {
	if p == nil {
		return nil, dotpath.ErrNilPath
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return BuildTour(FlattenPath(p, opts.Flatness), opts)
}

// BuildTourFromString parses SVG-style path data and builds its tour.
func BuildTourFromString(pathData string, opts dotpath.Options) (*Tour, error) {
	p, err := ParsePathData(pathData)
	if err != nil {
		return nil, err
	}
	return BuildTourFromPath(p, opts)
}

// NewTour analyzes and traverses an already built graph.
//
// ext is optional and only supplies segments and drop counts; X is not modified.
func NewTour(X *Graph, ext *Extraction, canon Canon) (*Tour, error) {
	if ext == nil {
		ext = &Extraction{}
	}

	P, err := X.Parity()
	if err != nil {
		return nil, errors.Wrapf(err, "%d of %d vertices have odd degree", len(P.Odd), X.NumVertices())
	}

	tour := &Tour{
		canon:  canon,
		ext:    ext,
		graph:  X,
		parity: P,
		kind:   P.Kind(),
	}

	if start, ok := X.StartVertex(P); ok {
		tour.visits = X.Circuit(start)
	}
	tour.markSteps()

	if tour.kind == dotpath.TourPartial {
		tour.pairs, err = PairOddVertices(X.Vertices(P.Odd))
		if err != nil {
			return nil, errors.Wrap(err, "pairing odd vertices")
		}
	}
	if !tour.IsComplete() {
		klog.Warningf("dotpath: %s tour covered %d of %d edges (%d odd vertices, %d pairs)",
			tour.kind, tour.coverage, X.NumEdges(), len(P.Odd), len(tour.pairs))
	}

	// set before the tour is handed to any other goroutine
	tour.fp = fingerprint(X.Edges(), canon)
	return tour, nil
}

// markSteps forms a step for each consecutive pair of visits and marks a step as drawn if it
// consumes an edge of the graph not already consumed by an earlier step.
func (tour *Tour) markSteps() {
	if len(tour.visits) < 2 {
		return
	}

	X := tour.graph
	remain := make(map[dotpath.EdgeKey]int, X.NumEdges())
	for _, key := range X.Edges() {
		remain[key]++
	}

	tour.steps = make([]dotpath.Step, len(tour.visits)-1)
	for i := range tour.steps {
		from := X.Vertex(tour.visits[i])
		to := X.Vertex(tour.visits[i+1])
		key := dotpath.FormEdgeKey(from, to)

		drawn := remain[key] > 0
		if drawn {
			remain[key]--
			tour.coverage++
		}
		tour.steps[i] = dotpath.Step{
			Index: i + 1,
			From:  from,
			To:    to,
			Drawn: drawn,
		}
	}
}

func (tour *Tour) Kind() dotpath.TourKind {
	return tour.kind
}

func (tour *Tour) Canon() Canon {
	return tour.canon
}

// Graph returns the graph this tour traverses.
func (tour *Tour) Graph() *Graph {
	return tour.graph
}

func (tour *Tour) Parity() Parity {
	return tour.parity
}

// Extraction returns the segments and drop counts this tour was built from.
func (tour *Tour) Extraction() *Extraction {
	return tour.ext
}

// Segments returns the de-duplicated segments, in extraction order.
func (tour *Tour) Segments() []dotpath.Segment {
	return tour.ext.Segments()
}

// Visits returns the vertex visitation order.
func (tour *Tour) Visits() []dotpath.Vertex {
	return tour.graph.Vertices(tour.visits)
}

// Steps returns the 1-based ordered steps of the traversal.
func (tour *Tour) Steps() []dotpath.Step {
	return tour.steps
}

// Pairs returns the advisory odd-vertex pairs (only formed for partial tours).
func (tour *Tour) Pairs() []dotpath.Pair {
	return tour.pairs
}

// Coverage returns the number of graph edges consumed by the traversal.
func (tour *Tour) Coverage() int {
	return tour.coverage
}

// IsComplete returns true if the traversal consumed every edge of the graph.
//
// A circuit or path kind tour over a disconnected edge set is not complete.
func (tour *Tour) IsComplete() bool {
	return tour.coverage == tour.graph.NumEdges()
}

func (tour *Tour) GetInfo() dotpath.TourInfo {
	return dotpath.TourInfo{
		Kind:        tour.kind,
		NumSegments: tour.graph.NumEdges(),
		NumVertices: tour.graph.NumVertices(),
		NumOdd:      len(tour.parity.Odd),
		NumSteps:    len(tour.steps),
		Coverage:    tour.coverage,
		Complete:    tour.IsComplete(),
	}
}

// Fingerprint returns a hex digest of the sorted canonical edge keys and the tolerance.
//
// Two paths drawing the same edges on the same grid have the same fingerprint, regardless of
// drawing order, direction, or duplicated segments.
func (tour *Tour) Fingerprint() string {
	return tour.fp
}

func fingerprint(edges []dotpath.EdgeKey, canon Canon) string {
	keys := append([]dotpath.EdgeKey(nil), edges...)
	sort.Slice(keys, func(i, j int) bool {
		ki, kj := keys[i], keys[j]
		if ki.A != kj.A {
			return ki.A.Less(kj.A)
		}
		return ki.B.Less(kj.B)
	})

	buf := make([]byte, 0, 10+40*len(keys))
	buf = binary.AppendUvarint(buf, math.Float64bits(canon.Tolerance()))
	for _, key := range keys {
		buf = binary.AppendVarint(buf, key.A.X)
		buf = binary.AppendVarint(buf, key.A.Y)
		buf = binary.AppendVarint(buf, key.B.X)
		buf = binary.AppendVarint(buf, key.B.Y)
	}

	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}
