package libdot

import (
	"github.com/2x3systems/dotpath/dotpath"
	"github.com/plan-systems/klog"
	"seehuhn.de/go/geom/vec"
)

// Edge is a deduplicated segment together with its canonical end vertices.
type Edge struct {
	dotpath.Segment
	Va dotpath.Vertex // canonical vertex of Segment.From
	Vb dotpath.Vertex // canonical vertex of Segment.To
}

func (e *Edge) Key() dotpath.EdgeKey {
	return dotpath.FormEdgeKey(e.Va, e.Vb)
}

// Extraction is the output of ExtractSegments.
type Extraction struct {
	Edges      []Edge // deduplicated, in extraction order
	Duplicates int    // candidates dropped because their EdgeKey was already seen
	Degenerate int    // candidates dropped because both ends round to the same vertex (or are not finite)
}

// Segments returns the deduplicated segments in extraction order.
func (ext *Extraction) Segments() []dotpath.Segment {
	segs := make([]dotpath.Segment, len(ext.Edges))
	for i := range ext.Edges {
		segs[i] = ext.Edges[i].Segment
	}
	return segs
}

// ExtractSegments turns polyline runs into deduplicated segments.
//
// Consecutive points of a run form candidate segments; a run with fewer than 2 points yields nothing.
// A candidate is dropped if its EdgeKey was already seen anywhere in runs or if it has zero length
// after rounding.  Either way, the next candidate of the run starts at the dropped candidate's end.
func ExtractSegments(runs [][]vec.Vec2, canon Canon) *Extraction {
	numPts := 0
	for _, run := range runs {
		numPts += len(run)
	}

	ext := &Extraction{
		Edges: make([]Edge, 0, numPts),
	}
	seen := NewEdgeKeySet(numPts)

	for _, run := range runs {
		if len(run) < 2 {
			continue
		}

		start := run[0]
		for _, end := range run[1:] {
			ext.tryAdd(seen, canon, start, end)
			start = end
		}
	}

	if ext.Duplicates > 0 || ext.Degenerate > 0 {
		klog.V(2).Infof("dotpath: kept %d segments, dropped %d duplicate and %d degenerate", len(ext.Edges), ext.Duplicates, ext.Degenerate)
	}
	return ext
}

func (ext *Extraction) tryAdd(seen EdgeKeySet, canon Canon, start, end vec.Vec2) {
	if !canon.InRange(start) || !canon.InRange(end) {
		ext.Degenerate++
		return
	}

	va := canon.Vertex(start)
	vb := canon.Vertex(end)
	key := dotpath.FormEdgeKey(va, vb)
	if key.IsLoop() {
		ext.Degenerate++
		return
	}
	if !seen.TryAdd(key) {
		ext.Duplicates++
		return
	}

	ext.Edges = append(ext.Edges, Edge{
		Segment: dotpath.Segment{
			ID:   len(ext.Edges) + 1,
			From: start,
			To:   end,
		},
		Va: va,
		Vb: vb,
	})
}
