package libdot

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/2x3systems/dotpath/dotpath"
)

var (
	comma = []byte(",")
	space = []byte(" ")
)

// Export converts this tour into plain records, with vertices written as document-space tuples.
func (tour *Tour) Export() *dotpath.TourRecord {
	X := tour.graph
	rec := &dotpath.TourRecord{
		Fingerprint: tour.Fingerprint(),
		Kind:        int32(tour.kind),
		Coverage:    int32(tour.coverage),
		Duplicates:  int32(tour.ext.Duplicates),
		Degenerate:  int32(tour.ext.Degenerate),
	}

	rec.Segments = make([]*dotpath.SegmentRecord, len(tour.ext.Edges))
	for i := range tour.ext.Edges {
		seg := &tour.ext.Edges[i].Segment
		rec.Segments[i] = &dotpath.SegmentRecord{
			ID: int32(seg.ID),
			X1: seg.From.X,
			Y1: seg.From.Y,
			X2: seg.To.X,
			Y2: seg.To.Y,
		}
	}

	rec.Adjacency = make([]*dotpath.AdjacencyRecord, X.NumVertices())
	for i := range rec.Adjacency {
		vi := VtxID(i)
		nbrs := X.Neighbors(vi)
		ai := &dotpath.AdjacencyRecord{
			Vertex:    tour.canon.Tuple(X.Vertex(vi)),
			Neighbors: make([]string, len(nbrs)),
		}
		for j, vj := range nbrs {
			ai.Neighbors[j] = tour.canon.Tuple(X.Vertex(vj))
		}
		rec.Adjacency[i] = ai
	}

	rec.Steps = make([]*dotpath.StepRecord, len(tour.steps))
	for i, step := range tour.steps {
		rec.Steps[i] = &dotpath.StepRecord{
			Step:  int32(step.Index),
			From:  tour.canon.Tuple(step.From),
			To:    tour.canon.Tuple(step.To),
			Drawn: step.Drawn,
		}
	}

	if len(tour.pairs) > 0 {
		rec.Pairs = make([]*dotpath.PairRecord, len(tour.pairs))
		for i, pair := range tour.pairs {
			rec.Pairs[i] = &dotpath.PairRecord{
				A: tour.canon.Tuple(pair.A),
				B: tour.canon.Tuple(pair.B),
			}
		}
	}

	return rec
}

type tourJSON struct {
	*dotpath.TourRecord
	Graph map[string][]string `json:"graph"`
}

// WriteRecordJSON writes rec as indented JSON, with its adjacency as a "graph" object keyed by vertex tuple.
func WriteRecordJSON(out io.Writer, rec *dotpath.TourRecord) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(tourJSON{
		TourRecord: rec,
		Graph:      rec.AdjacencyMap(),
	})
}

// WriteJSON writes the exported tour as indented JSON.
func (tour *Tour) WriteJSON(out io.Writer) error {
	return WriteRecordJSON(out, tour.Export())
}

// WriteAsString writes a one-line summary: kind and counts, then the items selected by opts.
func (tour *Tour) WriteAsString(out io.Writer, opts dotpath.PrintOpts) {
	info := tour.GetInfo()
	fmt.Fprintf(out, "%s,s=%d,v=%d,odd=%d,cov=%d/%d,", info.Kind, info.NumSegments, info.NumVertices, info.NumOdd, info.Coverage, info.NumSteps)

	if opts.Segments {
		for _, seg := range tour.Segments() {
			fmt.Fprintf(out, "%d:%s-%s", seg.ID, dotpath.FormatTuple(seg.From.X, seg.From.Y), dotpath.FormatTuple(seg.To.X, seg.To.Y))
			out.Write(space)
		}
		out.Write(comma)
	}
	if opts.Steps {
		for _, step := range tour.steps {
			sep := "->"
			if !step.Drawn {
				sep = "~>"
			}
			fmt.Fprintf(out, "%d:%s%s%s", step.Index, tour.canon.Tuple(step.From), sep, tour.canon.Tuple(step.To))
			out.Write(space)
		}
		out.Write(comma)
	}
	if opts.Pairs {
		for _, pair := range tour.pairs {
			fmt.Fprintf(out, "%s=%s", tour.canon.Tuple(pair.A), tour.canon.Tuple(pair.B))
			out.Write(space)
		}
		out.Write(comma)
	}
}
