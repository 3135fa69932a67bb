package libdot

import (
	"github.com/2x3systems/dotpath/dotpath"
)

// VtxID indexes a Graph's vertices in insertion order (0, 1, 2, ..)
type VtxID int32

// Graph is an undirected multigraph over canonical vertices.
//
// Vertices and adjacency entries are kept in insertion order.  Each edge appears in the
// adjacency of both of its endpoints, so Degree() counts entries (not distinct neighbours).
type Graph struct {
	vtx   []dotpath.Vertex
	index map[dotpath.Vertex]VtxID
	adj   [][]VtxID
	edges []dotpath.EdgeKey
}

// Parity partitions a Graph's vertices by degree, each in insertion order.
type Parity struct {
	Even []VtxID
	Odd  []VtxID
}

// Kind returns the tour kind implied by the number of odd-degree vertices.
func (P Parity) Kind() dotpath.TourKind {
	switch {
	case len(P.Even)+len(P.Odd) == 0:
		return dotpath.TourEmpty
	case len(P.Odd) == 0:
		return dotpath.TourCircuit
	case len(P.Odd) == 2:
		return dotpath.TourPath
	default:
		return dotpath.TourPartial
	}
}

// NewGraph returns an empty Graph with room for the given number of edges.
func NewGraph(sizeHint int) *Graph {
	return &Graph{
		vtx:   make([]dotpath.Vertex, 0, sizeHint),
		index: make(map[dotpath.Vertex]VtxID, sizeHint),
		adj:   make([][]VtxID, 0, sizeHint),
		edges: make([]dotpath.EdgeKey, 0, sizeHint),
	}
}

// BuildGraph inserts every extracted edge into a new Graph, both ways.
func BuildGraph(ext *Extraction) *Graph {
	X := NewGraph(len(ext.Edges))
	for i := range ext.Edges {
		ei := &ext.Edges[i]
		X.AddEdge(ei.Va, ei.Vb)
	}
	return X
}

// AddVertex returns the VtxID of v, adding it if not already present.
func (X *Graph) AddVertex(v dotpath.Vertex) VtxID {
	if id, exists := X.index[v]; exists {
		return id
	}
	id := VtxID(len(X.vtx))
	X.vtx = append(X.vtx, v)
	X.adj = append(X.adj, nil)
	X.index[v] = id
	return id
}

// AddEdge adds an edge between a and b without any de-duplication.
func (X *Graph) AddEdge(a, b dotpath.Vertex) {
	ia := X.AddVertex(a)
	ib := X.AddVertex(b)
	X.adj[ia] = append(X.adj[ia], ib)
	X.adj[ib] = append(X.adj[ib], ia)
	X.edges = append(X.edges, dotpath.FormEdgeKey(a, b))
}

func (X *Graph) NumVertices() int {
	return len(X.vtx)
}

func (X *Graph) NumEdges() int {
	return len(X.edges)
}

// Edges returns the canonical key of each edge, in insertion order (parallel edges repeat).
func (X *Graph) Edges() []dotpath.EdgeKey {
	return X.edges
}

func (X *Graph) Vertex(id VtxID) dotpath.Vertex {
	return X.vtx[id]
}

// Lookup returns the VtxID of v and whether it is present.
func (X *Graph) Lookup(v dotpath.Vertex) (VtxID, bool) {
	id, exists := X.index[v]
	return id, exists
}

func (X *Graph) Degree(id VtxID) int {
	return len(X.adj[id])
}

// Neighbors returns the adjacency of the given vertex, in insertion order.
// The returned slice is owned by X and must not be modified.
func (X *Graph) Neighbors(id VtxID) []VtxID {
	return X.adj[id]
}

// Vertices returns the given ids as vertices.
func (X *Graph) Vertices(ids []VtxID) []dotpath.Vertex {
	V := make([]dotpath.Vertex, len(ids))
	for i, id := range ids {
		V[i] = X.vtx[id]
	}
	return V
}

// Parity partitions vertices into even and odd degree.
//
// The sum of degrees is always twice the edge count, so an odd number of odd vertices means the
// graph was corrupted and ErrOddParity is returned.
func (X *Graph) Parity() (Parity, error) {
	P := Parity{}
	for id := range X.adj {
		if len(X.adj[id])&1 == 0 {
			P.Even = append(P.Even, VtxID(id))
		} else {
			P.Odd = append(P.Odd, VtxID(id))
		}
	}
	if len(P.Odd)&1 != 0 {
		return P, dotpath.ErrOddParity
	}
	return P, nil
}

// StartVertex returns where a traversal starts: the first odd vertex if there are exactly two,
// otherwise the first inserted vertex.  Returns false for an empty graph.
func (X *Graph) StartVertex(P Parity) (VtxID, bool) {
	if len(X.vtx) == 0 {
		return 0, false
	}
	if len(P.Odd) == 2 {
		return P.Odd[0], true
	}
	return 0, true
}

func (X *Graph) cloneAdjacency() [][]VtxID {
	adj := make([][]VtxID, len(X.adj))
	for i, ai := range X.adj {
		adj[i] = append(make([]VtxID, 0, len(ai)), ai...)
	}
	return adj
}
