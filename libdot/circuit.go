package libdot

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Circuit runs Hierholzer's algorithm from start and returns the vertex visitation order.
//
// The walk consumes an owned copy of X's adjacency; X is not modified.  When a vertex has several
// unconsumed edges, the most recently inserted one is taken first (reverse insertion order).
//
// If X has an Eulerian circuit or path from start, consecutive vertices of the result are the
// edges of X, each exactly once.  Otherwise the result is a partial traversal: consecutive
// vertices need not be adjacent and edges may go unvisited.
func (X *Graph) Circuit(start VtxID) []VtxID {
	if len(X.vtx) == 0 {
		return nil
	}

	adj := X.cloneAdjacency()
	circuit := make([]VtxID, 0, len(X.edges)+1)

	stack := arraystack.New()
	stack.Push(start)

	for !stack.Empty() {
		top, _ := stack.Peek()
		vi := top.(VtxID)

		edges := adj[vi]
		if N := len(edges); N > 0 {
			vj := edges[N-1]
			adj[vi] = edges[:N-1]
			adj[vj] = removeLast(adj[vj], vi)
			stack.Push(vj)
		} else {
			stack.Pop()
			circuit = append(circuit, vi)
		}
	}

	for i, j := 0, len(circuit)-1; i < j; i, j = i+1, j-1 {
		circuit[i], circuit[j] = circuit[j], circuit[i]
	}
	return circuit
}

// removeLast removes the last occurrence of id, preserving the order of the remaining entries.
func removeLast(edges []VtxID, id VtxID) []VtxID {
	for i := len(edges) - 1; i >= 0; i-- {
		if edges[i] == id {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	panic("libdot: missing reciprocal adjacency entry")
}
