package libdot

import (
	"github.com/2x3systems/dotpath/dotpath"
)

// PairOddVertices greedily pairs odd-degree vertices by nearest distance.
//
// The last vertex of the working list is paired with the nearest remaining vertex
// (ties go to the earliest in odd) and both are removed, until fewer than two remain.
// A single leftover vertex yields ErrUnpairedVertex along with the pairs made so far.
//
// The pairs are advisory: they describe where revisits would be needed and are never added to a graph.
func PairOddVertices(odd []dotpath.Vertex) ([]dotpath.Pair, error) {
	work := append(make([]dotpath.Vertex, 0, len(odd)), odd...)
	pairs := make([]dotpath.Pair, 0, len(odd)/2)

	for len(work) > 1 {
		N := len(work) - 1
		vi := work[N]
		work = work[:N]

		nearest := 0
		best := vi.Distance(work[0])
		for j := 1; j < N; j++ {
			if d := vi.Distance(work[j]); d < best {
				nearest, best = j, d
			}
		}

		pairs = append(pairs, dotpath.Pair{A: vi, B: work[nearest]})
		work = append(work[:nearest], work[nearest+1:]...)
	}

	if len(work) != 0 {
		return pairs, dotpath.ErrUnpairedVertex
	}
	return pairs, nil
}
