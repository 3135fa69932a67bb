package libdot

import (
	"math"

	"github.com/2x3systems/dotpath/dotpath"
	"seehuhn.de/go/geom/vec"
)

// Canon maps document-space points onto the vertex grid.
//
// Coordinates are divided by the tolerance and rounded to the nearest integer, ties to even.
// Two distinct points closer than half a tolerance unit can therefore collapse into one vertex.
type Canon struct {
	tolerance float64
}

// NewCanon returns a Canon for the given grid size (in document units).
func NewCanon(tolerance float64) (Canon, error) {
	if !(tolerance > 0) || math.IsInf(tolerance, 0) {
		return Canon{}, dotpath.ErrBadTolerance
	}
	return Canon{tolerance: tolerance}, nil
}

func (c Canon) Tolerance() float64 {
	return c.tolerance
}

// Vertex returns the canonical vertex for pt.
func (c Canon) Vertex(pt vec.Vec2) dotpath.Vertex {
	return dotpath.Vertex{
		X: int64(math.RoundToEven(pt.X / c.tolerance)),
		Y: int64(math.RoundToEven(pt.Y / c.tolerance)),
	}
}

// Point returns the document-space location of v.
func (c Canon) Point(v dotpath.Vertex) vec.Vec2 {
	return vec.Vec2{
		X: float64(v.X) * c.tolerance,
		Y: float64(v.Y) * c.tolerance,
	}
}

// Tuple renders v in document units, e.g. "(10, 0)".
func (c Canon) Tuple(v dotpath.Vertex) string {
	pt := c.Point(v)
	return dotpath.FormatTuple(pt.X, pt.Y)
}

// EdgeKey returns the canonical key of the segment from -> to.
func (c Canon) EdgeKey(from, to vec.Vec2) dotpath.EdgeKey {
	return dotpath.FormEdgeKey(c.Vertex(from), c.Vertex(to))
}

// maxGridCoord bounds grid coordinates to integers a float64 holds exactly.
const maxGridCoord = 1 << 53

// InRange returns true if pt is finite and lands within the representable vertex grid.
func (c Canon) InRange(pt vec.Vec2) bool {
	return inGrid(pt.X/c.tolerance) && inGrid(pt.Y/c.tolerance)
}

// inGrid is false for NaN and infinities.
func inGrid(v float64) bool {
	return math.Abs(v) <= maxGridCoord
}
