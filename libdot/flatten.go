package libdot

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// FlattenPath reduces p to polyline runs, one per subpath.
//
// Quadratic and cubic Béziers are replaced by line segments deviating from the curve by at most
// flatness.  Close appends the subpath start if the current point differs from it.  Drawing
// commands before the first MoveTo are ignored.
func FlattenPath(p *path.Data, flatness float64) [][]vec.Vec2 {
	var (
		runs    [][]vec.Vec2
		run     []vec.Vec2
		current vec.Vec2
		subpath vec.Vec2
		started bool
	)

	flush := func() {
		if len(run) > 0 {
			runs = append(runs, run)
		}
		run = nil
	}
	emit := func(from, to vec.Vec2) {
		if len(run) == 0 {
			run = append(run, from)
		}
		run = append(run, to)
	}

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			flush()
			current = p.Coords[coordIdx]
			subpath = current
			run = append(run, current)
			started = true
			coordIdx++

		case path.CmdLineTo:
			if started {
				emit(current, p.Coords[coordIdx])
				current = p.Coords[coordIdx]
			}
			coordIdx++

		case path.CmdQuadTo:
			if started {
				flattenQuadratic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], flatness, emit)
				current = p.Coords[coordIdx+1]
			}
			coordIdx += 2

		case path.CmdCubeTo:
			if started {
				flattenCubic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2], flatness, emit)
				current = p.Coords[coordIdx+2]
			}
			coordIdx += 3

		case path.CmdClose:
			if started {
				if current != subpath {
					emit(current, subpath)
				}
				current = subpath
				flush()
			}
		}
	}
	flush()

	return runs
}

// flattenQuadratic emits n segments where n is chosen from the curve's deviation e = (P0 - 2*P1 + P2) / 4.
func flattenQuadratic(p0, p1, p2 vec.Vec2, flatness float64, emit func(from, to vec.Vec2)) {
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := 1
	if err := e.Length(); err > flatness {
		n = int(math.Ceil(math.Sqrt(err / flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		if i == n {
			pt = p2
		}
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic chooses n by Wang's formula: n = ceil(sqrt(3 * m / (4 * flatness))).
func flattenCubic(p0, p1, p2, p3 vec.Vec2, flatness float64, emit func(from, to vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		if i == n {
			pt = p3
		}
		emit(prev, pt)
		prev = pt
	}
}
