package libdot

import (
	"github.com/2x3systems/dotpath/dotpath"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// PathExpr is SVG-style path data, e.g. "M 0 0 L 10 0 10 10 Z"
type PathExpr struct {
	Cmds []*PathCmd `parser:"@@*"`
}

// PathCmd is a command letter followed by zero or more repetitions of its arguments.
type PathCmd struct {
	Op   string    `parser:"@Command"`
	Args []float64 `parser:"@Number*"`
}

var sPathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Command", Pattern: `[MmLlHhVvQqCcZz]`},
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Whitespace", Pattern: `[\s,]+`},
})

var sParsePathExpr = participle.MustBuild[PathExpr](
	participle.Lexer(sPathLexer),
	participle.Elide("Whitespace"),
)

// argCount is the number of arguments consumed by each repetition of a command.
func argCount(op byte) int {
	switch op | 0x20 {
	case 'm', 'l':
		return 2
	case 'h', 'v':
		return 1
	case 'q':
		return 4
	case 'c':
		return 6
	}
	return 0
}

// ParsePathData parses SVG-style path data into a path.
//
// Supported commands are M L H V Q C Z, in absolute (upper case) and relative (lower case) form.
// Arguments may repeat: extra coordinate pairs after a MoveTo are LineTos.
func ParsePathData(pathData string) (*path.Data, error) {
	expr, err := sParsePathExpr.ParseString("", pathData)
	if err != nil {
		return nil, errors.Wrapf(dotpath.ErrBadPathData, "%v", err)
	}

	pb := pathBuilder{
		p: &path.Data{},
	}
	for _, cmd := range expr.Cmds {
		if err := pb.apply(cmd); err != nil {
			return nil, err
		}
	}
	return pb.p, nil
}

type pathBuilder struct {
	p       *path.Data
	current vec.Vec2
	subpath vec.Vec2
	started bool
}

func (pb *pathBuilder) apply(cmd *PathCmd) error {
	op := cmd.Op[0]
	rel := op >= 'a'
	n := argCount(op)

	if n == 0 {
		if len(cmd.Args) != 0 {
			return errors.Wrapf(dotpath.ErrBadPathData, "%q takes no arguments", cmd.Op)
		}
		if pb.started {
			pb.p.Close()
			pb.current = pb.subpath
		}
		return nil
	}

	if len(cmd.Args) == 0 || len(cmd.Args)%n != 0 {
		return errors.Wrapf(dotpath.ErrBadPathData, "%q expects a multiple of %d arguments, got %d", cmd.Op, n, len(cmd.Args))
	}
	if !pb.started && op|0x20 != 'm' {
		return errors.Wrapf(dotpath.ErrBadPathData, "%q before first moveto", cmd.Op)
	}

	for i := 0; i < len(cmd.Args); i += n {
		args := cmd.Args[i : i+n]
		switch op | 0x20 {
		case 'm':
			pt := pb.point(args[0], args[1], rel)
			if i == 0 {
				pb.p.MoveTo(pt)
				pb.subpath = pt
				pb.started = true
			} else {
				pb.p.LineTo(pt)
			}
			pb.current = pt
		case 'l':
			pt := pb.point(args[0], args[1], rel)
			pb.p.LineTo(pt)
			pb.current = pt
		case 'h':
			pt := vec.Vec2{X: args[0], Y: pb.current.Y}
			if rel {
				pt.X += pb.current.X
			}
			pb.p.LineTo(pt)
			pb.current = pt
		case 'v':
			pt := vec.Vec2{X: pb.current.X, Y: args[0]}
			if rel {
				pt.Y += pb.current.Y
			}
			pb.p.LineTo(pt)
			pb.current = pt
		case 'q':
			c1 := pb.point(args[0], args[1], rel)
			pt := pb.point(args[2], args[3], rel)
			pb.p.QuadTo(c1, pt)
			pb.current = pt
		case 'c':
			c1 := pb.point(args[0], args[1], rel)
			c2 := pb.point(args[2], args[3], rel)
			pt := pb.point(args[4], args[5], rel)
			pb.p.CubeTo(c1, c2, pt)
			pb.current = pt
		}
	}
	return nil
}

func (pb *pathBuilder) point(x, y float64, rel bool) vec.Vec2 {
	pt := vec.Vec2{X: x, Y: y}
	if rel {
		pt = pt.Add(pb.current)
	}
	return pt
}
