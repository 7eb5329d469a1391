package easyeda

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// pathLexer tokenises the SVG path mini-language used by ARC, A, PT,
// SOLIDREGION and pin records.
var pathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Cmd", Pattern: `[MmLlHhVvAaZzCcQqSsTt]`},
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Whitespace", Pattern: `[\s,]+`},
})

type pathAST struct {
	Commands []*pathCommandAST `parser:"@@*"`
}

type pathCommandAST struct {
	Op   string    `parser:"@Cmd"`
	Args []float64 `parser:"@Number*"`
}

var pathParser = participle.MustBuild[pathAST](
	participle.Lexer(pathLexer),
	participle.Elide("Whitespace"),
)

// PathCommand is one SVG path command with its raw arguments.
type PathCommand struct {
	Op   byte
	Args []float64
}

// ParsePath parses an SVG path string into commands.
func ParsePath(s string) ([]PathCommand, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty path")
	}
	ast, err := pathParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("parse path: %w", err)
	}
	cmds := make([]PathCommand, 0, len(ast.Commands))
	for _, c := range ast.Commands {
		cmds = append(cmds, PathCommand{Op: c.Op[0], Args: c.Args})
	}
	return cmds, nil
}

// SegmentKind distinguishes straight and elliptical-arc segments.
type SegmentKind int

const (
	SegmentLine SegmentKind = iota
	SegmentArc
)

// Segment is one absolute drawing step of a path.
type Segment struct {
	Kind  SegmentKind
	Start Point
	End   Point

	// Arc parameters (SegmentArc only)
	RX, RY   float64
	XAxisRot float64
	Large    bool
	Sweep    bool
}

// argCount is the number of arguments consumed per repetition of a command.
var argCount = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'A': 7, 'Z': 0,
	'C': 6, 'Q': 4, 'S': 4, 'T': 2,
}

// Segments resolves relative commands and implicit repetitions into absolute
// segments. Bezier commands are reduced to a straight line to their end point.
// Each returned slice is one subpath.
func Segments(cmds []PathCommand) ([][]Segment, error) {
	var (
		paths    [][]Segment
		cur      []Segment
		pos      Point
		subStart Point
	)
	flush := func() {
		if len(cur) > 0 {
			paths = append(paths, cur)
			cur = nil
		}
	}
	line := func(to Point) {
		cur = append(cur, Segment{Kind: SegmentLine, Start: pos, End: to})
		pos = to
	}

	for _, c := range cmds {
		op := c.Op
		rel := op >= 'a' && op <= 'z'
		upper := op &^ 0x20
		n, ok := argCount[upper]
		if !ok {
			return nil, fmt.Errorf("unsupported path command %q", op)
		}
		if upper == 'Z' {
			if pos != subStart {
				line(subStart)
			}
			pos = subStart
			continue
		}
		if len(c.Args) == 0 || len(c.Args)%n != 0 {
			return nil, fmt.Errorf("command %q: %d arguments", op, len(c.Args))
		}

		for i := 0; i < len(c.Args); i += n {
			a := c.Args[i : i+n]
			base := Point{}
			if rel {
				base = pos
			}
			switch upper {
			case 'M':
				to := Point{X: base.X + a[0], Y: base.Y + a[1]}
				if i == 0 {
					flush()
					pos, subStart = to, to
				} else {
					line(to)
				}
			case 'L', 'T':
				line(Point{X: base.X + a[0], Y: base.Y + a[1]})
			case 'H':
				x := a[0]
				if rel {
					x += pos.X
				}
				line(Point{X: x, Y: pos.Y})
			case 'V':
				y := a[0]
				if rel {
					y += pos.Y
				}
				line(Point{X: pos.X, Y: y})
			case 'C', 'Q', 'S':
				line(Point{X: base.X + a[n-2], Y: base.Y + a[n-1]})
			case 'A':
				to := Point{X: base.X + a[5], Y: base.Y + a[6]}
				cur = append(cur, Segment{
					Kind:     SegmentArc,
					Start:    pos,
					End:      to,
					RX:       a[0],
					RY:       a[1],
					XAxisRot: a[2],
					Large:    a[3] != 0,
					Sweep:    a[4] != 0,
				})
				pos = to
			}
		}
	}
	flush()
	return paths, nil
}

// ParseSegments is ParsePath followed by Segments.
func ParseSegments(s string) ([][]Segment, error) {
	cmds, err := ParsePath(s)
	if err != nil {
		return nil, err
	}
	return Segments(cmds)
}
