package footprint

import (
	"math"

	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp"
)

// GetBoundingBox calculates the bounding box of a footprint from its pads,
// tracks and graphics. Text is ignored.
func (fp *Footprint) GetBoundingBox() BoundingBox {
	bbox := sexp.NewBoundingBox()

	for _, pad := range fp.Pads {
		bbox.ExpandBox(pad.GetBoundingBox())
	}

	for _, track := range fp.Tracks {
		for _, p := range track.Points {
			bbox.Expand(p)
		}
	}

	for _, g := range fp.Graphics {
		switch g.Kind {
		case GraphicLine, GraphicRect:
			bbox.Expand(g.Start)
			bbox.Expand(g.End)
		case GraphicArc:
			// Start, mid and end are a close enough hull for placement.
			bbox.Expand(g.Start)
			bbox.Expand(g.Mid)
			bbox.Expand(g.End)
		case GraphicCircle:
			dx := g.End.X - g.Center.X
			dy := g.End.Y - g.Center.Y
			radius := math.Sqrt(dx*dx + dy*dy)
			bbox.Expand(Position{X: g.Center.X - radius, Y: g.Center.Y - radius})
			bbox.Expand(Position{X: g.Center.X + radius, Y: g.Center.Y + radius})
		case GraphicPoly:
			for _, p := range g.Points {
				bbox.Expand(p)
			}
			for _, a := range g.Arcs {
				bbox.Expand(a.Mid)
			}
		}
	}

	return bbox
}

// GetBoundingBox returns the pad extent, taking rotation into account.
func (p Pad) GetBoundingBox() BoundingBox {
	bbox := sexp.NewBoundingBox()

	if len(p.Outline) > 0 {
		for _, o := range p.Outline {
			bbox.Expand(p.TransformPosition(o))
		}
		return bbox
	}

	hw, hh := p.Size.Width/2, p.Size.Height/2
	for _, c := range []Position{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}} {
		bbox.Expand(p.TransformPosition(c))
	}
	return bbox
}

// TransformPosition maps a pad-relative position to footprint coordinates.
func (p Pad) TransformPosition(rel Position) Position {
	x, y := rel.X, rel.Y

	// KiCad angles turn counter-clockwise on screen, which is Y-down.
	if p.Position.Angle != 0 {
		angleRad := -float64(p.Position.Angle) * math.Pi / 180.0
		cos := math.Cos(angleRad)
		sin := math.Sin(angleRad)
		x, y = x*cos-y*sin, x*sin+y*cos
	}

	return Position{X: x + p.Position.X, Y: y + p.Position.Y}
}
