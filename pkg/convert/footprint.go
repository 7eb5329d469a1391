package convert

import (
	"math"

	"github.com/OpenTraceLab/jlcimport/pkg/easyeda"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/footprint"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp"
	"github.com/OpenTraceLab/jlcimport/pkg/model3d"
)

// customAnchor is the size of the anchor circle under a custom pad outline.
const customAnchor = 0.1

// BuildFootprint groups normalised footprint records into a Footprint.
// Pads keep their source order, duplicate numbers included.
func BuildFootprint(records []easyeda.Record, opts Options) *footprint.Footprint {
	log := opts.logger()
	fp := &footprint.Footprint{}

	for _, r := range records {
		switch v := r.(type) {
		case easyeda.Pad:
			fp.Pads = append(fp.Pads, buildPad(v))
		case easyeda.Track:
			fp.Tracks = append(fp.Tracks, footprint.Track{
				Layer:  graphicLayer(log, v.Layer),
				Width:  round(v.Width),
				Points: positions(v.Points),
			})
		case easyeda.Arc:
			fp.Graphics = append(fp.Graphics, footprint.Graphic{
				Kind:  footprint.GraphicArc,
				Layer: graphicLayer(log, v.Layer),
				Start: pos(v.Start),
				Mid:   pos(v.Mid),
				End:   pos(v.End),
				Width: round(v.Width),
			})
		case easyeda.Circle:
			c := pos(v.Center)
			fp.Graphics = append(fp.Graphics, footprint.Graphic{
				Kind:   footprint.GraphicCircle,
				Layer:  graphicLayer(log, v.Layer),
				Center: c,
				End:    sexp.Position{X: round(c.X + v.Radius), Y: c.Y},
				Width:  round(v.Width),
				Fill:   v.Filled,
			})
		case easyeda.Rect:
			fp.Graphics = append(fp.Graphics, footprint.Graphic{
				Kind:  footprint.GraphicRect,
				Layer: graphicLayer(log, v.Layer),
				Start: pos(v.Origin),
				End:   pos(easyeda.Point{X: v.Origin.X + v.Width, Y: v.Origin.Y + v.Height}),
				Width: round(v.Stroke),
				Fill:  v.Filled,
			})
		case easyeda.Polyline:
			if !v.Closed {
				fp.Tracks = append(fp.Tracks, footprint.Track{
					Layer:  graphicLayer(log, v.Layer),
					Width:  round(v.Width),
					Points: positions(v.Points),
				})
				continue
			}
			fp.Graphics = append(fp.Graphics, footprint.Graphic{
				Kind:   footprint.GraphicPoly,
				Layer:  graphicLayer(log, v.Layer),
				Points: positions(v.Points),
				Arcs:   polyArcs(v.Arcs),
				Width:  round(v.Width),
				Fill:   v.Filled,
			})
		case easyeda.Text:
			// Name and prefix texts become the Value and Reference properties.
			if v.Kind == "N" || v.Kind == "P" {
				continue
			}
			fp.Graphics = append(fp.Graphics, footprint.Graphic{
				Kind:     footprint.GraphicText,
				Layer:    graphicLayer(log, v.Layer),
				Start:    pos(v.Pos),
				Text:     v.Text,
				Angle:    normalizeAngle(v.Rotation),
				FontSize: round(v.FontSize),
				Mirror:   v.Mirror,
				Hidden:   !v.Visible,
			})
		case easyeda.SVGNode:
			fp.ModelRef = modelRef(v)
		default:
			log.Debug("record not used by footprint", "tag", r.Tag())
		}
	}

	fp.Attr = footprint.AttrSMD
	if fp.IsThroughHole() {
		fp.Attr = footprint.AttrTHT
	}
	log.Debug("built footprint", "pads", len(fp.Pads), "tracks", len(fp.Tracks), "graphics", len(fp.Graphics), "model", fp.ModelRef != nil)
	return fp
}

func buildPad(v easyeda.Pad) footprint.Pad {
	p := footprint.Pad{
		Number: v.Number,
		Net:    v.Net,
		Shape:  padShape(v),
		Position: sexp.PositionAngle{
			Position: pos(v.Center),
			Angle:    sexp.Angle(normalizeAngle(v.Rotation)),
		},
		Size: sexp.Size{Width: round(v.Width), Height: round(v.Height)},
	}

	drilled := v.HoleRadius > 0
	switch {
	case v.Kind == "HOLE" || (drilled && !v.Plated):
		p.Type = footprint.PadNPTH
	case drilled:
		p.Type = footprint.PadTHT
	default:
		p.Type = footprint.PadSMD
	}
	if drilled {
		p.Drill = padDrill(v)
	}
	layer := v.Layer
	if !drilled && layer == layerMulti {
		layer = layerTopCopper
	}
	p.Layers = padLayers(layer, drilled)

	if p.Shape == footprint.ShapeCustom {
		// The outline is already in footprint space, so the pad is not
		// rotated again.
		p.Position.Angle = 0
		p.Size = sexp.Size{Width: customAnchor, Height: customAnchor}
		p.Outline = make([]sexp.Position, len(v.Points))
		for i, pt := range v.Points {
			p.Outline[i] = sexp.Position{X: round(pt.X - v.Center.X), Y: round(pt.Y - v.Center.Y)}
		}
	}
	return p
}

func polyArcs(arcs []easyeda.PolyArc) []footprint.PolyArc {
	if len(arcs) == 0 {
		return nil
	}
	out := make([]footprint.PolyArc, len(arcs))
	for i, a := range arcs {
		out[i] = footprint.PolyArc{End: a.End, Mid: pos(a.Mid)}
	}
	return out
}

func padShape(v easyeda.Pad) string {
	switch v.Shape {
	case "RECT":
		return footprint.ShapeRect
	case "OVAL":
		return footprint.ShapeOval
	case "POLYGON":
		if len(v.Points) >= 3 {
			return footprint.ShapeCustom
		}
		return footprint.ShapeRect
	default:
		if math.Abs(v.Width-v.Height) < 1e-9 {
			return footprint.ShapeRound
		}
		return footprint.ShapeOval
	}
}

// padDrill returns a round drill, or a slot along the pad's long axis when
// the source gives a hole length.
func padDrill(v easyeda.Pad) *footprint.Drill {
	d := round(2 * v.HoleRadius)
	if v.HoleLength <= 0 || math.Abs(v.HoleLength-d) < 1e-9 {
		return &footprint.Drill{Diameter: d}
	}
	slot := round(v.HoleLength)
	if v.Width >= v.Height {
		return &footprint.Drill{Oval: true, Width: slot, Height: d}
	}
	return &footprint.Drill{Oval: true, Width: d, Height: slot}
}

func modelRef(v easyeda.SVGNode) *model3d.Ref {
	ref := &model3d.Ref{
		UUID:    v.UUID,
		Title:   v.Title,
		OriginX: v.Origin.X,
		OriginY: v.Origin.Y,
		Z:       v.Z,
	}
	if v.HasRotation {
		ref.Rotation = &model3d.Vec3{X: v.Rotation[0], Y: v.Rotation[1], Z: v.Rotation[2]}
	}
	return ref
}
