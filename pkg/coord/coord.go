// Package coord rebases EasyEDA coordinates into KiCad millimetre space.
package coord

import (
	"github.com/OpenTraceLab/jlcimport/pkg/easyeda"
)

// VendorUnitMM is the size of one EasyEDA unit (10 mil) in millimetres.
const VendorUnitMM = 0.254

// Normalizer is the affine map x' = (x-ox)*k, y' = ±(y-oy)*k.
// FlipY selects the negative sign. Symbols use it because schematic symbol
// space is Y-up; footprints keep it off because board space is Y-down like
// the vendor canvas.
type Normalizer struct {
	Origin easyeda.Point
	Scale  float64
	FlipY  bool
}

// ForFootprint returns the normaliser used for footprint documents.
func ForFootprint(originX, originY float64) Normalizer {
	return Normalizer{Origin: easyeda.Point{X: originX, Y: originY}, Scale: VendorUnitMM}
}

// ForSymbol returns the normaliser used for symbol documents.
func ForSymbol(originX, originY float64) Normalizer {
	return Normalizer{Origin: easyeda.Point{X: originX, Y: originY}, Scale: VendorUnitMM, FlipY: true}
}

func (n Normalizer) ySign() float64 {
	if n.FlipY {
		return -1
	}
	return 1
}

// Point maps a vendor point into target space.
func (n Normalizer) Point(p easyeda.Point) easyeda.Point {
	return easyeda.Point{
		X: (p.X - n.Origin.X) * n.Scale,
		Y: n.ySign() * (p.Y - n.Origin.Y) * n.Scale,
	}
}

// Inverse maps a target-space point back into vendor space.
func (n Normalizer) Inverse(p easyeda.Point) easyeda.Point {
	return easyeda.Point{
		X: p.X/n.Scale + n.Origin.X,
		Y: n.ySign()*p.Y/n.Scale + n.Origin.Y,
	}
}

// Length scales a distance (width, radius, size).
func (n Normalizer) Length(v float64) float64 {
	return v * n.Scale
}

func (n Normalizer) points(pts []easyeda.Point) []easyeda.Point {
	if pts == nil {
		return nil
	}
	out := make([]easyeda.Point, len(pts))
	for i, p := range pts {
		out[i] = n.Point(p)
	}
	return out
}

// Record returns a copy of r with every point and length mapped. Rotation
// angles are left untouched. The model reference keeps its declared z.
func (n Normalizer) Record(r easyeda.Record) easyeda.Record {
	switch v := r.(type) {
	case easyeda.Pad:
		v.Center = n.Point(v.Center)
		v.Width = n.Length(v.Width)
		v.Height = n.Length(v.Height)
		v.HoleRadius = n.Length(v.HoleRadius)
		v.HoleLength = n.Length(v.HoleLength)
		v.Points = n.points(v.Points)
		return v
	case easyeda.Track:
		v.Width = n.Length(v.Width)
		v.Points = n.points(v.Points)
		return v
	case easyeda.Arc:
		v.Width = n.Length(v.Width)
		v.Start = n.Point(v.Start)
		v.Mid = n.Point(v.Mid)
		v.End = n.Point(v.End)
		return v
	case easyeda.Circle:
		v.Center = n.Point(v.Center)
		v.Radius = n.Length(v.Radius)
		v.Width = n.Length(v.Width)
		return v
	case easyeda.Rect:
		v.Origin = n.Point(v.Origin)
		v.Width = n.Length(v.Width)
		v.Height = n.Length(v.Height)
		v.Stroke = n.Length(v.Stroke)
		return v
	case easyeda.Ellipse:
		v.Center = n.Point(v.Center)
		v.RX = n.Length(v.RX)
		v.RY = n.Length(v.RY)
		v.Width = n.Length(v.Width)
		return v
	case easyeda.Text:
		v.Pos = n.Point(v.Pos)
		v.Width = n.Length(v.Width)
		v.FontSize = n.Length(v.FontSize)
		return v
	case easyeda.Polyline:
		v.Width = n.Length(v.Width)
		v.Points = n.points(v.Points)
		if len(v.Arcs) > 0 {
			arcs := make([]easyeda.PolyArc, len(v.Arcs))
			for i, a := range v.Arcs {
				arcs[i] = easyeda.PolyArc{End: a.End, Mid: n.Point(a.Mid)}
			}
			v.Arcs = arcs
		}
		return v
	case easyeda.SVGNode:
		v.Origin = n.Point(v.Origin)
		return v
	case easyeda.Pin:
		v.Pos = n.Point(v.Pos)
		v.PathStart = n.Point(v.PathStart)
		v.PathEnd = n.Point(v.PathEnd)
		return v
	default:
		return r
	}
}

// Records maps a whole record list, preserving order.
func (n Normalizer) Records(recs []easyeda.Record) []easyeda.Record {
	out := make([]easyeda.Record, len(recs))
	for i, r := range recs {
		out[i] = n.Record(r)
	}
	return out
}
