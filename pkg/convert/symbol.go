package convert

import (
	"log/slog"
	"math"

	"github.com/OpenTraceLab/jlcimport/pkg/easyeda"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/symbol"
)

const (
	defaultPinLength = 2.54
	symbolTextSize   = 1.27
	ellipseSegments  = 36
)

// BuildSymbol groups normalised symbol records into a Symbol. Pins keep
// their source order, duplicate numbers included.
func BuildSymbol(records []easyeda.Record, opts Options) *symbol.Symbol {
	log := opts.logger()
	sym := &symbol.Symbol{}

	for _, r := range records {
		switch v := r.(type) {
		case easyeda.Pin:
			sym.Pins = append(sym.Pins, buildPin(log, v))
		case easyeda.Rect:
			sym.Rectangles = append(sym.Rectangles, symbol.Rectangle{
				Start: pos(v.Origin),
				// Symbol space is Y-up, so the rectangle extends downwards.
				End:   pos(easyeda.Point{X: v.Origin.X + v.Width, Y: v.Origin.Y - v.Height}),
				Width: round(v.Stroke),
				Fill:  fillType(v.Filled, symbol.FillBackground),
			})
		case easyeda.Polyline:
			pts := positions(v.Points)
			if v.Closed && len(pts) > 0 && pts[0] != pts[len(pts)-1] {
				pts = append(pts, pts[0])
			}
			sym.Polylines = append(sym.Polylines, symbol.Polyline{
				Points: pts,
				Width:  round(v.Width),
				Fill:   fillType(v.Filled, symbol.FillOutline),
			})
		case easyeda.Arc:
			sym.Arcs = append(sym.Arcs, symbol.Arc{
				Start: pos(v.Start),
				Mid:   pos(v.Mid),
				End:   pos(v.End),
				Width: round(v.Width),
				Fill:  fillType(v.Filled, symbol.FillOutline),
			})
		case easyeda.Circle:
			sym.Circles = append(sym.Circles, symbol.Circle{
				Center: pos(v.Center),
				Radius: round(v.Radius),
				Width:  round(v.Width),
				Fill:   fillType(v.Filled, symbol.FillOutline),
			})
		case easyeda.Ellipse:
			if math.Abs(v.RX-v.RY) < 1e-9 {
				sym.Circles = append(sym.Circles, symbol.Circle{
					Center: pos(v.Center),
					Radius: round(v.RX),
					Width:  round(v.Width),
					Fill:   fillType(v.Filled, symbol.FillOutline),
				})
				continue
			}
			sym.Polylines = append(sym.Polylines, symbol.Polyline{
				Points: ellipsePoints(v),
				Width:  round(v.Width),
				Fill:   fillType(v.Filled, symbol.FillOutline),
			})
		case easyeda.Text:
			sym.Texts = append(sym.Texts, symbol.Text{
				Text:     v.Text,
				Position: pos(v.Pos),
				Angle:    sexp.Angle(normalizeAngle(v.Rotation)),
				Size:     symbolTextSize,
				Hidden:   !v.Visible,
			})
		default:
			log.Debug("record not used by symbol", "tag", r.Tag())
		}
	}

	log.Debug("built symbol", "pins", len(sym.Pins), "rectangles", len(sym.Rectangles), "polylines", len(sym.Polylines))
	return sym
}

func fillType(filled bool, kind string) string {
	if filled {
		return kind
	}
	return symbol.FillNone
}

// buildPin orients a pin from its drawn stroke. The end nearer the
// connection point is the pin tip; the pin points from there towards the
// body.
func buildPin(log *slog.Logger, v easyeda.Pin) symbol.Pin {
	p := symbol.Pin{
		Number:     v.Number,
		Name:       v.Name,
		Type:       pinType(log, v.Electric, v.Number),
		Style:      v.Shape,
		Position:   pos(v.Pos),
		Length:     defaultPinLength,
		Angle:      sexp.Angle(normalizeAngle(v.Rotation + 180)),
		Hidden:     v.Hidden,
		NameHidden: !v.NameVisible,
		NumHidden:  !v.NumberVisible,
	}
	if !v.HasPath {
		p.Angle = sexp.Angle(snapAngle(float64(p.Angle)))
		return p
	}

	tip, body := v.PathStart, v.PathEnd
	if dist(v.Pos, body) < dist(v.Pos, tip) {
		tip, body = body, tip
	}
	dx, dy := body.X-tip.X, body.Y-tip.Y
	p.Position = pos(tip)
	p.Length = round(math.Hypot(dx, dy))
	p.Angle = sexp.Angle(snapAngle(math.Atan2(dy, dx) * 180 / math.Pi))
	return p
}

func dist(a, b easyeda.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// snapAngle rounds a direction to the nearest of 0, 90, 180 and 270.
func snapAngle(deg float64) float64 {
	return normalizeAngle(math.Round(normalizeAngle(deg)/90) * 90)
}

func ellipsePoints(e easyeda.Ellipse) []sexp.Position {
	pts := make([]sexp.Position, 0, ellipseSegments+1)
	for i := 0; i <= ellipseSegments; i++ {
		t := 2 * math.Pi * float64(i) / ellipseSegments
		pts = append(pts, pos(easyeda.Point{
			X: e.Center.X + e.RX*math.Cos(t),
			Y: e.Center.Y + e.RY*math.Sin(t),
		}))
	}
	return pts
}
