package easyeda

import (
	"fmt"
	"strings"
)

// rawRecord is a shape string after splitting.
type rawRecord struct {
	raw  string
	f    fields   // '~' fields of the first segment
	segs []string // '^^' segments (pins only)
}

// schema describes how one tag is decoded.
type schema struct {
	minFields int
	segmented bool // record is several '^^' joined segments
	payload   bool // everything after the tag is an opaque payload
	decode    func(r rawRecord) ([]Record, error)
}

var footprintSchemas = map[string]schema{
	"PAD":         {minFields: 12, decode: decodePad},
	"TRACK":       {minFields: 5, decode: decodeTrack},
	"ARC":         {minFields: 5, decode: decodeFootprintArc},
	"CIRCLE":      {minFields: 6, decode: decodeFootprintCircle},
	"RECT":        {minFields: 6, decode: decodeFootprintRect},
	"TEXT":        {minFields: 11, decode: decodeFootprintText},
	"HOLE":        {minFields: 4, decode: decodeHole},
	"VIA":         {minFields: 6, decode: decodeVia},
	"SOLIDREGION": {minFields: 4, decode: decodeSolidRegion},
	"SVGNODE":     {minFields: 2, payload: true, decode: decodeSVGNodeRecord},
}

var symbolSchemas = map[string]schema{
	"P":  {minFields: 7, segmented: true, decode: decodePin},
	"R":  {minFields: 7, decode: decodeSymbolRect},
	"PL": {minFields: 2, decode: decodePolyline(false)},
	"PG": {minFields: 2, decode: decodePolyline(true)},
	"A":  {minFields: 2, decode: decodeSymbolArc},
	"C":  {minFields: 4, decode: decodeSymbolCircle},
	"E":  {minFields: 5, decode: decodeSymbolEllipse},
	"PT": {minFields: 2, decode: decodeSymbolPath},
	"T":  {minFields: 13, decode: decodeSymbolText},
}

// Footprint decoders

func decodePad(r rawRecord) ([]Record, error) {
	f := r.f
	p := Pad{
		Kind:   "PAD",
		Shape:  strings.ToUpper(f.str(1)),
		Layer:  f.layer(6),
		Net:    f.str(7),
		Number: f.str(8),
		ID:     f.str(12),
		Plated: !strings.EqualFold(f.str(15), "N"),
	}
	if err := f.nums([]int{2, 3, 4, 5}, &p.Center.X, &p.Center.Y, &p.Width, &p.Height); err != nil {
		return nil, err
	}
	p.HoleRadius = f.opt(9)
	p.Rotation = f.opt(11)
	p.HoleLength = f.opt(13)
	if p.Shape == "POLYGON" {
		pts, err := parsePoints(f.str(10))
		if err != nil || len(pts) < 3 {
			return nil, fmt.Errorf("polygon pad %q: bad outline", p.Number)
		}
		p.Points = pts
	}
	return []Record{p}, nil
}

func decodeTrack(r rawRecord) ([]Record, error) {
	f := r.f
	t := Track{Layer: f.layer(2), Net: f.str(3), ID: f.str(5)}
	var err error
	if t.Width, err = f.num(1); err != nil {
		return nil, err
	}
	if t.Points, err = parsePoints(f.str(4)); err != nil {
		return nil, err
	}
	if len(t.Points) < 2 {
		return nil, fmt.Errorf("track with %d points", len(t.Points))
	}
	return []Record{t}, nil
}

func decodeFootprintArc(r rawRecord) ([]Record, error) {
	f := r.f
	width, err := f.num(1)
	if err != nil {
		return nil, err
	}
	arc, err := arcFromPath(f.str(4))
	if err != nil {
		return nil, err
	}
	arc.Width = width
	arc.Layer = f.layer(2)
	arc.ID = f.str(6)
	return []Record{arc}, nil
}

func decodeFootprintCircle(r rawRecord) ([]Record, error) {
	f := r.f
	c := Circle{Layer: f.layer(5), ID: f.str(6)}
	if err := f.nums([]int{1, 2, 3, 4}, &c.Center.X, &c.Center.Y, &c.Radius, &c.Width); err != nil {
		return nil, err
	}
	return []Record{c}, nil
}

func decodeFootprintRect(r rawRecord) ([]Record, error) {
	f := r.f
	rc := Rect{Layer: f.layer(5), ID: f.str(6), Stroke: f.opt(8)}
	if err := f.nums([]int{1, 2, 3, 4}, &rc.Origin.X, &rc.Origin.Y, &rc.Width, &rc.Height); err != nil {
		return nil, err
	}
	rc.Filled = rc.Stroke == 0
	return []Record{rc}, nil
}

func decodeFootprintText(r rawRecord) ([]Record, error) {
	f := r.f
	t := Text{
		Kind:     f.str(1),
		Width:    f.opt(4),
		Rotation: f.opt(5),
		Mirror:   f.str(6) == "1",
		Layer:    f.layer(7),
		FontSize: f.opt(9),
		Text:     f.str(10),
		Visible:  f.str(12) != "none",
		ID:       f.str(13),
	}
	if err := f.nums([]int{2, 3}, &t.Pos.X, &t.Pos.Y); err != nil {
		return nil, err
	}
	return []Record{t}, nil
}

func decodeHole(r rawRecord) ([]Record, error) {
	f := r.f
	p := Pad{Kind: "HOLE", Shape: "ELLIPSE", ID: f.str(4)}
	if err := f.nums([]int{1, 2, 3}, &p.Center.X, &p.Center.Y, &p.HoleRadius); err != nil {
		return nil, err
	}
	p.Width, p.Height = 2*p.HoleRadius, 2*p.HoleRadius
	return []Record{p}, nil
}

func decodeVia(r rawRecord) ([]Record, error) {
	f := r.f
	p := Pad{Kind: "VIA", Shape: "ELLIPSE", Net: f.str(4), Plated: true, Layer: 11, ID: f.str(6)}
	var d float64
	if err := f.nums([]int{1, 2, 3, 5}, &p.Center.X, &p.Center.Y, &d, &p.HoleRadius); err != nil {
		return nil, err
	}
	p.Width, p.Height = d, d
	return []Record{p}, nil
}

func decodeSolidRegion(r rawRecord) ([]Record, error) {
	f := r.f
	kind := strings.ToLower(f.str(4))
	if kind != "" && kind != "solid" {
		return nil, fmt.Errorf("region type %q", kind)
	}
	subpaths, err := ParseSegments(f.str(3))
	if err != nil {
		return nil, err
	}
	var out []Record
	for _, segs := range subpaths {
		pts, arcs := flatten(segs)
		if len(pts)+len(arcs) < 3 {
			continue
		}
		out = append(out, Polyline{Points: pts, Arcs: arcs, Layer: f.layer(1), Closed: true, Filled: true, ID: f.str(5)})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty region")
	}
	return out, nil
}

func decodeSVGNodeRecord(r rawRecord) ([]Record, error) {
	_, payload, _ := strings.Cut(r.raw, "~")
	return []Record{decodeSVGNode(payload)}, nil
}

// Symbol decoders

func decodePin(r rawRecord) ([]Record, error) {
	f := r.f
	p := Pin{
		Shape:         PinLine,
		Rotation:      f.opt(6),
		ID:            f.str(7),
		Number:        f.str(3),
		NameVisible:   true,
		NumberVisible: true,
	}
	p.Hidden = !isShown(f.str(1))
	p.Electric = int(f.opt(2))
	if err := f.nums([]int{4, 5}, &p.Pos.X, &p.Pos.Y); err != nil {
		return nil, err
	}

	seg := func(i int) fields {
		if i >= len(r.segs) {
			return nil
		}
		return splitFields(r.segs[i])
	}

	if path := seg(2); path != nil {
		if subpaths, err := ParseSegments(path.str(0)); err == nil && len(subpaths) > 0 {
			segs := subpaths[0]
			p.PathStart = segs[0].Start
			p.PathEnd = segs[len(segs)-1].End
			p.HasPath = p.PathStart != p.PathEnd
		}
	}
	if name := seg(3); name != nil {
		p.NameVisible = isShown(name.str(0))
		p.Name = name.str(4)
	}
	if num := seg(4); num != nil {
		p.NumberVisible = isShown(num.str(0))
		if n := num.str(4); n != "" {
			p.Number = n
		}
	}
	inverted := seg(5) != nil && isShown(seg(5).str(0))
	clock := seg(6) != nil && isShown(seg(6).str(0))
	switch {
	case inverted && clock:
		p.Shape = PinInvertedClock
	case inverted:
		p.Shape = PinInverted
	case clock:
		p.Shape = PinClock
	}
	if p.Number == "" {
		return nil, fmt.Errorf("pin without number")
	}
	return []Record{p}, nil
}

func decodeSymbolRect(r rawRecord) ([]Record, error) {
	f := r.f
	rc := Rect{Stroke: f.opt(8), Filled: isFilled(f.str(10)), ID: f.str(11)}
	if err := f.nums([]int{1, 2, 5, 6}, &rc.Origin.X, &rc.Origin.Y, &rc.Width, &rc.Height); err != nil {
		return nil, err
	}
	return []Record{rc}, nil
}

func decodePolyline(closed bool) func(r rawRecord) ([]Record, error) {
	return func(r rawRecord) ([]Record, error) {
		f := r.f
		pts, err := parsePoints(f.str(1))
		if err != nil {
			return nil, err
		}
		if len(pts) < 2 {
			return nil, fmt.Errorf("polyline with %d points", len(pts))
		}
		return []Record{Polyline{
			Points: pts,
			Width:  f.opt(3),
			Closed: closed,
			Filled: isFilled(f.str(5)),
			ID:     f.str(6),
		}}, nil
	}
}

func decodeSymbolArc(r rawRecord) ([]Record, error) {
	f := r.f
	arc, err := arcFromPath(f.str(1))
	if err != nil {
		return nil, err
	}
	arc.Width = f.opt(4)
	arc.Filled = isFilled(f.str(6))
	arc.ID = f.str(7)
	return []Record{arc}, nil
}

func decodeSymbolCircle(r rawRecord) ([]Record, error) {
	f := r.f
	c := Circle{Width: f.opt(5), Filled: isFilled(f.str(7)), ID: f.str(8)}
	if err := f.nums([]int{1, 2, 3}, &c.Center.X, &c.Center.Y, &c.Radius); err != nil {
		return nil, err
	}
	return []Record{c}, nil
}

func decodeSymbolEllipse(r rawRecord) ([]Record, error) {
	f := r.f
	e := Ellipse{Width: f.opt(6), Filled: isFilled(f.str(8)), ID: f.str(9)}
	if err := f.nums([]int{1, 2, 3, 4}, &e.Center.X, &e.Center.Y, &e.RX, &e.RY); err != nil {
		return nil, err
	}
	return []Record{e}, nil
}

// decodeSymbolPath splits a free path into polylines and arcs.
func decodeSymbolPath(r rawRecord) ([]Record, error) {
	f := r.f
	subpaths, err := ParseSegments(f.str(1))
	if err != nil {
		return nil, err
	}
	width := f.opt(3)
	filled := isFilled(f.str(5))
	id := f.str(6)

	var out []Record
	for _, segs := range subpaths {
		closed := segs[0].Start == segs[len(segs)-1].End
		var run []Point
		emitRun := func() {
			if len(run) >= 2 {
				out = append(out, Polyline{Points: run, Width: width, Closed: false, Filled: filled && closed, ID: id})
			}
			run = nil
		}
		for _, s := range segs {
			if s.Kind == SegmentArc {
				emitRun()
				if mid, ok := ArcMid(s); ok {
					out = append(out, Arc{Start: s.Start, Mid: mid, End: s.End, Width: width, ID: id})
				}
				continue
			}
			if len(run) == 0 {
				run = append(run, s.Start)
			}
			run = append(run, s.End)
		}
		emitRun()
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty path")
	}
	return out, nil
}

func decodeSymbolText(r rawRecord) ([]Record, error) {
	f := r.f
	size := strings.TrimSuffix(strings.ToLower(f.str(7)), "pt")
	t := Text{
		Kind:     f.str(1),
		Rotation: f.opt(4),
		FontSize: fields{size}.opt(0),
		Text:     f.str(12),
		Visible:  f.str(13) != "0",
		Anchor:   f.str(14),
		ID:       f.str(15),
	}
	if t.Text == "" {
		return nil, fmt.Errorf("empty text")
	}
	if err := f.nums([]int{2, 3}, &t.Pos.X, &t.Pos.Y); err != nil {
		return nil, err
	}
	return []Record{t}, nil
}

// Shared helpers

// arcFromPath extracts the first arc command of an SVG path.
func arcFromPath(path string) (Arc, error) {
	subpaths, err := ParseSegments(path)
	if err != nil {
		return Arc{}, err
	}
	for _, segs := range subpaths {
		for _, s := range segs {
			if s.Kind != SegmentArc {
				continue
			}
			mid, ok := ArcMid(s)
			if !ok {
				return Arc{}, fmt.Errorf("degenerate arc")
			}
			return Arc{Start: s.Start, Mid: mid, End: s.End}, nil
		}
	}
	return Arc{}, fmt.Errorf("path has no arc command")
}

// flatten turns a closed subpath into its vertices. Arc edges keep their
// mid point so they can be written as exact arcs.
func flatten(segs []Segment) ([]Point, []PolyArc) {
	if len(segs) == 0 {
		return nil, nil
	}
	pts := []Point{segs[0].Start}
	var arcs []PolyArc
	for _, s := range segs {
		pts = append(pts, s.End)
		if s.Kind == SegmentArc {
			if mid, ok := ArcMid(s); ok {
				arcs = append(arcs, PolyArc{End: len(pts) - 1, Mid: mid})
			}
		}
	}
	if last := len(pts) - 1; last > 0 && pts[0] == pts[last] {
		pts = pts[:last]
		for i := range arcs {
			if arcs[i].End == last {
				arcs[i].End = 0
			}
		}
	}
	return pts, arcs
}
