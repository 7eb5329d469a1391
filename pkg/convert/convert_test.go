package convert

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/jlcimport/pkg/coord"
	"github.com/OpenTraceLab/jlcimport/pkg/easyeda"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/footprint"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/sexp"
	"github.com/OpenTraceLab/jlcimport/pkg/kicad/symbol"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestBuildFootprintPads(t *testing.T) {
	records := []easyeda.Record{
		easyeda.Pad{Kind: "PAD", Shape: "RECT", Center: easyeda.Point{X: -1, Y: 0}, Width: 1, Height: 0.5, Layer: 1, Number: "1", Net: "GND", Plated: true},
		easyeda.Pad{Kind: "PAD", Shape: "ELLIPSE", Center: easyeda.Point{X: 1, Y: 0}, Width: 1.5, Height: 1.5, Layer: 11, Number: "2", HoleRadius: 0.4, Rotation: 90, Plated: true},
		easyeda.Pad{Kind: "PAD", Shape: "OVAL", Center: easyeda.Point{X: 3, Y: 0}, Width: 1, Height: 2, Layer: 11, Number: "2", HoleRadius: 0.25, HoleLength: 1.5, Plated: true},
		easyeda.Pad{Kind: "PAD", Shape: "ELLIPSE", Center: easyeda.Point{X: 5, Y: 0}, Width: 1.2, Height: 1.2, Layer: 11, Number: "4", HoleRadius: 0.6},
		easyeda.Pad{Kind: "HOLE", Shape: "ELLIPSE", Center: easyeda.Point{X: 7, Y: 0}, Width: 1, Height: 1, HoleRadius: 0.5},
		easyeda.Pad{Kind: "PAD", Shape: "POLYGON", Center: easyeda.Point{X: 0, Y: 2}, Width: 1, Height: 1, Layer: 2, Number: "6", Rotation: 45, Plated: true,
			Points: []easyeda.Point{{X: -0.5, Y: 1.5}, {X: 0.5, Y: 1.5}, {X: 0, Y: 2.5}}},
	}

	fp := BuildFootprint(records, Options{})
	require.Len(t, fp.Pads, 6)

	tests := []struct {
		name   string
		number string
		typ    string
		shape  string
		layers []string
		drill  *footprint.Drill
		angle  sexp.Angle
	}{
		{name: "smd rect", number: "1", typ: footprint.PadSMD, shape: footprint.ShapeRect, layers: []string{"F.Cu", "F.Paste", "F.Mask"}},
		{name: "tht round", number: "2", typ: footprint.PadTHT, shape: footprint.ShapeRound, layers: []string{"*.Cu", "*.Mask"}, drill: &footprint.Drill{Diameter: 0.8}, angle: 90},
		{name: "slot", number: "2", typ: footprint.PadTHT, shape: footprint.ShapeOval, layers: []string{"*.Cu", "*.Mask"}, drill: &footprint.Drill{Oval: true, Width: 0.5, Height: 1.5}},
		{name: "unplated", number: "4", typ: footprint.PadNPTH, shape: footprint.ShapeRound, layers: []string{"*.Cu", "*.Mask"}, drill: &footprint.Drill{Diameter: 1.2}},
		{name: "hole", number: "", typ: footprint.PadNPTH, shape: footprint.ShapeRound, layers: []string{"*.Cu", "*.Mask"}, drill: &footprint.Drill{Diameter: 1}},
		{name: "polygon", number: "6", typ: footprint.PadSMD, shape: footprint.ShapeCustom, layers: []string{"B.Cu", "B.Paste", "B.Mask"}},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fp.Pads[i]
			assert.Equal(t, tt.number, p.Number)
			assert.Equal(t, tt.typ, p.Type)
			assert.Equal(t, tt.shape, p.Shape)
			assert.Equal(t, tt.layers, p.Layers)
			assert.Equal(t, tt.drill, p.Drill)
			assert.Equal(t, tt.angle, p.Position.Angle)
		})
	}

	assert.Equal(t, "GND", fp.Pads[0].Net)
	assert.Empty(t, fp.Pads[1].Net)

	custom := fp.Pads[5]
	assert.Equal(t, sexp.Size{Width: 0.1, Height: 0.1}, custom.Size)
	assert.Equal(t, []sexp.Position{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: 0, Y: 0.5}}, custom.Outline)
	assert.Equal(t, footprint.AttrTHT, fp.Attr)
}

func TestBuildFootprintGraphics(t *testing.T) {
	log, buf := bufferLogger()
	records := []easyeda.Record{
		easyeda.Track{Width: 0.2, Layer: 3, Points: []easyeda.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}},
		easyeda.Track{Width: 0.2, Layer: 42, Points: []easyeda.Point{{X: 0, Y: 1}, {X: 1, Y: 1}}},
		easyeda.Arc{Width: 0.1, Layer: 13, Start: easyeda.Point{X: -1}, Mid: easyeda.Point{Y: -1}, End: easyeda.Point{X: 1}},
		easyeda.Circle{Center: easyeda.Point{X: 2, Y: 2}, Radius: 0.5, Width: 0.1, Layer: 3},
		easyeda.Rect{Origin: easyeda.Point{X: -1, Y: -1}, Width: 2, Height: 3, Stroke: 0.1, Layer: 3},
		easyeda.Polyline{Points: []easyeda.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, Layer: 1, Closed: true, Filled: true,
			Arcs: []easyeda.PolyArc{{End: 2, Mid: easyeda.Point{X: 1.2, Y: 0.5}}}},
		easyeda.Text{Kind: "N", Text: "U1", Layer: 3, Visible: true},
		easyeda.Text{Kind: "L", Text: "+", Layer: 3, Pos: easyeda.Point{X: 1, Y: 1}, Rotation: -90, FontSize: 1, Visible: true},
	}

	fp := BuildFootprint(records, Options{Logger: log})

	require.Len(t, fp.Tracks, 2)
	assert.Equal(t, "F.SilkS", fp.Tracks[0].Layer)
	assert.Equal(t, DefaultLayer, fp.Tracks[1].Layer)
	assert.Contains(t, buf.String(), "unknown layer")

	require.Len(t, fp.Graphics, 5)
	assert.Equal(t, footprint.GraphicArc, fp.Graphics[0].Kind)
	assert.Equal(t, "F.Fab", fp.Graphics[0].Layer)

	circle := fp.Graphics[1]
	assert.Equal(t, sexp.Position{X: 2.5, Y: 2}, circle.End)

	rect := fp.Graphics[2]
	assert.Equal(t, sexp.Position{X: -1, Y: -1}, rect.Start)
	assert.Equal(t, sexp.Position{X: 1, Y: 2}, rect.End)

	poly := fp.Graphics[3]
	assert.Equal(t, footprint.GraphicPoly, poly.Kind)
	assert.True(t, poly.Fill)
	assert.Equal(t, []footprint.PolyArc{{End: 2, Mid: sexp.Position{X: 1.2, Y: 0.5}}}, poly.Arcs)

	text := fp.Graphics[4]
	assert.Equal(t, "+", text.Text)
	assert.Equal(t, 270.0, text.Angle)
	assert.Equal(t, footprint.AttrSMD, fp.Attr)
}

func TestBuildFootprintModelRef(t *testing.T) {
	fp := BuildFootprint([]easyeda.Record{
		easyeda.SVGNode{UUID: "abc", Title: "SOT-23", Z: -1340, Rotation: [3]float64{0, 0, 90}, HasRotation: true},
	}, Options{})
	require.NotNil(t, fp.ModelRef)
	assert.Equal(t, "abc", fp.ModelRef.UUID)
	assert.Equal(t, -1340.0, fp.ModelRef.Z)
	require.NotNil(t, fp.ModelRef.Rotation)
	assert.Equal(t, 90.0, fp.ModelRef.Rotation.Z)

	fp = BuildFootprint(nil, Options{})
	assert.Nil(t, fp.ModelRef)
	assert.Empty(t, fp.Pads)
}

func TestBuildPinOrientation(t *testing.T) {
	tests := []struct {
		name   string
		pin    easyeda.Pin
		angle  sexp.Angle
		length float64
		at     sexp.Position
	}{
		{
			name:  "left side",
			pin:   easyeda.Pin{Number: "1", Pos: easyeda.Point{X: 0, Y: 0}, PathStart: easyeda.Point{X: 0, Y: 0}, PathEnd: easyeda.Point{X: 2.54, Y: 0}, HasPath: true},
			angle: 0, length: 2.54, at: sexp.Position{X: 0, Y: 0},
		},
		{
			name:  "right side",
			pin:   easyeda.Pin{Number: "2", Pos: easyeda.Point{X: 10, Y: 0}, PathStart: easyeda.Point{X: 10, Y: 0}, PathEnd: easyeda.Point{X: 7.46, Y: 0}, HasPath: true},
			angle: 180, length: 2.54, at: sexp.Position{X: 10, Y: 0},
		},
		{
			name:  "bottom",
			pin:   easyeda.Pin{Number: "3", Pos: easyeda.Point{X: 5, Y: -5}, PathStart: easyeda.Point{X: 5, Y: -5}, PathEnd: easyeda.Point{X: 5, Y: -2.46}, HasPath: true},
			angle: 90, length: 2.54, at: sexp.Position{X: 5, Y: -5},
		},
		{
			name:  "top, path drawn from the body",
			pin:   easyeda.Pin{Number: "4", Pos: easyeda.Point{X: 5, Y: 5}, PathStart: easyeda.Point{X: 5, Y: 0}, PathEnd: easyeda.Point{X: 5, Y: 5}, HasPath: true},
			angle: 270, length: 5, at: sexp.Position{X: 5, Y: 5},
		},
		{
			name:  "no path",
			pin:   easyeda.Pin{Number: "5", Pos: easyeda.Point{X: 1, Y: 1}},
			angle: 180, length: 2.54, at: sexp.Position{X: 1, Y: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym := BuildSymbol([]easyeda.Record{tt.pin}, Options{})
			require.Len(t, sym.Pins, 1)
			p := sym.Pins[0]
			assert.Equal(t, tt.angle, p.Angle)
			assert.InDelta(t, tt.length, p.Length, 1e-9)
			assert.Equal(t, tt.at, p.Position)
		})
	}
}

func TestPinTypes(t *testing.T) {
	log, buf := bufferLogger()
	tests := []struct {
		code int
		want string
	}{
		{0, symbol.PinUnspecified},
		{1, symbol.PinInput},
		{2, symbol.PinOutput},
		{3, symbol.PinBidirectional},
		{4, symbol.PinPowerIn},
		{9, symbol.PinUnspecified},
	}
	var records []easyeda.Record
	for _, tt := range tests {
		records = append(records, easyeda.Pin{Number: "1", Electric: tt.code})
	}

	sym := BuildSymbol(records, Options{Logger: log})
	require.Len(t, sym.Pins, len(tests))
	for i, tt := range tests {
		assert.Equal(t, tt.want, sym.Pins[i].Type, "code %d", tt.code)
	}
	assert.Contains(t, buf.String(), "unmapped pin type")
	assert.Contains(t, buf.String(), "code=9")
}

func TestBuildSymbolGraphics(t *testing.T) {
	records := []easyeda.Record{
		easyeda.Rect{Origin: easyeda.Point{X: -5, Y: 5}, Width: 10, Height: 8, Stroke: 0.254, Filled: true},
		easyeda.Polyline{Points: []easyeda.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, Closed: true, Filled: true},
		easyeda.Ellipse{Center: easyeda.Point{X: 0, Y: 0}, RX: 2, RY: 2},
		easyeda.Ellipse{Center: easyeda.Point{X: 0, Y: 0}, RX: 2, RY: 1},
		easyeda.Text{Text: "hello", Pos: easyeda.Point{X: 1, Y: 2}, FontSize: 7, Visible: true},
	}

	sym := BuildSymbol(records, Options{})

	require.Len(t, sym.Rectangles, 1)
	assert.Equal(t, sexp.Position{X: -5, Y: 5}, sym.Rectangles[0].Start)
	assert.Equal(t, sexp.Position{X: 5, Y: -3}, sym.Rectangles[0].End)
	assert.Equal(t, symbol.FillBackground, sym.Rectangles[0].Fill)

	require.Len(t, sym.Polylines, 2)
	closed := sym.Polylines[0]
	assert.Len(t, closed.Points, 4)
	assert.Equal(t, closed.Points[0], closed.Points[3])
	assert.Equal(t, symbol.FillOutline, closed.Fill)

	ellipse := sym.Polylines[1]
	assert.Len(t, ellipse.Points, ellipseSegments+1)
	assert.Equal(t, sexp.Position{X: 2, Y: 0}, ellipse.Points[0])

	require.Len(t, sym.Circles, 1)
	assert.Equal(t, 2.0, sym.Circles[0].Radius)

	require.Len(t, sym.Texts, 1)
	assert.Equal(t, symbolTextSize, sym.Texts[0].Size)
}

func TestParseNormalizeBuildSymbol(t *testing.T) {
	const pin = "P~show~0~1~390~300~180~gge20~0^^390~300^^M 390 300 h 10~#880000^^1~403~303~0~VCC~start~~~#0000FF^^1~395~299~0~1~end~~~#0000FF^^0~397~300^^0~M 400 297 L 403 300 L 400 303"
	res := easyeda.ParseSymbol([]string{pin, pin})
	require.Equal(t, 0, res.Dropped)

	n := coord.ForSymbol(400, 300)
	sym := BuildSymbol(n.Records(res.Records), Options{})

	require.Len(t, sym.Pins, 2)
	for _, p := range sym.Pins {
		assert.Equal(t, "1", p.Number)
		assert.Equal(t, "VCC", p.Name)
		assert.Equal(t, sexp.Angle(0), p.Angle)
		assert.InDelta(t, 2.54, p.Length, 1e-9)
		assert.InDelta(t, -2.54, p.Position.X, 1e-9)
		assert.InDelta(t, 0, p.Position.Y, 1e-9)
	}
}
