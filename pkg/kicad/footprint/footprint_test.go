package footprint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/jlcimport/pkg/kicad/version"
	"github.com/OpenTraceLab/jlcimport/pkg/model3d"
)

func testFootprint() *Footprint {
	return &Footprint{
		Pads: []Pad{
			{Number: "1", Type: PadSMD, Shape: ShapeRect, Position: PositionAngle{Position: Position{X: -0.95, Y: 1.1}}, Size: Size{Width: 0.6, Height: 0.7}, Layers: []string{"F.Cu", "F.Paste", "F.Mask"}, Net: "GND"},
			{Number: "2", Type: PadTHT, Shape: ShapeOval, Position: PositionAngle{Position: Position{X: 0.95, Y: 1.1}, Angle: 90}, Size: Size{Width: 1, Height: 2}, Drill: &Drill{Oval: true, Width: 0.4, Height: 1.2}, Layers: []string{"*.Cu", "*.Mask"}, Net: "VCC"},
			{Number: "2", Type: PadTHT, Shape: ShapeRound, Position: PositionAngle{Position: Position{X: 0, Y: -1.1}}, Size: Size{Width: 1.2, Height: 1.2}, Drill: &Drill{Diameter: 0.8}, Layers: []string{"*.Cu", "*.Mask"}, Net: "GND"},
			{Number: "4", Type: PadSMD, Shape: ShapeCustom, Position: PositionAngle{Position: Position{X: 2, Y: 0}}, Size: Size{Width: 0.1, Height: 0.1}, Layers: []string{"F.Cu", "F.Paste", "F.Mask"}, Outline: []Position{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: 0, Y: 0.5}}},
		},
		Tracks: []Track{
			{Layer: "F.SilkS", Width: 0.15, Points: []Position{{X: -1.5, Y: -0.7}, {X: 1.5, Y: -0.7}, {X: 1.5, Y: 0.7}}},
		},
		Graphics: []Graphic{
			{Kind: GraphicArc, Layer: "F.SilkS", Start: Position{X: -1, Y: 0}, Mid: Position{X: 0, Y: -1}, End: Position{X: 1, Y: 0}, Width: 0.12},
			{Kind: GraphicCircle, Layer: "F.Fab", Center: Position{X: 0, Y: 0}, End: Position{X: 0.2, Y: 0}, Width: 0.1},
			{
				Kind:   GraphicPoly,
				Layer:  "F.Cu",
				Fill:   true,
				Points: []Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
				Arcs:   []PolyArc{{End: 2, Mid: Position{X: 1.5, Y: 0.5}}, {End: 0, Mid: Position{X: -0.5, Y: 0.5}}},
			},
		},
		ModelRef: &model3d.Ref{UUID: "abc", Z: -1340},
	}
}

func TestWriteHeaderByVersion(t *testing.T) {
	tests := []struct {
		major            int
		wantVersion      string
		generatorVersion bool
		uuids            bool
	}{
		{major: 8, wantVersion: "(version 20240108)", generatorVersion: false, uuids: false},
		{major: 9, wantVersion: "(version 20241229)", generatorVersion: true, uuids: true},
	}

	for _, tt := range tests {
		t.Run(version.Format{Major: tt.major}.String(), func(t *testing.T) {
			format, err := version.Lookup(tt.major)
			require.NoError(t, err)
			out := Write(testFootprint(), "SOT-23", Options{Format: format})

			assert.True(t, strings.HasPrefix(out, `(footprint "SOT-23"`))
			assert.Contains(t, out, tt.wantVersion)
			assert.Contains(t, out, `(generator "JLCImport")`)
			assert.Equal(t, tt.generatorVersion, strings.Contains(out, "generator_version"))
			assert.Equal(t, tt.uuids, strings.Contains(out, "(uuid "))
			assert.Equal(t, tt.uuids, strings.Contains(out, "(embedded_fonts no)"))
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	src := testFootprint().With(
		Metadata{Description: "SOT-23 transistor", Keywords: "C123 SOT-23", Datasheet: "https://example.com/ds.pdf", LCSC: "C123"},
		&Model{Path: "3dmodels/SOT-23.wrl", Transform: model3d.Transform{Offset: model3d.Vec3{Z: 2.9875}, Rotation: model3d.Vec3{Z: 90}}},
	)
	out := Write(src, "SOT-23", Options{Format: version.Default()})

	got, err := ReadString(out)
	require.NoError(t, err)

	assert.Equal(t, "SOT-23", got.Name)
	assert.Equal(t, 20241229, got.Version)
	assert.Equal(t, AttrTHT, got.Attr)
	assert.Equal(t, src.Meta, got.Meta)

	require.Len(t, got.Pads, 4)
	for i, p := range src.Pads {
		assert.Equal(t, p.Number, got.Pads[i].Number, "pad %d", i)
		assert.Equal(t, p.Type, got.Pads[i].Type)
		assert.Equal(t, p.Shape, got.Pads[i].Shape)
		assert.Equal(t, p.Layers, got.Pads[i].Layers)
		assert.Equal(t, p.Position, got.Pads[i].Position)
		assert.Equal(t, p.Net, got.Pads[i].Net)
	}
	assert.Equal(t, &Drill{Oval: true, Width: 0.4, Height: 1.2}, got.Pads[1].Drill)
	assert.Equal(t, 0.8, got.Pads[2].Drill.Diameter)
	assert.Equal(t, src.Pads[3].Outline, got.Pads[3].Outline)

	ref, ok := got.Property("Reference")
	require.True(t, ok)
	assert.Equal(t, "REF**", ref)
	val, _ := got.Property("Value")
	assert.Equal(t, "SOT-23", val)

	require.NotNil(t, got.Model)
	assert.Equal(t, "3dmodels/SOT-23.wrl", got.Model.Path)
	assert.InDelta(t, 2.9875, got.Model.Transform.Offset.Z, 1e-9)
	assert.Equal(t, model3d.Vec3{Z: 90}, got.Model.Transform.Rotation)
	assert.Equal(t, model3d.Vec3{X: 1, Y: 1, Z: 1}, got.Model.Scale)

	kinds := map[string]int{}
	for _, g := range got.Graphics {
		kinds[g.Kind+"/"+g.Layer]++
	}
	// two track segments plus the arc
	assert.Equal(t, 2, kinds[GraphicLine+"/F.SilkS"])
	assert.Equal(t, 1, kinds[GraphicArc+"/F.SilkS"])
	assert.Equal(t, 1, kinds[GraphicCircle+"/F.Fab"])
	assert.Equal(t, 1, kinds[GraphicRect+"/F.CrtYd"])
	assert.Equal(t, 1, kinds[GraphicText+"/F.Fab"])

	var poly *Graphic
	for i := range got.Graphics {
		if got.Graphics[i].Kind == GraphicPoly {
			poly = &got.Graphics[i]
		}
	}
	require.NotNil(t, poly)
	assert.Equal(t, src.Graphics[2].Points, poly.Points)
	assert.Equal(t, src.Graphics[2].Arcs, poly.Arcs)
	assert.True(t, poly.Fill)
}

func TestPadNetsNumberedInOrder(t *testing.T) {
	out := Write(testFootprint(), "X", Options{})
	assert.Contains(t, out, `(net 1 "GND")`)
	assert.Contains(t, out, `(net 2 "VCC")`)
	assert.Equal(t, 2, strings.Count(out, `(net 1 "GND")`))
	assert.NotContains(t, out, "(net 3")
}

func TestPolyArcsWritten(t *testing.T) {
	out := Write(testFootprint(), "X", Options{})
	assert.Contains(t, out, "(arc (start 1 0) (mid 1.5 0.5) (end 1 1))")
	assert.Contains(t, out, "(arc (start 0 1) (mid -0.5 0.5) (end 0 0))")
}

func TestHiddenProperties(t *testing.T) {
	for _, major := range version.Supported() {
		format, _ := version.Lookup(major)
		got, err := ReadString(Write(testFootprint(), "X", Options{Format: format}))
		require.NoError(t, err)
		for _, p := range got.Properties {
			wantHidden := p.Key != "Reference" && p.Key != "Value"
			assert.Equal(t, wantHidden, p.Effects.Hide, "KiCad %d property %s", major, p.Key)
		}
	}
}

func TestReferenceAboveValueBelow(t *testing.T) {
	fp := testFootprint()
	got, err := ReadString(Write(fp, "X", Options{}))
	require.NoError(t, err)

	bbox := fp.GetBoundingBox()
	var refY, valY float64
	for _, p := range got.Properties {
		switch p.Key {
		case "Reference":
			refY = p.Position.Y
		case "Value":
			valY = p.Position.Y
		}
	}
	assert.InDelta(t, bbox.Min.Y-1, refY, 1e-9)
	assert.InDelta(t, bbox.Max.Y+1, valY, 1e-9)
}

func TestNoModelBlockWithoutPath(t *testing.T) {
	out := Write(testFootprint(), "X", Options{})
	assert.NotContains(t, out, "(model")
}

func TestPadBoundingBoxRotation(t *testing.T) {
	p := Pad{Position: PositionAngle{Position: Position{X: 1, Y: 1}, Angle: 90}, Size: Size{Width: 2, Height: 1}}
	bb := p.GetBoundingBox()
	assert.InDelta(t, 1, bb.Width(), 1e-9)
	assert.InDelta(t, 2, bb.Height(), 1e-9)
	assert.InDelta(t, 1, bb.Center().X, 1e-9)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "not a footprint", in: `(kicad_symbol_lib (version 1))`},
		{name: "unbalanced", in: `(footprint "x" (layer "F.Cu")`},
		{name: "pad without size", in: `(footprint "x" (pad "1" smd rect (at 0 0) (layers "F.Cu")))`},
		{name: "two roots", in: `(footprint "x") (footprint "y")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadString(tt.in)
			assert.Error(t, err)
		})
	}
}
