package easyeda

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		ops     string
		wantErr bool
	}{
		{name: "spaced", in: "M 350 300 h 10", ops: "Mh"},
		{name: "compact", in: "M350,300L360,300", ops: "ML"},
		{name: "negative run-on", in: "M0-5l10-10", ops: "Ml"},
		{name: "arc", in: "M 0 0 A 10 10 0 0 1 20 0", ops: "MA"},
		{name: "closed", in: "M0 0 L 10 0 L 10 10 Z", ops: "MLLZ"},
		{name: "empty", in: "  ", wantErr: true},
		{name: "junk", in: "M 0 0 X 1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds, err := ParsePath(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			ops := ""
			for _, c := range cmds {
				ops += string(c.Op)
			}
			assert.Equal(t, tt.ops, ops)
		})
	}
}

func TestSegments(t *testing.T) {
	subpaths, err := ParseSegments("M 10 10 h 5 v 5 l -5 0 z M 100 100 L 110 100 120 100")
	require.NoError(t, err)
	require.Len(t, subpaths, 2)

	first := subpaths[0]
	require.Len(t, first, 4)
	assert.Equal(t, Point{15, 10}, first[0].End)
	assert.Equal(t, Point{15, 15}, first[1].End)
	assert.Equal(t, Point{10, 15}, first[2].End)
	assert.Equal(t, Point{10, 10}, first[3].End)

	// implicit lineto repetition
	second := subpaths[1]
	require.Len(t, second, 2)
	assert.Equal(t, Point{120, 100}, second[1].End)
}

func TestSegmentsArgumentCount(t *testing.T) {
	_, err := ParseSegments("M 0 0 A 10 10 0 0 1 20")
	assert.Error(t, err)
}

func TestArcMid(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Point
	}{
		// Y grows downwards in vendor space, so a clockwise sweep bulges to -Y.
		{name: "half circle sweep", path: "M 0 0 A 10 10 0 0 1 20 0", want: Point{10, -10}},
		{name: "half circle counter sweep", path: "M 0 0 A 10 10 0 0 0 20 0", want: Point{10, 10}},
		{name: "quarter", path: "M 10 0 A 10 10 0 0 1 0 10", want: Point{10 * math.Sqrt2 / 2, 10 * math.Sqrt2 / 2}},
		{name: "radius too small is scaled", path: "M 0 0 A 1 1 0 0 1 20 0", want: Point{10, -10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subpaths, err := ParseSegments(tt.path)
			require.NoError(t, err)
			mid, ok := ArcMid(subpaths[0][0])
			require.True(t, ok)
			assert.InDelta(t, tt.want.X, mid.X, 1e-9)
			assert.InDelta(t, tt.want.Y, mid.Y, 1e-9)
		})
	}
}

func TestArcMidDegenerate(t *testing.T) {
	_, ok := ArcMid(Segment{Kind: SegmentArc, Start: Point{1, 1}, End: Point{1, 1}, RX: 5, RY: 5})
	assert.False(t, ok)
}
