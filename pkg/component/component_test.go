package component

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const footprintDoc = `{
  "title": "SOT-23-3_L2.9-W1.3-P1.90-LS2.4-BR",
  "description": "",
  "dataStr": {
    "head": {"x": "4000", "y": 3000, "c_para": {"package": "SOT-23-3", "pre": "U?", "3DModel": "SOT-23"}},
    "shape": ["PAD~RECT~4000~3000~6~4~1~GND~1~0~~0~gge5~0~~Y~0"]
  }
}`

const symbolDoc = `{
  "title": "AMS1117-3.3",
  "description": "AMS1117-3.3",
  "dataStr": "{\"head\":{\"x\":400,\"y\":300,\"c_para\":{\"pre\":\"U?\",\"Manufacturer\":\"AMS\",\"Manufacturer Part\":\"AMS1117-3.3\",\"link\":\"https://example.com/ams1117.pdf\",\"Supplier Part\":\"C6186\",\"pins\":3}},\"shape\":[]}"
}`

func mustRead(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := ReadDocument(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestReadDocument(t *testing.T) {
	fp := mustRead(t, footprintDoc)
	x, y := fp.Origin()
	assert.Equal(t, 4000.0, x)
	assert.Equal(t, 3000.0, y)
	assert.Len(t, fp.Shapes(), 1)
	assert.Equal(t, "SOT-23-3", fp.Param("package"))

	sym := mustRead(t, symbolDoc)
	x, y = sym.Origin()
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 300.0, y)
	assert.Equal(t, "AMS", sym.Param("Manufacturer"))
	assert.Equal(t, "3", sym.Param("pins"))
	assert.Empty(t, sym.Shapes())
}

func TestReadDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `PAD~RECT`},
		{name: "bad origin", doc: `{"dataStr": {"head": {"x": "abc"}}}`},
		{name: "bad embedded dataStr", doc: `{"dataStr": "{not json"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDocument(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestNew(t *testing.T) {
	c, err := New("", mustRead(t, footprintDoc), mustRead(t, symbolDoc))
	require.NoError(t, err)

	assert.Equal(t, "C6186", c.LCSC)
	assert.Equal(t, "AMS1117-3.3", c.Title)
	assert.Equal(t, "U?", c.Prefix)
	assert.Equal(t, "AMS", c.Manufacturer)
	assert.Equal(t, "AMS1117-3.3", c.MPN)
	assert.Equal(t, "SOT-23-3", c.Package)
	assert.Equal(t, "https://example.com/ams1117.pdf", c.Datasheet)
	assert.Equal(t, "AMS1117-3.3", c.Name())

	// The vendor description only repeats the title.
	assert.Equal(t, "AMS1117-3.3; SOT-23-3; AMS", c.Description())
	assert.Equal(t, "AMS AMS1117-3.3 C6186 SOT-23-3", c.Keywords())
}

func TestNewWithoutSymbol(t *testing.T) {
	c, err := New("C1", mustRead(t, footprintDoc), nil)
	require.NoError(t, err)
	assert.Nil(t, c.Symbol)
	assert.Equal(t, "U", c.Prefix)
	assert.Equal(t, "SOT-23-3_L2.9-W1.3-P1.90-LS2.4-BR", c.Title)
	assert.Equal(t, "SOT-23-3", c.Description())
	assert.Equal(t, "C1 SOT-23-3", c.Keywords())

	_, err = New("C1", nil, nil)
	assert.ErrorIs(t, err, ErrNoFootprint)
}

func TestDescriptionKeepsVendorText(t *testing.T) {
	c := &Component{Title: "X", VendorDescription: "  Low dropout regulator ", MPN: "X"}
	assert.Equal(t, "Low dropout regulator", c.Description())
}

func TestKeywordsDeduplicated(t *testing.T) {
	c := &Component{LCSC: "C1", MPN: "NE555", Manufacturer: "TI", Package: "NE555"}
	assert.Equal(t, "C1 NE555 TI", c.Keywords())
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "AMS1117-3.3", want: "AMS1117-3.3"},
		{in: "SOIC-8 (150mil)", want: "SOIC-8_150mil"},
		{in: "a/b\\c:d", want: "a_b_c_d"},
		{in: "  spaced   out  ", want: "spaced_out"},
		{in: `"quoted"`, want: "quoted"},
		{in: "R 0402 10k?", want: "R_0402_10k"},
		{in: "???", want: "unnamed"},
		{in: "", want: "unnamed"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}
